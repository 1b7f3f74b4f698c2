// Package view turns domain data and session state into the render-ready
// shapes the browser client draws: the route map, the itinerary cards, the
// community feed and the meetup board.
package view

import (
	"github.com/mmynk/vibewalk/internal/models"
)

// Map defaults: all of Singapore in view.
var (
	DefaultCenter = LatLon{Lat: 1.3521, Lon: 103.8198}
)

const (
	DefaultZoom      = 11
	SearchFocusZoom  = 15
	DefaultLineColor = "#2d3436"
)

var moodColors = map[string]string{
	models.MoodChill:      "#00b894",
	models.MoodEnergetic:  "#d63031",
	models.MoodFoodie:     "#e17055",
	models.MoodMelancholy: "#0984e3",
	models.MoodCultural:   "#6c5ce7",
}

// RouteColor returns the polyline colour for a mood.
func RouteColor(mood string) string {
	if c, ok := moodColors[mood]; ok {
		return c
	}
	return DefaultLineColor
}

// LatLon is a map position.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Marker kinds.
const (
	MarkerStop   = "stop"
	MarkerSearch = "search"
)

// Marker is a pin on the map, either a route stop or the search result.
type Marker struct {
	Kind     string `json:"kind"`
	Index    int    `json:"index,omitempty"`
	Name     string `json:"name"`
	Price    string `json:"price,omitempty"`
	Image    string `json:"image,omitempty"`
	Position LatLon `json:"position"`
}

// Bounds is the box the map is fitted to.
type Bounds struct {
	SouthWest LatLon `json:"south_west"`
	NorthEast LatLon `json:"north_east"`
}

// Map is the map view: centre, zoom, markers and the route line.
type Map struct {
	Center   LatLon   `json:"center"`
	Zoom     int      `json:"zoom"`
	Color    string   `json:"color"`
	Markers  []Marker `json:"markers"`
	Polyline []LatLon `json:"polyline,omitempty"`
	Bounds   *Bounds  `json:"bounds,omitempty"`
}

// BuildMap renders the route and an optional search result. Stops without
// coordinates are listed elsewhere but get no marker. The line is drawn and
// the view fitted to it only when at least two points exist. With no route,
// the map focuses on the search result.
func BuildMap(stops []models.Stop, mood string, search *models.Stop) Map {
	m := Map{
		Center:  DefaultCenter,
		Zoom:    DefaultZoom,
		Color:   RouteColor(mood),
		Markers: []Marker{},
	}

	var points []LatLon
	for i, s := range stops {
		if s.Coords == nil || !s.Coords.Valid() {
			continue
		}
		p := LatLon{Lat: s.Coords.Lat(), Lon: s.Coords.Lon()}
		points = append(points, p)
		price := s.Price
		if price == "" {
			price = "Free"
		}
		m.Markers = append(m.Markers, Marker{
			Kind:     MarkerStop,
			Index:    i + 1,
			Name:     s.Name,
			Price:    price,
			Image:    s.Image,
			Position: p,
		})
	}

	if len(points) > 1 {
		m.Polyline = points
		m.Bounds = boundsOf(points)
	}

	if search != nil && search.Coords != nil && search.Coords.Valid() {
		p := LatLon{Lat: search.Coords.Lat(), Lon: search.Coords.Lon()}
		m.Markers = append(m.Markers, Marker{
			Kind:     MarkerSearch,
			Name:     search.Name,
			Image:    search.Image,
			Position: p,
		})
		if len(stops) == 0 {
			m.Center = p
			m.Zoom = SearchFocusZoom
		}
	}

	return m
}

func boundsOf(points []LatLon) *Bounds {
	b := &Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		b.SouthWest.Lat = min(b.SouthWest.Lat, p.Lat)
		b.SouthWest.Lon = min(b.SouthWest.Lon, p.Lon)
		b.NorthEast.Lat = max(b.NorthEast.Lat, p.Lat)
		b.NorthEast.Lon = max(b.NorthEast.Lon, p.Lon)
	}
	return b
}
