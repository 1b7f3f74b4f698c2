package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/vibewalk/internal/models"
	"github.com/mmynk/vibewalk/internal/session"
)

func coords(lat, lon float64) *models.Coordinates {
	c := models.Coordinates{lat, lon}
	return &c
}

func sampleRoute() []models.Stop {
	return []models.Stop{
		{Name: "Chinatown Heritage Centre", Coords: coords(1.2834, 103.8441), Description: "历史", Price: "SGD $20", Image: "https://images.example/chc.jpg"},
		{Name: "Maxwell Food Centre", Coords: coords(1.2803, 103.8447), Description: "鸡饭", Price: "Free",
			Transport: &models.Transport{Method: "步行", Duration: "3 mins", Cost: "SGD $0"}},
		{Name: "Pop-up Stall", Description: "no coordinates", Price: "",
			Transport: &models.Transport{}},
		{Name: "Gardens by the Bay", Coords: coords(1.2816, 103.8636), Description: "夜景", Price: "SGD $53",
			Transport: &models.Transport{Method: "地铁", Duration: "15 mins", Cost: "SGD $2"}},
	}
}

func TestRouteColor(t *testing.T) {
	assert.Equal(t, "#00b894", RouteColor(models.MoodChill))
	assert.Equal(t, "#d63031", RouteColor(models.MoodEnergetic))
	assert.Equal(t, "#e17055", RouteColor(models.MoodFoodie))
	assert.Equal(t, "#0984e3", RouteColor(models.MoodMelancholy))
	assert.Equal(t, "#6c5ce7", RouteColor(models.MoodCultural))
	assert.Equal(t, "#2d3436", RouteColor(models.MoodHappy))
	assert.Equal(t, "#2d3436", RouteColor(""))
}

func TestBuildMapEmpty(t *testing.T) {
	m := BuildMap(nil, "", nil)
	assert.Equal(t, DefaultCenter, m.Center)
	assert.Equal(t, DefaultZoom, m.Zoom)
	assert.Empty(t, m.Markers)
	assert.Nil(t, m.Polyline)
	assert.Nil(t, m.Bounds)
}

func TestBuildMapRoute(t *testing.T) {
	m := BuildMap(sampleRoute(), models.MoodFoodie, nil)

	assert.Equal(t, "#e17055", m.Color)
	require.Len(t, m.Markers, 3, "stop without coordinates gets no marker")
	assert.Equal(t, 1, m.Markers[0].Index)
	assert.Equal(t, 2, m.Markers[1].Index)
	assert.Equal(t, 4, m.Markers[2].Index, "marker keeps the stop's position in the route")
	assert.Equal(t, "SGD $53", m.Markers[2].Price)

	require.Len(t, m.Polyline, 3)
	require.NotNil(t, m.Bounds)
	assert.Equal(t, LatLon{Lat: 1.2803, Lon: 103.8441}, m.Bounds.SouthWest)
	assert.Equal(t, LatLon{Lat: 1.2834, Lon: 103.8636}, m.Bounds.NorthEast)
}

func TestBuildMapSinglePoint(t *testing.T) {
	m := BuildMap(sampleRoute()[:1], models.MoodChill, nil)
	assert.Len(t, m.Markers, 1)
	assert.Nil(t, m.Polyline, "a line needs two points")
	assert.Nil(t, m.Bounds)
}

func TestBuildMapSearchResult(t *testing.T) {
	search := &models.Stop{Name: "Tiong Bahru Bakery", Coords: coords(1.2847, 103.8327)}

	m := BuildMap(nil, models.MoodChill, search)
	require.Len(t, m.Markers, 1)
	assert.Equal(t, MarkerSearch, m.Markers[0].Kind)
	assert.Equal(t, LatLon{Lat: 1.2847, Lon: 103.8327}, m.Center)
	assert.Equal(t, SearchFocusZoom, m.Zoom)

	m = BuildMap(sampleRoute(), models.MoodChill, search)
	assert.Len(t, m.Markers, 4)
	assert.Equal(t, DefaultZoom, m.Zoom)

	m = BuildMap(nil, models.MoodChill, &models.Stop{Name: "Nowhere"})
	assert.Empty(t, m.Markers)
}

func TestBuildItinerary(t *testing.T) {
	it := session.Itinerary{
		Route:        sampleRoute(),
		Summary:      "美食之旅",
		Mood:         models.MoodFoodie,
		StartName:    "Chinatown",
		PaymentLinks: map[int]string{3: "https://checkout.example/gbtb"},
	}
	v := BuildItinerary(it, true)

	assert.True(t, v.Sandbox)
	assert.Equal(t, "美食之旅", v.Summary)
	assert.Equal(t, int64(20+53+0+2), v.EstimatedTotal)
	require.Len(t, v.Cards, 4)

	assert.Nil(t, v.Cards[0].Transport)
	assert.Equal(t, int64(20), v.Cards[0].BookableSGD)
	assert.Zero(t, v.Cards[1].BookableSGD)

	assert.Equal(t, "Free", v.Cards[2].Price)
	assert.Equal(t, &TransportBadge{Method: "步行", Duration: "5 mins", Cost: "Free"}, v.Cards[2].Transport)

	assert.Equal(t, 4, v.Cards[3].Index)
	assert.Equal(t, "https://checkout.example/gbtb", v.Cards[3].PaymentLink)
	assert.Nil(t, v.Search)
	assert.Len(t, v.Map.Markers, 3)
}

func TestBuildFeedCard(t *testing.T) {
	plan := models.Plan{
		ID:            "p1",
		OwnerID:       "u1",
		OwnerUsername: "alice",
		Mood:          models.MoodChill,
		StartLocation: "NUS (National University of Singapore)",
		Stops:         sampleRoute(),
		Summary:       "轻松",
		CreatedAt:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC).Unix(),
	}

	guest := BuildFeedCard(plan, Viewer{})
	assert.False(t, guest.CanReview)
	assert.False(t, guest.CanHost)
	assert.Nil(t, guest.Review)
	assert.Equal(t, 4, guest.StopCount)
	assert.Equal(t, "Chinatown Heritage Centre → Maxwell Food Centre → Pop-up Stall → Gardens by the Bay", guest.Steps)
	assert.Equal(t, "2025-03-01 10:00:00", guest.CreatedAt)

	owner := BuildFeedCard(plan, Viewer{UserID: "u1", Username: "alice"})
	assert.True(t, owner.CanReview)
	assert.True(t, owner.CanHost)

	other := BuildFeedCard(plan, Viewer{UserID: "u2", Username: "bob"})
	assert.False(t, other.CanReview)
	assert.True(t, other.CanHost)

	plan.Review = &models.Review{PostMood: models.MoodTired, ReviewText: "走了好多路", Rating: 4}
	reviewed := BuildFeedCard(plan, Viewer{})
	require.NotNil(t, reviewed.Review)
	assert.Equal(t, "⭐⭐⭐⭐", reviewed.Review.Stars)
	assert.Equal(t, models.MoodChill+" ➡️ "+models.MoodTired, reviewed.Review.MoodChange)
	assert.Equal(t, "走了好多路", reviewed.Review.Text)
}

func TestBuildMeetupCard(t *testing.T) {
	m := models.MeetupWithPlan{
		Meetup: models.Meetup{
			ID:           "m1",
			PlanID:       "p1",
			HostUsername: "alice",
			MeetupTime:   "明天上午10点",
			Participants: []string{"alice", "bob"},
		},
		Mood:          models.MoodCultural,
		StartLocation: "Chinatown",
		Stops:         sampleRoute()[:2],
	}

	card := BuildMeetupCard(m, Viewer{UserID: "u2", Username: "bob"})
	assert.True(t, card.Joined)
	assert.False(t, card.CanJoin)
	assert.Equal(t, 2, card.ParticipantCount)
	assert.Equal(t, "Chinatown ("+models.MoodCultural+")", card.Route)

	card = BuildMeetupCard(m, Viewer{UserID: "u3", Username: "carol"})
	assert.False(t, card.Joined)
	assert.True(t, card.CanJoin)

	card = BuildMeetupCard(m, Viewer{})
	assert.False(t, card.CanJoin)
}

func TestStars(t *testing.T) {
	assert.Equal(t, "", Stars(0))
	assert.Equal(t, "⭐", Stars(1))
	assert.Equal(t, "⭐⭐⭐⭐⭐", Stars(5))
}
