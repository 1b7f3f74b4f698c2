package itinerary

import (
	"errors"
	"testing"
)

const validRoute = `{
  "stops": [
    {"name": "Chinatown Heritage Centre", "coords": [1.2834, 103.8441], "desc": "了解牛车水历史", "price": "SGD $20", "transport_from_prev": {"method": "步行", "duration": "3 mins", "cost": "SGD $0"}},
    {"name": "Maxwell Food Centre", "coords": [1.2803, 103.8447], "desc": "天天海南鸡饭", "price": "Free", "transport_from_prev": {"method": "步行", "duration": "5 mins", "cost": "SGD $0"}},
    {"name": "Gardens by the Bay", "coords": [1.2816, 103.8636], "desc": "超级树夜景", "transport_from_prev": {"method": "地铁", "duration": "15 mins", "cost": "SGD $2"}}
  ],
  "summary": "这是一趟充满历史感与美食的文化之旅"
}`

func TestParseRoute(t *testing.T) {
	stops, summary, err := parseRoute(validRoute)
	if err != nil {
		t.Fatalf("parseRoute failed: %v", err)
	}
	if len(stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(stops))
	}
	if summary != "这是一趟充满历史感与美食的文化之旅" {
		t.Errorf("summary = %q", summary)
	}
	if stops[0].Transport != nil {
		t.Error("first stop must not carry a transport leg")
	}
	if stops[1].Transport == nil || stops[1].Transport.Method != "步行" {
		t.Errorf("second stop transport = %+v", stops[1].Transport)
	}
	if stops[2].Price != "Free" {
		t.Errorf("missing price should default to Free, got %q", stops[2].Price)
	}
	if stops[0].Coords == nil || stops[0].Coords.Lat() != 1.2834 {
		t.Errorf("coords = %v", stops[0].Coords)
	}
}

func TestParseRouteRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `Sure! Here is your route`},
		{"missing summary", `{"stops": [{"name":"A","coords":[1,103],"desc":"a"},{"name":"B","coords":[1,103],"desc":"b"},{"name":"C","coords":[1,103],"desc":"c"}]}`},
		{"too few stops", `{"stops": [{"name":"A","coords":[1,103],"desc":"a"},{"name":"B","coords":[1,103],"desc":"b"}], "summary": "x"}`},
		{"too many stops", `{"stops": [` +
			`{"name":"A","coords":[1,103],"desc":"a"},{"name":"B","coords":[1,103],"desc":"b"},` +
			`{"name":"C","coords":[1,103],"desc":"c"},{"name":"D","coords":[1,103],"desc":"d"},` +
			`{"name":"E","coords":[1,103],"desc":"e"},{"name":"F","coords":[1,103],"desc":"f"}], "summary": "x"}`},
		{"missing name", `{"stops": [{"coords":[1,103],"desc":"a"},{"name":"B","coords":[1,103],"desc":"b"},{"name":"C","coords":[1,103],"desc":"c"}], "summary": "x"}`},
		{"null coords", `{"stops": [{"name":"A","coords":null,"desc":"a"},{"name":"B","coords":[1,103],"desc":"b"},{"name":"C","coords":[1,103],"desc":"c"}], "summary": "x"}`},
		{"latitude out of range", `{"stops": [{"name":"A","coords":[91,103],"desc":"a"},{"name":"B","coords":[1,103],"desc":"b"},{"name":"C","coords":[1,103],"desc":"c"}], "summary": "x"}`},
		{"three coordinates", `{"stops": [{"name":"A","coords":[1,103,5],"desc":"a"},{"name":"B","coords":[1,103],"desc":"b"},{"name":"C","coords":[1,103],"desc":"c"}], "summary": "x"}`},
		{"coords as strings", `{"stops": [{"name":"A","coords":["1","103"],"desc":"a"},{"name":"B","coords":[1,103],"desc":"b"},{"name":"C","coords":[1,103],"desc":"c"}], "summary": "x"}`},
		{"missing desc", `{"stops": [{"name":"A","coords":[1,103]},{"name":"B","coords":[1,103],"desc":"b"},{"name":"C","coords":[1,103],"desc":"c"}], "summary": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stops, summary, err := parseRoute(tt.payload)
			if !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
			if stops != nil || summary != "" {
				t.Errorf("rejected payload must yield empty result, got %d stops, summary %q", len(stops), summary)
			}
		})
	}
}

func TestParseRouteStripsCodeFence(t *testing.T) {
	stops, _, err := parseRoute("```json\n" + validRoute + "\n```")
	if err != nil {
		t.Fatalf("parseRoute failed: %v", err)
	}
	if len(stops) != 3 {
		t.Errorf("expected 3 stops, got %d", len(stops))
	}
}

func TestParsePlace(t *testing.T) {
	stop, err := parsePlace(`{"name": "Marina Bay Sands Skypark", "coords": [1.2834, 103.8607], "desc": "俯瞰全城"}`)
	if err != nil {
		t.Fatalf("parsePlace failed: %v", err)
	}
	if stop.Name != "Marina Bay Sands Skypark" || stop.Description != "俯瞰全城" || stop.Coords == nil {
		t.Errorf("unexpected stop: %+v", stop)
	}

	stop, err = parsePlace(`{"name": "Somewhere quiet", "desc": "安静"}`)
	if err != nil {
		t.Fatalf("coords are optional for a single place: %v", err)
	}
	if stop.Coords != nil {
		t.Errorf("expected nil coords, got %v", stop.Coords)
	}

	if _, err := parsePlace(`{"desc": "no name"}`); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("expected ErrInvalidPayload, got %v", err)
	}
}
