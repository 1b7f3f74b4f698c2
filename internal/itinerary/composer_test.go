package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/vibewalk/internal/models"
)

type fakeCompleter struct {
	text   string
	err    error
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.text, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRequest() RouteRequest {
	start, _ := LookupStart("Chinatown")
	return RouteRequest{
		StartName:        start.Name,
		StartCoords:      start.Coords,
		Mood:             models.MoodFoodie,
		DurationHours:    2.5,
		IncludeMuseums:   true,
		CustomPreference: "我想吃鸡饭",
	}
}

func TestGenerateRoute(t *testing.T) {
	completer := &fakeCompleter{text: validRoute}
	c := NewComposer(completer, time.Second, discardLogger())

	stops, summary, err := c.GenerateRoute(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Len(t, stops, 3)
	assert.NotEmpty(t, summary)

	assert.Equal(t, routeSystemPrompt, completer.system)
	assert.Contains(t, completer.user, "Start: Chinatown (1.2842, 103.8436)")
	assert.Contains(t, completer.user, "Mood: "+models.MoodFoodie)
	assert.Contains(t, completer.user, "Duration: 2.5 hours.")
	assert.Contains(t, completer.user, "Include at least one museum")
	assert.Contains(t, completer.user, "User Specific Preferences: 我想吃鸡饭")
	assert.Contains(t, completer.user, `"Gardens by the Bay":"SGD $53"`)
}

func TestGenerateRouteOmitsOptionalPromptParts(t *testing.T) {
	completer := &fakeCompleter{text: validRoute}
	req := sampleRequest()
	req.IncludeMuseums = false
	req.CustomPreference = "   "

	_, _, err := NewComposer(completer, time.Second, discardLogger()).GenerateRoute(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, completer.user, "museum or heritage")
	assert.NotContains(t, completer.user, "User Specific Preferences")
}

func TestGenerateRouteDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
	}{
		{"provider error", &fakeCompleter{err: errors.New("connection refused")}},
		{"malformed json", &fakeCompleter{text: `{"stops": [`}},
		{"schema violation", &fakeCompleter{text: `{"stops": [], "summary": "空"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer(tt.completer, time.Second, discardLogger())
			stops, summary, err := c.GenerateRoute(context.Background(), sampleRequest())
			assert.Error(t, err)
			assert.Empty(t, stops)
			assert.Empty(t, summary)
		})
	}
}

func TestSearchPlace(t *testing.T) {
	completer := &fakeCompleter{text: `{"name": "Tiong Bahru Bakery", "coords": [1.2847, 103.8327], "desc": "安静的咖啡馆"}`}
	c := NewComposer(completer, time.Second, discardLogger())

	stop, err := c.SearchPlace(context.Background(), "安静的看海咖啡馆", models.MoodChill)
	require.NoError(t, err)
	assert.Equal(t, "Tiong Bahru Bakery", stop.Name)
	assert.Equal(t, searchSystemPrompt, completer.system)
	assert.Contains(t, completer.user, "安静的看海咖啡馆")

	_, err = NewComposer(&fakeCompleter{err: errors.New("timeout")}, time.Second, discardLogger()).
		SearchPlace(context.Background(), "coffee", models.MoodChill)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.SearchPlace(context.Background(), "  ", models.MoodChill)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenAICompleter(t *testing.T) {
	var gotRequest map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"ok\": true}"}, "finish_reason": "stop"}]
		}`)
	}))
	defer server.Close()

	c := NewOpenAICompleter("test-key", server.URL, "")
	text, err := c.Complete(context.Background(), "system text", "user text")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, text)

	assert.Equal(t, DefaultModel, gotRequest["model"])
	format, _ := gotRequest["response_format"].(map[string]any)
	assert.Equal(t, "json_object", format["type"])
	messages, _ := gotRequest["messages"].([]any)
	assert.Len(t, messages, 2)
}

func TestOpenAICompleterProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`)
	}))
	defer server.Close()

	_, err := NewOpenAICompleter("bad-key", server.URL, "").Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}
