package session

import (
	"slices"
	"sync"

	"github.com/mmynk/vibewalk/internal/models"
)

// Notice is a one-shot message shown on the next itinerary read.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Itinerary is a point-in-time copy of the trip a session is working on.
type Itinerary struct {
	Route        []models.Stop
	Summary      string
	Mood         string
	StartName    string
	SearchResult *models.Stop
	PaymentLinks map[int]string
}

// State is the per-session working set. All methods are safe for concurrent use.
type State struct {
	mu           sync.Mutex
	route        []models.Stop
	summary      string
	mood         string
	startName    string
	searchResult *models.Stop
	paymentLinks map[int]string
	notice       *Notice
}

func newState() *State {
	return &State{paymentLinks: make(map[int]string)}
}

// Snapshot returns a copy of the current itinerary.
func (s *State) Snapshot() Itinerary {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := Itinerary{
		Route:        slices.Clone(s.route),
		Summary:      s.summary,
		Mood:         s.mood,
		StartName:    s.startName,
		PaymentLinks: make(map[int]string, len(s.paymentLinks)),
	}
	if s.searchResult != nil {
		r := *s.searchResult
		it.SearchResult = &r
	}
	for k, v := range s.paymentLinks {
		it.PaymentLinks[k] = v
	}
	return it
}

// SetRoute replaces the working route. Payment links belong to the old
// route and are dropped.
func (s *State) SetRoute(stops []models.Stop, summary, mood, startName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = slices.Clone(stops)
	s.summary = summary
	s.mood = mood
	s.startName = startName
	s.paymentLinks = make(map[int]string)
}

// SetSearchResult stores the latest place search result.
func (s *State) SetSearchResult(stop *models.Stop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchResult = stop
}

// ClearSearch drops the latest place search result.
func (s *State) ClearSearch() {
	s.SetSearchResult(nil)
}

// AppendSearchResult moves the search result to the end of the route.
// It reports false when there is no search result.
func (s *State) AppendSearchResult(transport models.Transport, price string) (models.Stop, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchResult == nil {
		return models.Stop{}, false
	}
	stop := *s.searchResult
	stop.Price = price
	if len(s.route) > 0 {
		stop.Transport = &transport
	}
	s.route = append(s.route, stop)
	s.searchResult = nil
	return stop, true
}

// StopAt returns the stop at index i of the working route.
func (s *State) StopAt(i int) (models.Stop, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.route) {
		return models.Stop{}, false
	}
	return s.route[i], true
}

// SetPaymentLink remembers the checkout URL created for stop i.
func (s *State) SetPaymentLink(i int, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentLinks[i] = url
}

// SetNotice replaces the pending notice.
func (s *State) SetNotice(level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = &Notice{Level: level, Message: message}
}

// TakeNotice returns the pending notice and clears it.
func (s *State) TakeNotice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = nil
	return n
}
