package view

import (
	"strings"
	"time"

	"github.com/mmynk/vibewalk/internal/models"
)

// Viewer identifies who is looking at the page. The zero value is a guest.
type Viewer struct {
	UserID   string
	Username string
}

func (v Viewer) LoggedIn() bool { return v.UserID != "" }

const timeLayout = "2006-01-02 15:04:05"

// ReviewBlock is the post-trip review shown under a feed card.
type ReviewBlock struct {
	Stars      string `json:"stars"`
	Rating     int    `json:"rating"`
	MoodChange string `json:"mood_change,omitempty"`
	Text       string `json:"text"`
}

// FeedCard is a saved plan in the community feed.
type FeedCard struct {
	PlanID        string       `json:"plan_id"`
	Author        string       `json:"author"`
	Mood          string       `json:"mood"`
	StartLocation string       `json:"start_location"`
	CreatedAt     string       `json:"created_at"`
	Summary       string       `json:"summary,omitempty"`
	StopCount     int          `json:"stop_count"`
	Steps         string       `json:"steps"`
	Review        *ReviewBlock `json:"review,omitempty"`
	CanReview     bool         `json:"can_review"`
	CanHost       bool         `json:"can_host"`
}

// Stars renders a rating as a row of star emoji.
func Stars(rating int) string {
	if rating <= 0 {
		return ""
	}
	return strings.Repeat("⭐", rating)
}

// BuildFeedCard renders a saved plan for the community feed.
func BuildFeedCard(p models.Plan, viewer Viewer) FeedCard {
	names := p.StopNames()
	card := FeedCard{
		PlanID:        p.ID,
		Author:        p.OwnerUsername,
		Mood:          p.Mood,
		StartLocation: p.StartLocation,
		CreatedAt:     time.Unix(p.CreatedAt, 0).UTC().Format(timeLayout),
		Summary:       p.Summary,
		StopCount:     len(names),
		Steps:         strings.Join(names, " → "),
		CanReview:     viewer.LoggedIn() && viewer.UserID == p.OwnerID,
		CanHost:       viewer.LoggedIn(),
	}

	if r := p.Review; r != nil {
		block := &ReviewBlock{
			Stars:  Stars(r.Rating),
			Rating: r.Rating,
			Text:   r.ReviewText,
		}
		if r.PostMood != "" {
			block.MoodChange = p.Mood + " ➡️ " + r.PostMood
		}
		card.Review = block
	}
	return card
}

// BuildFeed renders plans in the order given.
func BuildFeed(plans []*models.Plan, viewer Viewer) []FeedCard {
	cards := make([]FeedCard, 0, len(plans))
	for _, p := range plans {
		cards = append(cards, BuildFeedCard(*p, viewer))
	}
	return cards
}

// MeetupCard is one meetup on the meetup board.
type MeetupCard struct {
	MeetupID         string   `json:"meetup_id"`
	PlanID           string   `json:"plan_id"`
	Host             string   `json:"host"`
	Time             string   `json:"time"`
	Route            string   `json:"route"`
	Steps            string   `json:"steps"`
	Summary          string   `json:"summary,omitempty"`
	Participants     []string `json:"participants"`
	ParticipantCount int      `json:"participant_count"`
	Joined           bool     `json:"joined"`
	CanJoin          bool     `json:"can_join"`
}

// BuildMeetupCard renders a meetup for the meetup board.
func BuildMeetupCard(m models.MeetupWithPlan, viewer Viewer) MeetupCard {
	joined := viewer.LoggedIn() && m.HasParticipant(viewer.Username)

	names := make([]string, 0, len(m.Stops))
	for _, s := range m.Stops {
		names = append(names, s.Name)
	}

	participants := m.Participants
	if participants == nil {
		participants = []string{}
	}

	return MeetupCard{
		MeetupID:         m.ID,
		PlanID:           m.PlanID,
		Host:             m.HostUsername,
		Time:             m.MeetupTime,
		Route:            m.StartLocation + " (" + m.Mood + ")",
		Steps:            strings.Join(names, " → "),
		Summary:          m.Summary,
		Participants:     participants,
		ParticipantCount: len(participants),
		Joined:           joined,
		CanJoin:          viewer.LoggedIn() && !joined,
	}
}

// BuildMeetupBoard renders meetups in the order given.
func BuildMeetupBoard(meetups []*models.MeetupWithPlan, viewer Viewer) []MeetupCard {
	cards := make([]MeetupCard, 0, len(meetups))
	for _, m := range meetups {
		cards = append(cards, BuildMeetupCard(*m, viewer))
	}
	return cards
}
