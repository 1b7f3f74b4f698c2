package models

// Meetup is a scheduled group walk organized around an existing plan.
type Meetup struct {
	// ID is the unique identifier for the meetup (UUID format).
	ID string

	// PlanID references the plan being walked.
	PlanID string

	HostID       string
	HostUsername string

	// MeetupTime is free text, e.g. "明天上午10点".
	MeetupTime string

	// Participants are usernames in join order. The host is always first.
	Participants []string

	// CreatedAt is the Unix timestamp when the meetup was created.
	CreatedAt int64
}

// HasParticipant reports whether username already joined.
func (m *Meetup) HasParticipant(username string) bool {
	for _, p := range m.Participants {
		if p == username {
			return true
		}
	}
	return false
}

// MeetupWithPlan is a meetup joined with the route details of its plan.
type MeetupWithPlan struct {
	Meetup

	Mood          string
	StartLocation string
	Stops         []Stop
	Summary       string
}
