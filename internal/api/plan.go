package api

import (
	"github.com/mmynk/vibewalk/internal/models"
	"github.com/mmynk/vibewalk/internal/view"
)

// SavePlanRequest persists the caller's current working itinerary.
type SavePlanRequest struct{}

type SavePlanResponse struct {
	PlanID string `json:"plan_id"`
}

type AddReviewRequest struct {
	PlanID     string `json:"plan_id"`
	PostMood   string `json:"post_mood"`
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

type AddReviewResponse struct {
	Plan view.FeedCard `json:"plan"`
}

type ListPlansRequest struct{}

type ListPlansResponse struct {
	Plans []view.FeedCard `json:"plans"`
}

type GetPlanRequest struct {
	PlanID string `json:"plan_id"`
}

type GetPlanResponse struct {
	Plan  view.FeedCard `json:"plan"`
	Stops []models.Stop `json:"stops"`
}

type CreateMeetupRequest struct {
	PlanID     string `json:"plan_id"`
	MeetupTime string `json:"meetup_time"`
}

type CreateMeetupResponse struct {
	MeetupID string `json:"meetup_id"`
}

type JoinMeetupRequest struct {
	MeetupID string `json:"meetup_id"`
}

type JoinMeetupResponse struct {
	MeetupID     string   `json:"meetup_id"`
	Participants []string `json:"participants"`
}

type ListMeetupsRequest struct{}

type ListMeetupsResponse struct {
	Meetups []view.MeetupCard `json:"meetups"`
}
