package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/api"
	"github.com/mmynk/vibewalk/internal/models"
	"github.com/mmynk/vibewalk/internal/storage"
	"github.com/mmynk/vibewalk/internal/view"
)

// PlanService implements the PlanService RPC interface: the community feed
// of saved itineraries and their reviews.
type PlanService struct {
	plans  storage.PlanStore
	logger *slog.Logger
}

// NewPlanService creates a new PlanService with the given storage backend.
func NewPlanService(plans storage.PlanStore, logger *slog.Logger) *PlanService {
	return &PlanService{plans: plans, logger: logger}
}

// SavePlan persists the caller's working itinerary as a new plan.
// Saving the same trip twice creates two plans.
func (s *PlanService) SavePlan(ctx context.Context, req *connect.Request[api.SavePlanRequest]) (*connect.Response[api.SavePlanResponse], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	_, st, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	trip := st.Snapshot()
	if len(trip.Route) == 0 {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errNoRoute)
	}

	plan := &models.Plan{
		OwnerID:       user.UserID,
		OwnerUsername: user.Username,
		Mood:          trip.Mood,
		StartLocation: trip.StartName,
		Stops:         trip.Route,
		Summary:       trip.Summary,
	}
	if err := s.plans.CreatePlan(ctx, plan); err != nil {
		s.logger.Error("Failed to save plan", "user_id", user.UserID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Plan saved", "plan_id", plan.ID, "user_id", user.UserID, "stops", len(plan.Stops))
	return connect.NewResponse(&api.SavePlanResponse{PlanID: plan.ID}), nil
}

// AddReview sets the post-trip review of a plan. Only the plan's owner may
// review it; a later review replaces the earlier one.
func (s *PlanService) AddReview(ctx context.Context, req *connect.Request[api.AddReviewRequest]) (*connect.Response[api.AddReviewResponse], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	msg := req.Msg
	if msg.PlanID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("plan_id is required"))
	}
	if msg.Rating < 1 || msg.Rating > 5 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("rating must be between 1 and 5, got %d", msg.Rating))
	}

	review := models.Review{
		PostMood:   strings.TrimSpace(msg.PostMood),
		ReviewText: strings.TrimSpace(msg.ReviewText),
		Rating:     msg.Rating,
	}
	if err := s.plans.UpdatePlanReview(ctx, msg.PlanID, user.UserID, review); err != nil {
		s.logger.Warn("Review rejected", "plan_id", msg.PlanID, "user_id", user.UserID, "error", err)
		return nil, storageError(err)
	}

	plan, err := s.plans.GetPlan(ctx, msg.PlanID)
	if err != nil {
		return nil, storageError(err)
	}

	s.logger.Info("Review saved", "plan_id", plan.ID, "rating", review.Rating)
	return connect.NewResponse(&api.AddReviewResponse{Plan: view.BuildFeedCard(*plan, user)}), nil
}

// ListPlans returns the community feed, newest first.
func (s *PlanService) ListPlans(ctx context.Context, req *connect.Request[api.ListPlansRequest]) (*connect.Response[api.ListPlansResponse], error) {
	plans, err := s.plans.ListPlans(ctx)
	if err != nil {
		s.logger.Error("Failed to list plans", "error", err)
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.ListPlansResponse{Plans: view.BuildFeed(plans, viewerFrom(ctx))}), nil
}

// GetPlan returns one plan with its full route.
func (s *PlanService) GetPlan(ctx context.Context, req *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error) {
	plan, err := s.plans.GetPlan(ctx, req.Msg.PlanID)
	if err != nil {
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.GetPlanResponse{
		Plan:  view.BuildFeedCard(*plan, viewerFrom(ctx)),
		Stops: plan.Stops,
	}), nil
}
