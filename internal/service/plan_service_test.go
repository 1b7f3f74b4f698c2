package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/api"
	"github.com/mmynk/vibewalk/internal/models"
)

// savePlan generates a route for v and saves it.
func (e *testEnv) savePlan(t *testing.T, v *visitor) string {
	t.Helper()
	e.generate(t, v)
	resp, err := e.plans.SavePlan(context.Background(), req(v, &api.SavePlanRequest{}))
	if err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	if resp.Msg.PlanID == "" {
		t.Fatal("expected a plan id")
	}
	return resp.Msg.PlanID
}

func TestSavePlan(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	guest := env.newVisitor()
	env.generate(t, guest)
	_, err := env.plans.SavePlan(ctx, req(guest, &api.SavePlanRequest{}))
	if codeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("guest: expected Unauthenticated, got %v", err)
	}

	alice := env.signUp(t, "alice")
	_, err = env.plans.SavePlan(ctx, req(alice, &api.SavePlanRequest{}))
	if codeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("empty route: expected FailedPrecondition, got %v", err)
	}

	first := env.savePlan(t, alice)
	resp, err := env.plans.SavePlan(ctx, req(alice, &api.SavePlanRequest{}))
	if err != nil {
		t.Fatalf("second SavePlan failed: %v", err)
	}
	if resp.Msg.PlanID == first {
		t.Error("saving twice must create two plans")
	}
}

func TestListPlans(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.signUp(t, "alice")
	bob := env.signUp(t, "bob")
	older := env.savePlan(t, alice)
	newer := env.savePlan(t, bob)

	resp, err := env.plans.ListPlans(ctx, req(alice, &api.ListPlansRequest{}))
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	plans := resp.Msg.Plans
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	if plans[0].PlanID != newer || plans[1].PlanID != older {
		t.Errorf("expected newest first, got %s, %s", plans[0].PlanID, plans[1].PlanID)
	}
	if plans[0].CanReview || !plans[1].CanReview {
		t.Error("only the owner may review")
	}
	if plans[1].Author != "alice" || plans[1].Mood != models.MoodCultural || plans[1].StartLocation != "Chinatown" {
		t.Errorf("unexpected card: %+v", plans[1])
	}
	want := "Chinatown Heritage Centre → Maxwell Food Centre → Gardens by the Bay"
	if plans[1].Steps != want {
		t.Errorf("steps: got %q, want %q", plans[1].Steps, want)
	}

	// Guests can browse but not act.
	resp, err = env.plans.ListPlans(ctx, req(env.newVisitor(), &api.ListPlansRequest{}))
	if err != nil {
		t.Fatalf("ListPlans as guest failed: %v", err)
	}
	for _, p := range resp.Msg.Plans {
		if p.CanReview || p.CanHost {
			t.Errorf("guest sees actions on %s", p.PlanID)
		}
	}
}

func TestAddReview(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.signUp(t, "alice")
	bob := env.signUp(t, "bob")
	planID := env.savePlan(t, alice)

	resp, err := env.plans.AddReview(ctx, req(alice, &api.AddReviewRequest{
		PlanID:     planID,
		PostMood:   models.MoodHappy,
		ReviewText: "Loved the chicken rice",
		Rating:     4,
	}))
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	review := resp.Msg.Plan.Review
	if review == nil {
		t.Fatal("expected review on card")
	}
	if review.Stars != "⭐⭐⭐⭐" || review.MoodChange != models.MoodCultural+" ➡️ "+models.MoodHappy {
		t.Errorf("unexpected review block: %+v", review)
	}

	// A later review replaces the earlier one.
	resp, err = env.plans.AddReview(ctx, req(alice, &api.AddReviewRequest{PlanID: planID, Rating: 5, ReviewText: "Even better"}))
	if err != nil {
		t.Fatalf("second AddReview failed: %v", err)
	}
	if resp.Msg.Plan.Review.Rating != 5 || resp.Msg.Plan.Review.MoodChange != "" {
		t.Errorf("review not replaced: %+v", resp.Msg.Plan.Review)
	}

	tests := []struct {
		name string
		v    *visitor
		msg  *api.AddReviewRequest
		want connect.Code
	}{
		{"not owner", bob, &api.AddReviewRequest{PlanID: planID, Rating: 3}, connect.CodePermissionDenied},
		{"guest", env.newVisitor(), &api.AddReviewRequest{PlanID: planID, Rating: 3}, connect.CodeUnauthenticated},
		{"rating too low", alice, &api.AddReviewRequest{PlanID: planID, Rating: 0}, connect.CodeInvalidArgument},
		{"rating too high", alice, &api.AddReviewRequest{PlanID: planID, Rating: 6}, connect.CodeInvalidArgument},
		{"unknown plan", alice, &api.AddReviewRequest{PlanID: "nope", Rating: 3}, connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.plans.AddReview(ctx, req(tt.v, tt.msg))
			if codeOf(err) != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGetAndLoadPlan(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	alice := env.signUp(t, "alice")
	planID := env.savePlan(t, alice)

	got, err := env.plans.GetPlan(ctx, req(env.newVisitor(), &api.GetPlanRequest{PlanID: planID}))
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if len(got.Msg.Stops) != 3 || got.Msg.Plan.StopCount != 3 {
		t.Errorf("expected 3 stops, got %d", len(got.Msg.Stops))
	}

	_, err = env.plans.GetPlan(ctx, req(alice, &api.GetPlanRequest{PlanID: "missing"}))
	if codeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}

	// Another visitor picks up the plan as their own working trip.
	other := env.newVisitor()
	loaded, err := env.trips.LoadPlan(ctx, req(other, &api.LoadPlanRequest{PlanID: planID}))
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	it := loaded.Msg.Itinerary
	if len(it.Cards) != 3 || it.StartLocation != "Chinatown" || it.Mood != models.MoodCultural {
		t.Errorf("unexpected loaded trip: %d cards from %q (%s)", len(it.Cards), it.StartLocation, it.Mood)
	}
	if it.Cards[0].Image != "https://images.example/chc.jpg" {
		t.Errorf("saved image lost: %q", it.Cards[0].Image)
	}

	_, err = env.trips.LoadPlan(ctx, req(other, &api.LoadPlanRequest{PlanID: "missing"}))
	if codeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}
