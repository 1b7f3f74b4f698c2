// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/vibewalk/internal/models"
)

var (
	// ErrNotFound is returned when a plan or meetup does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned when inserting a user whose username exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNotOwner is returned when a plan is modified by someone other than its owner.
	ErrNotOwner = errors.New("plan belongs to another user")

	// ErrAlreadyJoined is returned when a user joins a meetup twice.
	ErrAlreadyJoined = errors.New("already joined")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a user. Returns ErrUsernameTaken on a duplicate username.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns nil, nil when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns nil, nil when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PlanStore persists saved itineraries and their reviews.
type PlanStore interface {
	// CreatePlan persists a new plan. plan.ID and plan.CreatedAt are populated by the store.
	CreatePlan(ctx context.Context, plan *models.Plan) error

	// GetPlan returns ErrNotFound when the plan does not exist.
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)

	// ListPlans returns all plans, newest first.
	ListPlans(ctx context.Context) ([]*models.Plan, error)

	// UpdatePlanReview overwrites the review fields of a plan owned by ownerID.
	// Returns ErrNotFound for an unknown plan and ErrNotOwner when ownerID differs.
	UpdatePlanReview(ctx context.Context, planID, ownerID string, review models.Review) error
}

// MeetupStore persists meetups and their participants.
type MeetupStore interface {
	// CreateMeetup persists a meetup with the host as its only participant.
	// Returns ErrNotFound when meetup.PlanID does not reference a plan.
	CreateMeetup(ctx context.Context, meetup *models.Meetup) error

	// GetMeetup returns ErrNotFound when the meetup does not exist.
	GetMeetup(ctx context.Context, meetupID string) (*models.Meetup, error)

	// AddMeetupParticipant atomically adds username to the meetup.
	// Returns ErrNotFound for an unknown meetup and ErrAlreadyJoined for a repeat join.
	AddMeetupParticipant(ctx context.Context, meetupID, username string) error

	// ListMeetups returns all meetups joined with their plan, newest first.
	ListMeetups(ctx context.Context) ([]*models.MeetupWithPlan, error)
}

// Store defines the full set of storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	PlanStore
	MeetupStore

	// Close releases any resources held by the store.
	Close() error
}
