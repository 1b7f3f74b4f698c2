package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/api"
	"github.com/mmynk/vibewalk/internal/models"
	"github.com/mmynk/vibewalk/internal/storage"
	"github.com/mmynk/vibewalk/internal/view"
)

// MeetupService implements the MeetupService RPC interface: group walks
// organized around saved plans.
type MeetupService struct {
	meetups storage.MeetupStore
	logger  *slog.Logger
}

// NewMeetupService creates a new MeetupService with the given storage backend.
func NewMeetupService(meetups storage.MeetupStore, logger *slog.Logger) *MeetupService {
	return &MeetupService{meetups: meetups, logger: logger}
}

// CreateMeetup schedules a walk on a plan with the caller as host.
func (s *MeetupService) CreateMeetup(ctx context.Context, req *connect.Request[api.CreateMeetupRequest]) (*connect.Response[api.CreateMeetupResponse], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.PlanID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("plan_id is required"))
	}
	meetupTime := strings.TrimSpace(req.Msg.MeetupTime)
	if meetupTime == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("meetup_time is required"))
	}

	meetup := &models.Meetup{
		PlanID:       req.Msg.PlanID,
		HostID:       user.UserID,
		HostUsername: user.Username,
		MeetupTime:   meetupTime,
	}
	if err := s.meetups.CreateMeetup(ctx, meetup); err != nil {
		s.logger.Warn("Failed to create meetup", "plan_id", req.Msg.PlanID, "error", err)
		return nil, storageError(err)
	}

	s.logger.Info("Meetup created", "meetup_id", meetup.ID, "plan_id", meetup.PlanID, "host", user.Username)
	return connect.NewResponse(&api.CreateMeetupResponse{MeetupID: meetup.ID}), nil
}

// JoinMeetup adds the caller to a meetup. Joining twice is rejected with
// AlreadyExists and changes nothing.
func (s *MeetupService) JoinMeetup(ctx context.Context, req *connect.Request[api.JoinMeetupRequest]) (*connect.Response[api.JoinMeetupResponse], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.meetups.AddMeetupParticipant(ctx, req.Msg.MeetupID, user.Username); err != nil {
		if !errors.Is(err, storage.ErrAlreadyJoined) {
			s.logger.Warn("Failed to join meetup", "meetup_id", req.Msg.MeetupID, "error", err)
		}
		return nil, storageError(err)
	}

	meetup, err := s.meetups.GetMeetup(ctx, req.Msg.MeetupID)
	if err != nil {
		return nil, storageError(err)
	}

	s.logger.Info("Meetup joined", "meetup_id", meetup.ID, "username", user.Username, "participants", len(meetup.Participants))
	return connect.NewResponse(&api.JoinMeetupResponse{MeetupID: meetup.ID, Participants: meetup.Participants}), nil
}

// ListMeetups returns every meetup with its plan, newest first.
func (s *MeetupService) ListMeetups(ctx context.Context, req *connect.Request[api.ListMeetupsRequest]) (*connect.Response[api.ListMeetupsResponse], error) {
	meetups, err := s.meetups.ListMeetups(ctx)
	if err != nil {
		s.logger.Error("Failed to list meetups", "error", err)
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.ListMeetupsResponse{Meetups: view.BuildMeetupBoard(meetups, viewerFrom(ctx))}), nil
}
