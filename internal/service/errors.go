package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/auth"
	"github.com/mmynk/vibewalk/internal/middleware"
	"github.com/mmynk/vibewalk/internal/session"
	"github.com/mmynk/vibewalk/internal/storage"
	"github.com/mmynk/vibewalk/internal/view"
)

var (
	errNoSession = errors.New("no session attached to request")
	errNoRoute   = errors.New("no itinerary yet, generate or load one first")
)

// storageError maps store sentinels to Connect codes.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrNotOwner):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, storage.ErrAlreadyJoined), errors.Is(err, storage.ErrUsernameTaken):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// requireUser returns the caller's identity or an Unauthenticated error.
func requireUser(ctx context.Context) (view.Viewer, error) {
	v := viewerFrom(ctx)
	if !v.LoggedIn() {
		return v, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return v, nil
}

func viewerFrom(ctx context.Context) view.Viewer {
	return view.Viewer{
		UserID:   middleware.GetUserID(ctx),
		Username: middleware.GetUsername(ctx),
	}
}

func currentSession(ctx context.Context) (string, *session.State, error) {
	id, st, ok := session.FromContext(ctx)
	if !ok {
		return "", nil, connect.NewError(connect.CodeInternal, errNoSession)
	}
	return id, st, nil
}
