package middleware

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/vibewalk/internal/session"
)

// SessionInterceptor attaches the caller's working session to the context.
// The session ID is read from the X-Session-ID header, a new session is
// started when it is missing or unknown, and the ID in use is echoed back.
func SessionInterceptor(store *session.Store) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			requested := req.Header().Get(session.HeaderName)
			_, known := store.Get(requested)
			id, state := store.Resolve(requested)

			ctx = session.NewContext(ctx, id, state)
			if !known {
				ctx = session.MarkIssued(ctx)
			}

			// Handlers return a typed nil response with an error, so the
			// response must not be touched on failure.
			resp, err := next(ctx, req)
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					connectErr.Meta().Set(session.HeaderName, id)
				}
				return nil, err
			}
			resp.Header().Set(session.HeaderName, id)
			return resp, nil
		}
	}
}
