package service

import (
	"log/slog"
	"net/http"

	"github.com/mmynk/vibewalk/internal/session"
)

// CheckoutReturnPath is where the payment provider sends the buyer back.
const CheckoutReturnPath = "/checkout/return"

// CheckoutReturnHandler records the payment outcome as a one-shot notice on
// the buyer's session and redirects to the planner page.
func CheckoutReturnHandler(sessions *session.Store, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		id := q.Get("session")

		if st, ok := sessions.Get(id); ok {
			switch {
			case q.Get("success") == "true":
				st.SetNotice("success", noticePaid)
				logger.Info("Payment completed", "session", id)
			case q.Get("canceled") == "true":
				st.SetNotice("warning", noticeCanceled)
				logger.Info("Payment canceled", "session", id)
			}
		} else {
			logger.Warn("Checkout return for unknown session", "session", id)
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}
