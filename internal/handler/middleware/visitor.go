package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// VisitorCookie carries the owner id of the visitor's storage.
const VisitorCookie = "visitor_id"

type visitorKey struct{}

type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// Visitor resolves the visitor id from its cookie, issuing a new one when it is missing or malformed.
func Visitor(opts CookieOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := visitorFromCookie(r)
			if !ok {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(opts.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), id)))
		})
	}
}

func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// VisitorID returns "" outside of the Visitor middleware.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

func visitorFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(VisitorCookie)
	if err != nil {
		return "", false
	}

	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}

	return id.String(), true
}
