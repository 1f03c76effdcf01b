package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// UserHeader carries the opaque id of the calling user.
// Who the user is gets verified upstream, this service only scopes data by it.
const UserHeader = "X-Gym-User"

type userIDKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the user id set by RequireUser, or "".
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}

// RequireUser rejects requests to user scoped paths without a user header.
func RequireUser(scopedPrefixes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || !isScoped(r.URL.Path, scopedPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.user")
			defer span.End()

			userID := strings.TrimSpace(r.Header.Get(UserHeader))
			if userID == "" {
				log.Tracef("[missing user] unauthorized %s => %s", pkg.ClientIP(r), r.URL.Path)
				http.Error(w, "missing user", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-user")
				return
			}

			span.SetAttributes(attribute.String("user.id", userID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}

func isScoped(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
