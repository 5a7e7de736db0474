package auth

import (
	"context"
	"net/http"
	httputil "seatbook/pkg/http"
	"seatbook/pkg/logger"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const internIDKey contextKey = "intern_id"

// Middleware authenticates requests with a Bearer token and makes the
// intern identity available to handlers, which pass it explicitly into the
// service layer.
type Middleware struct {
	secret string
	log    *logger.Logger
}

func NewMiddleware(secret string, log *logger.Logger) *Middleware {
	return &Middleware{secret: secret, log: log}
}

// Require wraps a route and rejects requests without a valid session token.
func (m *Middleware) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := extractBearerToken(r)
		if token == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
				Error: "Missing or malformed Authorization header",
			})
			return
		}

		claims, err := Parse(token, m.secret)
		if err != nil {
			m.log.Warn("Rejected invalid session token", "path", r.URL.Path, "error", err)
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
				Error: "Invalid or expired session token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), internIDKey, claims.Subject)
		next(w, r.WithContext(ctx), ps)
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// InternID returns the authenticated intern's ID for the request, or empty
// if the route was not wrapped with Require.
func InternID(r *http.Request) string {
	if v := r.Context().Value(internIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
