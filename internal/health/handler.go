package health

import (
	"context"
	"net/http"
	"time"

	"seatbook/pkg/client"
	httputil "seatbook/pkg/http"
	"seatbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Handler serves liveness and readiness probes. Liveness is unconditional;
// readiness pings the database.
type Handler struct {
	client *client.Client
	log    *logger.Logger
}

func NewHandler(c *client.Client, log *logger.Logger) *Handler {
	return &Handler{client: c, log: log}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Warn("Readiness check failed", "error", err)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"mongo":  "down",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"mongo":  "up",
	})
}
