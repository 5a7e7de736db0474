package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"seatbook/internal/auth"
	"seatbook/internal/holidays/service"
	apperrors "seatbook/pkg/errors"
	httputil "seatbook/pkg/http"
	"seatbook/pkg/logger"
	"seatbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type HolidayHandler struct {
	service service.HolidayService
	authmw  *auth.Middleware
	log     *logger.Logger
}

func NewHolidayHandler(svc service.HolidayService, authmw *auth.Middleware, log *logger.Logger) *HolidayHandler {
	return &HolidayHandler{service: svc, authmw: authmw, log: log}
}

func (h *HolidayHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/holidays", h.authmw.Require(h.Add))
	router.GET("/holidays", h.authmw.Require(h.List))
	router.DELETE("/holidays/:id", h.authmw.Require(h.Delete))
}

type addHolidayRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (h *HolidayHandler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req addHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	date, err := httputil.ParseDateParam("date", req.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	holiday, err := h.service.Add(r.Context(), &model.Holiday{
		Date:   date,
		Reason: req.Reason,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, holiday)
}

// List returns all holidays, or only those on/after as_of when given.
func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		holidays []*model.Holiday
		err      error
	)

	if s := r.URL.Query().Get("as_of"); s != "" {
		var asOf time.Time
		asOf, err = httputil.ParseDateParam("as_of", s)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		holidays, err = h.service.ListFrom(r.Context(), asOf)
	} else {
		holidays, err = h.service.List(r.Context())
	}

	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, holidays)
}

func (h *HolidayHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}
