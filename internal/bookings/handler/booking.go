package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"seatbook/internal/auth"
	"seatbook/internal/bookings/service"
	apperrors "seatbook/pkg/errors"
	httputil "seatbook/pkg/http"
	"seatbook/pkg/logger"
	"seatbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	authmw  *auth.Middleware
	log     *logger.Logger
}

func NewBookingHandler(svc service.BookingService, authmw *auth.Middleware, log *logger.Logger) *BookingHandler {
	return &BookingHandler{service: svc, authmw: authmw, log: log}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.authmw.Require(h.Create))
	router.GET("/bookings", h.authmw.Require(h.List))
	router.GET("/bookings/:id", h.authmw.Require(h.GetByID))
	router.POST("/bookings/:id/confirm", h.authmw.Require(h.Confirm))
	router.PUT("/bookings/:id/attendance", h.authmw.Require(h.SetAttendance))
	router.DELETE("/bookings/:id", h.authmw.Require(h.Cancel))

	router.GET("/availability", h.authmw.Require(h.CheckAvailability))

	router.GET("/interns/:id/bookings", h.authmw.Require(h.ListByIntern))
	router.GET("/interns/:id/attendance", h.authmw.Require(h.AttendanceRecords))
}

type createBookingRequest struct {
	Date           string `json:"date"`
	SeatNumber     int    `json:"seat_number"`
	SpecialRequest string `json:"special_request,omitempty"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	date, err := httputil.ParseDateParam("date", req.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// Ownership comes from the session token only. A client cannot book on
	// behalf of another intern by naming them in the body.
	booking := &model.Booking{
		InternID:       auth.InternID(r),
		Date:           date,
		SeatNumber:     req.SeatNumber,
		SpecialRequest: req.SpecialRequest,
	}

	created, err := h.service.Create(r.Context(), booking)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, created)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var date *time.Time
	if s := r.URL.Query().Get("date"); s != "" {
		parsed, err := httputil.ParseDateParam("date", s)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		date = &parsed
	}

	bookings, total, err := h.service.List(r.Context(), date, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, bookings, total, limit, offset)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.Confirm(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, booking)
}

type attendanceRequest struct {
	Attendance model.Attendance `json:"attendance"`
}

func (h *BookingHandler) SetAttendance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	booking, err := h.service.SetAttendance(r.Context(), ps.ByName("id"), req.Attendance)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Cancel(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	date, err := httputil.ParseDateParam("date", query.Get("date"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	seatStr := query.Get("seat_number")
	if seatStr == "" {
		httputil.WriteError(w, apperrors.InvalidInput("seat_number parameter is required"))
		return
	}
	seatNumber, convErr := strconv.Atoi(seatStr)
	if convErr != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid seat_number parameter: "+seatStr))
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), date, seatNumber)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *BookingHandler) ListByIntern(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	bookings, total, err := h.service.ListByIntern(r.Context(), ps.ByName("id"), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, bookings, total, limit, offset)
}

func (h *BookingHandler) AttendanceRecords(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	var start, end *time.Time
	if query.Get("start") != "" || query.Get("end") != "" {
		s, err := httputil.ParseDateParam("start", query.Get("start"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		e, err := httputil.ParseDateParam("end", query.Get("end"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		start, end = &s, &e
	}

	bookings, err := h.service.AttendanceRecords(r.Context(), ps.ByName("id"), start, end)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, bookings)
}
