package handler

import (
	"encoding/json"
	"net/http"

	"seatbook/internal/auth"
	"seatbook/internal/interns/service"
	apperrors "seatbook/pkg/errors"
	httputil "seatbook/pkg/http"
	"seatbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type InternHandler struct {
	service service.InternService
	authmw  *auth.Middleware
	log     *logger.Logger
}

func NewInternHandler(svc service.InternService, authmw *auth.Middleware, log *logger.Logger) *InternHandler {
	return &InternHandler{service: svc, authmw: authmw, log: log}
}

func (h *InternHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/auth/signup", h.Signup)
	router.POST("/auth/login", h.Login)

	router.GET("/interns", h.authmw.Require(h.List))
	router.GET("/interns/:id", h.authmw.Require(h.GetByID))
}

func (h *InternHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input service.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	session, err := h.service.Signup(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, session)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *InternHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, session)
}

func (h *InternHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	intern, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, intern)
}

func (h *InternHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	interns, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, interns, total, limit, offset)
}
