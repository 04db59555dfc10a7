package staff

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/api/v1/staff/register", h.registerCashier)
	router.Get("/api/v1/staff/{id}", h.getCashier)
}

func (h *Handler) registerCashier(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
		Role        string `json:"role,omitempty"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cashier, err := h.service.RegisterCashier(r.Context(), req.Email, req.Password, req.DisplayName, Role(req.Role))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(cashier)
}

func (h *Handler) getCashier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cashier, err := h.service.GetCashier(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cashier)
}
