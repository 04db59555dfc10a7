package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes checkout HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/checkout/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/{id}", h.getSession)
		r.Post("/{id}/clear", h.clearSession)

		r.Post("/{id}/items", h.addItem)
		r.Put("/{id}/items/{instance_id}/quantity", h.changeQuantity)
		r.Delete("/{id}/items/{instance_id}", h.removeItem)
		r.Post("/{id}/items/{instance_id}/extras", h.addExtra)
		r.Delete("/{id}/items/{instance_id}/extras/{extra_id}", h.removeExtra)
		r.Put("/{id}/items/{instance_id}/note", h.updateNote)
		r.Post("/{id}/items/{instance_id}/redeem", h.redeemItem)
		r.Post("/{id}/items/{instance_id}/unredeem", h.unredeemItem)

		r.Put("/{id}/order-type", h.setOrderType)
		r.Put("/{id}/discount", h.setDiscount)
		r.Put("/{id}/payment-method", h.setPaymentMethod)
		r.Put("/{id}/cash-tendered", h.setCashTendered)

		r.Post("/{id}/customer", h.attachCustomer)
		r.Delete("/{id}/customer", h.detachCustomer)
		r.Post("/{id}/tab", h.attachTab)
		r.Delete("/{id}/tab", h.detachTab)
		r.Post("/{id}/gift-card", h.applyGiftCard)
		r.Delete("/{id}/gift-card", h.removeGiftCard)

		r.Post("/{id}/charge", h.charge)
	})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	state, err := h.service.CreateSession(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, state)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) clearSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.ClearSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.AddItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	var req ChangeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.ChangeQuantity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "instance_id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "instance_id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) addExtra(w http.ResponseWriter, r *http.Request) {
	var req AddExtraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.AddExtra(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "instance_id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) removeExtra(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.RemoveExtra(r.Context(), chi.URLParam(r, "id"),
		chi.URLParam(r, "instance_id"), chi.URLParam(r, "extra_id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.UpdateNote(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "instance_id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) redeemItem(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.RedeemItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "instance_id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) unredeemItem(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.UnredeemItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "instance_id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) setOrderType(w http.ResponseWriter, r *http.Request) {
	var req SetOrderTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.SetOrderType(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) setDiscount(w http.ResponseWriter, r *http.Request) {
	var req SetDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.SetDiscount(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) setPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req SetPaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.SetPaymentMethod(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) setCashTendered(w http.ResponseWriter, r *http.Request) {
	var req SetCashTenderedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.SetCashTendered(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) attachCustomer(w http.ResponseWriter, r *http.Request) {
	var req AttachCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.AttachCustomer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) detachCustomer(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.DetachCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) attachTab(w http.ResponseWriter, r *http.Request) {
	var req AttachTabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	state, err := h.service.AttachTab(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) detachTab(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.DetachTab(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) applyGiftCard(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.ApplyGiftCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) removeGiftCard(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.RemoveGiftCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, state)
}

func (h *Handler) charge(w http.ResponseWriter, r *http.Request) {
	recorded, err := h.service.Charge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, recorded)
}

func respondErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, ErrSessionNotFound), strings.Contains(msg, "not found"):
		code = http.StatusNotFound
	case strings.Contains(msg, "invalid"), strings.Contains(msg, "required"):
		code = http.StatusBadRequest
	case strings.Contains(msg, "not completable"), strings.Contains(msg, "empty cart"), strings.Contains(msg, "not an extra"):
		code = http.StatusUnprocessableEntity
	}
	respond(w, code, map[string]string{"error": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
