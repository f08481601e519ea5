package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/contracts"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"
)

const sseKeepAlive = 15 * time.Second

// CurrentOrders обрабатывает GET /api/profile/orders
func (h *Handlers) CurrentOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	history, err := h.orderHistory.Current(ctx, contextkeys.SessionIDFromContext(ctx))
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Order history fetch failed", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "Error fetching orders")
		return
	}
	RespondWithJSON(w, http.StatusOK, toOrderHistoryResponse(history))
}

// NextOrders обрабатывает POST /api/profile/orders/next
func (h *Handlers) NextOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	history, err := h.orderHistory.Next(ctx, contextkeys.SessionIDFromContext(ctx))
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Order history next page failed", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "Error fetching orders")
		return
	}
	RespondWithJSON(w, http.StatusOK, toOrderHistoryResponse(history))
}

// ProductReviews обрабатывает GET /api/products/{id}/reviews?cursor=
func (h *Handlers) ProductReviews(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ProductReviews"})

	var cursor *string
	if raw := strings.TrimSpace(r.URL.Query().Get("cursor")); raw != "" {
		cursor = &raw
	}

	page, err := h.reviews.Execute(r.Context(), pathParam(r, "id"), cursor)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			WriteJSONError(w, http.StatusBadRequest, "Invalid product id")
			return
		}
		logger.Error("Reviews fetch failed", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "Error fetching reviews")
		return
	}
	RespondWithJSON(w, http.StatusOK, toReviewPageResponse(page))
}

// CartCheckout обрабатывает POST /api/checkout/cart
func (h *Handlers) CartCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	outcome, err := h.checkout.StartCartCheckout(ctx, contextkeys.SessionIDFromContext(ctx))
	resp := toMutationResponse(outcome)
	resp.RedirectURL = outcome.Value
	h.respondMutation(w, r, constants.MutationCartCheckout, resp, err)
}

// QuickBuy обрабатывает POST /api/checkout/quick-buy
func (h *Handlers) QuickBuy(w http.ResponseWriter, r *http.Request) {
	var req QuickBuyRequest
	if err := decodeValidated(r, h.validator, contracts.QuickBuyRequest, &req); err != nil {
		h.rejectBody(w, r, err)
		return
	}

	ctx := r.Context()
	outcome, err := h.checkout.QuickBuy(ctx, contextkeys.SessionIDFromContext(ctx), domain.QuickBuy{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Options:   req.Options,
	})
	resp := toMutationResponse(outcome)
	resp.RedirectURL = outcome.Value
	h.respondMutation(w, r, constants.MutationQuickBuy, resp, err)
}

// UpdateProfile обрабатывает PUT /api/profile
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateMemberRequest
	if err := decodeValidated(r, h.validator, contracts.UpdateMemberRequest, &req); err != nil {
		h.rejectBody(w, r, err)
		return
	}

	ctx := r.Context()
	outcome, err := h.updateMember.Execute(ctx, contextkeys.SessionIDFromContext(ctx), domain.MemberUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	resp := toMutationResponse(outcome)
	resp.Member = toMemberResponse(outcome.Value)
	h.respondMutation(w, r, constants.MutationUpdateMember, resp, err)
}

// CreateReview обрабатывает POST /api/products/{id}/reviews
func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := decodeValidated(r, h.validator, contracts.CreateReviewRequest, &req); err != nil {
		h.rejectBody(w, r, err)
		return
	}

	ctx := r.Context()
	outcome, err := h.createReview.Execute(ctx, contextkeys.SessionIDFromContext(ctx), domain.NewReview{
		ProductID: pathParam(r, "id"),
		Title:     req.Title,
		Body:      req.Body,
		Rating:    req.Rating,
	})
	resp := toMutationResponse(outcome)
	if outcome.Value != nil {
		review := toReviewResponse(*outcome.Value)
		resp.Review = &review
	}
	h.respondMutation(w, r, constants.MutationCreateReview, resp, err)
}

func (h *Handlers) rejectBody(w http.ResponseWriter, r *http.Request, err error) {
	contextkeys.LoggerFromContext(r.Context()).Warn("Rejected request body", port.Fields{"error": err.Error()})
	if errors.Is(err, errBodyTooLarge) {
		WriteJSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
}

// respondMutation переводит итог хука в HTTP. Ошибка платформы не раскрывается:
// клиент получает только статическое уведомление из итога.
func (h *Handlers) respondMutation(w http.ResponseWriter, r *http.Request, name string, resp MutationResponse, err error) {
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusOK, resp)
	case errors.Is(err, domain.ErrMutationPending):
		WriteJSONError(w, http.StatusConflict, "Mutation is already pending")
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, domain.ErrUnauthenticated):
		RespondWithJSON(w, http.StatusUnauthorized, resp)
	default:
		contextkeys.LoggerFromContext(r.Context()).Debug("Mutation responded with failure", port.Fields{"mutation": name})
		RespondWithJSON(w, http.StatusBadGateway, resp)
	}
}

// Notifications обрабатывает GET /api/notifications: SSE-поток уведомлений
// и событий обновления для всех вкладок сессии.
func (h *Handlers) Notifications(w http.ResponseWriter, r *http.Request) {
	sessionID := contextkeys.SessionIDFromContext(r.Context())
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Notifications"})

	flusher, ok := w.(http.Flusher)
	if !ok || h.notifications == nil {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.notifications.AddClient(sessionID)
	defer h.notifications.RemoveClient(sessionID, clientChan)

	logger.Info("Client subscribed to notifications", nil)

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case data := <-clientChan:
			if _, err := w.Write(data); err != nil {
				logger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// строки, начинающиеся с ':', браузер считает комментариями
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			logger.Info("Notifications client disconnected", nil)
			return

		case <-h.notifications.Done():
			logger.Info("Notifier stopped, closing SSE connection", nil)
			return
		}
	}
}

// Healthz обрабатывает GET /healthz
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound - общий ответ для неизвестных адресов.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		WriteJSONError(w, http.StatusNotFound, "Not found")
		return
	}
	h.respondPage(w, viewNotFound, http.StatusNotFound, notFoundView())
}
