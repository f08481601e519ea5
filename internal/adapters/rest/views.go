package rest

import (
	"errors"
	"net/http"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"
)

const siteTitle = "Shop"

var homeLink = Link{Label: "Go home", Href: "/"}

func notFoundView() PageResponse {
	return PageResponse{
		View:    viewNotFound,
		Meta:    PageMeta{Title: "Not found | " + siteTitle},
		Message: "This page could not be found.",
		Links:   []Link{homeLink},
	}
}

// errorView - обобщенное деградированное представление, без деталей ошибки.
func errorView() PageResponse {
	return PageResponse{
		View:    viewError,
		Meta:    PageMeta{Title: siteTitle},
		Message: "Something went wrong",
		Links:   []Link{homeLink},
	}
}

func loginRequiredView() PageResponse {
	return PageResponse{
		View:    viewLoginRequired,
		Meta:    PageMeta{Title: "Profile | " + siteTitle},
		Message: "Please log in to view this page",
		Links:   []Link{homeLink},
	}
}

// renderPageError - граница страницы: ErrNotFound -> 404, ErrUnauthenticated -> 401,
// остальное логируется и превращается в общий экран ошибки со статусом 200.
func (h *Handlers) renderPageError(w http.ResponseWriter, r *http.Request, page string, err error) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"page": page})

	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Info("Page not found", port.Fields{"reason": err.Error()})
		h.respondPage(w, page, http.StatusNotFound, notFoundView())
	case errors.Is(err, domain.ErrUnauthenticated):
		h.respondPage(w, page, http.StatusUnauthorized, loginRequiredView())
	default:
		logger.Error("Page render failed", err, nil)
		h.respondPage(w, page, http.StatusOK, errorView())
	}
}

func (h *Handlers) respondPage(w http.ResponseWriter, page string, status int, view PageResponse) {
	if h.pages != nil {
		h.pages.PageRendered(page, view.View)
	}
	RespondWithJSON(w, status, view)
}
