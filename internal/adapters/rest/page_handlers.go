package rest

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/pagination"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
)

// beginPage - новый рендер страницы: хуки и ленты прошлой страницы сессии уничтожаются.
func (h *Handlers) beginPage(r *http.Request) {
	if h.sessions == nil {
		return
	}
	if sessionID := contextkeys.SessionIDFromContext(r.Context()); sessionID != "" {
		h.sessions.Teardown(sessionID)
	}
}

// ProductPage обрабатывает GET /products/{slug}
func (h *Handlers) ProductPage(w http.ResponseWriter, r *http.Request) {
	h.beginPage(r)

	page, err := h.productPage.Execute(r.Context(), pathParam(r, "slug"))
	if err != nil {
		h.renderPageError(w, r, viewProduct, err)
		return
	}

	meta := PageMeta{Title: page.Product.Name + " | " + siteTitle, Description: page.Product.Description}
	if page.Product.Name == "" {
		meta.Title = "Product | " + siteTitle
	}
	if page.Product.MainImage != nil {
		meta.Image = page.Product.MainImage.URL
	}

	related := toProductResponses(page.Related)
	h.respondPage(w, viewProduct, http.StatusOK, PageResponse{
		View: viewProduct,
		Meta: meta,
		Data: ProductPageData{
			Product: toProductResponse(page.Product),
			Related: related,
			Reviews: toReviewsSection(page.Reviews),
		},
	})
}

// ProductByID обрабатывает GET /products/id/{id}: постоянный редирект на адрес по slug
// с сохранением query-строки.
func (h *Handlers) ProductByID(w http.ResponseWriter, r *http.Request) {
	slug, err := h.resolveProduct.Execute(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.beginPage(r)
		h.renderPageError(w, r, viewProduct, err)
		return
	}

	target := "/products/" + url.PathEscape(slug)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusPermanentRedirect)
}

// CollectionPage обрабатывает GET /collections/{slug}?page=N
func (h *Handlers) CollectionPage(w http.ResponseWriter, r *http.Request) {
	h.beginPage(r)

	pageNum, err := pagination.ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		h.renderPageError(w, r, viewCollection, err)
		return
	}

	page, err := h.collectionPage.Execute(r.Context(), pathParam(r, "slug"), pageNum)
	if err != nil {
		h.renderPageError(w, r, viewCollection, err)
		return
	}

	meta := PageMeta{Title: page.Collection.Name + " | " + siteTitle, Description: page.Collection.Description}
	if page.Collection.Banner != nil {
		meta.Image = page.Collection.Banner.URL
	}

	h.respondPage(w, viewCollection, http.StatusOK, PageResponse{
		View: viewCollection,
		Meta: meta,
		Data: CollectionPageData{
			Collection: toCollectionResponse(page.Collection),
			Products:   toProductGrid(page.Products),
		},
	})
}

// ShopPage обрабатывает GET /shop?q=&collection=&sort=&page=
func (h *Handlers) ShopPage(w http.ResponseWriter, r *http.Request) {
	h.beginPage(r)

	q := r.URL.Query()
	pageNum, err := pagination.ParsePage(q.Get("page"))
	if err != nil {
		h.renderPageError(w, r, viewShop, err)
		return
	}

	var collectionIDs []string
	for _, raw := range q["collection"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				collectionIDs = append(collectionIDs, id)
			}
		}
	}

	page, err := h.shopPage.Execute(r.Context(), usecases_port.ShopQuery{
		Query:         q.Get("q"),
		CollectionIDs: collectionIDs,
		Sort:          q.Get("sort"),
		Page:          pageNum,
	})
	if err != nil {
		h.renderPageError(w, r, viewShop, err)
		return
	}

	collections := make([]CollectionResponse, 0, len(page.Collections))
	for _, c := range page.Collections {
		collections = append(collections, toCollectionResponse(c))
	}

	h.respondPage(w, viewShop, http.StatusOK, PageResponse{
		View: viewShop,
		Meta: PageMeta{Title: "Shop | " + siteTitle},
		Data: ShopPageData{
			Collections: collections,
			Products:    toProductGrid(page.Products),
			Query:       page.Query.Query,
		},
	})
}

// CheckoutSuccess обрабатывает GET /checkout-success?orderId=
func (h *Handlers) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	h.beginPage(r)

	page, err := h.checkoutSuccess.Execute(r.Context(), r.URL.Query().Get("orderId"))
	if err != nil {
		h.renderPageError(w, r, viewCheckoutSuccess, err)
		return
	}

	resp := PageResponse{
		View:    viewCheckoutSuccess,
		Meta:    PageMeta{Title: "Checkout success | " + siteTitle},
		Message: "We received your order!",
		Data: CheckoutSuccessData{
			Order:       toOrderResponse(page.Order),
			ClearCart:   page.ClearCart,
			CartCleared: page.CartCleared,
		},
	}
	// ссылка на историю заказов есть только у залогиненного участника
	if page.Member != nil {
		resp.Links = []Link{{Label: "View all your orders", Href: "/profile"}}
	}

	h.respondPage(w, viewCheckoutSuccess, http.StatusOK, resp)
}

// ProfilePage обрабатывает GET /profile
func (h *Handlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	h.beginPage(r)

	page, err := h.profilePage.Execute(r.Context())
	if err != nil {
		h.renderPageError(w, r, viewProfile, err)
		return
	}

	contextkeys.LoggerFromContext(r.Context()).Debug("Profile page rendered", port.Fields{"member_id": page.Member.ID})

	h.respondPage(w, viewProfile, http.StatusOK, PageResponse{
		View: viewProfile,
		Meta: PageMeta{Title: "Profile | " + siteTitle, Description: "Your profile"},
		Data: ProfilePageData{Member: *toMemberResponse(&page.Member)},
	})
}
