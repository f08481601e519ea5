package rest

import (
	"time"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/pagination"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
)

// Имена представлений, которые получает клиент в поле "view".
const (
	viewProduct         = "product"
	viewCollection      = "collection"
	viewShop            = "shop"
	viewCheckoutSuccess = "checkout_success"
	viewProfile         = "profile"
	viewNotFound        = "not_found"
	viewError           = "error"
	viewLoginRequired   = "login_required"
)

// PageMeta - заголовок, описание и картинка страницы для <head>.
type PageMeta struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// PageResponse - общий конверт всех страниц.
type PageResponse struct {
	View    string   `json:"view"`
	Meta    PageMeta `json:"meta"`
	Message string   `json:"message,omitempty"`
	Links   []Link   `json:"links,omitempty"`
	Data    any      `json:"data,omitempty"`
}

type ImageResponse struct {
	URL     string `json:"url"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	AltText string `json:"altText,omitempty"`
}

type ProductResponse struct {
	ID             string         `json:"id"`
	Slug           string         `json:"slug"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency,omitempty"`
	FormattedPrice string         `json:"formattedPrice,omitempty"`
	Ribbon         string         `json:"ribbon,omitempty"`
	InStock        bool           `json:"inStock"`
	MainImage      *ImageResponse `json:"mainImage,omitempty"`
	Href           string         `json:"href"`
}

type CollectionResponse struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Banner      *ImageResponse `json:"banner,omitempty"`
	Href        string         `json:"href"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Limit      int `json:"limit"`
}

type ProductGridResponse struct {
	Items      []ProductResponse  `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

type MemberResponse struct {
	ID         string `json:"id"`
	LoginEmail string `json:"loginEmail,omitempty"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Nickname   string `json:"nickname,omitempty"`
}

type ReviewResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName,omitempty"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body,omitempty"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReviewPageResponse struct {
	Items      []ReviewResponse `json:"items"`
	NextCursor *string          `json:"nextCursor"`
}

type ReviewsSectionResponse struct {
	Available         bool                `json:"available"`
	Message           string              `json:"message,omitempty"`
	LoggedIn          bool                `json:"loggedIn"`
	HasExistingReview bool                `json:"hasExistingReview"`
	Reviews           *ReviewPageResponse `json:"reviews,omitempty"`
}

type ProductPageData struct {
	Product ProductResponse        `json:"product"`
	Related []ProductResponse      `json:"related"`
	Reviews ReviewsSectionResponse `json:"reviews"`
}

type CollectionPageData struct {
	Collection CollectionResponse  `json:"collection"`
	Products   ProductGridResponse `json:"products"`
}

type ShopPageData struct {
	Collections []CollectionResponse `json:"collections"`
	Products    ProductGridResponse  `json:"products"`
	Query       string               `json:"query,omitempty"`
}

type LineItemResponse struct {
	ProductID      string         `json:"productId,omitempty"`
	Name           string         `json:"name"`
	Quantity       int            `json:"quantity"`
	FormattedPrice string         `json:"formattedPrice,omitempty"`
	Image          *ImageResponse `json:"image,omitempty"`
}

type OrderResponse struct {
	ID             string             `json:"id"`
	Number         string             `json:"number"`
	Status         string             `json:"status,omitempty"`
	FormattedTotal string             `json:"formattedTotal,omitempty"`
	CreatedAt      *time.Time         `json:"createdAt,omitempty"`
	BuyerEmail     string             `json:"buyerEmail,omitempty"`
	LineItems      []LineItemResponse `json:"lineItems"`
}

type CheckoutSuccessData struct {
	Order       OrderResponse `json:"order"`
	ClearCart   bool          `json:"clearCart"`
	CartCleared bool          `json:"cartCleared"`
}

type ProfilePageData struct {
	Member MemberResponse `json:"member"`
}

type OrderHistoryResponse struct {
	Orders  []OrderResponse `json:"orders"`
	HasNext bool            `json:"hasNext"`
}

// MutationResponse - итог вызова хука мутации.
type MutationResponse struct {
	State          string               `json:"state"`
	Notification   *domain.Notification `json:"notification,omitempty"`
	RefreshAfterMs int64                `json:"refreshAfterMs,omitempty"`
	RedirectURL    string               `json:"redirectUrl,omitempty"`
	Member         *MemberResponse      `json:"member,omitempty"`
	Review         *ReviewResponse      `json:"review,omitempty"`
}

// Тела запросов мутаций. Формат закреплен JSON-схемами в schemas/requests.
type QuickBuyRequest struct {
	ProductID string            `json:"productId"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options"`
}

type UpdateMemberRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type CreateReviewRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

func toImageResponse(img *domain.Image) *ImageResponse {
	if img == nil || img.URL == "" {
		return nil
	}
	return &ImageResponse{URL: img.URL, Width: img.Width, Height: img.Height, AltText: img.AltText}
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Slug:           p.Slug,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Currency:       p.Currency,
		FormattedPrice: p.FormattedPrice,
		Ribbon:         p.Ribbon,
		InStock:        p.InStock,
		MainImage:      toImageResponse(p.MainImage),
		Href:           "/products/" + p.Slug,
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toCollectionResponse(c domain.Collection) CollectionResponse {
	return CollectionResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		Banner:      toImageResponse(c.Banner),
		Href:        "/collections/" + c.Slug,
	}
}

func toProductGrid(page *pagination.OffsetPage[domain.Product]) ProductGridResponse {
	if page == nil {
		return ProductGridResponse{Items: []ProductResponse{}, Pagination: PaginationResponse{Page: 1, TotalPages: 1}}
	}
	return ProductGridResponse{
		Items: toProductResponses(page.Items),
		Pagination: PaginationResponse{
			Page:       page.Page,
			TotalPages: page.EffectiveTotalPages(),
			Limit:      page.Limit,
		},
	}
}

func toMemberResponse(m *domain.Member) *MemberResponse {
	if m == nil {
		return nil
	}
	return &MemberResponse{
		ID:         m.ID,
		LoginEmail: m.LoginEmail,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Nickname:   m.Nickname,
	}
}

func toReviewResponse(r domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		AuthorName: r.AuthorName,
		Title:      r.Title,
		Body:       r.Body,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
	}
}

func toReviewPageResponse(page *pagination.CursorPage[domain.Review]) *ReviewPageResponse {
	resp := &ReviewPageResponse{Items: []ReviewResponse{}}
	if page == nil {
		return resp
	}
	for _, r := range page.Items {
		resp.Items = append(resp.Items, toReviewResponse(r))
	}
	if page.HasNext() {
		resp.NextCursor = page.Next
	}
	return resp
}

func toReviewsSection(section usecases_port.ReviewsSection) ReviewsSectionResponse {
	if section.Unavailable {
		return ReviewsSectionResponse{Message: "Unable to load reviews at this time"}
	}
	return ReviewsSectionResponse{
		Available:         true,
		LoggedIn:          section.Member != nil,
		HasExistingReview: section.HasExistingReview,
		Reviews:           toReviewPageResponse(section.Reviews),
	}
}

func toOrderResponse(o domain.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, LineItemResponse{
			ProductID:      li.ProductID,
			Name:           li.Name,
			Quantity:       li.Quantity,
			FormattedPrice: li.FormattedPrice,
			Image:          toImageResponse(li.Image),
		})
	}
	return OrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		Status:         o.Status,
		FormattedTotal: o.FormattedTotal,
		CreatedAt:      o.CreatedAt,
		BuyerEmail:     o.BuyerEmail,
		LineItems:      items,
	}
}

func toOrderHistoryResponse(h *usecases_port.OrderHistory) OrderHistoryResponse {
	resp := OrderHistoryResponse{Orders: []OrderResponse{}}
	if h == nil {
		return resp
	}
	for _, o := range h.Orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}
	resp.HasNext = h.HasNext
	return resp
}

func toMutationResponse[Out any](outcome mutation.Outcome[Out]) MutationResponse {
	return MutationResponse{
		State:          outcome.State.String(),
		Notification:   outcome.Notification,
		RefreshAfterMs: outcome.RefreshAfter.Milliseconds(),
	}
}
