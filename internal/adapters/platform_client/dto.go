package platform_client

import "time"

type ImageDTO struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type MediaDTO struct {
	MainMedia *struct {
		Image *ImageDTO `json:"image"`
	} `json:"mainMedia"`
}

type MoneyDTO struct {
	Amount          string `json:"amount"`
	FormattedAmount string `json:"formattedAmount"`
}

type ProductDTO struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Ribbon      string `json:"ribbon"`
	PriceData   *struct {
		Price     float64 `json:"price"`
		Currency  string  `json:"currency"`
		Formatted struct {
			Price string `json:"price"`
		} `json:"formatted"`
	} `json:"priceData"`
	Stock *struct {
		InStock bool `json:"inStock"`
	} `json:"stock"`
	Media         *MediaDTO `json:"media"`
	CollectionIDs []string  `json:"collectionIds"`
}

type ProductResponse struct {
	Product *ProductDTO `json:"product"`
}

type ProductsResponse struct {
	Items      []ProductDTO `json:"items"`
	TotalCount *int         `json:"totalCount"`
}

type ProductQueryRequest struct {
	Filter ProductQueryFilter `json:"filter"`
	Sort   string             `json:"sort,omitempty"`
	Paging OffsetPaging       `json:"paging"`
}

type ProductQueryFilter struct {
	CollectionIDs []string `json:"collectionIds,omitempty"`
	Search        string   `json:"search,omitempty"`
}

type OffsetPaging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type CursorPaging struct {
	Limit  int     `json:"limit"`
	Cursor *string `json:"cursor,omitempty"`
}

type PagingMetadata struct {
	Cursors struct {
		Next *string `json:"next"`
	} `json:"cursors"`
}

type CollectionDTO struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Media       *MediaDTO `json:"media"`
}

type CollectionResponse struct {
	Collection *CollectionDTO `json:"collection"`
}

type CollectionsResponse struct {
	Collections []CollectionDTO `json:"collections"`
}

type LineItemDTO struct {
	CatalogItemID string    `json:"catalogItemId"`
	ProductName   string    `json:"productName"`
	Quantity      int       `json:"quantity"`
	Price         MoneyDTO  `json:"price"`
	Image         *ImageDTO `json:"image"`
}

type OrderDTO struct {
	ID           string     `json:"id"`
	Number       string     `json:"number"`
	Status       string     `json:"status"`
	CreatedDate  *time.Time `json:"createdDate"`
	PriceSummary struct {
		Total MoneyDTO `json:"total"`
	} `json:"priceSummary"`
	LineItems []LineItemDTO `json:"lineItems"`
	BuyerInfo struct {
		Email string `json:"email"`
	} `json:"buyerInfo"`
}

type OrderResponse struct {
	Order *OrderDTO `json:"order"`
}

type OrderSearchRequest struct {
	CursorPaging CursorPaging `json:"cursorPaging"`
}

type OrderSearchResponse struct {
	Orders   []OrderDTO     `json:"orders"`
	Metadata PagingMetadata `json:"metadata"`
}

type MemberDTO struct {
	ID         string `json:"id"`
	ContactID  string `json:"contactId"`
	LoginEmail string `json:"loginEmail"`
	Profile    struct {
		Nickname string `json:"nickname"`
	} `json:"profile"`
	Contact struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"contact"`
}

type MemberResponse struct {
	Member *MemberDTO `json:"member"`
}

type UpdateMemberRequest struct {
	Member struct {
		Contact struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		} `json:"contact"`
	} `json:"member"`
}

type ReviewContentDTO struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

type ReviewDTO struct {
	ID       string `json:"id"`
	EntityID string `json:"entityId"`
	Author   struct {
		ContactID  string `json:"contactId"`
		AuthorName string `json:"authorName"`
	} `json:"author"`
	Content     ReviewContentDTO `json:"content"`
	CreatedDate time.Time        `json:"createdDate"`
}

type ReviewQueryRequest struct {
	Query struct {
		Filter       map[string]string `json:"filter"`
		Sort         []ReviewSort      `json:"sort,omitempty"`
		CursorPaging CursorPaging      `json:"cursorPaging"`
	} `json:"query"`
}

type ReviewSort struct {
	FieldName string `json:"fieldName"`
	Order     string `json:"order"`
}

type ReviewQueryResponse struct {
	Items          []ReviewDTO    `json:"items"`
	PagingMetadata PagingMetadata `json:"pagingMetadata"`
}

type CreateReviewRequest struct {
	Review struct {
		EntityID  string           `json:"entityId"`
		Namespace string           `json:"namespace"`
		Content   ReviewContentDTO `json:"content"`
	} `json:"review"`
}

type ReviewResponse struct {
	Review *ReviewDTO `json:"review"`
}

type CatalogReferenceDTO struct {
	CatalogItemID string            `json:"catalogItemId"`
	Options       map[string]string `json:"options,omitempty"`
}

type CheckoutLineItemDTO struct {
	Quantity         int                 `json:"quantity"`
	CatalogReference CatalogReferenceDTO `json:"catalogReference"`
}

type CreateCheckoutRequest struct {
	LineItems   []CheckoutLineItemDTO `json:"lineItems"`
	ChannelType string                `json:"channelType"`
}

type CheckoutResponse struct {
	CheckoutID string `json:"checkoutId"`
}

type RedirectSessionRequest struct {
	EcomCheckout struct {
		CheckoutID string `json:"checkoutId"`
	} `json:"ecomCheckout"`
	Callbacks struct {
		PostFlowURL     string `json:"postFlowUrl"`
		ThankYouPageURL string `json:"thankYouPageUrl"`
	} `json:"callbacks"`
}

type RedirectSessionResponse struct {
	RedirectSession struct {
		FullURL string `json:"fullUrl"`
	} `json:"redirectSession"`
}
