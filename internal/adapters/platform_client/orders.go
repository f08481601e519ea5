package platform_client

import (
	"context"
	"net/http"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/pagination"
)

func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var resp OrderResponse
	found, err := c.call(ctx, "GetOrder", http.MethodGet, "/ecom/v1/orders/"+escape(orderID), nil, &resp)
	if err != nil || !found || resp.Order == nil {
		return nil, err
	}
	order := toOrder(*resp.Order)
	return &order, nil
}

// ListMemberOrders - заказы участника из токена, от новых к старым.
func (c *Client) ListMemberOrders(ctx context.Context, limit int, cursor *string) (*pagination.CursorPage[domain.Order], error) {
	req := OrderSearchRequest{CursorPaging: CursorPaging{Limit: limit, Cursor: cursor}}
	var resp OrderSearchResponse
	if _, err := c.call(ctx, "ListMemberOrders", http.MethodPost, "/ecom/v1/orders/search", req, &resp); err != nil {
		return nil, err
	}

	page := &pagination.CursorPage[domain.Order]{
		Items: make([]domain.Order, 0, len(resp.Orders)),
		Next:  nextCursor(resp.Metadata),
	}
	for _, dto := range resp.Orders {
		page.Items = append(page.Items, toOrder(dto))
	}
	return page, nil
}
