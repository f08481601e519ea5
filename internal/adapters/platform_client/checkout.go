package platform_client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/beyondeth/shop/internal/core/domain"
)

func (c *Client) GetCheckoutURLForCurrentCart(ctx context.Context) (string, error) {
	var checkout CheckoutResponse
	found, err := c.call(ctx, "CreateCheckoutFromCart", http.MethodPost, "/ecom/v1/checkouts/current-cart", struct {
		ChannelType string `json:"channelType"`
	}{ChannelType: "WEB"}, &checkout)
	if err != nil {
		return "", err
	}
	if !found || checkout.CheckoutID == "" {
		return "", errors.New("current cart is empty or missing")
	}
	return c.redirectSession(ctx, checkout.CheckoutID)
}

func (c *Client) GetCheckoutURLForProduct(ctx context.Context, purchase domain.QuickBuy) (string, error) {
	req := CreateCheckoutRequest{
		ChannelType: "WEB",
		LineItems: []CheckoutLineItemDTO{{
			Quantity: purchase.Quantity,
			CatalogReference: CatalogReferenceDTO{
				CatalogItemID: purchase.ProductID,
				Options:       purchase.Options,
			},
		}},
	}
	var checkout CheckoutResponse
	if _, err := c.call(ctx, "CreateCheckout", http.MethodPost, "/ecom/v1/checkouts", req, &checkout); err != nil {
		return "", err
	}
	if checkout.CheckoutID == "" {
		return "", fmt.Errorf("platform did not create checkout for product %s", purchase.ProductID)
	}
	return c.redirectSession(ctx, checkout.CheckoutID)
}

// redirectSession создает сессию оформления на стороне платформы. После оплаты
// покупатель вернется на /checkout-success?orderId=... витрины.
func (c *Client) redirectSession(ctx context.Context, checkoutID string) (string, error) {
	var req RedirectSessionRequest
	req.EcomCheckout.CheckoutID = checkoutID
	req.Callbacks.PostFlowURL = c.storeBaseURL
	req.Callbacks.ThankYouPageURL = c.storeBaseURL + "/checkout-success"

	var resp RedirectSessionResponse
	if _, err := c.call(ctx, "CreateRedirectSession", http.MethodPost, "/ecom/v1/redirect-sessions", req, &resp); err != nil {
		return "", err
	}
	if resp.RedirectSession.FullURL == "" {
		return "", errors.New("platform returned empty redirect url")
	}
	return resp.RedirectSession.FullURL, nil
}

func (c *Client) ClearCurrentCart(ctx context.Context) error {
	_, err := c.call(ctx, "ClearCurrentCart", http.MethodDelete, "/ecom/v1/carts/current", nil, nil)
	return err
}
