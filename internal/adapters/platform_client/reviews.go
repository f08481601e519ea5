package platform_client

import (
	"context"
	"errors"
	"net/http"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/pagination"
)

const reviewsNamespace = "stores"

func (c *Client) QueryReviews(ctx context.Context, filter domain.ReviewFilter, limit int, cursor *string) (*pagination.CursorPage[domain.Review], error) {
	var req ReviewQueryRequest
	req.Query.Filter = map[string]string{"entityId": filter.ProductID}
	if filter.ContactID != "" {
		req.Query.Filter["author.contactId"] = filter.ContactID
	}
	req.Query.Sort = []ReviewSort{{FieldName: "publishedDate", Order: "DESC"}}
	req.Query.CursorPaging = CursorPaging{Limit: limit, Cursor: cursor}

	var resp ReviewQueryResponse
	if _, err := c.call(ctx, "QueryReviews", http.MethodPost, "/reviews/v1/reviews/query", req, &resp); err != nil {
		return nil, err
	}
	return toReviewPage(resp), nil
}

func (c *Client) CreateReview(ctx context.Context, review domain.NewReview) (*domain.Review, error) {
	var req CreateReviewRequest
	req.Review.EntityID = review.ProductID
	req.Review.Namespace = reviewsNamespace
	req.Review.Content = ReviewContentDTO{Title: review.Title, Body: review.Body, Rating: review.Rating}

	var resp ReviewResponse
	found, err := c.call(ctx, "CreateReview", http.MethodPost, "/reviews/v1/reviews", req, &resp)
	if err != nil {
		return nil, err
	}
	if !found || resp.Review == nil {
		return nil, errors.New("platform did not return created review")
	}
	created := toReview(*resp.Review)
	return &created, nil
}
