package platform_client

import (
	"context"
	"net/http"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
)

// GetLoggedInMember возвращает nil для гостя: без токена платформа не вызывается,
// а отвергнутый токен трактуется как отсутствие входа.
func (c *Client) GetLoggedInMember(ctx context.Context) (*domain.Member, error) {
	if contextkeys.MemberTokenFromContext(ctx) == "" {
		return nil, nil
	}

	var resp MemberResponse
	found, err := c.call(ctx, "GetLoggedInMember", http.MethodGet, "/members/v1/members/my", nil, &resp)
	if IsUnauthorized(err) {
		return nil, nil
	}
	if err != nil || !found || resp.Member == nil {
		return nil, err
	}
	member := toMember(*resp.Member)
	return &member, nil
}

func (c *Client) UpdateMember(ctx context.Context, memberID string, update domain.MemberUpdate) (*domain.Member, error) {
	var req UpdateMemberRequest
	req.Member.Contact.FirstName = update.FirstName
	req.Member.Contact.LastName = update.LastName

	var resp MemberResponse
	found, err := c.call(ctx, "UpdateMember", http.MethodPatch, "/members/v1/members/"+escape(memberID), req, &resp)
	if err != nil {
		return nil, err
	}
	if !found || resp.Member == nil {
		return nil, domain.ErrUnauthenticated
	}
	member := toMember(*resp.Member)
	return &member, nil
}
