package usecase

import (
	"context"

	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/port"
	"github.com/beyondeth/shop/internal/core/port/usecases_port"
)

type GetProfilePageUseCase struct {
	members port.MembersPort
}

func NewGetProfilePageUseCase(members port.MembersPort) *GetProfilePageUseCase {
	return &GetProfilePageUseCase{members: members}
}

func (uc *GetProfilePageUseCase) Execute(ctx context.Context) (*usecases_port.ProfilePage, error) {
	member, err := uc.members.GetLoggedInMember(ctx)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrUnauthenticated
	}

	contextkeys.LoggerFromContext(ctx).Debug("Profile page loaded", port.Fields{
		"use_case":  "GetProfilePage",
		"member_id": member.ID,
	})
	return &usecases_port.ProfilePage{Member: *member}, nil
}
