package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/beyondeth/shop/internal/core/port"
)

// UpdateMemberUseCase меняет имя участника. После успеха - уведомление
// и отложенное обновление страницы через refreshDelay.
type UpdateMemberUseCase struct {
	members      port.MembersPort
	deps         MutationDeps
	refreshDelay time.Duration
}

func NewUpdateMemberUseCase(members port.MembersPort, deps MutationDeps, refreshDelay time.Duration) *UpdateMemberUseCase {
	return &UpdateMemberUseCase{members: members, deps: deps, refreshDelay: refreshDelay}
}

func (uc *UpdateMemberUseCase) Execute(ctx context.Context, sessionID string, update domain.MemberUpdate) (mutation.Outcome[*domain.Member], error) {
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.LastName = strings.TrimSpace(update.LastName)

	hook := hookFor(uc.deps, sessionID, mutation.Config{
		Name:           constants.MutationUpdateMember,
		FailureMessage: constants.MessageProfileUpdateFail,
		SuccessMessage: constants.MessageProfileUpdated,
		RefreshAfter:   uc.refreshDelay,
	}, uc.update)
	return hook.Run(ctx, update)
}

func (uc *UpdateMemberUseCase) update(ctx context.Context, update domain.MemberUpdate) (*domain.Member, error) {
	member, err := uc.members.GetLoggedInMember(ctx)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrUnauthenticated
	}

	updated, err := uc.members.UpdateMember(ctx, member.ID, update)
	if err != nil {
		return nil, err
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "UpdateMember",
		"member_id": member.ID,
	})
	publishEvent(ctx, uc.deps.Events, logger, domain.StorefrontEvent{
		Type:       domain.EventMemberUpdated,
		SessionID:  contextkeys.SessionIDFromContext(ctx),
		OccurredAt: uc.deps.now(),
		Attributes: map[string]string{"member_id": member.ID},
	})
	return updated, nil
}
