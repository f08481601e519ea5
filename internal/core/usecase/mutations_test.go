package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/contextkeys"
	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/beyondeth/shop/internal/core/mutation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartCheckout(t *testing.T) {
	t.Run("success keeps pending and rejects second click", func(t *testing.T) {
		f := &fakePlatform{}
		events := &recordingPublisher{}
		deps := newDeps(&recordingNotifier{}, events, &timerQueue{})
		uc := NewCheckoutUseCase(f, deps)

		outcome, err := uc.StartCartCheckout(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.example/cart", outcome.Value)
		assert.Equal(t, mutation.Pending, outcome.State)
		assert.Equal(t, []domain.EventType{domain.EventCheckoutStarted}, events.types())

		_, err = uc.StartCartCheckout(context.Background(), "s1")
		assert.ErrorIs(t, err, domain.ErrMutationPending)

		// другая сессия не заблокирована
		_, err = uc.StartCartCheckout(context.Background(), "s2")
		assert.NoError(t, err)

		// рендер страницы уничтожает хук
		deps.Sessions.Teardown("s1")
		_, err = uc.StartCartCheckout(context.Background(), "s1")
		assert.NoError(t, err)
	})

	t.Run("failure shows static toast and allows retry", func(t *testing.T) {
		f := &fakePlatform{checkoutErr: errPlatform}
		events := &recordingPublisher{}
		uc := NewCheckoutUseCase(f, newDeps(&recordingNotifier{}, events, &timerQueue{}))

		outcome, err := uc.StartCartCheckout(context.Background(), "s1")
		assert.ErrorIs(t, err, errPlatform)
		assert.Equal(t, mutation.Failed, outcome.State)
		require.NotNil(t, outcome.Notification)
		assert.Equal(t, domain.NotificationDestructive, outcome.Notification.Variant)
		assert.Equal(t, constants.MessageCheckoutFailed, outcome.Notification.Description)
		assert.Empty(t, events.types())

		f.checkoutErr = nil
		outcome, err = uc.StartCartCheckout(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, mutation.Pending, outcome.State)
	})

	t.Run("event publish failure does not fail checkout", func(t *testing.T) {
		events := &recordingPublisher{err: errPlatform}
		uc := NewCheckoutUseCase(&fakePlatform{}, newDeps(&recordingNotifier{}, events, &timerQueue{}))

		outcome, err := uc.StartCartCheckout(context.Background(), "s1")
		require.NoError(t, err)
		assert.NotEmpty(t, outcome.Value)
	})
}

func TestQuickBuy(t *testing.T) {
	uc := NewCheckoutUseCase(&fakePlatform{}, newDeps(&recordingNotifier{}, &recordingPublisher{}, &timerQueue{}))

	outcome, err := uc.QuickBuy(context.Background(), "s1", domain.QuickBuy{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/product/p1", outcome.Value)

	_, err = uc.QuickBuy(context.Background(), "s2", domain.QuickBuy{ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.QuickBuy(context.Background(), "s2", domain.QuickBuy{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// корзина и быстрая покупка - разные хуки
	_, err = uc.StartCartCheckout(context.Background(), "s1")
	assert.NoError(t, err)
}

func TestUpdateMember(t *testing.T) {
	t.Run("success toast then refresh", func(t *testing.T) {
		f := &fakePlatform{member: &domain.Member{ID: "m1", FirstName: "Ada"}}
		notifier := &recordingNotifier{}
		timers := &timerQueue{}
		events := &recordingPublisher{}
		uc := NewUpdateMemberUseCase(f, newDeps(notifier, events, timers), 2*time.Second)

		outcome, err := uc.Execute(context.Background(), "s1", domain.MemberUpdate{FirstName: " Grace ", LastName: "Hopper"})
		require.NoError(t, err)
		assert.Equal(t, "Grace", outcome.Value.FirstName)
		require.NotNil(t, outcome.Notification)
		assert.Equal(t, constants.MessageProfileUpdated, outcome.Notification.Description)
		assert.Equal(t, mutation.Pending, outcome.State)
		assert.Equal(t, 2*time.Second, outcome.RefreshAfter)
		assert.Equal(t, []domain.EventType{domain.EventMemberUpdated}, events.types())

		require.Len(t, timers.timers, 1)
		assert.Equal(t, 2*time.Second, timers.delays[0])

		_, err = uc.Execute(context.Background(), "s1", domain.MemberUpdate{FirstName: "Again"})
		assert.ErrorIs(t, err, domain.ErrMutationPending)

		timers.timers[0].fn()
		require.Len(t, notifier.events, 1)
		assert.Equal(t, domain.ClientEventRefresh, notifier.events[0].Type)

		_, err = uc.Execute(context.Background(), "s1", domain.MemberUpdate{FirstName: "Again"})
		assert.NoError(t, err)
	})

	t.Run("guest cannot update", func(t *testing.T) {
		timers := &timerQueue{}
		uc := NewUpdateMemberUseCase(&fakePlatform{}, newDeps(&recordingNotifier{}, &recordingPublisher{}, timers), time.Second)

		outcome, err := uc.Execute(context.Background(), "s1", domain.MemberUpdate{FirstName: "Ada"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.Equal(t, mutation.Failed, outcome.State)
		assert.Empty(t, timers.timers)
	})

	t.Run("failure toast without refresh", func(t *testing.T) {
		f := &fakePlatform{member: &domain.Member{ID: "m1"}, updateErr: errPlatform}
		timers := &timerQueue{}
		uc := NewUpdateMemberUseCase(f, newDeps(&recordingNotifier{}, &recordingPublisher{}, timers), time.Second)

		outcome, err := uc.Execute(context.Background(), "s1", domain.MemberUpdate{FirstName: "Ada"})
		assert.ErrorIs(t, err, errPlatform)
		require.NotNil(t, outcome.Notification)
		assert.Equal(t, constants.MessageProfileUpdateFail, outcome.Notification.Description)
		assert.Empty(t, timers.timers)
	})

	t.Run("teardown cancels pending refresh", func(t *testing.T) {
		f := &fakePlatform{member: &domain.Member{ID: "m1"}}
		timers := &timerQueue{}
		deps := newDeps(&recordingNotifier{}, &recordingPublisher{}, timers)
		uc := NewUpdateMemberUseCase(f, deps, time.Second)

		_, err := uc.Execute(context.Background(), "s1", domain.MemberUpdate{FirstName: "Ada"})
		require.NoError(t, err)
		deps.Sessions.Teardown("s1")
		require.Len(t, timers.timers, 1)
		assert.True(t, timers.timers[0].stopped)
	})
}

func TestCreateReview(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		events := &recordingPublisher{}
		uc := NewCreateReviewUseCase(&fakePlatform{}, newDeps(&recordingNotifier{}, events, &timerQueue{}))

		outcome, err := uc.Execute(context.Background(), "s1", domain.NewReview{ProductID: "p1", Title: "Nice", Rating: 5})
		require.NoError(t, err)
		assert.Equal(t, "r-new", outcome.Value.ID)
		assert.Equal(t, mutation.Succeeded, outcome.State)
		assert.Nil(t, outcome.Notification)
		assert.Equal(t, []domain.EventType{domain.EventReviewCreated}, events.types())

		// успешный хук можно вызвать снова
		_, err = uc.Execute(context.Background(), "s1", domain.NewReview{ProductID: "p1", Rating: 4})
		assert.NoError(t, err)
	})

	t.Run("rating out of range", func(t *testing.T) {
		uc := NewCreateReviewUseCase(&fakePlatform{}, newDeps(&recordingNotifier{}, &recordingPublisher{}, &timerQueue{}))
		for _, rating := range []int{0, 6} {
			_, err := uc.Execute(context.Background(), "s1", domain.NewReview{ProductID: "p1", Rating: rating})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
	})

	t.Run("failure", func(t *testing.T) {
		uc := NewCreateReviewUseCase(&fakePlatform{createErr: errPlatform}, newDeps(&recordingNotifier{}, &recordingPublisher{}, &timerQueue{}))
		outcome, err := uc.Execute(context.Background(), "s1", domain.NewReview{ProductID: "p1", Rating: 3})
		assert.ErrorIs(t, err, errPlatform)
		require.NotNil(t, outcome.Notification)
		assert.Equal(t, constants.MessageReviewCreateFailed, outcome.Notification.Description)
	})
}

type failingJournal struct{ calls int }

func (j *failingJournal) Record(ctx context.Context, record domain.MutationRecord) error {
	j.calls++
	return errPlatform
}

func TestJournalObserver_SwallowsErrors(t *testing.T) {
	journal := &failingJournal{}
	deps := newDeps(&recordingNotifier{}, &recordingPublisher{}, &timerQueue{})
	deps.Observers = []mutation.Observer{NewJournalObserver(journal, contextkeys.LoggerFromContext(context.Background()))}
	uc := NewCreateReviewUseCase(&fakePlatform{}, deps)

	_, err := uc.Execute(context.Background(), "s1", domain.NewReview{ProductID: "p1", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, journal.calls)
}
