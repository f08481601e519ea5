package loader

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beyondeth/shop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_DegradeSwallowsError(t *testing.T) {
	got, err := Section(context.Background(), Degrade, "related", func(ctx context.Context) ([]string, error) {
		return []string{"partial"}, errors.New("platform down")
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSection_PropagateWrapsError(t *testing.T) {
	boom := errors.New("platform down")
	_, err := Section(context.Background(), Propagate, "product", func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "section product")
}

func TestSection_DefaultPolicyIsDegrade(t *testing.T) {
	var p Policy
	assert.Equal(t, Degrade, p)
	assert.Equal(t, "degrade", p.String())
	assert.Equal(t, "propagate", Propagate.String())
}

func TestRequired(t *testing.T) {
	value := "x"

	got, err := Required(&value, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", *got)

	_, err = Required[string](nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("boom")
	_, err = Required[string](nil, boom)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestRequire(t *testing.T) {
	got, err := Require(7, true)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	_, err = Require(0, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJoin_RunsConcurrently(t *testing.T) {
	var inFlight, maxInFlight int32
	step := func(ctx context.Context) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	}

	require.NoError(t, Join(context.Background(), step, step))
	assert.Equal(t, int32(2), atomic.LoadInt32(&maxInFlight))
}

func TestJoin_ReturnsFirstErrorAndCancels(t *testing.T) {
	boom := errors.New("order lookup failed")
	cancelled := make(chan struct{})

	err := Join(context.Background(),
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error {
			<-ctx.Done()
			close(cancelled)
			return ctx.Err()
		},
	)
	assert.ErrorIs(t, err, boom)
	<-cancelled
}
