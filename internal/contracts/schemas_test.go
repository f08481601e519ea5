package contracts

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromPath(t *testing.T) {
	assert.Equal(t, "QuickBuyRequest/1.0.0", keyFromPath("requests/quick-buy/v1.json"))
	assert.Equal(t, "CreateReviewRequest/2.0.0", keyFromPath("requests/create-review/v2.json"))
	assert.Equal(t, "", keyFromPath("requests/quick-buy.json"))
}

func TestRegistry_Embedded(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{QuickBuyRequest, UpdateMemberRequest, CreateReviewRequest}, registry.Keys())

	tests := []struct {
		name  string
		key   string
		body  string
		valid bool
	}{
		{"quick buy", QuickBuyRequest, `{"productId":"p1","quantity":2,"options":{"Size":"M"}}`, true},
		{"quick buy zero quantity", QuickBuyRequest, `{"productId":"p1","quantity":0}`, false},
		{"quick buy missing product", QuickBuyRequest, `{"quantity":1}`, false},
		{"quick buy fractional quantity", QuickBuyRequest, `{"productId":"p1","quantity":1.5}`, false},
		{"update member", UpdateMemberRequest, `{"firstName":"Ann","lastName":""}`, true},
		{"update member extra field", UpdateMemberRequest, `{"firstName":"Ann","lastName":"B","email":"x"}`, false},
		{"review", CreateReviewRequest, `{"title":"Nice","body":"ok","rating":5}`, true},
		{"review rating out of range", CreateReviewRequest, `{"rating":6}`, false},
		{"not json", CreateReviewRequest, `{rating`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Validate(tt.key, []byte(tt.body))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrSchemaViolation)
		})
	}
}

func TestRegistry_UnknownKey(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	err = registry.Validate("MissingRequest/1.0.0", []byte(`{}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSchemaViolation)
}

func TestRegistry_BrokenSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"requests/broken/v1.json": &fstest.MapFile{Data: []byte(`{"type": 12}`)},
	}
	_, err := newRegistryFromFS(fsys)
	assert.Error(t, err)
}
