package predict

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/playdash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCache(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		cache := newVectorCache(5 * time.Minute)
		defer cache.close()

		x := model.FeatureVector{1, 2, 3}
		_, found := cache.get(x)
		assert.False(t, found)

		cache.set(x, 4.25)
		raw, found := cache.get(x)
		assert.True(t, found)
		assert.Equal(t, 4.25, raw)
		assert.Equal(t, 1, cache.size())

		_, found = cache.get(model.FeatureVector{1, 2, 4})
		assert.False(t, found)
	})

	t.Run("expiration", func(t *testing.T) {
		cache := newVectorCache(50 * time.Millisecond)
		defer cache.close()

		x := model.FeatureVector{9}
		cache.set(x, 3.0)
		_, found := cache.get(x)
		assert.True(t, found)

		time.Sleep(100 * time.Millisecond)

		_, found = cache.get(x)
		assert.False(t, found)
	})

	t.Run("sweeper removes expired entries", func(t *testing.T) {
		cache := newVectorCache(20 * time.Millisecond)
		defer cache.close()

		cache.set(model.FeatureVector{1}, 1)
		assert.Eventually(t, func() bool { return cache.size() == 0 }, time.Second, 10*time.Millisecond)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		cache := newVectorCache(0)
		assert.Equal(t, defaultCacheTTL, cache.ttl)
		cache.close()
		assert.NotPanics(t, cache.close)
	})
}

func TestService_WithCache(t *testing.T) {
	spy := &spyModel{out: 4.2667}
	svc := NewService(spy, testTable(), WithCache(time.Minute))
	defer svc.Close()

	first, err := svc.Predict(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 4.27, second.Rating)

	other := validRequest()
	other.Reviews++
	_, err = svc.Predict(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 2, spy.calls)
}

func TestService_CloseWithoutCache(t *testing.T) {
	svc := NewService(&spyModel{}, testTable())
	assert.NotPanics(t, svc.Close)
}
