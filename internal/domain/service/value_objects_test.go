//go:build unit

package service_test

import (
	"strings"
	"testing"
	"time"

	"bookit-api/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTitle(t *testing.T) {
	t.Run("valid title", func(t *testing.T) {
		title, err := service.NewTitle("Deep Tissue Massage")
		require.NoError(t, err)
		assert.Equal(t, "Deep Tissue Massage", title.Value())
	})

	t.Run("title is trimmed", func(t *testing.T) {
		title, err := service.NewTitle("  Hot Stone Massage  ")
		require.NoError(t, err)
		assert.Equal(t, "Hot Stone Massage", title.Value())
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := service.NewTitle("")
		require.ErrorIs(t, err, service.ErrEmptyTitle)
	})

	t.Run("whitespace only title", func(t *testing.T) {
		_, err := service.NewTitle("   ")
		require.ErrorIs(t, err, service.ErrEmptyTitle)
	})

	t.Run("title at maximum length", func(t *testing.T) {
		title, err := service.NewTitle(strings.Repeat("a", service.MaxTitleLength))
		require.NoError(t, err)
		assert.Len(t, title.Value(), service.MaxTitleLength)
	})

	t.Run("title exceeding maximum length", func(t *testing.T) {
		_, err := service.NewTitle(strings.Repeat("a", service.MaxTitleLength+1))
		require.ErrorIs(t, err, service.ErrTitleTooLong)
	})
}

func TestNewDescription(t *testing.T) {
	t.Run("valid description", func(t *testing.T) {
		d, err := service.NewDescription("A relaxing 60-minute session.")
		require.NoError(t, err)
		assert.Equal(t, "A relaxing 60-minute session.", d.Value())
	})

	t.Run("empty description is allowed", func(t *testing.T) {
		d, err := service.NewDescription("")
		require.NoError(t, err)
		assert.Equal(t, "", d.Value())
	})

	t.Run("description at maximum length", func(t *testing.T) {
		d, err := service.NewDescription(strings.Repeat("b", service.MaxDescriptionLength))
		require.NoError(t, err)
		assert.Len(t, d.Value(), service.MaxDescriptionLength)
	})

	t.Run("description exceeding maximum length", func(t *testing.T) {
		_, err := service.NewDescription(strings.Repeat("b", service.MaxDescriptionLength+1))
		require.ErrorIs(t, err, service.ErrDescriptionTooLong)
	})
}

func TestNewMoney(t *testing.T) {
	t.Run("valid price", func(t *testing.T) {
		m, err := service.NewMoney(8000)
		require.NoError(t, err)
		assert.Equal(t, int64(8000), m.Cents())
		assert.InDelta(t, 80.0, m.Dollars(), 0.001)
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		m, err := service.NewMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := service.NewMoney(-1)
		require.ErrorIs(t, err, service.ErrNegativePrice)
	})
}

func TestNewService(t *testing.T) {
	title, err := service.NewTitle("Swedish Massage")
	require.NoError(t, err)
	desc, err := service.NewDescription("Classic full-body massage.")
	require.NoError(t, err)
	price, err := service.NewMoney(6500)
	require.NoError(t, err)

	t.Run("valid service", func(t *testing.T) {
		svc, err := service.NewService(title, desc, price, 60, true)
		require.NoError(t, err)
		assert.Equal(t, 60, svc.DurationMinutes())
		assert.Equal(t, time.Hour, svc.Duration())
		assert.True(t, svc.IsActive())
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := service.NewService(title, desc, price, 0, true)
		require.ErrorIs(t, err, service.ErrInvalidDuration)
	})

	t.Run("negative duration", func(t *testing.T) {
		_, err := service.NewService(title, desc, price, -30, true)
		require.ErrorIs(t, err, service.ErrInvalidDuration)
	})
}
