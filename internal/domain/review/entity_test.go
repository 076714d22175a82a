//go:build unit

package review_test

import (
	"testing"
	"time"

	"bookit-api/internal/domain/booking"
	"bookit-api/internal/domain/review"
	"bookit-api/internal/domain/user"
	"bookit-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReviewBuilder)
	errIs  error
}

func TestReview(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.False(t, actual.CreatedAt().IsZero())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.Equal(t, "Excellent service!", actual.Comment().String())
	})

	t.Run("rating validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "below minimum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(0) },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "minimum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(1) },
			},
			{
				name:   "maximum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(5) },
			},
			{
				name:   "above maximum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(6) },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "negative rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(-1) },
				errIs:  review.ErrInvalidRating,
			},
		})
	})

	t.Run("comment validation", func(t *testing.T) {
		longComment := make([]byte, review.MaxCommentLength)
		for i := range longComment {
			longComment[i] = 'a'
		}

		runCases(t, []testCase{
			{
				name:   "minimum length comment",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment("a") },
			},
			{
				name:   "maximum length comment",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment(string(longComment)) },
			},
			{
				name:   "comment exceeding maximum length",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment(string(longComment) + "b") },
				errIs:  review.ErrCommentTooLong,
			},
			{
				name:   "empty comment",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment("") },
				errIs:  review.ErrEmptyComment,
			},
			{
				name:   "whitespace only comment",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment("   ") },
				errIs:  review.ErrEmptyComment,
			},
		})
	})

	t.Run("comment is trimmed", func(t *testing.T) {
		actual, err := builder.NewReviewBuilder().WithComment("  Trimmed comment  ").BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, "Trimmed comment", actual.Comment().String())
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewReviewBuilder()
		now := time.Now()

		review1, err1 := review.NewReview(uuid.Nil, b.BookingID, b.UserID, b.ServiceID, 5, "Great!", now)
		review2, err2 := review.NewReview(uuid.Nil, b.BookingID, b.UserID, b.ServiceID, 5, "Great!", now)

		require.NoError(t, err1)
		require.NoError(t, err2)

		assert.NotEqual(t, review1.ID(), review2.ID())
	})
}

func TestCheckEligibility(t *testing.T) {
	ownerID := uuid.New()
	owner := user.NewActor(ownerID, user.RoleUser)
	stranger := user.NewActor(uuid.New(), user.RoleUser)
	admin := user.NewActor(uuid.New(), user.RoleAdmin)

	t.Run("owner of a completed booking is eligible", func(t *testing.T) {
		err := review.CheckEligibility(owner, ownerID, booking.StatusCompleted)
		require.NoError(t, err)
	})

	t.Run("stranger is not eligible", func(t *testing.T) {
		err := review.CheckEligibility(stranger, ownerID, booking.StatusCompleted)
		require.ErrorIs(t, err, review.ErrBookingNotEligible)
	})

	t.Run("admin is not eligible for a booking they do not own", func(t *testing.T) {
		err := review.CheckEligibility(admin, ownerID, booking.StatusCompleted)
		require.ErrorIs(t, err, review.ErrBookingNotEligible)
	})

	t.Run("non-completed statuses are not eligible", func(t *testing.T) {
		for _, s := range []booking.Status{booking.StatusPending, booking.StatusConfirmed, booking.StatusCancelled} {
			err := review.CheckEligibility(owner, ownerID, s)
			require.ErrorIs(t, err, review.ErrBookingNotEligible, "status %s", s)
		}
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewReviewBuilder()
			c.mutate(b)
			actual, err := b.BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
