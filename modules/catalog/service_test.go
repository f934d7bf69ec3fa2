package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/modules/catalog"
)

func newService() *catalog.Service {
	return catalog.NewService(catalog.NewMemoryStorage())
}

func TestService_CreateFee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a fee definition", func(t *testing.T) {
		t.Parallel()
		svc := newService()

		fee, err := svc.CreateFee(ctx, catalog.CreateFeeParams{
			Name:        "Enrollment fee",
			Description: "One-time fee on enrollment",
			Amount:      decimal.NewFromInt(5000),
			Currency:    "XOF",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, fee.ID)

		loaded, err := svc.Fee(ctx, fee.ID)
		require.NoError(t, err)
		assert.Equal(t, "Enrollment fee", loaded.Name)
		assert.True(t, loaded.Amount.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		svc := newService()

		tests := []struct {
			name   string
			params catalog.CreateFeeParams
		}{
			{"missing name", catalog.CreateFeeParams{Amount: decimal.NewFromInt(1), Currency: "XOF"}},
			{"negative amount", catalog.CreateFeeParams{Name: "x", Amount: decimal.NewFromInt(-1), Currency: "XOF"}},
			{"bad currency", catalog.CreateFeeParams{Name: "x", Amount: decimal.NewFromInt(1), Currency: "francs"}},
		}
		for _, tt := range tests {
			_, err := svc.CreateFee(ctx, tt.params)
			assert.ErrorIs(t, err, catalog.ErrInvalidFee, tt.name)
		}
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		t.Parallel()
		svc := newService()

		_, err := svc.CreateFee(ctx, catalog.CreateFeeParams{
			Name: "Scholarship", Amount: decimal.Zero, Currency: "XOF",
		})
		assert.NoError(t, err)
	})
}

func TestService_UpdateFee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService()

	fee, err := svc.CreateFee(ctx, catalog.CreateFeeParams{
		Name: "Tuition", Amount: decimal.NewFromInt(20000), Currency: "XOF",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateFee(ctx, fee.ID, catalog.CreateFeeParams{
		Name: "Tuition 2027", Amount: decimal.NewFromInt(22000), Currency: "XOF",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tuition 2027", updated.Name)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(22000)))

	_, err = svc.UpdateFee(ctx, uuid.New(), catalog.CreateFeeParams{
		Name: "x", Amount: decimal.NewFromInt(1), Currency: "XOF",
	})
	assert.ErrorIs(t, err, catalog.ErrFeeNotFound)
}

func TestService_CreateClass(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("attached fees must exist", func(t *testing.T) {
		t.Parallel()
		svc := newService()

		missing := uuid.New()
		_, err := svc.CreateClass(ctx, catalog.CreateClassParams{
			SchoolID:        uuid.New(),
			TeacherID:       uuid.New(),
			Name:            "CM2 A",
			EnrollmentFeeID: &missing,
		})
		assert.ErrorIs(t, err, catalog.ErrInvalidClass)
	})

	t.Run("fees are optional", func(t *testing.T) {
		t.Parallel()
		svc := newService()

		class, err := svc.CreateClass(ctx, catalog.CreateClassParams{
			SchoolID: uuid.New(), TeacherID: uuid.New(), Name: "Chess club",
		})
		require.NoError(t, err)
		assert.Empty(t, class.FeeIDs())
	})

	t.Run("unknown class", func(t *testing.T) {
		t.Parallel()
		svc := newService()

		_, err := svc.Class(ctx, uuid.New())
		assert.ErrorIs(t, err, catalog.ErrClassNotFound)
	})
}

func TestClassOffering_FeeIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService()

	enrollFee, err := svc.CreateFee(ctx, catalog.CreateFeeParams{
		Name: "Enrollment fee", Amount: decimal.NewFromInt(5000), Currency: "XOF",
	})
	require.NoError(t, err)
	tuitionFee, err := svc.CreateFee(ctx, catalog.CreateFeeParams{
		Name: "Tuition", Amount: decimal.NewFromInt(20000), Currency: "XOF",
	})
	require.NoError(t, err)

	class, err := svc.CreateClass(ctx, catalog.CreateClassParams{
		SchoolID:        uuid.New(),
		TeacherID:       uuid.New(),
		Name:            "CM2 A",
		EnrollmentFeeID: &enrollFee.ID,
		TuitionFeeID:    &tuitionFee.ID,
	})
	require.NoError(t, err)

	// Enrollment fee always precedes tuition.
	assert.Equal(t, []uuid.UUID{enrollFee.ID, tuitionFee.ID}, class.FeeIDs())

	tuitionOnly, err := svc.CreateClass(ctx, catalog.CreateClassParams{
		SchoolID:     uuid.New(),
		TeacherID:    uuid.New(),
		Name:         "CE1 B",
		TuitionFeeID: &tuitionFee.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tuitionFee.ID}, tuitionOnly.FeeIDs())
}
