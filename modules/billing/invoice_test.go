package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schoolkit/modules/billing"
)

func TestInvoice_Number(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   int64
		want string
	}{
		{1, "000001"},
		{42, "000042"},
		{999999, "999999"},
		{1000000, "1000000"},
	}
	for _, tt := range tests {
		inv := billing.Invoice{ID: tt.id}
		assert.Equal(t, tt.want, inv.Number())
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   decimal.Decimal
		currency string
		want     string
	}{
		{decimal.NewFromInt(5000), "XOF", "5,000 XOF"},
		{decimal.NewFromInt(20000), "XOF", "20,000 XOF"},
		{decimal.NewFromInt(0), "XOF", "0 XOF"},
		{decimal.NewFromFloat(1234.5), "USD", "1,234.50 USD"},
		{decimal.NewFromInt(1000000), "EUR", "1,000,000 EUR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, billing.FormatAmount(tt.amount, tt.currency))
	}
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, billing.StatusPending.Valid())
	assert.True(t, billing.StatusPaid.Valid())
	assert.True(t, billing.StatusOverdue.Valid())
	assert.False(t, billing.Status("cancelled").Valid())
	assert.False(t, billing.Status("").Valid())
}
