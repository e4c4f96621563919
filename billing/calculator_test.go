package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCalculate(t *testing.T) {
	t.Run("Sums Fees And Applies Adjustments", func(t *testing.T) {
		fs := FeeSchedule{
			RentAmount:     d("10000"),
			ParkingFee:     d("500"),
			ElectricityFee: d("300"),
			Tax:            d("100"),
			Discount:       d("200"),
		}

		totals, err := Calculate(fs)
		require.NoError(t, err)
		assert.True(t, totals.TotalAmount.Equal(d("10800")), "total = %s", totals.TotalAmount)
		assert.True(t, totals.GrandTotal.Equal(d("10700")), "grand = %s", totals.GrandTotal)
	})

	t.Run("Previous Due Added To Grand Total", func(t *testing.T) {
		fs := FeeSchedule{
			RentAmount:  d("5000"),
			PreviousDue: d("1500"),
		}

		totals, err := Calculate(fs)
		require.NoError(t, err)
		assert.True(t, totals.TotalAmount.Equal(d("5000")))
		assert.True(t, totals.GrandTotal.Equal(d("6500")))
	})

	t.Run("Zero Rent Rejected", func(t *testing.T) {
		_, err := Calculate(FeeSchedule{RentAmount: decimal.Zero})

		var fieldErr *FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "rent_amount", fieldErr.Field)
	})

	t.Run("Negative Rent Rejected", func(t *testing.T) {
		_, err := Calculate(FeeSchedule{RentAmount: d("-100")})

		var fieldErr *FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "rent_amount", fieldErr.Field)
	})

	t.Run("Negative Fee Names Offending Field", func(t *testing.T) {
		fs := FeeSchedule{
			RentAmount: d("10000"),
			ParkingFee: d("-50"),
		}

		_, err := Calculate(fs)

		var fieldErr *FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "parking_fee", fieldErr.Field)
	})

	t.Run("Negative Tax Rejected", func(t *testing.T) {
		_, err := Calculate(FeeSchedule{RentAmount: d("1000"), Tax: d("-1")})

		var fieldErr *FieldValidationError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "tax", fieldErr.Field)
	})

	t.Run("Excessive Discount Violates Grand Total Floor", func(t *testing.T) {
		fs := FeeSchedule{
			RentAmount: d("1000"),
			Tax:        d("50"),
			Discount:   d("2000"),
		}

		_, err := Calculate(fs)

		var invariantErr *InvariantViolation
		require.ErrorAs(t, err, &invariantErr)
	})

	t.Run("Discount Exactly Equal To Charges Allowed", func(t *testing.T) {
		fs := FeeSchedule{
			RentAmount: d("1000"),
			Discount:   d("1000"),
		}

		totals, err := Calculate(fs)
		require.NoError(t, err)
		assert.True(t, totals.GrandTotal.IsZero())
	})

	t.Run("Idempotent", func(t *testing.T) {
		fs := FeeSchedule{
			RentAmount:     d("7500.50"),
			WasteFee:       d("120.25"),
			NormalWaterFee: d("80"),
			Tax:            d("975.10"),
		}

		first, err := Calculate(fs)
		require.NoError(t, err)
		second, err := Calculate(fs)
		require.NoError(t, err)

		assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
		assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	})
}
