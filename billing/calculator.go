package billing

import "github.com/shopspring/decimal"

// Totals is the computed result of a fee schedule.
type Totals struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// Calculate validates a fee schedule and computes its totals.
//
// total_amount is rent_amount plus every other fee line item;
// grand_total is total_amount + tax + previous_due - discount.
// Pure and idempotent: the same schedule always yields the same totals.
func Calculate(fs FeeSchedule) (Totals, error) {
	if !fs.RentAmount.IsPositive() {
		return Totals{}, &FieldValidationError{Field: "rent_amount", Message: "rent amount must be greater than zero"}
	}

	total := fs.RentAmount
	for _, fee := range fs.feeFields() {
		if fee.Value.IsNegative() {
			return Totals{}, &FieldValidationError{Field: fee.Name, Message: "fee must not be negative"}
		}
		total = total.Add(fee.Value)
	}

	if fs.Tax.IsNegative() {
		return Totals{}, &FieldValidationError{Field: "tax", Message: "tax must not be negative"}
	}
	if fs.Discount.IsNegative() {
		return Totals{}, &FieldValidationError{Field: "discount", Message: "discount must not be negative"}
	}
	if fs.PreviousDue.IsNegative() {
		return Totals{}, &FieldValidationError{Field: "previous_due", Message: "previous due must not be negative"}
	}

	grand := total.Add(fs.Tax).Add(fs.PreviousDue).Sub(fs.Discount)
	if grand.IsNegative() {
		return Totals{}, &InvariantViolation{Message: "grand total must not be negative"}
	}

	return Totals{TotalAmount: total, GrandTotal: grand}, nil
}
