package billing

// Invoice status values. An invoice starts unpaid; any status may move to
// any other via an explicit status update.
const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Feedback status values. Feedback starts pending.
const (
	FeedbackStatusPending = "pending"
	FeedbackStatusSolved  = "solved"
	FeedbackStatusClosed  = "closed"
)

// Feedback rating values.
const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingPoor      = "poor"
)

// ValidInvoiceStatus reports whether s is an accepted invoice status.
// An update naming anything else is rejected without a state change.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// ValidFeedbackStatus reports whether s is an accepted feedback status.
func ValidFeedbackStatus(s string) bool {
	switch s {
	case FeedbackStatusPending, FeedbackStatusSolved, FeedbackStatusClosed:
		return true
	}
	return false
}

// ValidRating reports whether s is an accepted feedback rating.
func ValidRating(s string) bool {
	switch s {
	case RatingExcellent, RatingGood, RatingPoor:
		return true
	}
	return false
}
