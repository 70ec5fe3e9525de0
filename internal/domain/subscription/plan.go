package subscription

import "github.com/google/uuid"

type Plan struct {
	ID            uuid.UUID
	Name          string
	Interval      BillingInterval
	IntervalCount int
}

// DefaultPlanTerms is used when a store has no plan on record at the time a
// payment settles: one calendar month.
func DefaultPlanTerms() (BillingInterval, int) {
	return IntervalMonth, 1
}

func (p *Plan) Terms() (BillingInterval, int) {
	if p == nil || p.IntervalCount <= 0 {
		return DefaultPlanTerms()
	}
	return p.Interval, p.IntervalCount
}
