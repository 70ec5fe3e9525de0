package subscription

import "errors"

var ErrInvalidInterval = errors.New("invalid billing interval")

type Status string

const (
	StatusActive   Status = "active"
	StatusGrace    Status = "grace"
	StatusCanceled Status = "canceled"
	StatusInactive Status = "inactive"
)

func (s Status) String() string { return string(s) }

type BillingInterval string

const (
	IntervalDay   BillingInterval = "day"
	IntervalWeek  BillingInterval = "week"
	IntervalMonth BillingInterval = "month"
	IntervalYear  BillingInterval = "year"
)

func ParseInterval(s string) (BillingInterval, error) {
	switch BillingInterval(s) {
	case IntervalDay, IntervalWeek, IntervalMonth, IntervalYear:
		return BillingInterval(s), nil
	}
	return "", ErrInvalidInterval
}
