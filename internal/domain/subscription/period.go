package subscription

import "time"

// PeriodEnd adds count units of interval to start using calendar semantics.
//
// Month and year arithmetic clamps to the end of the target month rather than
// normalizing: 2024-01-31 + 1 month = 2024-02-29, not 2024-03-02. This keeps
// a subscription anchored near its original day-of-month instead of drifting
// forward a few days every short month.
func PeriodEnd(start time.Time, interval BillingInterval, count int) time.Time {
	switch interval {
	case IntervalDay:
		return start.AddDate(0, 0, count)
	case IntervalWeek:
		return start.AddDate(0, 0, 7*count)
	case IntervalYear:
		return addMonthsClamped(start, 12*count)
	default:
		return addMonthsClamped(start, count)
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()

	// time.Month arithmetic is 1-based; normalize through a 0-based index
	monthIndex := int(month) - 1 + months
	year += monthIndex / 12
	monthIndex %= 12
	if monthIndex < 0 {
		monthIndex += 12
		year--
	}
	targetMonth := time.Month(monthIndex + 1)

	if max := daysIn(year, targetMonth); day > max {
		day = max
	}

	return time.Date(year, targetMonth, day, hour, minute, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
