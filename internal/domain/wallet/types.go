package wallet

type Status string

const (
	StatusAvailable Status = "available"
	StatusClaimed   Status = "claimed"
	StatusQrIssued  Status = "qr_issued"
	StatusRedeemed  Status = "redeemed"
)

func (s Status) String() string { return string(s) }

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusClaimed, StatusQrIssued, StatusRedeemed:
		return true
	}
	return false
}

// CanTransitionTo encodes the wallet lifecycle. A wallet never moves backward
// except by starting a fresh claim cycle, which is always allowed because
// claiming overwrites the coupon binding and any live token is invalidated
// beforehand.
func (s Status) CanTransitionTo(next Status) bool {
	switch next {
	case StatusClaimed:
		return true
	case StatusQrIssued:
		return s == StatusClaimed || s == StatusQrIssued
	case StatusRedeemed:
		return s == StatusQrIssued
	default:
		return false
	}
}
