package coupon

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrReasonRequired     = errors.New("rejection requires a reason")
	ErrInvalidApprovalSts = errors.New("invalid approval status")
	ErrNotRejected        = errors.New("only rejected coupons can be resubmitted")
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// MaxApprovalHistory bounds the decision history; oldest entries are evicted first.
const MaxApprovalHistory = 10

// Decision is one review outcome. Reason is set only for rejections.
type Decision struct {
	Status    ApprovalStatus `json:"status"`
	DecidedAt *time.Time     `json:"decidedAt,omitempty"`
	DecidedBy *string        `json:"decidedBy,omitempty"`
	Reason    *string        `json:"reason,omitempty"`
}

// Approval is the review gate embedded in coupon metadata. The live decision
// always equals the most recent history entry.
type Approval struct {
	Decision
	History []Decision `json:"history,omitempty"`
}

func DefaultApproval() Approval {
	return Approval{Decision: Decision{Status: ApprovalPending}}
}

func (a Approval) IsDefault() bool {
	return a.Status == ApprovalPending && a.DecidedAt == nil && len(a.History) == 0
}

func NewDecision(status ApprovalStatus, decidedBy, reason *string, now time.Time) (Decision, error) {
	switch status {
	case ApprovalApproved:
		// approval discards any reason it was given
		reason = nil
	case ApprovalRejected:
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return Decision{}, ErrReasonRequired
		}
		trimmed := strings.TrimSpace(*reason)
		reason = &trimmed
	default:
		return Decision{}, ErrInvalidApprovalSts
	}
	return Decision{Status: status, DecidedAt: &now, DecidedBy: decidedBy, Reason: reason}, nil
}

// Decide folds the next decision into the approval block. The previous live
// decision is carried into history when it is not already there (legacy rows
// stored the live block without a history entry), the new decision becomes
// both the live state and the newest history entry, and the history is
// truncated to the most recent MaxApprovalHistory entries, oldest first.
func (a Approval) Decide(next Decision) Approval {
	history := a.History
	if !a.IsDefault() && (len(history) == 0 || !sameDecision(history[len(history)-1], a.Decision)) {
		history = append(history, a.Decision)
	}
	history = append(history, next)
	if len(history) > MaxApprovalHistory {
		history = history[len(history)-MaxApprovalHistory:]
	}
	return Approval{Decision: next, History: history}
}

// Resubmit resets a rejected coupon back to pending. The reset is recorded as
// a history entry so the audit trail stays complete.
func (a Approval) Resubmit(resubmittedBy *string, now time.Time) (Approval, error) {
	if a.Status != ApprovalRejected {
		return Approval{}, ErrNotRejected
	}
	return a.Decide(Decision{Status: ApprovalPending, DecidedAt: &now, DecidedBy: resubmittedBy}), nil
}

// Activates reports whether the coupon's isActive flag must be on for this
// approval state.
func (a Approval) Activates() bool {
	return a.Status == ApprovalApproved
}

func sameDecision(a, b Decision) bool {
	if a.Status != b.Status {
		return false
	}
	if (a.DecidedAt == nil) != (b.DecidedAt == nil) {
		return false
	}
	if a.DecidedAt != nil && !a.DecidedAt.Equal(*b.DecidedAt) {
		return false
	}
	return true
}
