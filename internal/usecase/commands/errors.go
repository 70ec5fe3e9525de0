package commands

import (
	"fmt"

	"coupon-wallet-service/internal/domain/subscription"
)

// FeatureDeniedError reports that a store's subscription does not entitle it
// to a feature. It carries the subscription status so the handler can expose
// it to the payment-required response.
type FeatureDeniedError struct {
	Feature string
	Status  subscription.Status
}

func (e *FeatureDeniedError) Error() string {
	return fmt.Sprintf("feature %s denied: subscription is %s", e.Feature, e.Status)
}

func NewFeatureDeniedError(feature string, status subscription.Status) *FeatureDeniedError {
	return &FeatureDeniedError{Feature: feature, Status: status}
}
