package subscription

import "github.com/google/uuid"

type ProfileStatus string

const (
	ProfileActive  ProfileStatus = "active"
	ProfileRevoked ProfileStatus = "revoked"
)

// BillingProfile binds a store to the payment processor's billing/customer keys.
type BillingProfile struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	BillingKey  *string
	CustomerKey *string
	Status      ProfileStatus
}
