package request

import "time"

// PaymentWebhookRequest is the payload posted by the payment processor.
// Either billingKey or customerKey must resolve a billing profile; an
// unresolvable webhook is acknowledged as unmatched, never errored.
type PaymentWebhookRequest struct {
	EventType   string             `json:"eventType" binding:"required"`
	BillingKey  *string            `json:"billingKey,omitempty"`
	CustomerKey *string            `json:"customerKey,omitempty"`
	Data        PaymentWebhookData `json:"data"`
}

type PaymentWebhookData struct {
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	FailedAt   *time.Time `json:"failedAt,omitempty"`
	CanceledAt *time.Time `json:"canceledAt,omitempty"`
	OrderID    *string    `json:"orderId,omitempty"`
	PaymentKey *string    `json:"paymentKey,omitempty"`
	Message    *string    `json:"message,omitempty"`
}
