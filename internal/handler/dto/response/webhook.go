package response

type WebhookAckResponse struct {
	Result string `json:"result"`
}
