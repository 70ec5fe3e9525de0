package response

import (
	"time"

	"coupon-wallet-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type EventResponse struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Message    *string        `json:"message,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Source     *string        `json:"source,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

func FromEventPage(page *queries.EventPage) (*EventListResponse, error) {
	resp := &EventListResponse{
		Events:     make([]EventResponse, 0, len(page.Events)),
		NextCursor: page.NextCursor,
	}
	for i := range page.Events {
		var ev EventResponse
		if err := copier.Copy(&ev, &page.Events[i]); err != nil {
			return nil, err
		}
		resp.Events = append(resp.Events, ev)
	}
	return resp, nil
}
