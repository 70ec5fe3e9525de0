package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	resdto "coupon-wallet-service/internal/handler/dto/response"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventQueries queries.EventQueries
}

func NewEventHandler(eventQueries queries.EventQueries) *EventHandler {
	return &EventHandler{
		eventQueries: eventQueries,
	}
}

// @Summary List audit events
// @Description Page through the audit trail, newest first
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param type query string false "Event type filter"
// @Param source query string false "Source filter"
// @Param since query string false "Lower bound (RFC 3339)"
// @Param until query string false "Upper bound (RFC 3339)"
// @Param limit query int false "Page size (max 200)"
// @Param after query string false "Pagination cursor"
// @Success 200 {object} resdto.EventListResponse
// @Failure 400 {object} map[string]string
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	filter := queries.EventFilter{
		Type:   c.Query("type"),
		Source: c.Query("source"),
	}
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since timestamp"})
			return
		}
		filter.Since = &t
	}
	if raw := c.Query("until"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid until timestamp"})
			return
		}
		filter.Until = &t
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	page, err := h.eventQueries.ListEvents(c.Request.Context(), filter, limit, c.Query("after"))
	if err != nil {
		if errors.Is(err, errs.ErrDomainValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp, err := resdto.FromEventPage(page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
