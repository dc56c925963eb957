package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	commissiondomain "github.com/aurumly/treasury/internal/commission/domain"
)

type orderCompletedBody struct {
	OrderID     string       `json:"order_id"`
	UserID      snowflake.ID `json:"user_id"`
	OrderType   string       `json:"order_type"`
	OrderAmount int64        `json:"order_amount"`
	OccurredAt  time.Time    `json:"occurred_at"`
}

// OrderCompleted ingests completed orders from checkout. Delivery is
// at-least-once, so redeliveries return the original record. Unattributed and
// zero-commission orders are acknowledged with 202 so the sender does not
// retry them.
func (s *Server) OrderCompleted(c *gin.Context) {
	var body orderCompletedBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	record, err := s.commissionSvc.RecordOrderCommission(c.Request.Context(), commissiondomain.OrderEvent{
		OrderID:     body.OrderID,
		UserID:      body.UserID,
		OrderType:   body.OrderType,
		OrderAmount: body.OrderAmount,
		OccurredAt:  body.OccurredAt,
	})
	if err != nil {
		if errors.Is(err, commissiondomain.ErrUnattributedOrder) || errors.Is(err, commissiondomain.ErrZeroCommission) {
			c.JSON(http.StatusAccepted, gin.H{
				"status":   "skipped",
				"order_id": body.OrderID,
			})
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
