package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	commissiondomain "github.com/aurumly/treasury/internal/commission/domain"
	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	payoutdomain "github.com/aurumly/treasury/internal/payout/domain"
)

func (s *Server) GetPartnerEarnings(c *gin.Context) {
	partnerID, err := parseIDQuery(c, "partner_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.balanceSvc.Earnings(c.Request.Context(), partnerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type requestPayoutBody struct {
	PartnerID    snowflake.ID `json:"partner_id"`
	Amount       int64        `json:"amount"`
	Method       string       `json:"method"`
	MethodDetail string       `json:"methodDetail"`
}

func (s *Server) RequestPayout(c *gin.Context) {
	var body requestPayoutBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if body.PartnerID == 0 {
		AbortWithError(c, newValidationError("partner_id", "required", "partner_id is required"))
		return
	}

	created, err := s.payoutSvc.Request(c.Request.Context(), payoutdomain.RequestPayout{
		PartnerID:   body.PartnerID,
		Amount:      body.Amount,
		Method:      payoutdomain.Method(strings.ToUpper(body.Method)),
		Destination: body.MethodDetail,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) ListPartnerPayouts(c *gin.Context) {
	partnerID, err := parseIDQuery(c, "partner_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.payoutSvc.History(c.Request.Context(), payoutdomain.HistoryRequest{
		PartnerID: partnerID,
		Status:    payoutStatusFilter(c.Query("status")),
		Page:      page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPartnerCommissions(c *gin.Context) {
	partnerID, err := parseIDQuery(c, "partner_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.commissionSvc.List(c.Request.Context(), commissiondomain.ListRequest{
		PartnerID: partnerID,
		OrderType: c.Query("type"),
		Page:      page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPartnerLedger(c *gin.Context) {
	partnerID, err := parseIDQuery(c, "partner_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.ledgerSvc.List(c.Request.Context(), ledgerdomain.ListEntriesRequest{
		AccountID: partnerID,
		Page:      page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func payoutStatusFilter(raw string) payoutdomain.Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(payoutdomain.StatusPending):
		return payoutdomain.StatusPending
	case string(payoutdomain.StatusPaid):
		return payoutdomain.StatusPaid
	case string(payoutdomain.StatusRejected):
		return payoutdomain.StatusRejected
	default:
		return ""
	}
}
