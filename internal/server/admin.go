package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	accountdomain "github.com/aurumly/treasury/internal/account/domain"
	commissiondomain "github.com/aurumly/treasury/internal/commission/domain"
	payoutdomain "github.com/aurumly/treasury/internal/payout/domain"
)

type createAccountBody struct {
	OwnerID snowflake.ID `json:"owner_id"`
	Role    string       `json:"role"`
}

func (s *Server) CreateAccount(c *gin.Context) {
	var body createAccountBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	account, err := s.accountSvc.GetOrCreate(c.Request.Context(), body.OwnerID, accountdomain.Role(strings.ToUpper(body.Role)))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) ListCommissions(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.commissionSvc.List(c.Request.Context(), commissiondomain.ListRequest{
		OrderType: c.Query("type"),
		Page:      page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPayouts(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.payoutSvc.List(c.Request.Context(), payoutdomain.ListRequest{
		Status: payoutStatusFilter(c.Query("status")),
		Page:   page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type resolvePayoutBody struct {
	Note string `json:"note"`
}

func (s *Server) ResolvePayout(c *gin.Context) {
	payoutID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	decision := payoutStatusFilter(c.Query("status"))
	if decision == "" {
		AbortWithError(c, payoutdomain.ErrInvalidTransition)
		return
	}

	var body resolvePayoutBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resolved, err := s.payoutSvc.Resolve(c.Request.Context(), payoutdomain.ResolvePayout{
		PayoutID: payoutID,
		Decision: decision,
		Note:     body.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolved)
}
