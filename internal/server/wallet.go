package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	walletdomain "github.com/aurumly/treasury/internal/wallet/domain"
)

func (s *Server) GetWalletBalance(c *gin.Context) {
	accountID, err := parseIDQuery(c, "account_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	balance, err := s.walletSvc.Balance(c.Request.Context(), accountID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account_id": accountID,
		"balance":    balance,
	})
}

type topUpBody struct {
	AccountID      snowflake.ID `json:"account_id"`
	Amount         int64        `json:"amount"`
	PaymentMethod  string       `json:"payment_method"`
	IdempotencyKey string       `json:"idempotency_key"`
}

func (s *Server) TopUpWallet(c *gin.Context) {
	var body topUpBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if body.AccountID == 0 {
		AbortWithError(c, newValidationError("account_id", "required", "account_id is required"))
		return
	}

	result, err := s.walletSvc.TopUp(c.Request.Context(), walletdomain.TopUpRequest{
		AccountID:     body.AccountID,
		Amount:        body.Amount,
		ReferenceID:   body.IdempotencyKey,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type debitBody struct {
	AccountID   snowflake.ID `json:"account_id"`
	Amount      int64        `json:"amount"`
	ReferenceID string       `json:"reference_id"`
}

func (s *Server) DebitWallet(c *gin.Context) {
	var body debitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if body.AccountID == 0 {
		AbortWithError(c, newValidationError("account_id", "required", "account_id is required"))
		return
	}

	result, err := s.walletSvc.Debit(c.Request.Context(), walletdomain.DebitRequest{
		AccountID:   body.AccountID,
		Amount:      body.Amount,
		ReferenceID: body.ReferenceID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) ListWalletTransactions(c *gin.Context) {
	accountID, err := parseIDQuery(c, "account_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.walletSvc.Transactions(c.Request.Context(), walletdomain.TransactionsRequest{
		AccountID: accountID,
		Page:      page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
