package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aurumly/treasury/internal/account"
	accountdomain "github.com/aurumly/treasury/internal/account/domain"
	"github.com/aurumly/treasury/internal/balance"
	balancedomain "github.com/aurumly/treasury/internal/balance/domain"
	"github.com/aurumly/treasury/internal/campaign"
	"github.com/aurumly/treasury/internal/commission"
	commissiondomain "github.com/aurumly/treasury/internal/commission/domain"
	"github.com/aurumly/treasury/internal/config"
	"github.com/aurumly/treasury/internal/ledger"
	ledgerdomain "github.com/aurumly/treasury/internal/ledger/domain"
	"github.com/aurumly/treasury/internal/payout"
	payoutdomain "github.com/aurumly/treasury/internal/payout/domain"
	"github.com/aurumly/treasury/internal/referral"
	"github.com/aurumly/treasury/internal/wallet"
	walletdomain "github.com/aurumly/treasury/internal/wallet/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	account.Module,
	ledger.Module,
	referral.Module,
	campaign.Module,
	commission.Module,
	wallet.Module,
	payout.Module,
	balance.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log.Named("http"))
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	accountSvc    accountdomain.Service
	ledgerSvc     ledgerdomain.Service
	commissionSvc commissiondomain.Service
	walletSvc     walletdomain.Service
	payoutSvc     payoutdomain.Service
	balanceSvc    balancedomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	AccountSvc    accountdomain.Service
	LedgerSvc     ledgerdomain.Service
	CommissionSvc commissiondomain.Service
	WalletSvc     walletdomain.Service
	PayoutSvc     payoutdomain.Service
	BalanceSvc    balancedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		accountSvc:    p.AccountSvc,
		ledgerSvc:     p.LedgerSvc,
		commissionSvc: p.CommissionSvc,
		walletSvc:     p.WalletSvc,
		payoutSvc:     p.PayoutSvc,
		balanceSvc:    p.BalanceSvc,
	}

	svc.registerPartnerRoutes()
	svc.registerAdminRoutes()
	svc.registerWalletRoutes()
	svc.registerInternalRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerPartnerRoutes() {
	partner := s.engine.Group("/api/partner")

	partner.GET("/earnings", s.GetPartnerEarnings)
	partner.POST("/request-payout", s.RequestPayout)
	partner.GET("/payout-history", s.ListPartnerPayouts)
	partner.GET("/commissions", s.ListPartnerCommissions)
	partner.GET("/ledger", s.ListPartnerLedger)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")

	admin.POST("/accounts", s.CreateAccount)
	admin.GET("/commissions", s.ListCommissions)
	admin.GET("/commissions/payouts", s.ListPayouts)
	admin.PUT("/commissions/payouts/:id/status", s.ResolvePayout)
}

func (s *Server) registerWalletRoutes() {
	wallet := s.engine.Group("/wallet")

	wallet.GET("/balance", s.GetWalletBalance)
	wallet.POST("/topup", s.TopUpWallet)
	wallet.POST("/debit", s.DebitWallet)
	wallet.GET("/transactions", s.ListWalletTransactions)
}

func (s *Server) registerInternalRoutes() {
	internal := s.engine.Group("/internal")

	internal.POST("/orders/completed", s.OrderCompleted)
}
