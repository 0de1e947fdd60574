package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gitlab.com/przworld-exchange/economy_core/actions"
	"gitlab.com/przworld-exchange/economy_core/logger"
)

func (srv *server) ListenToRequests() {
	log.Info().Str("worker", "http_listen_to_requests").Str("action", "start").Msg("HTTP Listen to requests - started")
	defer log.Info().Str("worker", "http_listen_to_requests").Str("action", "stop").Msg("HTTP Listen to requests - stopped")

	a := srv.actions

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Length", "Content-Type", "Accept", "X-Api-Key", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "OPTIONS"}

	r.Use(cors.New(corsConfig)) // Allow requests from anywhere
	r.Use(gin.Recovery())       // Recovery middleware recovers from any panics and writes a 500 if there was one.

	r.Use(logger.SetLogger())

	r.GET("/ping", actions.Ping)

	// token and market surface
	{
		r.POST("/token/transfer", a.Transfer)
		r.POST("/token/approve", a.Approve)
		r.GET("/token/balance/:account", a.GetBalance)
		r.GET("/token/allowance", a.GetAllowance)
		r.GET("/token/supply", a.GetTotalSupply)
		r.GET("/token/trading", a.GetTradingStatus)

		r.POST("/stable/transfer", a.TransferStable)
		r.POST("/stable/approve", a.ApproveStable)
		r.GET("/stable/balance/:account", a.GetStableBalance)

		r.POST("/market/buy", a.Buy)
		r.POST("/market/sell", a.Sell)
	}

	// nft and rewards surface
	{
		r.POST("/nft/redeem", a.Redeem)
		r.POST("/nft/transfer", a.NftTransfer)
		r.GET("/nft/supply", a.GetNftSupply)
		r.GET("/nft/owner/:token_id", a.GetNftOwner)
		r.GET("/nft/uri/:token_id", a.GetNftURI)
		r.GET("/nft/balance/:account", a.GetNftBalance)
		r.GET("/nft/rewards/:account", a.GetRewardBalance)
		r.POST("/nft/rewards/withdraw", a.WithdrawRewards)
	}

	// privileged issuer surface
	admin := r.Group("/admin", a.RequireAdminKey())
	{
		admin.POST("/trading/enable", a.EnableTrading)
		admin.POST("/ownership", a.TransferOwnership)
		admin.GET("/fees", a.GetFees)
		admin.POST("/fees", a.SetFees)
		admin.POST("/exempt", a.SetExempt)
		admin.POST("/distributor", a.SetRewardDistributor)
		admin.POST("/rescue/tokens", a.RescueTokens)
		admin.POST("/rescue/base", a.RescueBase)
	}

	srv.HTTP = &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.config.Server.API.Port),
		Handler: r,
	}

	srv.HTTP.SetKeepAlivesEnabled(srv.config.Server.API.KeepAlive)

	port := srv.config.Server.API.Port
	httpServer := srv.HTTP
	if err := httpServer.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			log.Error().Err(err).Str("section", "server").Str("action", "ListenToRequests").Msgf("Unable to listen %d port", port)
		}
	}
}
