package monitor

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Config for the monitoring endpoint
type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

var (
	TransfersProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "economy",
		Name:      "transfers_processed_total",
		Help:      "Number of token transfers processed",
	})
	FeesCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "economy",
		Name:      "fees_collected_units_total",
		Help:      "Fee units collected per category",
	}, []string{"category"})
	SwapAndLiquifyRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "economy",
		Name:      "swap_and_liquify_runs_total",
		Help:      "Number of swap and liquify executions",
	})
	VouchersRedeemed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "economy",
		Name:      "vouchers_redeemed_total",
		Help:      "Number of NFT vouchers redeemed",
	})
	RewardsWithdrawn = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "economy",
		Name:      "rewards_withdrawn_total",
		Help:      "Number of premium reflection withdrawals",
	})
	RejectedOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "economy",
		Name:      "rejected_operations_total",
		Help:      "Operations rejected and rolled back, by reason",
	}, []string{"reason"})
)

var metricsServer *http.Server

// LoopProfilingServer exposes the prometheus metrics endpoint when enabled
func LoopProfilingServer(cfg Config) {
	if !cfg.Enabled {
		return
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Info().Str("section", "monitor").Str("addr", addr).Msg("Starting metrics endpoint")
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer = &http.Server{Addr: addr, Handler: mux}
	if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Str("section", "monitor").Msg("Metrics endpoint stopped")
	}
}

// ShutdownServer stops the metrics endpoint
func ShutdownServer() {
	if metricsServer == nil {
		return
	}
	if err := metricsServer.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Str("section", "monitor").Msg("Unable to shutdown metrics endpoint")
	}
}
