package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grocerybag/grocerybag/internal/config"
	"github.com/grocerybag/grocerybag/internal/logging"
	"github.com/grocerybag/grocerybag/internal/sync"
)

// syncd keeps a local mirror of the server's dataset by polling the
// incremental update feed and merging each payload into an in-process store.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New("syncd", cfg.LogLevel)
	store := sync.NewStore()

	poller := sync.NewPoller(cfg.SyncServerURL, cfg.SyncInterval, func(payload sync.Payload) {
		res, err := store.Merge(payload)
		if err != nil && !errors.Is(err, sync.ErrMissingKey) {
			logger.Error("merge failed", "error", err)
			return
		}
		if res.Rejected > 0 {
			logger.Warn("rejected keyless records", "count", res.Rejected)
		}
		if res.Changed() {
			logger.Info("merged updates",
				"inserted", res.Inserted,
				"updated", res.Updated,
				"suppliers", store.Len(sync.CollectionSuppliers),
				"customers", store.Len(sync.CollectionCustomers),
				"purchases", store.Len(sync.CollectionPurchases),
				"sales", store.Len(sync.CollectionSales),
			)
		}
	}, logger)

	poller.Start(context.Background())
	logger.Info("polling for updates", "server", cfg.SyncServerURL, "interval", cfg.SyncInterval.String())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", "signal", sig.String())

	poller.Stop()
	logger.Info("poller stopped", "watermark", poller.Watermark())
}
