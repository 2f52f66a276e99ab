package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partnerportal/internal/app/dto"
	quoteapp "partnerportal/internal/app/handlers/quotes"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/infra/config"
	mongodb "partnerportal/internal/infra/db/mongo"
	"partnerportal/internal/infra/obs"
	"partnerportal/internal/infra/storage/memory"
)

// The portal's pricing engine as a command line tool: load a rate card,
// validate it and quote a booking against it. Useful for checking a
// partner's configuration without going through the dashboard.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		fixture  = flag.String("pricing", "", "path to a pricing document JSON (memory storage)")
		vendorID = flag.String("vendor", "", "vendor id")
		carID    = flag.String("car", "", "car id")
		period   = flag.String("period", "hourly", "rental period: hourly, weekly or monthly")
		start    = flag.String("start", "", "booking start, RFC 3339")
		end      = flag.String("end", "", "booking end, RFC 3339")
		distance = flag.String("distance", "0", "distance in km, decimal")
		doorstep = flag.Bool("doorstep", false, "deliver the car to the renter")
		timezone = flag.String("tz", "", "IANA zone of the listing's city")
	)
	flag.Parse()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	configs, cleanup, err := buildConfigStore(ctx, cfg, *fixture, logger)
	if err != nil {
		logger.Error("storage setup failed", "error", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	startAt, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		logger.Error("bad -start", "error", err)
		os.Exit(1)
	}
	endAt, err := time.Parse(time.RFC3339, *end)
	if err != nil {
		logger.Error("bad -end", "error", err)
		os.Exit(1)
	}

	handler := &quoteapp.GetQuoteHandler{
		Logger:     logger,
		Configs:    configs,
		Calculator: pricing.Resolver{},
	}
	view, err := handler.Handle(ctx, quoteapp.GetQuoteQuery{
		VendorID:   *vendorID,
		CarID:      *carID,
		Period:     *period,
		Start:      startAt,
		End:        endAt,
		DistanceKm: *distance,
		Doorstep:   *doorstep,
		Timezone:   *timezone,
	})
	if err != nil {
		if rej, ok := pricing.AsRejection(err); ok {
			printJSON(dto.NewRejectionView(rej))
			os.Exit(2)
		}
		logger.Error("quote failed", "error", err)
		os.Exit(1)
	}
	printJSON(view)
}

// buildConfigStore picks the configuration repository: MongoDB when
// configured, otherwise an in-memory store seeded from the -pricing file.
func buildConfigStore(ctx context.Context, cfg config.Config, fixture string, logger *slog.Logger) (pricing.Repository, func(), error) {
	if cfg.StorageMode == "mongo" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx); err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		return mongodb.NewPricingRepository(client.DB), cleanup, nil
	}

	store := memory.NewConfigRepository()
	if fixture == "" {
		return store, nil, nil
	}

	raw, err := os.ReadFile(fixture)
	if err != nil {
		return nil, nil, err
	}
	var doc dto.PricingDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", fixture, err)
	}
	pricingCfg, err := doc.DecodePricing()
	if err != nil {
		return nil, nil, err
	}
	if res := pricingCfg.Validate(); !res.OK() {
		logger.Warn("pricing document has validation errors", "errors", res.String())
	}
	if err := store.Save(ctx, pricingCfg); err != nil {
		return nil, nil, err
	}
	logger.Info("pricing document loaded",
		"path", fixture,
		"vendor_id", pricingCfg.Vendor,
		"car_id", pricingCfg.Car,
		"state", pricingCfg.State,
	)
	return store, nil, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
