// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cab/internal/config"
	httptransport "cab/internal/http"
	"cab/internal/infra"
	"cab/internal/maps"
	"cab/internal/modules/booking"
	"cab/internal/modules/dispatch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	routeService, err := maps.NewRouteService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}
	placesService, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("places init: %v", err)
	}

	tokens := dispatch.NewTokenSource(cfg.Dispatch.TokenURL, cfg.Dispatch.SigningKey, cfg.Dispatch.Subject)
	dispatchClient := dispatch.NewClient(cfg.Dispatch.BaseURL, tokens)

	bookingStore := booking.NewStore(dbPool)
	quoteCache := booking.NewQuoteCache(redisClient)
	bookingSvc := booking.NewService(
		bookingStore,
		quoteCache,
		routeService,
		dispatchClient,
		dispatch.OrderMeta{SourceID: cfg.Dispatch.SourceID, CompanyID: cfg.Dispatch.CompanyID},
		cfg.Quote.TTL,
	)

	handler := httptransport.NewRouter(bookingSvc, placesService)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
