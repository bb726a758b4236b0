package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/grpc"
	httpAdapter "github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/http"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/rakuten"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/sqlite"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/catalog"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/config"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/pkg/tlsconfig"
)

func main() {
	// Read configuration from defaults, leafit.yaml and environment
	cfg, err := config.Load(viper.GetViper(), os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info().Msg("starting diagnosis service")

	// Load plant catalog
	plants, err := catalog.LoadWithOverlays(cfg.CatalogGlob)
	if err != nil {
		log.Fatal().Err(err).Str("catalog_glob", cfg.CatalogGlob).Msg("failed to load plant catalog")
	}
	log.Info().Int("plants", plants.Len()).Msg("loaded plant catalog")

	// Initialize product cache
	var cache domain.ProductCache
	switch cfg.CacheType {
	case "sqlite":
		c, err := sqlite.NewProductCache(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to open SQLite database")
		}
		defer c.Close()
		cache = c
		log.Info().Str("db_path", cfg.DBPath).Msg("initialized SQLite product cache")
	default:
		cache = memory.NewProductCache()
		log.Info().Msg("initialized in-memory product cache")
	}

	// Initialize product searcher
	var upstream ports.ProductSearcher
	switch cfg.SearcherType {
	case "rakuten":
		client, err := rakuten.NewClient(rakuten.Config{
			ApplicationID: cfg.RakutenAppID,
			AffiliateID:   cfg.RakutenAffiliateID,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Rakuten client")
		}
		upstream = client
		log.Info().Bool("affiliate", cfg.RakutenAffiliateID != "").Msg("initialized Rakuten searcher")
	default:
		upstream = mock.NewFakeSearcher(5).WithLatency(200 * time.Millisecond)
		log.Info().Msg("initialized mock searcher")
	}
	searcher := ports.NewCachingSearcher(upstream, cache, cfg.CacheTTL)

	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	if cfg.TLSCert != "" {
		tlsCfg, err := tlsconfig.LoadServerTLS(cfg.TLSCert, cfg.TLSKey, cfg.TLSCA)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsCfg)))
		log.Info().Bool("client_auth", cfg.TLSCA != "").Msg("TLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, starting without TLS (dev mode only)")
	}

	// Create gRPC server
	grpcServer := grpc.NewServer(serverOpts...)
	grpcAdapter.RegisterDiagnosisServer(grpcServer, grpcAdapter.NewDiagnosisHandler(plants, searcher, cfg.BaseURL))

	// Enable gRPC reflection for grpcurl testing
	reflection.Register(grpcServer)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}

	log.Info().Str("port", cfg.Port).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("failed to serve gRPC")
		}
	}()

	// Create web server
	web, err := httpAdapter.NewHandler(plants, searcher, httpAdapter.Options{
		BaseURL:     cfg.BaseURL,
		LookupDelay: cfg.LookupDelay,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create web handler")
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           web.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("port", cfg.HTTPPort).Str("base_url", cfg.BaseURL).Msg("HTTP server listening")

	go func() {
		var err error
		if cfg.TLSCert != "" {
			err = httpServer.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to serve HTTP")
		}
	}()

	// Start background cache janitor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitor := ports.NewCacheJanitor(cache, cfg.CleanupInterval, cfg.CacheTTL)
	go janitor.Start(ctx)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	cancel() // Stop janitor

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown did not complete")
	}
	grpcServer.GracefulStop()

	log.Info().Msg("server stopped")
}
