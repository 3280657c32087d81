package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sjsage522/licitacaoworker/config"
	"sjsage522/licitacaoworker/helpers"
	"sjsage522/licitacaoworker/internal/crawler"
	"sjsage522/licitacaoworker/internal/output"
	"sjsage522/licitacaoworker/logger"
	crawlerrors "sjsage522/licitacaoworker/pkg/errors"
	"sjsage522/licitacaoworker/services/cache"
	"sjsage522/licitacaoworker/services/publisher"
	"sjsage522/licitacaoworker/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("root_url", cfg.RootURL).
		Str("output_format", cfg.OutputFormat).
		Msg("Starting application")

	// Set up context with cancellation on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	selectors, err := crawler.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		services.Cleanup()
		log.Fatal().Err(err).Msg("Failed to load selectors")
	}

	fetcher := crawler.NewHTTPFetcher(helpers.NewClient(cfg.HTTPTimeout), services.Cache, cfg.RateLimitBlock)
	controller := crawler.NewController(fetcher, crawler.Options{
		RootURL:           cfg.RootURL,
		Selectors:         selectors,
		Location:          cfg.Location,
		SkipFailedDetails: cfg.SkipFailedDetails,
	})

	w := worker.NewWorker(controller, services.Publisher, services.Output, output.Format(cfg.OutputFormat))
	if _, err := w.Run(ctx); err != nil {
		if ctx.Err() != nil {
			log.Warn().Msg("Interrupted, partial results written")
			return
		}
		services.Cleanup()
		log.Fatal().Err(err).Str("error_type", string(crawlerrors.TypeOf(err))).Msg("Run failed")
	}
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
	Output    io.Writer
	file      *os.File
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
		s.Publisher = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			logger.Error("Failed to close output file: %v", err)
		}
		s.file = nil
	}
}

// initializeServices initializes the optional cache and publisher and opens
// the output destination
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{Output: os.Stdout}

	// The rate limit guard is skipped when memcache is not configured or unreachable
	if cfg.MemcacheAddr != "" {
		memcacheService := cache.NewMemcacheService(cfg.MemcacheAddr, cfg.HTTPTimeout)
		if err := memcacheService.Ping(); err != nil {
			logger.Warn("Memcache at %s unreachable, rate limit guard disabled: %v", cfg.MemcacheAddr, err)
		} else {
			services.Cache = memcacheService
			logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
		}
	}

	if cfg.PublishEnabled {
		redisPublisher := publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		if err := redisPublisher.Ping(ctx); err != nil {
			redisPublisher.Close()
			return nil, err
		}
		services.Publisher = redisPublisher

		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			services.Cleanup()
			return nil, crawlerrors.NewOutput("failed to create "+cfg.OutputFile, err)
		}
		services.file = f
		services.Output = f
	}

	return services, nil
}
