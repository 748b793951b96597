// Package wire provides dependency injection for the barter application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/barter/internal/adapters/cli"
	"github.com/example/barter/internal/adapters/httpapi"
	"github.com/example/barter/internal/adapters/metrics"
	"github.com/example/barter/internal/adapters/sqlite"
	"github.com/example/barter/internal/app"
	"github.com/example/barter/internal/config"
	"github.com/example/barter/internal/db"
	"github.com/example/barter/internal/logger"
	"github.com/example/barter/internal/ports/primary"
)

var (
	cfg              = config.Default()
	database         *sql.DB
	recorder         *metrics.PrometheusRecorder
	messageService   primary.MessageService
	directoryService primary.DirectoryService
	once             sync.Once
)

// Configure sets the configuration used when services are first built.
// It has no effect once any service has been requested.
func Configure(c *config.Config) {
	if c != nil {
		cfg = c
	}
}

// Config returns the active configuration.
func Config() *config.Config {
	return cfg
}

// DB returns the shared database handle.
func DB() *sql.DB {
	once.Do(initServices)
	return database
}

// MessageService returns the singleton MessageService instance.
func MessageService() primary.MessageService {
	once.Do(initServices)
	return messageService
}

// DirectoryService returns the singleton DirectoryService instance.
func DirectoryService() primary.DirectoryService {
	once.Do(initServices)
	return directoryService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	database, err = db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters over the shared connection
	messageRepo := sqlite.NewMessageRepository(database)
	userRepo := sqlite.NewUserRepository(database)
	offerRepo := sqlite.NewOfferRepository(database)
	recorder = metrics.NewPrometheusRecorder()

	messageService = app.NewMessageService(
		messageRepo,
		userRepo,
		offerRepo,
		recorder,
		logger.Log.Named("messages"),
		app.MessageServiceConfig{
			DefaultPageSize: cfg.PageSize,
			MaxPageSize:     cfg.MaxPageSize,
			MaxBodyLength:   cfg.MaxBody,
		},
	)
	directoryService = app.NewDirectoryService(userRepo, offerRepo)

	logger.Log.Debug("services initialized", zap.String("db", cfg.DBPath))
}

// HTTPServer returns a new API server over the singleton services.
func HTTPServer() *httpapi.Server {
	once.Do(initServices)
	return httpapi.NewServer(messageService, httpapi.Options{
		Metrics:      recorder.Handler(),
		Health:       func(ctx context.Context) error { return database.PingContext(ctx) },
		SendRPS:      cfg.RateRPS,
		SendBurst:    cfg.RateBurst,
		MaxBodyBytes: cfg.MaxRequest,
	})
}

// MessageAdapter returns a new MessageAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func MessageAdapter() *cliadapter.MessageAdapter {
	return MessageAdapterWithOutput(os.Stdout)
}

// MessageAdapterWithOutput returns a new MessageAdapter writing to the given output.
func MessageAdapterWithOutput(out io.Writer) *cliadapter.MessageAdapter {
	once.Do(initServices)
	return cliadapter.NewMessageAdapter(messageService, out)
}

// DirectoryAdapter returns a new DirectoryAdapter writing to stdout.
func DirectoryAdapter() *cliadapter.DirectoryAdapter {
	return DirectoryAdapterWithOutput(os.Stdout)
}

// DirectoryAdapterWithOutput returns a new DirectoryAdapter writing to the given output.
func DirectoryAdapterWithOutput(out io.Writer) *cliadapter.DirectoryAdapter {
	once.Do(initServices)
	return cliadapter.NewDirectoryAdapter(directoryService, out)
}
