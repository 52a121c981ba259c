// Package server initializes and runs the secret-management backend:
// database and migrations, the keystore/crypto pipeline, the audit sink,
// the rotation job and the metrics endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/szrnka-peter/give-my-secret/internal/cryptox"
	"github.com/szrnka-peter/give-my-secret/internal/filex"
	"github.com/szrnka-peter/give-my-secret/internal/logging"
	"github.com/szrnka-peter/give-my-secret/internal/server/apikeys"
	"github.com/szrnka-peter/give-my-secret/internal/server/config"
	"github.com/szrnka-peter/give-my-secret/internal/server/crypto"
	"github.com/szrnka-peter/give-my-secret/internal/server/events"
	"github.com/szrnka-peter/give-my-secret/internal/server/filestore"
	"github.com/szrnka-peter/give-my-secret/internal/server/iprestriction"
	"github.com/szrnka-peter/give-my-secret/internal/server/keystore"
	"github.com/szrnka-peter/give-my-secret/internal/server/metrics"
	"github.com/szrnka-peter/give-my-secret/internal/server/repositories/repomanager"
	"github.com/szrnka-peter/give-my-secret/internal/server/rotation"
	"github.com/szrnka-peter/give-my-secret/internal/server/secrets"
	"github.com/szrnka-peter/give-my-secret/internal/server/sysprops"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	publisher       *events.AsyncPublisher
	rotationJob     *rotation.Job
	cleanupJob      *events.CleanupJob
	SecretService   *secrets.Service
	KeystoreService *keystore.Service
	IpService       *iprestriction.Service
	ApiKeyService   *apikeys.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := newFilestore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	validator := keystore.NewValidator(rm.Keystores(db), rm.KeystoreAliases(db), logger)
	dataService := keystore.NewDataService(rm.Keystores(db), rm.KeystoreAliases(db), store, logger)

	cipher, err := crypto.NewCipherService(dataService, cfg.CryptoSecret, cfg.CryptoIV, m, logger)
	if err != nil {
		return nil, fmt.Errorf("crypto init error: %w", err)
	}

	fieldCipher, err := cryptox.NewFieldCipher(cfg.CryptoSecret, cfg.CryptoIV)
	if err != nil {
		return nil, fmt.Errorf("field cipher init error: %w", err)
	}

	publisher := events.NewAsyncPublisher(rm.Events(db), cfg.EventBufferSize, logger)

	props := sysprops.NewService(rm.SystemProperties(db), cfg.PropertyCacheTTL)

	secretService := secrets.NewService(db, rm, validator, cipher, publisher, logger)
	keystoreService := keystore.NewService(db, rm, store, publisher, logger)
	ipService := iprestriction.NewService(rm.IpRestrictions(db), publisher, logger)
	apiKeyService := apikeys.NewService(rm.ApiKeys(db), fieldCipher, []byte(cfg.DigestSalt), publisher, logger)

	rotationService := rotation.NewService(rm.Secrets(db), cipher, publisher, logger)

	runnerID, err := os.Hostname()
	if err != nil {
		runnerID = "unknown"
	}

	job := rotation.NewJob(rm.Secrets(db), rotationService, props, m, logger,
		cfg.RotationInterval, cfg.RotationGrace, cfg.MultiNode, runnerID)

	cleanup := events.NewCleanupJob(rm.Events(db), props, logger, cfg.EventCleanupInterval)

	return &App{
		config:          cfg,
		logger:          logger,
		db:              db,
		publisher:       publisher,
		rotationJob:     job,
		cleanupJob:      cleanup,
		SecretService:   secretService,
		KeystoreService: keystoreService,
		IpService:       ipService,
		ApiKeyService:   apiKeyService,
	}, nil
}

func newFilestore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	switch cfg.Filestore {
	case config.FilestoreS3:
		return filestore.NewS3Store(ctx, filestore.S3Options{
			Region:       cfg.S3Region,
			User:         cfg.S3RootUser,
			Password:     cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	default:
		dir, err := filex.EnsureDir(cfg.KeystoreBasePath)
		if err != nil {
			return nil, fmt.Errorf("filestore init error: %w", err)
		}
		return filestore.NewLocalStore(dir), nil
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.publisher.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.rotationJob.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.cleanupJob.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startMetricsServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
