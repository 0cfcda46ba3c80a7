// Package server initializes and runs the filemeta server: it opens the
// database, runs migrations, wires optional cache, event and blob backends,
// and serves gRPC until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/logging"
	"github.com/dmitrijs2005/filemeta/internal/server/blobstore"
	"github.com/dmitrijs2005/filemeta/internal/server/cache"
	"github.com/dmitrijs2005/filemeta/internal/server/config"
	"github.com/dmitrijs2005/filemeta/internal/server/events"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filemeta/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/filemeta/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	closers []io.Closer
	files   *services.FileService
	uploads *services.UploadService
	quotas  *services.QuotaService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogFormat, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		app.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	var fileCache services.FileCache = cache.Nop{}
	if c.RedisAddr != "" {
		rc, client, err := cache.Connect(ctx, c.RedisAddr, c.CacheTTL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		app.closers = append(app.closers, client)
		fileCache = rc
	}

	var publisher services.EventPublisher = events.NopPublisher{}
	if c.AMQPURL != "" {
		p, err := events.Connect(c.AMQPURL, c.AMQPExchange)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("amqp: %w", err)
		}
		app.closers = append(app.closers, p)
		publisher = p
	}

	var blobs services.BlobAborter = blobstore.Nop{}
	if c.S3BaseEndpoint != "" {
		s3, err := blobstore.NewS3Store(ctx, c)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("s3: %w", err)
		}
		blobs = s3
	}

	tx := dbx.NewSQLTransactor(db, nil)
	app.quotas = services.NewQuotaService(tx, m, c.DefaultQuotaLimit, logger)
	app.uploads = services.NewUploadService(tx, m, app.quotas, blobs, publisher, logger)
	app.files = services.NewFileService(tx, m, app.quotas, fileCache, publisher, logger)

	return app, nil
}

// Close releases the database and backend connections.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		_ = app.closers[i].Close()
	}
	if app.db != nil {
		_ = app.db.Close()
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

// Run serves until ctx is cancelled or a shutdown signal arrives.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.files, app.uploads, app.quotas, app.config.SecretKey)
		return s.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "Stopped")
	return nil
}
