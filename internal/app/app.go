package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	config "github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/cfg"
	v1Http "github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/delivery/v1/http"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/infrastructure/kafka"
	minioInfra "github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/infrastructure/minio"
	s3Repo "github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/repository/minio"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/repository/pgdb"
	pgdbConv "github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/repository/pgdb/converter"
	redisRepo "github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/repository/redis"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/clients"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/closer"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/postgres"
	"github.com/jimlawless/whereami"
)

// Run wires the application together and blocks until a shutdown signal or a
// fatal server error.
func Run(cfg *config.Config, log logger.Logger) error {
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	cl := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	prConv := pgdbConv.NewProductConverterImpl()
	userConv := pgdbConv.NewAdminUserConverterImpl()
	contactConv := pgdbConv.NewContactMessageConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	adminUserRepo := pgdb.NewAdminUserRepo(db.Pool, userConv)
	contactRepo := pgdb.NewContactRepo(db.Pool, contactConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool)
	txManager := pgdb.NewTxManager(db.Pool)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio.BucketName, log, appCtx)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	redisCancel()

	sessionRepo := redisRepo.NewSessionRepo(redisClient)
	cacheRepo := redisRepo.NewCacheRepo(redisClient, cfg.Redis, log)

	authUC := usecase.NewAuthUC(adminUserRepo, sessionRepo, cfg.Auth, log)
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := authUC.EnsureAdmin(bootstrapCtx, cfg.Admin.Email, cfg.Admin.Password)
		bootstrapCancel()
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		log.Infof("bootstrap admin ensured: %s", cfg.Admin.Email)
	}

	catalogUC, err := usecase.NewCatalogUC(productRepo, outboxRepo, txManager, imagesInfra, cacheRepo, authUC, log)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		catalogUC.Close()
		return nil
	})

	contactUC := usecase.NewContactUC(contactRepo, log)

	producer := kafka.NewProducer(log, cfg.Kafka)
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, producer, log, 0)
	outboxWorker.Start(appCtx)
	cl.Add(func(ctx context.Context) error {
		outboxWorker.Wait()
		return nil
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(cfg.Http, catalogUC, authUC, contactUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		log.Infof("received shutdown signal, stopping gracefully")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		log.Errorf(err, "HTTP server shutdown error")
	} else {
		log.Infof("HTTP server stopped")
	}

	// Stop background workers, then close resources LIFO.
	appCancel()

	if err := imagesInfra.WaitForCleanup(shutdownCtx); err != nil {
		log.Warnf("image cleanup did not finish: %v", err)
	}

	if err := cl.Close(shutdownCtx); err != nil {
		log.Errorf(err, "shutdown finished with errors")
	}

	return appErr
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
