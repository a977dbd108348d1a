package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/noah-isme/mi-attendance-api/internal/handler"
	"github.com/noah-isme/mi-attendance-api/internal/models"
	"github.com/noah-isme/mi-attendance-api/internal/repository"
	"github.com/noah-isme/mi-attendance-api/internal/service"
	"github.com/noah-isme/mi-attendance-api/pkg/cache"
	"github.com/noah-isme/mi-attendance-api/pkg/config"
	"github.com/noah-isme/mi-attendance-api/pkg/database"
	"github.com/noah-isme/mi-attendance-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.Int("port", 0, "listen port (env PORT)")
	flags.String("env", "", "environment: development, production or test (env ENV)")
	flags.String("mongo-uri", "", "MongoDB connection string (env MONGO_URI)")
	bindFlag(v, cmd, "PORT", "port")
	bindFlag(v, cmd, "ENV", "env")
	bindFlag(v, cmd, "MONGO_URI", "mongo-uri")

	return cmd
}

// bindFlag lets an explicitly set flag override the environment.
func bindFlag(v *viper.Viper, cmd *cobra.Command, key, name string) {
	_ = v.BindPFlag(key, cmd.Flags().Lookup(name))
}

func serve(parent context.Context, v *viper.Viper) error {
	cfg, err := config.LoadWith(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Error("mongo connection failed", zap.Error(err))
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logr.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	metrics := service.NewMetricsService()

	db := client.Database(cfg.Mongo.Database)
	students := repository.NewDocumentRepository[models.Student](metrics, logr)
	if err := students.Init(db, cfg.Mongo.StudentCollection); err != nil {
		return err
	}
	teachers := repository.NewDocumentRepository[models.Teacher](metrics, logr)
	if err := teachers.Init(db, cfg.Mongo.TeacherCollection); err != nil {
		return err
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis, cfg.Cache)
	if err != nil {
		logr.Warn("redis unavailable, serving without cache", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "records")
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, redisClient != nil)

	opts := service.RecordOptions{
		CoerceUpdateParams: cfg.Records.CoerceUpdateParams,
		CacheTTL:           cfg.Cache.TTL,
	}
	logr.Info("record services ready",
		zap.String("database", cfg.Mongo.Database),
		zap.Bool("cache_enabled", cacheSvc.Enabled()),
		zap.Bool("coerce_update_params", opts.CoerceUpdateParams),
	)

	checks := map[string]handler.Pinger{
		"mongo": handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}),
	}
	if redisClient != nil {
		checks["redis"] = cacheRepo
	}

	router := newRouter(cfg, logr, routes{
		students: handler.NewRecordHandler[models.Student](service.NewRecordService[models.Student](students, cacheSvc, opts, logr)),
		teachers: handler.NewRecordHandler[models.Teacher](service.NewRecordService[models.Teacher](teachers, cacheSvc, opts, logr)),
		metrics:  handler.NewMetricsHandler(metrics, checks),
		observer: metrics,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logr.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
