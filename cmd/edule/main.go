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

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	webmw "github.com/xxxsen/common/webapi/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/xxxsen/edule/internal/config"
	"github.com/xxxsen/edule/internal/db"
	"github.com/xxxsen/edule/internal/handler"
	"github.com/xxxsen/edule/internal/middleware"
	"github.com/xxxsen/edule/internal/repo"
	"github.com/xxxsen/edule/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	var configPath string
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "edule",
		Short: "edule marketplace backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run edule server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := db.Open(ctx, cfg.Mongo)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer func() {
				if err := db.Close(context.Background(), client); err != nil {
					logutil.GetLogger(context.Background()).Error("close db", zap.Error(err))
				}
			}()
			database := client.Database(cfg.Mongo.Database)
			if cfg.Mongo.EnsureIndexes {
				if err := db.EnsureIndexes(ctx, database); err != nil {
					return err
				}
			}
			return runServer(ctx, cfg, database)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json (optional, env vars override it)")
	runCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(ctx context.Context, cfg *config.Config, database *mongo.Database) error {
	logutil.GetLogger(ctx).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Mongo.Database),
		zap.Strings("profile_update_fields", cfg.Routes.ProfileUpdateFields),
	)

	userRepo := repo.NewUserRepo(database)
	tuitionRepo := repo.NewTuitionRepo(database)
	applicantRepo := repo.NewApplicantRepo(database)
	connectRepo := repo.NewConnectRepo(database)

	jwtSecret := []byte(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	userService := service.NewUserService(userRepo, cfg.Routes.ProfileUpdateFields)
	tuitionService := service.NewTuitionService(tuitionRepo)
	applicantService := service.NewApplicantService(applicantRepo)
	connectService := service.NewConnectService(connectRepo)

	deps := handler.RouterDeps{
		Auth:       handler.NewAuthHandler(authService),
		Users:      handler.NewUserHandler(userService),
		Tuitions:   handler.NewTuitionHandler(tuitionService),
		Applicants: handler.NewApplicantHandler(applicantService),
		Connects:   handler.NewConnectHandler(connectService),
		Roles:      userService,
		JWTSecret:  jwtSecret,
		Gates:      cfg.Routes.Gates,
	}

	gin.SetMode(gin.ReleaseMode)
	engine, err := handler.NewEngine(deps,
		middleware.RequestID(),
		webmw.LogRequestMiddleware(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		gzip.Gzip(gzip.DefaultCompression),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
