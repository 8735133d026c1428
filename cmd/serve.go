package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "team-task-hub.com/team-task-hub/internal/configs"
	httpapi "team-task-hub.com/team-task-hub/internal/http"
	"team-task-hub.com/team-task-hub/internal/identifier"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
	"team-task-hub.com/team-task-hub/internal/services"
	"team-task-hub.com/team-task-hub/internal/sideeffects"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task coordination HTTP API and the side-effect pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		db := config.New(cfg.DatabaseDSN)

		taskRepo := repository.NewTaskRepository(db)
		profileRepo := repository.NewProfileRepository(db)
		commentRepo := repository.NewCommentRepository(db)
		activityRepo := repository.NewActivityRepository(db)
		notificationRepo := repository.NewNotificationRepository(db)
		nomenclatureRepo := repository.NewNomenclatureRepository(db)

		var allocator identifier.Allocator
		if cfg.CounterBackend == config.CounterBackendRedis {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()

			redisAllocator := identifier.NewRedisAllocator(redisClient, cfg.CounterKey, nomenclatureRepo)
			if err := redisAllocator.Seed(context.Background()); err != nil {
				log.Fatalf("failed to seed redis counter: %v", err)
			}
			allocator = redisAllocator
		} else {
			allocator = identifier.NewDatabaseAllocator(nomenclatureRepo)
		}

		pipeline := sideeffects.New(activityRepo, notificationRepo, cfg.PipelineWorkers, cfg.PipelineQueueSize)

		taskService := services.NewTaskService(taskRepo, profileRepo, allocator, pipeline)
		commentService := services.NewCommentService(commentRepo, taskRepo)
		notificationService := services.NewNotificationService(notificationRepo)
		profileService := services.NewProfileService(profileRepo, pipeline)
		nomenclatureService := services.NewNomenclatureService(nomenclatureRepo, profileRepo, pipeline)
		analyticsService := services.NewAnalyticsService(taskRepo, profileRepo)
		activityService := services.NewActivityService(activityRepo)

		e := echo.New()
		handler := httpapi.NewHandler(
			taskService,
			commentService,
			notificationService,
			profileService,
			nomenclatureService,
			analyticsService,
			activityService,
		)
		httpapi.Register(e, handler, profileService, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		pipeline.Shutdown(ctx)

		log.Println("HTTP server and side-effect pipeline shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
