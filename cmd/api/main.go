package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/config"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/handler"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/middleware"
	pgRepo "github.com/aleksacoach93b/wellness-monitor-sub000/internal/repository/postgres"
	redisRepo "github.com/aleksacoach93b/wellness-monitor-sub000/internal/repository/redis"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service"
	ws "github.com/aleksacoach93b/wellness-monitor-sub000/internal/websocket"
	"github.com/aleksacoach93b/wellness-monitor-sub000/pkg/auth"
	"github.com/aleksacoach93b/wellness-monitor-sub000/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	surveyRepo := pgRepo.NewSurveyRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	responseRepo := pgRepo.NewResponseRepo(db)
	playerRepo := pgRepo.NewPlayerRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Контекст жизненного цикла фоновых горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// WebSocket-подсистема живого фида
	hub := ws.NewHub()
	go hub.Run(ctx)
	wsManager := ws.NewManager(hub)

	// Почтовые оповещения
	var alerter service.Alerter
	if cfg.Email.Enabled {
		resendAlerter, err := service.NewResendAlerter(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.Recipients)
		if err != nil {
			log.Printf("Failed to initialize alerter: %v", err)
			os.Exit(1)
		}
		alerter = resendAlerter
	} else {
		alerter = &service.NoopAlerter{}
	}

	// Сервисы
	scheduleService, err := service.NewScheduleService(cfg.Schedule.Timezone)
	if err != nil {
		log.Printf("Failed to initialize schedule service: %v", err)
		os.Exit(1)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWT service: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(cfg.Admin.PasswordHash, jwtService)
	if err != nil {
		log.Printf("Failed to initialize auth service: %v", err)
		os.Exit(1)
	}

	surveyService := service.NewSurveyService(db, surveyRepo, questionRepo, cacheRepo)
	playerService := service.NewPlayerService(playerRepo)
	responseService := service.NewResponseService(
		responseRepo, surveyRepo, playerRepo, cacheRepo,
		scheduleService, wsManager, alerter, cfg.Email.IntensityThreshold,
	)
	exportService := service.NewExportService(
		surveyRepo, responseRepo, playerRepo, cacheRepo,
		cfg.Export.CacheTTLSec, scheduleService.Location(),
	)

	// Обработчики
	authHandler := handler.NewAuthHandler(authService)
	surveyHandler := handler.NewSurveyHandler(surveyService, scheduleService)
	responseHandler := handler.NewResponseHandler(responseService)
	exportHandler := handler.NewExportHandler(exportService)
	playerHandler := handler.NewPlayerHandler(playerService)
	wsHandler := handler.NewWSHandler(wsManager)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := os.Getenv("GIN_MODE") == "release"

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Вход администратора
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", rateLimiter.Limit(middleware.AuthRateLimitConfig()), authHandler.Login)
		}

		// Публичные маршруты киоска: прохождение опроса
		surveys := api.Group("/surveys")
		{
			surveys.GET("/:id", middleware.ExtractUUIDParam("id", "surveyID"), surveyHandler.GetSurvey)
			surveys.GET("/:id/schedule", middleware.ExtractUUIDParam("id", "surveyID"), surveyHandler.GetSurveySchedule)
			surveys.POST("/:id/responses",
				middleware.ExtractUUIDParam("id", "surveyID"),
				rateLimiter.Limit(middleware.SubmitRateLimitConfig()),
				responseHandler.SubmitResponse)
			surveys.GET("/:id/responses/today", middleware.ExtractUUIDParam("id", "surveyID"), responseHandler.GetTodayResponse)

			// Административные маршруты опросов
			adminSurveys := api.Group("/surveys")
			adminSurveys.Use(authMiddleware.RequireAdmin())
			{
				adminSurveys.GET("", surveyHandler.ListSurveys)
				adminSurveys.POST("", surveyHandler.CreateSurvey)
				adminSurveys.PUT("/:id", middleware.ExtractUUIDParam("id", "surveyID"), surveyHandler.UpdateSurvey)
				adminSurveys.PATCH("/:id/active", middleware.ExtractUUIDParam("id", "surveyID"), surveyHandler.SetSurveyActive)
				adminSurveys.DELETE("/:id", middleware.ExtractUUIDParam("id", "surveyID"), surveyHandler.DeleteSurvey)
				adminSurveys.GET("/:id/responses", middleware.ExtractUUIDParam("id", "surveyID"), responseHandler.ListResponses)
				adminSurveys.GET("/:id/export", middleware.ExtractUUIDParam("id", "surveyID"), exportHandler.ExportSurvey)
			}
		}

		// Ростер игроков
		players := api.Group("/players")
		{
			players.GET("", playerHandler.ListPlayers)
			players.GET("/:id", middleware.ExtractUUIDParam("id", "playerID"), playerHandler.GetPlayer)

			adminPlayers := api.Group("/players")
			adminPlayers.Use(authMiddleware.RequireAdmin())
			{
				adminPlayers.POST("", playerHandler.CreatePlayer)
				adminPlayers.PUT("/:id", middleware.ExtractUUIDParam("id", "playerID"), playerHandler.UpdatePlayer)
				adminPlayers.PATCH("/:id/active", middleware.ExtractUUIDParam("id", "playerID"), playerHandler.SetPlayerActive)
				adminPlayers.DELETE("/:id", middleware.ExtractUUIDParam("id", "playerID"), playerHandler.DeletePlayer)
			}
		}
	}

	// Живой фид отправок для тренерского дашборда
	router.GET("/ws", wsHandler.HandleConnection)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30
	}
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// После получения сигнала SIGINT или SIGTERM вызываем cancel() для завершения горутин
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
