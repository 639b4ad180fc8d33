package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kvolkov/ambulance_dispatch/internal/advisory"
	"github.com/kvolkov/ambulance_dispatch/internal/config"
	"github.com/kvolkov/ambulance_dispatch/internal/dispatch"
	"github.com/kvolkov/ambulance_dispatch/internal/fleet"
	"github.com/kvolkov/ambulance_dispatch/internal/geoip"
	v1 "github.com/kvolkov/ambulance_dispatch/internal/handler/http/v1"
	"github.com/kvolkov/ambulance_dispatch/internal/ledger"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/kvolkov/ambulance_dispatch/internal/routing"
	"github.com/kvolkov/ambulance_dispatch/internal/service"
	"github.com/kvolkov/ambulance_dispatch/internal/webhook"
	"github.com/kvolkov/ambulance_dispatch/internal/ws"
	"github.com/kvolkov/ambulance_dispatch/pkg/logger"
	redisclient "github.com/kvolkov/ambulance_dispatch/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/kvolkov/ambulance_dispatch/docs"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Ambulance Dispatch System API
// @version 1.0
// @description This is an Ambulance Dispatch System API server.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Определение центра симуляции: геолокация с откатом на фиксированные координаты
	center := resolveCenter(ctx, cfg, log)
	log.WithFields(logrus.Fields{"lat": center.Lat, "lng": center.Lng}).Info("Simulation center resolved")

	// Инициализация Redis клиента. Redis опционален: без него очередь
	// вебхуков заменяется заглушкой, а кэш маршрутов живет в памяти
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to Redis, continuing without it")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info("Successfully connected to Redis")
		}
	}

	// Кэш маршрутов и клиент маршрутизации
	var routeCache routing.RouteCache
	if redisClient != nil {
		routeCache = routing.NewRedisCache(redisClient, cfg.RouteCacheTTL)
	} else {
		routeCache = routing.NewMemoryCache()
	}
	routingClient := routing.NewClient(cfg, routeCache, log)

	// Политика выбора машины: внешний советчик плюс детерминированный откат
	var provider dispatch.AdvisoryProvider
	if cfg.AdvisoryAPIKey != "" {
		provider = advisory.NewClient(cfg, log)
	} else {
		log.Warn("Advisory API key is not set, using fallback dispatch only")
	}
	policy := dispatch.NewPolicy(provider, log)

	// Издатель вебхуков и воркер доставки
	var publisher webhook.Publisher
	if redisClient != nil {
		publisher = webhook.NewRedisPublisher(redisClient)
		if cfg.WebhookURL != "" {
			worker := webhook.NewWorker(redisClient, log, cfg)
			worker.Start(ctx)
		}
	} else {
		publisher = webhook.NewNoopPublisher()
	}

	// Живая лента состояния для клиентов
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	// Автопарк и больницы вокруг центра симуляции
	vehicles := models.GenerateFleet(center)
	hospitals := models.GenerateHospitals(center)
	sm := fleet.New(cfg, log, routingClient, vehicles, hospitals)

	// Леджер инцидентов и сервис диспетчеризации
	ldg := ledger.New(log)
	dispatchService := service.NewDispatchService(ldg, policy, sm, publisher, hub, hospitals, cfg, log)

	// Переходы автопарка зеркалируются в леджер через сервис
	sm.SetListener(dispatchService)
	sm.Start(ctx)
	defer sm.Stop()

	// Генератор демонстрационных инцидентов (выключен по умолчанию)
	if cfg.DemoIncidentInterval > 0 {
		dispatchService.StartDemoGenerator(ctx, center)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(dispatchService, log, cfg)

	// Настройка Gin роутера. Health регистрируется до middleware
	// и остается доступным без ключа
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterPublicRoutes(api)
	if len(cfg.APIKeys) > 0 {
		api.Use(v1.APIKeyAuthMiddleware(cfg, log))
	}
	handler.RegisterRoutes(api)

	// WebSocket-лента живет в той же группе и закрыта тем же ключом
	api.GET("/live", func(c *gin.Context) {
		hub.HandleUpgrade(c.Writer, c.Request)
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}

// resolveCenter пытается определить центр симуляции через сервис геолокации,
// при любой ошибке возвращает фиксированные координаты из конфигурации
func resolveCenter(ctx context.Context, cfg *config.Config, log *logrus.Logger) models.Location {
	fallback := models.Location{Lat: cfg.FallbackLat, Lng: cfg.FallbackLng}
	if cfg.GeolocateURL == "" {
		return fallback
	}

	locateCtx, locateCancel := context.WithTimeout(ctx, 5*time.Second)
	defer locateCancel()

	center, err := geoip.NewClient(cfg.GeolocateURL, log).Locate(locateCtx)
	if err != nil {
		log.WithError(err).Warn("Geolocation failed, using fallback center")
		return fallback
	}
	return center
}
