package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Simulation Config
	TickInterval         time.Duration `env:"SIM_TICK_INTERVAL" envDefault:"1s"`
	VehicleSpeedDeg      float64       `env:"SIM_VEHICLE_SPEED_DEG" envDefault:"0.0005"`
	RoadSpeedKmh         float64       `env:"SIM_ROAD_SPEED_KMH" envDefault:"50"`
	SceneDwell           time.Duration `env:"SIM_SCENE_DWELL" envDefault:"10s"`
	HospitalDwell        time.Duration `env:"SIM_HOSPITAL_DWELL" envDefault:"15s"`
	DemoIncidentInterval time.Duration `env:"SIM_DEMO_INCIDENT_INTERVAL" envDefault:"0s"`

	// Session Center Config
	GeolocateURL string  `env:"GEOLOCATE_URL"`
	FallbackLat  float64 `env:"FALLBACK_CENTER_LAT" envDefault:"34.0522"`
	FallbackLng  float64 `env:"FALLBACK_CENTER_LNG" envDefault:"-118.2437"`

	// Advisory Provider Config (генеративная модель для выбора машины)
	AdvisoryURL     string        `env:"ADVISORY_URL" envDefault:"https://generativelanguage.googleapis.com"`
	AdvisoryAPIKey  string        `env:"ADVISORY_API_KEY"`
	AdvisoryModel   string        `env:"ADVISORY_MODEL" envDefault:"gemini-2.5-flash"`
	AdvisoryTimeout time.Duration `env:"ADVISORY_TIMEOUT" envDefault:"8s"`

	// Routing Provider Config (OSRM-совместимый сервис)
	RoutingURL     string        `env:"ROUTING_URL" envDefault:"https://router.project-osrm.org"`
	RoutingTimeout time.Duration `env:"ROUTING_TIMEOUT" envDefault:"5s"`
	RouteCacheTTL  time.Duration `env:"ROUTE_CACHE_TTL" envDefault:"30m"`

	// Redis Config (опционально: очередь вебхуков и кеш маршрутов)
	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		TickInterval:         getEnvAsDuration("SIM_TICK_INTERVAL", time.Second),
		VehicleSpeedDeg:      getEnvAsFloat("SIM_VEHICLE_SPEED_DEG", 0.0005),
		RoadSpeedKmh:         getEnvAsFloat("SIM_ROAD_SPEED_KMH", 50),
		SceneDwell:           getEnvAsDuration("SIM_SCENE_DWELL", 10*time.Second),
		HospitalDwell:        getEnvAsDuration("SIM_HOSPITAL_DWELL", 15*time.Second),
		DemoIncidentInterval: getEnvAsDuration("SIM_DEMO_INCIDENT_INTERVAL", 0),

		GeolocateURL: os.Getenv("GEOLOCATE_URL"),
		FallbackLat:  getEnvAsFloat("FALLBACK_CENTER_LAT", 34.0522),
		FallbackLng:  getEnvAsFloat("FALLBACK_CENTER_LNG", -118.2437),

		AdvisoryURL:     getEnv("ADVISORY_URL", "https://generativelanguage.googleapis.com"),
		AdvisoryAPIKey:  os.Getenv("ADVISORY_API_KEY"),
		AdvisoryModel:   getEnv("ADVISORY_MODEL", "gemini-2.5-flash"),
		AdvisoryTimeout: getEnvAsDuration("ADVISORY_TIMEOUT", 8*time.Second),

		RoutingURL:     getEnv("ROUTING_URL", "https://router.project-osrm.org"),
		RoutingTimeout: getEnvAsDuration("ROUTING_TIMEOUT", 5*time.Second),
		RouteCacheTTL:  getEnvAsDuration("ROUTE_CACHE_TTL", 30*time.Minute),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("SIM_TICK_INTERVAL must be positive")
	}
	if cfg.VehicleSpeedDeg <= 0 {
		return nil, fmt.Errorf("SIM_VEHICLE_SPEED_DEG must be positive")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
