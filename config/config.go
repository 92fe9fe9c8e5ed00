package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Calendar  CalendarConfig
	LogLevel  string
}

type ServerConfig struct {
	Port             string
	Mode             string
	PublicURL        string
	PlaceholderImage string
}

type DatabaseConfig struct {
	Driver      string // postgres | sqlite
	URL         string // takes precedence over the discrete fields when set
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	ListTTL  time.Duration
}

type AuthConfig struct {
	JWTSecret   string
	AdminEmails []string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type CalendarConfig struct {
	Timezone       string
	Location       string
	OrganizerName  string
	OrganizerEmail string
	UIDDomain      string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var AppConfig *Config

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:    GetServerConfig(),
		Database:  GetDatabaseConfig(),
		Redis:     GetRedisConfig(),
		Auth:      GetAuthConfig(),
		RateLimit: GetRateLimitConfig(),
		Calendar:  GetCalendarConfig(),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Driver:   DriverPostgres,
		Host:     "localhost",
		Port:     "5433", // test DB runs on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Enabled:  true,
		Host:     "localhost",
		Port:     "6380", // test Redis runs on 6380
		Password: "",
		DB:       1,
		ListTTL:  time.Minute,
	}

	return &Config{
		Server: ServerConfig{
			Port:             "8080",
			Mode:             "test",
			PublicURL:        "http://localhost:3000",
			PlaceholderImage: defaultPlaceholderImage,
		},
		Database:  *testConfig,
		Redis:     testRedisConfig,
		Auth:      AuthConfig{JWTSecret: "test-secret"},
		RateLimit: RateLimitConfig{RPS: 100, Burst: 100},
		Calendar:  defaultCalendarConfig(),
		LogLevel:  "debug",
	}
}

const defaultPlaceholderImage = "/placeholder.svg?height=200&width=300"

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:             getEnv("PORT", "8080"),
		Mode:             getEnv("GIN_MODE", "release"),
		PublicURL:        strings.TrimRight(getEnv("PUBLIC_SITE_URL", "http://localhost:3000"), "/"),
		PlaceholderImage: getEnv("PLACEHOLDER_IMAGE_URL", defaultPlaceholderImage),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:      getEnv("STORE_DRIVER", DriverPostgres),
		URL:         getEnv("DATABASE_URL", ""),
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        getEnv("DB_PORT", "5432"),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "postgres"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "file:events.db?cache=shared"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}
	ttl, err := time.ParseDuration(getEnv("EVENT_LIST_CACHE_TTL", "5m"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Enabled:  getEnvBool("REDIS_ENABLED", false),
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
		ListTTL:  ttl,
	}
}

func GetAuthConfig() AuthConfig {
	var admins []string
	for _, email := range strings.Split(getEnv("ADMIN_EMAILS", ""), ",") {
		if email = strings.TrimSpace(email); email != "" {
			admins = append(admins, strings.ToLower(email))
		}
	}
	return AuthConfig{
		JWTSecret:   getEnv("AUTH_JWT_SECRET", ""),
		AdminEmails: admins,
	}
}

func GetRateLimitConfig() RateLimitConfig {
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		panic(err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10"))
	if err != nil {
		panic(err)
	}
	return RateLimitConfig{RPS: rps, Burst: burst}
}

func GetCalendarConfig() CalendarConfig {
	def := defaultCalendarConfig()
	return CalendarConfig{
		Timezone:       getEnv("VENUE_TIMEZONE", def.Timezone),
		Location:       getEnv("VENUE_LOCATION", def.Location),
		OrganizerName:  getEnv("ORGANIZER_NAME", def.OrganizerName),
		OrganizerEmail: getEnv("ORGANIZER_EMAIL", def.OrganizerEmail),
		UIDDomain:      getEnv("CALENDAR_UID_DOMAIN", def.UIDDomain),
	}
}

func defaultCalendarConfig() CalendarConfig {
	return CalendarConfig{
		Timezone:       "UTC",
		Location:       "Main Studio",
		OrganizerName:  "Yoga Wellness Studio",
		OrganizerEmail: "info@yogastudio.com",
		UIDDomain:      "yogastudio.com",
	}
}

// VenueLocation resolves the configured timezone, falling back to UTC.
func (c CalendarConfig) VenueLocation() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
