package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values. Sensitive data has
// no in-code defaults and must come from the config file or the environment.
type AppConfig struct {
	AppPort   string
	JWTSecret string
	GinMode   string
	GinPath   string

	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	GitHubClientID     string
	GitHubClientSecret string
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectBase  string

	RateLimitPerMinute int
	AllowedOrigins     []string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load reads configuration once during boot. Precedence:
// config/config.json -> defaults -> environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	if err := loadJSONConfig(filepath.Join("config", "config.json"), &cfg); err != nil {
		log.Fatalf("invalid config file: %v", err)
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// fileConfig mirrors the grouped layout of config/config.json.
type fileConfig struct {
	App struct {
		Port               string   `json:"Port"`
		JWTSecret          string   `json:"JWTSecret"`
		RateLimitPerMinute int      `json:"RateLimitPerMinute"`
		AllowedOrigins     []string `json:"AllowedOrigins"`
		GinMode            string   `json:"GinMode"`
		GinPath            string   `json:"GinPath"`
	} `json:"app"`
	Database struct {
		URI      string `json:"URI"`
		Host     string `json:"Host"`
		Port     string `json:"Port"`
		User     string `json:"User"`
		Password string `json:"Password"`
		Name     string `json:"Name"`
	} `json:"database"`
	Redis struct {
		Host     string `json:"Host"`
		Port     int    `json:"Port"`
		DB       int    `json:"DB"`
		Password string `json:"Password"`
	} `json:"redis"`
	OAuth struct {
		GitHubClientID     string `json:"GitHubClientID"`
		GitHubClientSecret string `json:"GitHubClientSecret"`
		GoogleClientID     string `json:"GoogleClientID"`
		GoogleClientSecret string `json:"GoogleClientSecret"`
		RedirectBase       string `json:"RedirectBase"`
	} `json:"oauth"`
	Log struct {
		Level      string `json:"Level"`
		Path       string `json:"Path"`
		MaxSizeMB  int    `json:"MaxSizeMB"`
		MaxBackups int    `json:"MaxBackups"`
		MaxAgeDays int    `json:"MaxAgeDays"`
		Compress   bool   `json:"Compress"`
	} `json:"log"`
}

// loadJSONConfig reads the JSON file into cfg if present. A missing file is
// not an error; invalid JSON is.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var raw fileConfig
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	out.AppPort = raw.App.Port
	out.JWTSecret = raw.App.JWTSecret
	out.RateLimitPerMinute = raw.App.RateLimitPerMinute
	out.AllowedOrigins = raw.App.AllowedOrigins
	out.GinMode = raw.App.GinMode
	out.GinPath = raw.App.GinPath

	out.DatabaseURI = raw.Database.URI
	out.DBHost = raw.Database.Host
	out.DBPort = raw.Database.Port
	out.DBUser = raw.Database.User
	out.DBPassword = raw.Database.Password
	out.DBName = raw.Database.Name

	out.RedisHost = raw.Redis.Host
	out.RedisPort = raw.Redis.Port
	out.RedisDB = raw.Redis.DB
	out.RedisPassword = raw.Redis.Password

	out.GitHubClientID = raw.OAuth.GitHubClientID
	out.GitHubClientSecret = raw.OAuth.GitHubClientSecret
	out.GoogleClientID = raw.OAuth.GoogleClientID
	out.GoogleClientSecret = raw.OAuth.GoogleClientSecret
	out.OAuthRedirectBase = raw.OAuth.RedirectBase

	out.LogLevel = raw.Log.Level
	out.LogPath = raw.Log.Path
	out.LogMaxSizeMB = raw.Log.MaxSizeMB
	out.LogMaxBackups = raw.Log.MaxBackups
	out.LogMaxAgeDays = raw.Log.MaxAgeDays
	out.LogCompress = raw.Log.Compress

	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.OAuthRedirectBase == "" {
		c.OAuthRedirectBase = "http://localhost:8080"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "skillup"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values.
func applyEnvOverrides(c *AppConfig) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				log.Fatalf("invalid integer value for %s: %v", key, err)
			}
			*dst = n
		}
	}

	setString("APP_PORT", &c.AppPort)
	setString("JWT_SECRET", &c.JWTSecret)
	setString("GIN_MODE", &c.GinMode)
	setString("GIN_PATH", &c.GinPath)
	setString("DATABASE_URI", &c.DatabaseURI)
	setString("DB_HOST", &c.DBHost)
	setString("DB_PORT", &c.DBPort)
	setString("DB_USER", &c.DBUser)
	setString("DB_PASSWORD", &c.DBPassword)
	setString("DB_NAME", &c.DBName)
	setString("REDIS_HOST", &c.RedisHost)
	setInt("REDIS_PORT", &c.RedisPort)
	setInt("REDIS_DB", &c.RedisDB)
	setString("REDIS_PASSWORD", &c.RedisPassword)
	setString("GITHUB_CLIENT_ID", &c.GitHubClientID)
	setString("GITHUB_CLIENT_SECRET", &c.GitHubClientSecret)
	setString("GOOGLE_CLIENT_ID", &c.GoogleClientID)
	setString("GOOGLE_CLIENT_SECRET", &c.GoogleClientSecret)
	setString("OAUTH_REDIRECT_BASE_URL", &c.OAuthRedirectBase)
	setInt("RATE_LIMIT_PER_MINUTE", &c.RateLimitPerMinute)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_PATH", &c.LogPath)
	setInt("LOG_MAX_SIZE_MB", &c.LogMaxSizeMB)
	setInt("LOG_MAX_BACKUPS", &c.LogMaxBackups)
	setInt("LOG_MAX_AGE_DAYS", &c.LogMaxAgeDays)
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		c.LogCompress = v == "true"
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
