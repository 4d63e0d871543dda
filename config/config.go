package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Auth
	JWTSecret        string
	JWTExpiryMinutes int
	// SECRET_KEY derives the key for encrypting GitHub tokens at rest
	SecretKey string
	// Gemini (rotation pool, GEMINI_API_KEY_1..N)
	GeminiAPIKeys     []string
	GeminiModel       string
	GeminiTemperature float64
	GeminiMaxTokens   int
	// LaTeX compilation
	LatexCompileURL     string
	LatexTimeoutSeconds int
	UploadDir           string
	// GitHub API
	GithubAPIBaseURL string
	// Redis (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		JWTSecret:        getEnv("JWT_SECRET_KEY", ""),
		JWTExpiryMinutes: getEnvInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		SecretKey:        getEnv("SECRET_KEY", ""),

		GeminiAPIKeys:     loadGeminiKeys(),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash-lite"),
		GeminiTemperature: getEnvFloat("GEMINI_TEMPERATURE", 0.2),
		GeminiMaxTokens:   getEnvInt("GEMINI_MAX_TOKENS", 8192),

		LatexCompileURL:     getEnv("LATEX_COMPILE_URL", "https://latex.ytotech.com/builds/sync"),
		LatexTimeoutSeconds: getEnvInt("LATEX_COMPILER_TIMEOUT", 30),
		UploadDir:           getEnv("UPLOAD_DIR", "./uploads"),

		GithubAPIBaseURL: strings.TrimRight(getEnv("GITHUB_API_BASE_URL", "https://api.github.com"), "/"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET_KEY is missing. Issued tokens will not survive restarts.")
	}
	if len(cfg.GeminiAPIKeys) == 0 {
		log.Println("WARNING: no GEMINI_API_KEY_n configured. Resume generation will be unavailable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// loadGeminiKeys reads GEMINI_API_KEY_1..GEMINI_API_KEY_6 into the rotation pool.
func loadGeminiKeys() []string {
	var keys []string
	for i := 1; i <= 6; i++ {
		if k := os.Getenv("GEMINI_API_KEY_" + strconv.Itoa(i)); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}
