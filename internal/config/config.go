package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Security   SecurityConfig
	Booking    BookingConfig
	Kafka      KafkaConfig
	Cloudinary CloudinaryConfig
	QuizAI     QuizAIConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SecurityConfig holds security encryption keys
type SecurityConfig struct {
	SessionEncryptionKey string
}

// BookingConfig controls slot generation and appointment reminders
type BookingConfig struct {
	SessionMinutes   int
	WindowDays       int
	MaxWindowDays    int
	MinMessageLength int
	ReminderLead     time.Duration
	ReminderInterval time.Duration
}

// SessionDuration returns the default bookable slot length
func (c BookingConfig) SessionDuration() time.Duration {
	return time.Duration(c.SessionMinutes) * time.Minute
}

// KafkaConfig holds the appointment event broker settings. An empty Broker disables publishing.
type KafkaConfig struct {
	Broker   string
	Topic    string
	Username string
	Password string
}

// CloudinaryConfig holds file storage settings
type CloudinaryConfig struct {
	URL    string
	Folder string
}

// QuizAIConfig holds the quiz analysis endpoint. An empty APIKey leaves submissions pending.
type QuizAIConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "menvo"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
		},
		Booking: BookingConfig{
			SessionMinutes:   getEnvAsInt("BOOKING_SESSION_MINUTES", 60),
			WindowDays:       getEnvAsInt("BOOKING_WINDOW_DAYS", 14),
			MaxWindowDays:    getEnvAsInt("BOOKING_MAX_WINDOW_DAYS", 60),
			MinMessageLength: getEnvAsInt("BOOKING_MIN_MESSAGE_LENGTH", 20),
			ReminderLead:     getEnvAsDuration("BOOKING_REMINDER_LEAD", 24*time.Hour),
			ReminderInterval: getEnvAsDuration("BOOKING_REMINDER_INTERVAL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Broker:   getEnv("KAFKA_BROKER", ""),
			Topic:    getEnv("KAFKA_APPOINTMENT_TOPIC", "menvo.appointments"),
			Username: getEnv("KAFKA_USERNAME", ""),
			Password: getEnv("KAFKA_PASSWORD", ""),
		},
		Cloudinary: CloudinaryConfig{
			URL:    getEnv("CLOUDINARY_URL", ""),
			Folder: getEnv("CLOUDINARY_FOLDER", "menvo"),
		},
		QuizAI: QuizAIConfig{
			Endpoint: getEnv("QUIZ_AI_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			APIKey:   getEnv("QUIZ_AI_API_KEY", ""),
			Model:    getEnv("QUIZ_AI_MODEL", "gpt-4o-mini"),
			Timeout:  getEnvAsDuration("QUIZ_AI_TIMEOUT", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
