package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Waba     WabaConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	AlertEmail string
}

type WabaConfig struct {
	Token         string
	PhoneNumberID string
	VerifyToken   string
	APIVersion    string
}

type AIConfig struct {
	OpenAIAPIKey   string
	ChatModel      string
	EmbeddingModel string
	MessageTopic   string // inbound turn jobs
	IndexTopic     string // knowledge re-index jobs
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Koperasi AI"),
			AlertEmail: getEnv("ESCALATION_ALERT_EMAIL", ""),
		},
		Waba: WabaConfig{
			Token:         getEnv("WABA_TOKEN", ""),
			PhoneNumberID: getEnv("WABA_PHONE_NUMBER_ID", ""),
			VerifyToken:   getEnv("WABA_VERIFY_TOKEN", "koperasi-verify-token"),
			APIVersion:    getEnv("WABA_API_VERSION", "v19.0"),
		},
		Ai: AIConfig{
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			MessageTopic:   getEnv("PROCESS_MESSAGE_TOPIC_NAME", "PROCESS_INBOUND_MESSAGE"),
			IndexTopic:     getEnv("INDEX_KNOWLEDGE_TOPIC_NAME", "INDEX_KNOWLEDGE_ENTRY"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
