package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App           AppConfig
	Line          LineConfig
	KnowledgeBase KnowledgeBaseConfig
	Analytics     AnalyticsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type LineConfig struct {
	ChannelSecret string
	ChannelToken  string
}

type KnowledgeBaseConfig struct {
	// APIURL is the GraphQL endpoint of the fact-checking database.
	APIURL string
	// SiteURL is the base of the public article pages linked in replies.
	SiteURL string
	// LIFFURL is the out-of-band page that collects free-form reasons.
	LIFFURL string
	// FacebookAppID feeds the Facebook share dialog.
	FacebookAppID string
}

type AnalyticsConfig struct {
	TopicName string
}

// Contact of an external human-staffed fact-checking service, suggested when
// a user asks about text they wrote themselves.
type Contact struct {
	Name string
	URI  string
}

// VerificationContacts is fixed rather than configured; these services are
// part of the product copy, not deployment-specific wiring.
var VerificationContacts = []Contact{
	{Name: "MyGoPen", URI: "line://ti/p/%40mygopen"},
	{Name: "Rumor & Truth", URI: "line://ti/p/1q14ZZ8yjb"},
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Line: LineConfig{
			ChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
			ChannelToken:  getEnv("LINE_CHANNEL_TOKEN", ""),
		},
		KnowledgeBase: KnowledgeBaseConfig{
			APIURL:        getEnv("KNOWLEDGE_BASE_API_URL", "https://api.rumorcheck.example.com/graphql"),
			SiteURL:       getEnv("SITE_URL", "https://rumorcheck.example.com"),
			LIFFURL:       getEnv("LIFF_URL", "https://liff.rumorcheck.example.com/reason"),
			FacebookAppID: getEnv("FACEBOOK_APP_ID", ""),
		},
		Analytics: AnalyticsConfig{
			TopicName: getEnv("ANALYTICS_TOPIC_NAME", "ANALYTICS_TURN"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
