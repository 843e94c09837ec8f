// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
}

type Config struct {
	ServerPort string `yaml:"server_port" env:"PORT"`

	MongoURI string `yaml:"mongo_uri" env:"MONGO_URI"`
	MongoDB  string `yaml:"mongo_db" env:"MONGO_DB"`

	GroqAPIKey string `yaml:"groq_api_key" env:"GROQ_API_KEY"`

	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	SMTP SMTPConfig `yaml:"smtp"`

	//Scrape sources seeded at startup (targets added via the API persist in Mongo)
	FacebookGroups []string `yaml:"facebook_groups"`
	WebsiteURLs    []string `yaml:"website_urls"`

	//Paths
	CookiesPath string `yaml:"cookies_path"`
	CachePath   string `yaml:"cache_path"`

	ScrapeIntervalHours int `yaml:"scrape_interval_hours"`
	DigestJobLimit      int `yaml:"digest_job_limit"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerPort = port
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.MongoURI = uri
	}
	if db := os.Getenv("MONGO_DB"); db != "" {
		cfg.MongoDB = db
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.GroqAPIKey = key
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.SMTP.Host = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			log.Fatalf("Invalid SMTP_PORT: %v", err)
		}
		cfg.SMTP.Port = p
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		cfg.SMTP.Username = user
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		cfg.SMTP.Password = pass
	}
	if from := os.Getenv("SMTP_FROM"); from != "" {
		cfg.SMTP.From = from
	}

	//Set default values if not set
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "hirelens"
	}
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}
	if cfg.ScrapeIntervalHours <= 0 {
		cfg.ScrapeIntervalHours = 6
	}
	if cfg.DigestJobLimit <= 0 {
		cfg.DigestJobLimit = 20
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}

	//Validate required fields
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}

	return cfg
}
