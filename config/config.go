package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	YouTubeAPIKey string

	// Targeting. Precedence: VideoID > ChannelID > CategoryID > SearchKeyword.
	VideoID       string
	ChannelID     string
	CategoryID    string
	SearchKeyword string

	MaxVideos       int
	MaxResults      int
	MinCommentCount int
	DaysOldMax      int

	DataFile string

	// Optional integrations for the server/worker binaries.
	MongoURI     string
	NATSUrl      string
	HTTPAddr     string
	ScanInterval time.Duration
}

func Load() *Config {
	cfg := &Config{
		YouTubeAPIKey:   os.Getenv("YOUTUBE_API_KEY"),
		VideoID:         os.Getenv("VIDEO_ID"),
		ChannelID:       os.Getenv("CHANNEL_ID"),
		CategoryID:      os.Getenv("CATEGORY_ID"),
		SearchKeyword:   getEnv("SEARCH_KEYWORD", "副業"),
		MaxVideos:       getIntEnv("MAX_VIDEOS", 20),
		MaxResults:      getIntEnv("MAX_RESULTS", 100),
		MinCommentCount: getIntEnv("MIN_COMMENT_COUNT", 10),
		DaysOldMax:      getIntEnv("DAYS_OLD_MAX", 7),
		DataFile:        getEnv("DATA_FILE", "data/events.json"),
		MongoURI:        os.Getenv("MONGO_URI"),
		NATSUrl:         getEnv("NATS_URL", "nats://localhost:4222"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ScanInterval:    getDurationEnv("SCAN_INTERVAL", "4h"),
	}

	if cfg.YouTubeAPIKey == "" {
		log.Fatal("YOUTUBE_API_KEY is required")
	}

	log.Printf("Config loaded - MaxVideos: %d, MaxResults: %d, MinCommentCount: %d, DaysOldMax: %d",
		cfg.MaxVideos, cfg.MaxResults, cfg.MinCommentCount, cfg.DaysOldMax)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
