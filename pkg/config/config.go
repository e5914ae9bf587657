package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Assembly AssemblyAIConfig
	Ollama   OllamaConfig
	Chunking ChunkingConfig
	Storage  StorageConfig
	Audio    AudioConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// AssemblyAIConfig holds AssemblyAI transcription configuration
type AssemblyAIConfig struct {
	APIKey  string
	Timeout time.Duration
}

// OllamaConfig holds the local LLM and embedding configuration
type OllamaConfig struct {
	BaseURL        string
	Model          string
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
	TopK           int
	TopP           float64
	StopWords      []string
}

// ChunkingConfig holds transcript chunking configuration
type ChunkingConfig struct {
	ChunkSize    int
	ChunkOverlap int
	EmbedWorkers int
}

// StorageConfig holds on-disk storage configuration
type StorageConfig struct {
	VectorDBPath string
	DataDir      string
	InMemory     bool
}

// AudioConfig holds audio upload constraints
type AudioConfig struct {
	MaxSizeMB        int64
	SupportedFormats []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Assembly: AssemblyAIConfig{
			APIKey:  getEnv("ASSEMBLYAI_API_KEY", ""),
			Timeout: getEnvAsDuration("ASSEMBLYAI_TIMEOUT", "10m"),
		},
		Ollama: OllamaConfig{
			BaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:          getEnv("OLLAMA_MODEL", "llama2:latest"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "llama2:latest"),
			Temperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			MaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 2000),
			TopK:           getEnvAsInt("LLM_TOP_K", 40),
			TopP:           getEnvAsFloat("LLM_TOP_P", 0.9),
			StopWords:      []string{"[INST]", "</s>"},
		},
		Chunking: ChunkingConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 200),
			EmbedWorkers: getEnvAsInt("EMBED_WORKERS", 4),
		},
		Storage: StorageConfig{
			VectorDBPath: getEnv("VECTOR_DB_PATH", "./vector_db"),
			DataDir:      getEnv("DATA_DIR", "./meeting_data"),
			InMemory:     getEnvAsBool("VECTOR_DB_IN_MEMORY", false),
		},
		Audio: AudioConfig{
			MaxSizeMB:        int64(getEnvAsInt("MAX_AUDIO_SIZE_MB", 250)),
			SupportedFormats: strings.Split(getEnv("SUPPORTED_FORMATS", ".mp3,.wav,.m4a,.mp4,.webm"), ","),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Assembly.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
	}
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive")
	}
	// Overlap must stay below chunk size or adjacent chunks never advance.
	if c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		log.Printf("Warning: CHUNK_OVERLAP >= CHUNK_SIZE, clamping to %d", c.Chunking.ChunkSize/2)
		c.Chunking.ChunkOverlap = c.Chunking.ChunkSize / 2
	}
	if c.Chunking.EmbedWorkers <= 0 {
		c.Chunking.EmbedWorkers = 1
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
