package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"readTimeout"`
		WriteTimeout time.Duration `yaml:"writeTimeout"`
		IdleTimeout  time.Duration `yaml:"idleTimeout"`
		MaxUploadMB  int64         `yaml:"maxUploadMB"`
	} `yaml:"server"`

	AI struct {
		// Provider: "gemini" (default) atau "openai"
		Provider string        `yaml:"provider"`
		Model    string        `yaml:"model"`
		APIKey   string        `yaml:"apiKey"`
		BaseURL  string        `yaml:"baseURL"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"ai"`

	Report struct {
		MaxRows int `yaml:"maxRows"`
	} `yaml:"report"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	RateLimit struct {
		Requests int           `yaml:"requests"`
		Window   time.Duration `yaml:"window"`
	} `yaml:"rateLimit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`

	Database struct {
		// Driver: mysql, postgres atau sqlite; kosong = source SQL nonaktif
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		MaxRows  int    `yaml:"maxRows"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Default berisi nilai bawaan kalau config.yaml tidak ada
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 120 * time.Second
	cfg.Server.IdleTimeout = 60 * time.Second
	cfg.Server.MaxUploadMB = 200
	cfg.AI.Provider = "gemini"
	cfg.AI.Timeout = 90 * time.Second
	cfg.Report.MaxRows = 200
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.RateLimit.Requests = 10
	cfg.RateLimit.Window = time.Minute
	cfg.CORS.AllowedOrigins = []string{"*"}
	return &cfg
}

// Load baca .env lalu file config.yaml, kemudian override dari environment.
// File yang tidak ada bukan error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if c.AI.APIKey == "" {
		switch strings.ToLower(c.AI.Provider) {
		case "openai":
			if v, ok := lookup("OPENAI_API_KEY"); ok {
				c.AI.APIKey = strings.TrimSpace(v)
			}
		default:
			if v, ok := lookup("GEMINI_API_KEY"); ok {
				c.AI.APIKey = strings.TrimSpace(v)
			}
		}
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = p
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate cek nilai yang tidak masuk akal
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch strings.ToLower(c.AI.Provider) {
	case "gemini", "openai":
	default:
		return fmt.Errorf("ai.provider must be gemini or openai, got %q", c.AI.Provider)
	}
	if c.Report.MaxRows <= 0 {
		return fmt.Errorf("report.maxRows must be positive")
	}
	switch c.Database.Driver {
	case "", "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver %q not supported", c.Database.Driver)
	}
	return nil
}

// DatabaseDSN pilih DSN sesuai driver. DSN eksplisit selalu menang.
func (c *Config) DatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	switch c.Database.Driver {
	case "mysql":
		return c.MySQLDSN()
	case "postgres":
		return c.PostgresDSN()
	}
	return c.Database.Name
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN PostgreSQL (lib/pq)
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
