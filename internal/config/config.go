// Package config defines all configuration structures for the DockAI service.
// No I/O or parsing logic lives in this file — only plain data types and
// validation; loading is in loader.go and defaults in defaults.go.
package config

import (
	"fmt"
	"time"

	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
}

// KafkaConfig holds Kafka producer parameters.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	Enabled      bool          `mapstructure:"enabled"`
}

// ParserConfig holds the docking-parser tunables.
//
// The bond-inference window is an empirically chosen heuristic, not a
// physical law: two non-hydrogen-pair atoms closer than BondMaxDistance and
// farther than BondMinDistance Angstrom are treated as covalently bonded
// when the structure file declares no bonds itself.
type ParserConfig struct {
	BondMinDistance float64 `mapstructure:"bond_min_distance"`
	BondMaxDistance float64 `mapstructure:"bond_max_distance"`
}

// ViewerConfig holds render-instruction tunables consumed by the scene builder.
type ViewerConfig struct {
	SphereRadius float64       `mapstructure:"sphere_radius"`
	BondRadius   float64       `mapstructure:"bond_radius"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// Config is the root configuration structure for the service.
type Config struct {
	Server   ServerConfig      `mapstructure:"server"`
	Database DatabaseConfig    `mapstructure:"database"`
	Redis    RedisConfig       `mapstructure:"redis"`
	MinIO    MinIOConfig       `mapstructure:"minio"`
	Kafka    KafkaConfig       `mapstructure:"kafka"`
	Parser   ParserConfig      `mapstructure:"parser"`
	Viewer   ViewerConfig      `mapstructure:"viewer"`
	Log      logging.LogConfig `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: server.max_upload_bytes must be positive")
	}
	if c.Parser.BondMinDistance < 0 {
		return fmt.Errorf("config: parser.bond_min_distance must not be negative")
	}
	if c.Parser.BondMaxDistance <= c.Parser.BondMinDistance {
		return fmt.Errorf("config: parser.bond_max_distance %.2f must exceed bond_min_distance %.2f",
			c.Parser.BondMaxDistance, c.Parser.BondMinDistance)
	}
	if c.Viewer.SphereRadius <= 0 || c.Viewer.BondRadius <= 0 {
		return fmt.Errorf("config: viewer radii must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must not be empty when kafka is enabled")
	}
	return nil
}
