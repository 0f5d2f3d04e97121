package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the configuration resource read when no path is given.
const DefaultPath = "userdao.toml"

type Config struct {
	DatabaseURL     string   `toml:"database_url"`      // USERDAO_DATABASE_URL (required)
	MaxOpenConns    int      `toml:"max_open_conns"`    // USERDAO_MAX_OPEN_CONNS (default 25)
	MaxIdleConns    int      `toml:"max_idle_conns"`    // USERDAO_MAX_IDLE_CONNS (default 5)
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"` // USERDAO_CONN_MAX_LIFETIME (default 5m)
	NATSURL         string   `toml:"nats_url"`          // USERDAO_NATS_URL (optional, empty = no events)

	Export Export `toml:"export"`
}

// Export configures where `userdao export` writes its JSONL output.
type Export struct {
	S3Bucket   string `toml:"s3_bucket"`   // USERDAO_S3_BUCKET (enables S3 when set)
	S3Key      string `toml:"s3_key"`      // USERDAO_S3_KEY (default "userdao/users.jsonl")
	S3Region   string `toml:"s3_region"`   // USERDAO_S3_REGION (default "us-east-1")
	S3Endpoint string `toml:"s3_endpoint"` // USERDAO_S3_ENDPOINT (custom endpoint for MinIO)
}

// Duration is a time.Duration decoded from a TOML string such as "5m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads the TOML file at path (DefaultPath when empty), applies
// USERDAO_* environment overrides and fills in defaults. A missing file is
// only an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	c := &Config{}
	if _, err := toml.DecodeFile(path, c); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is required (set it in %s or USERDAO_DATABASE_URL)", path)
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.DatabaseURL = envOrDefault("USERDAO_DATABASE_URL", c.DatabaseURL)
	c.NATSURL = envOrDefault("USERDAO_NATS_URL", c.NATSURL)
	c.Export.S3Bucket = envOrDefault("USERDAO_S3_BUCKET", c.Export.S3Bucket)
	c.Export.S3Key = envOrDefault("USERDAO_S3_KEY", c.Export.S3Key)
	c.Export.S3Region = envOrDefault("USERDAO_S3_REGION", c.Export.S3Region)
	c.Export.S3Endpoint = envOrDefault("USERDAO_S3_ENDPOINT", c.Export.S3Endpoint)

	for key, dst := range map[string]*int{
		"USERDAO_MAX_OPEN_CONNS": &c.MaxOpenConns,
		"USERDAO_MAX_IDLE_CONNS": &c.MaxIdleConns,
	} {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv("USERDAO_CONN_MAX_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("USERDAO_CONN_MAX_LIFETIME: %w", err)
		}
		c.ConnMaxLifetime.Duration = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime.Duration <= 0 {
		c.ConnMaxLifetime.Duration = 5 * time.Minute
	}
	if c.Export.S3Key == "" {
		c.Export.S3Key = "userdao/users.jsonl"
	}
	if c.Export.S3Region == "" {
		c.Export.S3Region = "us-east-1"
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
