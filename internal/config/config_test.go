package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, DefaultBondMinDistance, cfg.Parser.BondMinDistance)
	assert.Equal(t, DefaultBondMaxDistance, cfg.Parser.BondMaxDistance)
	assert.Equal(t, "dockai:", cfg.Redis.KeyPrefix)
	assert.Equal(t, "dockai-uploads", cfg.MinIO.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)

	require.NoError(t, cfg.Validate())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9999
	cfg.Parser.BondMaxDistance = 2.1
	ApplyDefaults(cfg)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 2.1, cfg.Parser.BondMaxDistance)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"inverted bond window", func(c *Config) {
			c.Parser.BondMinDistance = 2.0
			c.Parser.BondMaxDistance = 1.0
		}, "bond_max_distance"},
		{"negative bond min", func(c *Config) { c.Parser.BondMinDistance = -0.1 }, "bond_min_distance"},
		{"kafka enabled without brokers", func(c *Config) {
			c.Kafka.Enabled = true
			c.Kafka.Brokers = nil
		}, "kafka.brokers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 8090
  mode: debug
parser:
  bond_max_distance: 2.0
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("DOCKAI_SERVER_PORT", "8123")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 2.0, cfg.Parser.BondMaxDistance)
	// Defaults still fill the rest.
	assert.Equal(t, DefaultBondMinDistance, cfg.Parser.BondMinDistance)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
