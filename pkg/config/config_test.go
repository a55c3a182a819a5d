package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_ICDConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("WHO_CLIENT_ID", "client-id")
	os.Setenv("WHO_CLIENT_SECRET", "client-secret")
	os.Setenv("WHO_API_RELEASE", "2025-01")
	defer func() {
		os.Unsetenv("WHO_CLIENT_ID")
		os.Unsetenv("WHO_CLIENT_SECRET")
		os.Unsetenv("WHO_API_RELEASE")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "client-id", cfg.ICD.ClientID)
	assert.Equal(t, "client-secret", cfg.ICD.ClientSecret)
	assert.Equal(t, "2025-01", cfg.ICD.Release)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("TYPESENSE_URL")
	os.Unsetenv("WHO_API_URL")
	os.Unsetenv("NAMASTE_CSV_PATH")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
	assert.Equal(t, "https://id.who.int/icd/release/11", cfg.ICD.BaseURL)
	assert.Equal(t, "https://icdaccessmanagement.who.int/connect/token", cfg.ICD.TokenURL)
	assert.Equal(t, "2024-01", cfg.ICD.Release)
	assert.Equal(t, "data/namaste_codes.csv", cfg.Namaste.CSVPath)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Database: "namaste_mapping",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=postgres password=secret dbname=namaste_mapping sslmode=disable",
		cfg.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}
