package config

import (
	"encoding/json"
	"os"
	"testing"
)

func TestValidateAndAddDefaults(t *testing.T) {
	// Missing redis DNS is rejected
	cnf := Configuration{
		ProjectName: "",
		Redis: RedisConfig{
			Dns: "",
		},
		Gateway: GatewayConfig{
			Url: "http://bridge:8545",
		},
	}

	err := cnf.validateAndAddDefaults()
	if err == nil || err.Error() != "redis DNS is required" {
		t.Errorf("Expected redis DNS required error, got %v", err)
	}

	// Missing gateway URL is rejected
	cnf = Configuration{
		Redis: RedisConfig{
			Dns: "localhost:6379",
		},
	}

	err = cnf.validateAndAddDefaults()
	if err == nil || err.Error() != "gateway URL is required" {
		t.Errorf("Expected gateway URL required error, got %v", err)
	}

	// All required fields filled, expect no error
	cnf = Configuration{
		ProjectName: "Test Project",
		Redis: RedisConfig{
			Dns: "localhost:6379",
		},
		Gateway: GatewayConfig{
			Url: "http://bridge:8545",
		},
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test default port setting
	cnf.Server.Port = ""
	err = cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if cnf.Server.Port != DEFAULT_PORT {
		t.Errorf("Expected default port %s, got %s", DEFAULT_PORT, cnf.Server.Port)
	}

	// Gateway defaults
	if cnf.Gateway.TimeoutSec != 30 {
		t.Errorf("Expected default gateway timeout 30, got %d", cnf.Gateway.TimeoutSec)
	}
	if cnf.Gateway.MaxRetries != 3 {
		t.Errorf("Expected default gateway retries 3, got %d", cnf.Gateway.MaxRetries)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	// Create a temporary file
	tmpFile, err := os.CreateTemp("", "safenest.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up after the test

	// Sample configuration to write to the temp file
	sampleConfig := Configuration{
		ProjectName: "Temp Project",
		Redis: RedisConfig{
			Dns: "temp-redis",
		},
		Gateway: GatewayConfig{
			Url: "http://bridge:8545",
		},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close() // Close the file so loadConfigFromFile can open it

	// Set environment variables to override the project name and toggle telemetry
	os.Setenv("SAFENEST_PROJECT_NAME", "Env Project")
	defer os.Unsetenv("SAFENEST_PROJECT_NAME") // Clean up after the test
	os.Setenv("SAFENEST_ENABLE_TELEMETRY", "true")
	defer os.Unsetenv("SAFENEST_ENABLE_TELEMETRY")

	// Load the configuration from the file
	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("loadConfigFromFile failed: %v", err)
	}

	// Fetch the loaded configuration
	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Check if the environment variable override worked
	if loadedConfig.ProjectName != "Env Project" {
		t.Errorf("Expected ProjectName to be 'Env Project', got '%s'", loadedConfig.ProjectName)
	}

	// Check if the redis DNS was loaded correctly from the file
	if loadedConfig.Redis.Dns != "temp-redis" {
		t.Errorf("Expected Redis.Dns to be 'temp-redis', got '%s'", loadedConfig.Redis.Dns)
	}

	// Telemetry is off unless explicitly enabled; the env override turns it on
	if !loadedConfig.EnableTelemetry {
		t.Error("Expected EnableTelemetry to be true from environment override")
	}
}

func TestInitConfig(t *testing.T) {
	// Create a temporary file
	tmpFile, err := os.CreateTemp("", "safenest.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up after the test

	// Sample configuration to write to the temp file
	sampleConfig := Configuration{
		ProjectName: "InitConfig Test",
		Redis: RedisConfig{
			Dns: "localhost:6379",
		},
		Gateway: GatewayConfig{
			Url: "http://bridge:8545",
		},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close() // Close the file so InitConfig can open it

	// Attempt to initialize the configuration using the temporary file
	if err := InitConfig(tmpFile.Name()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	// Fetch the loaded configuration to verify it was loaded correctly
	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Verify the configuration was loaded correctly
	if loadedConfig.ProjectName != "InitConfig Test" {
		t.Errorf("Expected ProjectName to be 'InitConfig Test', got '%s'", loadedConfig.ProjectName)
	}
	if loadedConfig.Gateway.Url != "http://bridge:8545" {
		t.Errorf("Expected Gateway.Url to be 'http://bridge:8545', got '%s'", loadedConfig.Gateway.Url)
	}
}
