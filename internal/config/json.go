package config

import (
	"encoding/json"
	"os"

	"github.com/mlebedeva/tastebook/internal/flagx"
	"github.com/mlebedeva/tastebook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify latency bounds either as strings like
// "150ms" or as integer nanoseconds.
type JsonConfig struct {
	StorageDriver string `json:"storage_driver"`
	FileStorePath string `json:"file_store_path"`
	SQLiteDSN     string `json:"sqlite_dsn"`
	PostgresDSN   string `json:"postgres_dsn"`

	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`

	LatencyMin timex.Duration `json:"latency_min"`
	LatencyMax timex.Duration `json:"latency_max"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; if absent, no JSON is loaded.
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StorageDriver != "" {
		cfg.StorageDriver = jc.StorageDriver
	}
	if jc.FileStorePath != "" {
		cfg.FileStorePath = jc.FileStorePath
	}
	if jc.SQLiteDSN != "" {
		cfg.SQLiteDSN = jc.SQLiteDSN
	}
	if jc.PostgresDSN != "" {
		cfg.PostgresDSN = jc.PostgresDSN
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.LatencyMin.Duration > 0 {
		cfg.LatencyMin = jc.LatencyMin.Duration
	}
	if jc.LatencyMax.Duration > 0 {
		cfg.LatencyMax = jc.LatencyMax.Duration
	}
}
