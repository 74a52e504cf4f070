package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the config directory.
const FileName = "rocksandvoids.cfg.json"

// MemoryConfig holds in-memory/JSON recorder backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite recorder backend settings
type SQLiteConfig struct {
	OutputDir    string        `json:"outputDir" mapstructure:"outputDir"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
}

// DBConfig holds PostgreSQL connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
	SSLMode  string `json:"sslMode" mapstructure:"sslMode"`
}

// InfluxConfig holds InfluxDB recorder backend settings
type InfluxConfig struct {
	Host      string `json:"host" mapstructure:"host"`
	Port      string `json:"port" mapstructure:"port"`
	Protocol  string `json:"protocol" mapstructure:"protocol"`
	Token     string `json:"token" mapstructure:"token"`
	Org       string `json:"org" mapstructure:"org"`
	Bucket    string `json:"bucket" mapstructure:"bucket"`
	BackupDir string `json:"backupDir" mapstructure:"backupDir"`
}

// RecorderConfig selects and configures the trajectory recorder
type RecorderConfig struct {
	Type        string
	SampleEvery int
	BatchSize   int
	Memory      MemoryConfig
	SQLite      SQLiteConfig
	DB          DBConfig
	Influx      InfluxConfig
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// Load sets default values and reads the JSON config file from configDir.
// A missing file leaves the defaults in place; a malformed one is an error.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("arena.size", 1000.0)

	viper.SetDefault("simulation.frameTime", 0.1)
	viper.SetDefault("simulation.refreshRate", 60.0)

	viper.SetDefault("objects.baseSize", 10.0)
	viper.SetDefault("objects.sizeMultipliers.small", 0.25)
	viper.SetDefault("objects.sizeMultipliers.medium", 1.0)
	viper.SetDefault("objects.sizeMultipliers.large", 2.0)

	viper.SetDefault("camera.fov", 75.0)
	viper.SetDefault("camera.near", 0.1)
	viper.SetDefault("camera.far", 10000.0)
	viper.SetDefault("camera.defaultPosition.x", 0.0)
	viper.SetDefault("camera.defaultPosition.y", 50.0)
	viper.SetDefault("camera.defaultPosition.z", 100.0)

	viper.SetDefault("lighting.defaultPointLight.intensity", 1.0)
	viper.SetDefault("lighting.defaultPointLight.distance", 500.0)
	viper.SetDefault("lighting.defaultPointLight.decay", 2.0)

	viper.SetDefault("history.maxSize", 100)

	viper.SetDefault("recorder.type", "none")
	viper.SetDefault("recorder.sampleEvery", 10)
	viper.SetDefault("recorder.batchSize", 500)
	viper.SetDefault("recorder.memory.outputDir", "./recordings")
	viper.SetDefault("recorder.memory.compressOutput", true)
	viper.SetDefault("recorder.sqlite.outputDir", "./recordings")
	viper.SetDefault("recorder.sqlite.dumpInterval", "3m")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "rocksandvoids")
	viper.SetDefault("db.sslMode", "disable")

	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "rocksandvoids")
	viper.SetDefault("influx.bucket", "trajectories")
	viper.SetDefault("influx.backupDir", "./recordings")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "rocksandvoids")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetRecorderConfig returns the recorder section.
func GetRecorderConfig() RecorderConfig {
	return RecorderConfig{
		Type:        viper.GetString("recorder.type"),
		SampleEvery: viper.GetInt("recorder.sampleEvery"),
		BatchSize:   viper.GetInt("recorder.batchSize"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("recorder.memory.outputDir"),
			CompressOutput: viper.GetBool("recorder.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			OutputDir:    viper.GetString("recorder.sqlite.outputDir"),
			DumpInterval: viper.GetDuration("recorder.sqlite.dumpInterval"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
			SSLMode:  viper.GetString("db.sslMode"),
		},
		Influx: InfluxConfig{
			Host:      viper.GetString("influx.host"),
			Port:      viper.GetString("influx.port"),
			Protocol:  viper.GetString("influx.protocol"),
			Token:     viper.GetString("influx.token"),
			Org:       viper.GetString("influx.org"),
			Bucket:    viper.GetString("influx.bucket"),
			BackupDir: viper.GetString("influx.backupDir"),
		},
	}
}

// GetOTelConfig returns the otel section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}
