package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Sink names selectable through SIM_SINK.
const (
	SinkElastic = "elastic"
	SinkMongo   = "mongo"
	SinkInflux  = "influx"
	SinkMQTT    = "mqtt"
	SinkFile    = "file"
)

// Auth schemes for the HTTP sink, selectable through ES_AUTH_SCHEME.
const (
	AuthSchemeAPIKey = "apikey"
	AuthSchemeBearer = "bearer"
	AuthSchemeNone   = "none"
)

// Config carries every setting the simulator reads. It is built once at
// startup and passed down; nothing else reads the environment.
type Config struct {
	TickSec     float64
	DurationSec float64
	FleetSize   int
	Seed        int64
	Sink        string
	BatchName   string
	LogLevel    string

	ESURL        string
	ESAPIKey     string
	ESAuthScheme string
	ESJWTSecret  string
	ESJWTTTL     time.Duration

	MongoURI      string
	MongoDatabase string

	InfluxURL    string
	InfluxToken  string
	InfluxOrg    string
	InfluxBucket string

	MQTTBrokerURL string
	MQTTClientID  string
	MQTTUsername  string
	MQTTPassword  string

	FilePath string
}

// Load reads configuration from the environment, applying defaults for
// everything but credentials.
func Load() Config {
	viper.SetDefault("SIM_TICK_SEC", 1.0)
	viper.SetDefault("SIM_DURATION_SEC", 600.0)
	viper.SetDefault("SIM_FLEET_SIZE", 10)
	viper.SetDefault("SIM_SEED", 0)
	viper.SetDefault("SIM_SINK", SinkElastic)
	viper.SetDefault("SIM_BATCH_NAME", "agv_telemetry")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("ES_URL", "")
	viper.SetDefault("ES_API_KEY", "")
	viper.SetDefault("ES_AUTH_SCHEME", AuthSchemeAPIKey)
	viper.SetDefault("ES_JWT_SECRET", "")
	viper.SetDefault("ES_JWT_TTL", "15m")

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "fleet")

	viper.SetDefault("INFLUX_URL", "http://localhost:8086")
	viper.SetDefault("INFLUX_TOKEN", "")
	viper.SetDefault("INFLUX_ORG", "yard-ops")
	viper.SetDefault("INFLUX_BUCKET", "agv_telemetry")

	viper.SetDefault("MQTT_BROKER_URL", "tcp://localhost:1883")
	viper.SetDefault("MQTT_CLIENT_ID", "yard-telemetry")
	viper.SetDefault("MQTT_USERNAME", "")
	viper.SetDefault("MQTT_PASSWORD", "")

	viper.SetDefault("FILE_PATH", "./agv_telemetry.ndjson")

	viper.AutomaticEnv()

	return Config{
		TickSec:     viper.GetFloat64("SIM_TICK_SEC"),
		DurationSec: viper.GetFloat64("SIM_DURATION_SEC"),
		FleetSize:   viper.GetInt("SIM_FLEET_SIZE"),
		Seed:        viper.GetInt64("SIM_SEED"),
		Sink:        viper.GetString("SIM_SINK"),
		BatchName:   viper.GetString("SIM_BATCH_NAME"),
		LogLevel:    viper.GetString("LOG_LEVEL"),

		ESURL:        viper.GetString("ES_URL"),
		ESAPIKey:     viper.GetString("ES_API_KEY"),
		ESAuthScheme: viper.GetString("ES_AUTH_SCHEME"),
		ESJWTSecret:  viper.GetString("ES_JWT_SECRET"),
		ESJWTTTL:     viper.GetDuration("ES_JWT_TTL"),

		MongoURI:      viper.GetString("MONGO_URI"),
		MongoDatabase: viper.GetString("MONGO_DATABASE"),

		InfluxURL:    viper.GetString("INFLUX_URL"),
		InfluxToken:  viper.GetString("INFLUX_TOKEN"),
		InfluxOrg:    viper.GetString("INFLUX_ORG"),
		InfluxBucket: viper.GetString("INFLUX_BUCKET"),

		MQTTBrokerURL: viper.GetString("MQTT_BROKER_URL"),
		MQTTClientID:  viper.GetString("MQTT_CLIENT_ID"),
		MQTTUsername:  viper.GetString("MQTT_USERNAME"),
		MQTTPassword:  viper.GetString("MQTT_PASSWORD"),

		FilePath: viper.GetString("FILE_PATH"),
	}
}

// Validate rejects settings the run cannot start with. Per-sink credential
// checks beyond these happen in the publisher constructors.
func (c Config) Validate() error {
	if c.TickSec <= 0 {
		return fmt.Errorf("SIM_TICK_SEC must be positive, got %v", c.TickSec)
	}
	if c.FleetSize <= 0 {
		return fmt.Errorf("SIM_FLEET_SIZE must be positive, got %d", c.FleetSize)
	}
	if c.BatchName == "" {
		return errors.New("SIM_BATCH_NAME must not be empty")
	}
	switch c.Sink {
	case SinkElastic:
		if c.ESURL == "" {
			return errors.New("ES_URL is required for the elastic sink")
		}
	case SinkMongo, SinkInflux, SinkMQTT, SinkFile:
	default:
		return fmt.Errorf("unknown sink type: %s", c.Sink)
	}
	return nil
}

// TickInterval converts the tick setting to a duration. Fractional
// seconds are allowed.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickSec * float64(time.Second))
}

// RunDuration converts the duration setting to a duration. Zero or
// negative means run until externally stopped.
func (c Config) RunDuration() time.Duration {
	return time.Duration(c.DurationSec * float64(time.Second))
}
