// Ininicializing common application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	App        AppConfig        `mapstructure:"app"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Idle_timeout    time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AppConfig struct {
	UploadDir       string        `mapstructure:"upload_dir"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
	StaleFileAge    time.Duration `mapstructure:"stale_file_age"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
}

type CloudinaryConfig struct {
	CloudName     string        `mapstructure:"cloud_name"`
	APIKey        string        `mapstructure:"api_key"`
	APISecret     string        `mapstructure:"api_secret"`
	Folder        string        `mapstructure:"folder"`
	FontFamily    string        `mapstructure:"font_family"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// env names that do not follow the section_key convention
var envAliases = map[string][]string{
	"server.port":           {"PORT", "SERVER_PORT"},
	"cloudinary.cloud_name": {"CLOUDINARY_CLOUD_NAME"},
	"cloudinary.api_key":    {"CLOUDINARY_API_KEY"},
	"cloudinary.api_secret": {"CLOUDINARY_API_SECRET"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("app.upload_dir", "uploads")
	v.SetDefault("app.max_upload_mb", 50)
	v.SetDefault("app.stale_file_age", "15m")
	v.SetDefault("app.janitor_interval", "5m")

	v.SetDefault("cloudinary.cloud_name", "")
	v.SetDefault("cloudinary.api_key", "")
	v.SetDefault("cloudinary.api_secret", "")
	v.SetDefault("cloudinary.folder", "")
	v.SetDefault("cloudinary.font_family", "Arial")
	v.SetDefault("cloudinary.upload_timeout", "60s")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "gif-overlay-events")

	v.SetDefault("log.level", "info")
}

// LoadConfig reads ./config/config.yaml when present and lets the environment
// override every key. A missing config file is not an error.
func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	for key, envs := range envAliases {
		if err := viperInstance.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, err
		}
	}

	err := viperInstance.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	c.Kafka.Brokers = splitBrokers(c.Kafka.Brokers)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.Cloudinary.CloudName == "" {
		missing = append(missing, "CLOUDINARY_CLOUD_NAME")
	}
	if c.Cloudinary.APIKey == "" {
		missing = append(missing, "CLOUDINARY_API_KEY")
	}
	if c.Cloudinary.APISecret == "" {
		missing = append(missing, "CLOUDINARY_API_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.App.MaxUploadMB <= 0 {
		return fmt.Errorf("app.max_upload_mb must be positive, got %d", c.App.MaxUploadMB)
	}
	if c.App.JanitorInterval <= 0 {
		return fmt.Errorf("app.janitor_interval must be positive, got %s", c.App.JanitorInterval)
	}
	return nil
}

// MaxUploadBytes is the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.App.MaxUploadMB << 20
}

// KAFKA_BROKERS arrives as one comma separated string.
func splitBrokers(in []string) []string {
	var out []string
	for _, item := range in {
		for _, b := range strings.Split(item, ",") {
			if b = strings.TrimSpace(b); b != "" {
				out = append(out, b)
			}
		}
	}
	return out
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
