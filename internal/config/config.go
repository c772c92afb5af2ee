package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type UploadConf struct {
	Dir           string `mapstructure:"dir"`
	ProcessedDir  string `mapstructure:"processed_dir"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

type StorageConf struct {
	Backend string `mapstructure:"backend"` // discord | s3
}

type DiscordConf struct {
	APIURL    string `mapstructure:"api_url"`
	Token     string `mapstructure:"token"`
	ChannelID string `mapstructure:"channel_id"`
}

type AWSConf struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
}

type GalleryConf struct {
	DataPath string `mapstructure:"data_path"`
}

type Config struct {
	App     AppConf     `mapstructure:"app"`
	Upload  UploadConf  `mapstructure:"upload"`
	Storage StorageConf `mapstructure:"storage"`
	Discord DiscordConf `mapstructure:"discord"`
	AWS     AWSConf     `mapstructure:"aws"`
	Gallery GalleryConf `mapstructure:"gallery"`
	Log     struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	MaxFileSize     int64
}

// Load reads the optional YAML config at path and applies environment
// overrides on top. path may be empty; the environment alone (plus defaults)
// is a complete configuration. The legacy env names of the original deploy
// (DISCORD_USER_TOKEN, DISCORD_CHANNEL_ID, PORT) are honored.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "production")
	v.SetDefault("app.port", 3000)
	v.SetDefault("app.shutdown_seconds", 15)
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.processed_dir", "processed")
	v.SetDefault("upload.max_file_size_mb", 100)
	v.SetDefault("storage.backend", "discord")
	v.SetDefault("discord.api_url", "https://discord.com/api/v9")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("gallery.data_path", "gallery-data.json")
	v.SetDefault("log.level", "")

	_ = v.BindEnv("app.port", "PORT")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("discord.token", "DISCORD_USER_TOKEN", "DISCORD_TOKEN")
	_ = v.BindEnv("discord.channel_id", "DISCORD_CHANNEL_ID")
	_ = v.BindEnv("storage.backend", "STORAGE_BACKEND")
	_ = v.BindEnv("aws.bucket", "AWS_BUCKET")
	_ = v.BindEnv("aws.region", "AWS_REGION")
	_ = v.BindEnv("gallery.data_path", "GALLERY_DATA_PATH")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.MaxFileSize = cfg.Upload.MaxFileSizeMB * 1024 * 1024

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the fatal-at-startup rules: the selected remote backend
// must be fully configured or the process refuses to start.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "discord":
		if c.Discord.Token == "" || c.Discord.ChannelID == "" {
			return errors.New("discord configuration missing: DISCORD_USER_TOKEN and DISCORD_CHANNEL_ID are required")
		}
	case "s3":
		if c.AWS.Bucket == "" {
			return errors.New("s3 configuration missing: AWS_BUCKET is required")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Upload.MaxFileSizeMB <= 0 {
		return errors.New("upload.max_file_size_mb must be positive")
	}
	return nil
}
