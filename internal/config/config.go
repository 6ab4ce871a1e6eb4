package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/archive-alert/internal/pkg/validator"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read when no other file is given on the command line.
const DefaultEnvFile = ".env"

type Config struct {
	Catalog   CatalogConfig
	AOI       AOIConfig
	Output    OutputConfig
	Store     StoreConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Mail      MailConfig
	Scheduler SchedulerConfig
	Status    StatusConfig
	Stream    StreamConfig
	Log       LogConfig
}

type CatalogConfig struct {
	AuthURL         string   `validate:"required,url"`
	APIURL          string   `validate:"required,url"`
	ClientID        string   `validate:"required"`
	Host            string   `validate:"required"`
	CredentialsFile string   `validate:"required"`
	Collections     []string `validate:"min=1,dive,required"`
	UsageTypes      []string
	MaxCloudCover   int `validate:"gte=0,lte=100"`
	Limit           int `validate:"gte=1,lte=500"`
	SortBy          string
	Ascending       bool
	// CATALOG_REQUEST_TIMEOUT, integer seconds; 0 disables the timeout
	RequestTimeout time.Duration
}

type AOIConfig struct {
	Dir      string
	FileName string `validate:"required"`
}

type OutputConfig struct {
	ReportDir string `validate:"required"`
	LogFile   string `validate:"required"`
}

type StoreConfig struct {
	Backend string `validate:"oneof=file memory redis postgres"`
	File    string
	Key     string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type MailConfig struct {
	Enabled         bool
	Host            string
	Port            int
	Sender          string   `validate:"required_if=Enabled true,omitempty,email"`
	Recipients      []string `validate:"required_if=Enabled true,dive,email"`
	SubjectTemplate string
	BodyTemplate    string
	SecretsFile     string
	// MAIL_TIMEOUT, integer seconds
	Timeout time.Duration
}

// SchedulerConfig is read from SCHEDULER_INTERVAL_MINUTES and SCHEDULER_POLL_INTERVAL_MS.
type SchedulerConfig struct {
	Interval     time.Duration `validate:"gt=0"`
	PollInterval time.Duration `validate:"gt=0"`
	RunOnStart   bool
}

type StatusConfig struct {
	Enabled bool
	Host    string
	Port    int
}

type StreamConfig struct {
	Enabled bool
	Name    string
	MaxLen  int64
}

type LogConfig struct {
	Level string
	File  string
}

const (
	defaultSubjectTemplate = "UP42 - New archive available for {{.AOIName}}"
	defaultBodyTemplate    = `
    AUTOMATED ARCHIVE MONITORING SYSTEM

    AOI : {{.AOIName}}
    Search time : {{.Time}}
    Number of new scenes: {{.NewScenes}}

    `
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("CATALOG_AUTH_URL", "https://auth.up42.com/realms/public/protocol/openid-connect/token")
	v.SetDefault("CATALOG_API_URL", "https://api.up42.com")
	v.SetDefault("CATALOG_CLIENT_ID", "up42-api")
	v.SetDefault("CATALOG_HOST", "oneatlas")
	v.SetDefault("CATALOG_CREDENTIALS_FILE", "credentials/proj_conf_file.json")
	v.SetDefault("CATALOG_COLLECTIONS", "pneo,spot,phr")
	v.SetDefault("CATALOG_USAGE_TYPES", "DATA,ANALYTICS")
	v.SetDefault("CATALOG_MAX_CLOUD_COVER", 10)
	v.SetDefault("CATALOG_LIMIT", 500)
	v.SetDefault("CATALOG_SORT_BY", "acquisitionDate")
	v.SetDefault("CATALOG_ASCENDING", true)
	v.SetDefault("CATALOG_REQUEST_TIMEOUT", 0)

	v.SetDefault("AOI_DIR", "aoi")
	v.SetDefault("AOI_FILE_NAME", "aoi_europe.geojson")

	v.SetDefault("OUTPUT_REPORT_DIR", "output/daily_search_report")
	v.SetDefault("OUTPUT_LOG_FILE", "output/archive_log_file.txt")

	v.SetDefault("STORE_BACKEND", "file")
	v.SetDefault("STORE_FILE", "output/previous_scene_count.json")
	v.SetDefault("STORE_KEY", "archive_alert:scene_counts")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 2)
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)

	v.SetDefault("MAIL_ENABLED", true)
	v.SetDefault("MAIL_HOST", "smtp.gmail.com")
	v.SetDefault("MAIL_PORT", 465)
	v.SetDefault("MAIL_SUBJECT_TEMPLATE", defaultSubjectTemplate)
	v.SetDefault("MAIL_BODY_TEMPLATE", defaultBodyTemplate)
	v.SetDefault("MAIL_SECRETS_FILE", "credentials/email_password.json")

	v.SetDefault("SCHEDULER_INTERVAL_MINUTES", 60)
	v.SetDefault("SCHEDULER_POLL_INTERVAL_MS", 1000)
	v.SetDefault("SCHEDULER_RUN_ON_START", false)

	v.SetDefault("STATUS_HOST", "0.0.0.0")
	v.SetDefault("STATUS_PORT", 8080)

	v.SetDefault("STREAM_NAME", "stream:archive:alerts")
	v.SetDefault("STREAM_MAX_LEN", 10000)

	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads envFile (when it exists) and the process environment.
// Environment variables take precedence over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access config: %w", err)
		}
	}

	cfg := &Config{
		Catalog: CatalogConfig{
			AuthURL:         v.GetString("CATALOG_AUTH_URL"),
			APIURL:          strings.TrimRight(v.GetString("CATALOG_API_URL"), "/"),
			ClientID:        v.GetString("CATALOG_CLIENT_ID"),
			Host:            v.GetString("CATALOG_HOST"),
			CredentialsFile: v.GetString("CATALOG_CREDENTIALS_FILE"),
			Collections:     parseList(v.GetString("CATALOG_COLLECTIONS")),
			UsageTypes:      parseList(v.GetString("CATALOG_USAGE_TYPES")),
			MaxCloudCover:   v.GetInt("CATALOG_MAX_CLOUD_COVER"),
			Limit:           v.GetInt("CATALOG_LIMIT"),
			SortBy:          v.GetString("CATALOG_SORT_BY"),
			Ascending:       v.GetBool("CATALOG_ASCENDING"),
			RequestTimeout:  time.Duration(v.GetInt("CATALOG_REQUEST_TIMEOUT")) * time.Second,
		},
		AOI: AOIConfig{
			Dir:      v.GetString("AOI_DIR"),
			FileName: v.GetString("AOI_FILE_NAME"),
		},
		Output: OutputConfig{
			ReportDir: v.GetString("OUTPUT_REPORT_DIR"),
			LogFile:   v.GetString("OUTPUT_LOG_FILE"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
			File:    v.GetString("STORE_FILE"),
			Key:     v.GetString("STORE_KEY"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Mail: MailConfig{
			Enabled:         v.GetBool("MAIL_ENABLED"),
			Host:            v.GetString("MAIL_HOST"),
			Port:            v.GetInt("MAIL_PORT"),
			Sender:          v.GetString("MAIL_SENDER"),
			Recipients:      parseList(v.GetString("MAIL_RECIPIENTS")),
			SubjectTemplate: v.GetString("MAIL_SUBJECT_TEMPLATE"),
			BodyTemplate:    v.GetString("MAIL_BODY_TEMPLATE"),
			SecretsFile:     v.GetString("MAIL_SECRETS_FILE"),
			Timeout:         time.Duration(v.GetInt("MAIL_TIMEOUT")) * time.Second,
		},
		Scheduler: SchedulerConfig{
			Interval:     time.Duration(v.GetInt("SCHEDULER_INTERVAL_MINUTES")) * time.Minute,
			PollInterval: time.Duration(v.GetInt("SCHEDULER_POLL_INTERVAL_MS")) * time.Millisecond,
			RunOnStart:   v.GetBool("SCHEDULER_RUN_ON_START"),
		},
		Status: StatusConfig{
			Enabled: v.GetBool("STATUS_ENABLED"),
			Host:    v.GetString("STATUS_HOST"),
			Port:    v.GetInt("STATUS_PORT"),
		},
		Stream: StreamConfig{
			Enabled: v.GetBool("STREAM_ENABLED"),
			Name:    v.GetString("STREAM_NAME"),
			MaxLen:  v.GetInt64("STREAM_MAX_LEN"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
	}

	// The sender doubles as the only recipient unless told otherwise
	if len(cfg.Mail.Recipients) == 0 && cfg.Mail.Sender != "" {
		cfg.Mail.Recipients = []string{cfg.Mail.Sender}
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetStatusAddr() string {
	return fmt.Sprintf("%s:%d", c.Status.Host, c.Status.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// AOIPath returns the location of the AOI vector file.
func (c *Config) AOIPath() string {
	return filepath.Join(c.AOI.Dir, c.AOI.FileName)
}
