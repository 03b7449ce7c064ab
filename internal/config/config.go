package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Firebase  FirebaseConfig  `mapstructure:"firebase"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type FirebaseConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// SchedulerConfig 调度任务的周期与阈值（小时单位，对应原始cron节奏）
type SchedulerConfig struct {
	ExpireCheckHours     int  `mapstructure:"expire_check_hours"`     // 过期检测周期，默认1小时
	ArchiveCheckHours    int  `mapstructure:"archive_check_hours"`    // 归档检测周期，默认24小时
	ArchiveAfterHours    int  `mapstructure:"archive_after_hours"`    // EXPIRED保留时长，默认24小时
	DailyWarningHours    int  `mapstructure:"daily_warning_hours"`    // 每日提醒周期，默认24小时
	DailyWarningHorizon  int  `mapstructure:"daily_warning_horizon"`  // 每日提醒窗口，默认24小时
	UrgentWarningHours   int  `mapstructure:"urgent_warning_hours"`   // 紧急提醒周期，默认3小时
	UrgentWarningHorizon int  `mapstructure:"urgent_warning_horizon"` // 紧急提醒窗口，默认3小时
	DedupEnabled         bool `mapstructure:"dedup_enabled"`          // 同一窗口内去重（Redis ledger）
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("GOALAPP")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Firebase
	viper.BindEnv("firebase.enabled", "ENABLE_FIREBASE")
	viper.BindEnv("firebase.credentials_file", "FIREBASE_CREDENTIALS_FILE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// 调度默认值，对应原始cron：每小时检测、每日归档、9点日报、每3小时紧急提醒
	viper.SetDefault("scheduler.expire_check_hours", 1)
	viper.SetDefault("scheduler.archive_check_hours", 24)
	viper.SetDefault("scheduler.archive_after_hours", 24)
	viper.SetDefault("scheduler.daily_warning_hours", 24)
	viper.SetDefault("scheduler.daily_warning_horizon", 24)
	viper.SetDefault("scheduler.urgent_warning_hours", 3)
	viper.SetDefault("scheduler.urgent_warning_horizon", 3)
	viper.SetDefault("scheduler.dedup_enabled", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Scheduler.ArchiveAfterHours <= 0 {
		return nil, fmt.Errorf("scheduler.archive_after_hours must be positive, got %d", cfg.Scheduler.ArchiveAfterHours)
	}

	return &cfg, nil
}
