package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Upload UploadConfig `mapstructure:"upload"`
	Cron   CronConfig   `mapstructure:"cron"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port          int      `mapstructure:"port"`
	PublicBaseURL string   `mapstructure:"public_base_url"`
	AllowOrigins  []string `mapstructure:"allow_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	// PublicBaseURL 浏览器访问对象时使用的地址，为空时由 Endpoint 推导
	PublicBaseURL string `mapstructure:"public_base_url"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
	Issuer          string `mapstructure:"issuer"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type CronConfig struct {
	OrphanAudit string `mapstructure:"orphan_audit"`
}

// LogConfig 日志配置，File 为空时只输出到 stdout
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}
