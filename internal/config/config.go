package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig 应用基础信息
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Addr         string          `mapstructure:"addr"`
	ReadTimeout  time.Duration   `mapstructure:"readTimeout"`
	WriteTimeout time.Duration   `mapstructure:"writeTimeout"`
	RateLimit    RateLimitConfig `mapstructure:"rateLimit"`
}

// RateLimitConfig 组装接口限流（令牌桶）
type RateLimitConfig struct {
	Enable     bool `mapstructure:"enable"`
	RatePerSec int  `mapstructure:"ratePerSec"`
	Burst      int  `mapstructure:"burst"`
}

// LumberjackConfig 日志滚动（lumberjack）配置
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig 日志级别与输出配置
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`

	// LogAssembly 每条组装成功的消息记一条 debug 日志
	LogAssembly bool `mapstructure:"logAssembly"`
}

// MetricsConfig Prometheus 指标暴露配置
type MetricsConfig struct {
	Enable bool   `mapstructure:"enable"`
	Path   string `mapstructure:"path"`
}

// RedisConfig 下行队列使用的 Redis 连接配置
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"poolSize"`
	MinIdleConns int           `mapstructure:"minIdleConns"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

// OutboundConfig 交给传输/加密层的下行队列
type OutboundConfig struct {
	KeyPrefix  string        `mapstructure:"keyPrefix"`
	MaxRetry   int           `mapstructure:"maxRetry"`
	Timeout    time.Duration `mapstructure:"timeout"`
	ThrottleMs int           `mapstructure:"throttleMs"`

	// 传输层连续失败熔断
	BreakerThreshold int           `mapstructure:"breakerThreshold"`
	BreakerCooldown  time.Duration `mapstructure:"breakerCooldown"`
}

// APIConfig 组装接口配置
type APIConfig struct {
	Auth AuthConfig `mapstructure:"auth"`
}

// AuthConfig API Key 认证
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"apiKeys"`
}

// Config 顶层配置结构
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	API      APIConfig      `mapstructure:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Outbound OutboundConfig `mapstructure:"outbound"`
}

// Load 从 YAML/TOML/JSON 文件与环境变量加载配置。
// 若 path 为空，则尝试从环境变量 MESH_CONFIG 读取；否则回退到 configs/example.yaml。
func Load(path string) (*Config, error) {
	v := viper.New()

	// 环境变量覆盖：前缀 MESH_，并将点号替换为下划线
	v.SetEnvPrefix("MESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("example")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 首次运行允许缺少配置文件，依赖默认值与环境变量
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "meshmsg")
	v.SetDefault("app.env", "dev")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.readTimeout", "5s")
	v.SetDefault("http.writeTimeout", "10s")
	v.SetDefault("http.rateLimit.enable", true)
	v.SetDefault("http.rateLimit.ratePerSec", 200)
	v.SetDefault("http.rateLimit.burst", 400)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file.filename", "logs/meshmsg.log")
	v.SetDefault("logging.file.maxSize", 100)
	v.SetDefault("logging.file.maxBackups", 7)
	v.SetDefault("logging.file.maxAge", 30)
	v.SetDefault("logging.file.compress", true)
	v.SetDefault("logging.logAssembly", false)

	v.SetDefault("metrics.enable", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.poolSize", 20)
	v.SetDefault("redis.minIdleConns", 2)
	v.SetDefault("redis.dialTimeout", "5s")
	v.SetDefault("redis.readTimeout", "3s")
	v.SetDefault("redis.writeTimeout", "3s")

	v.SetDefault("outbound.keyPrefix", "mesh:outbound")
	v.SetDefault("outbound.maxRetry", 3)
	v.SetDefault("outbound.timeout", "5s")
	v.SetDefault("outbound.throttleMs", 50)
	v.SetDefault("outbound.breakerThreshold", 5)
	v.SetDefault("outbound.breakerCooldown", "30s")

	v.SetDefault("api.auth.enabled", false)
}
