package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIConfig 后台 API 配置
type APIConfig struct {
	BaseURL    string        // 市场搜索后台地址
	Timeout    time.Duration // 单次请求超时
	RetryCount int           // 传输层重试次数
	PageSize   int           // 每页结果数
}

// UIConfig 界面配置
type UIConfig struct {
	DebounceMs      int // 搜索输入防抖间隔（毫秒），默认 500
	RowHeight       int // 列表行高（终端行数）
	RowGap          int // 行间距
	OverscanCount   int // 可视窗口外额外渲染的行数
	ScrollThreshold int // 距底部多少行时触发下一页加载
}

// Config 应用配置
type Config struct {
	API      APIConfig
	UI       UIConfig
	StateDir string // 过滤器状态持久化目录
	CacheDir string // badger 页缓存目录
	CacheTTL time.Duration

	LogLevel string // 日志级别
	LogFile  string // 日志文件路径（可选）
}

var globalConfig *Config
var configFilePath string

// SetConfigPath 设置配置文件路径
func SetConfigPath(path string) {
	configFilePath = path
}

// GetConfigPath 获取配置文件路径
func GetConfigPath() string {
	return configFilePath
}

// ConfigFile 配置文件结构（用于 YAML 解析）
type ConfigFile struct {
	API struct {
		BaseURL    string `yaml:"base_url"`
		TimeoutSec int    `yaml:"timeout_sec"`
		RetryCount int    `yaml:"retry_count"`
		PageSize   int    `yaml:"page_size"`
	} `yaml:"api"`
	UI struct {
		DebounceMs      int `yaml:"debounce_ms"`
		RowHeight       int `yaml:"row_height"`
		RowGap          int `yaml:"row_gap"`
		OverscanCount   int `yaml:"overscan_count"`
		ScrollThreshold int `yaml:"scroll_threshold"`
	} `yaml:"ui"`
	StateDir    string `yaml:"state_dir"`
	CacheDir    string `yaml:"cache_dir"`
	CacheTTLMin int    `yaml:"cache_ttl_min"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
}

// Default 返回默认配置
func Default() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".namebay")
	return &Config{
		API: APIConfig{
			BaseURL:    "https://api.namebay.io",
			Timeout:    30 * time.Second,
			RetryCount: 3,
			PageSize:   50,
		},
		UI: UIConfig{
			DebounceMs:      500,
			RowHeight:       1,
			RowGap:          0,
			OverscanCount:   3,
			ScrollThreshold: 5,
		},
		StateDir: filepath.Join(base, "state"),
		CacheDir: filepath.Join(base, "cache"),
		CacheTTL: 10 * time.Minute,
		LogLevel: "info",
		LogFile:  filepath.Join(base, "logs", "namebay.log"),
	}
}

// Load 加载配置：默认值 <- 配置文件 <- 环境变量
// 配置文件不存在不算错误（全部走默认值）
func Load(path string) (*Config, error) {
	// .env 文件是可选的
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = configFilePath
	}
	if path == "" {
		path = "namebay.yaml"
	}

	if data, err := os.ReadFile(path); err == nil {
		var cf ConfigFile
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
		}
		applyFile(cfg, &cf)
		configFilePath = path
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(cfg)

	globalConfig = cfg
	return cfg, nil
}

// Get 获取全局配置（未初始化则返回默认值）
func Get() *Config {
	if globalConfig == nil {
		globalConfig = Default()
	}
	return globalConfig
}

func applyFile(cfg *Config, cf *ConfigFile) {
	if cf.API.BaseURL != "" {
		cfg.API.BaseURL = cf.API.BaseURL
	}
	if cf.API.TimeoutSec > 0 {
		cfg.API.Timeout = time.Duration(cf.API.TimeoutSec) * time.Second
	}
	if cf.API.RetryCount > 0 {
		cfg.API.RetryCount = cf.API.RetryCount
	}
	if cf.API.PageSize > 0 {
		cfg.API.PageSize = cf.API.PageSize
	}
	if cf.UI.DebounceMs > 0 {
		cfg.UI.DebounceMs = cf.UI.DebounceMs
	}
	if cf.UI.RowHeight > 0 {
		cfg.UI.RowHeight = cf.UI.RowHeight
	}
	if cf.UI.RowGap > 0 {
		cfg.UI.RowGap = cf.UI.RowGap
	}
	if cf.UI.OverscanCount > 0 {
		cfg.UI.OverscanCount = cf.UI.OverscanCount
	}
	if cf.UI.ScrollThreshold > 0 {
		cfg.UI.ScrollThreshold = cf.UI.ScrollThreshold
	}
	if cf.StateDir != "" {
		cfg.StateDir = cf.StateDir
	}
	if cf.CacheDir != "" {
		cfg.CacheDir = cf.CacheDir
	}
	if cf.CacheTTLMin > 0 {
		cfg.CacheTTL = time.Duration(cf.CacheTTLMin) * time.Minute
	}
	if cf.LogLevel != "" {
		cfg.LogLevel = cf.LogLevel
	}
	if cf.LogFile != "" {
		cfg.LogFile = cf.LogFile
	}
}

// applyEnv 环境变量覆盖（优先级最高）
func applyEnv(cfg *Config) {
	if v := os.Getenv("NAMEBAY_API_URL"); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("NAMEBAY_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.PageSize = n
		}
	}
	if v := os.Getenv("NAMEBAY_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.UI.DebounceMs = n
		}
	}
	if v := os.Getenv("NAMEBAY_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("NAMEBAY_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("NAMEBAY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NAMEBAY_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}
