package log

import (
	"go.uber.org/zap/zapcore"
)

// LogOptions 日志配置选项
type LogOptions struct {
	// === 基础配置 ===
	Level     string `json:"level"`      // 日志级别 (debug, info, warn, error, fatal)
	ToConsole *bool  `json:"to_console,omitempty"` // 是否输出到控制台；未设置时仅在无文件路径时输出
	FilePath  string `json:"file_path"`            // 日志文件路径，为空时不写文件

	// === 基础轮转配置 ===
	MaxSize    int   `json:"max_size"`           // 单个日志文件最大大小(MB)
	MaxBackups int   `json:"max_backups"`        // 最大备份文件数
	MaxAge     int   `json:"max_age"`            // 日志文件最大保留天数
	Compress   *bool `json:"compress,omitempty"` // 是否压缩历史日志文件

	// === 调试配置 ===
	EnableCaller *bool `json:"enable_caller,omitempty"` // 是否启用调用者信息
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 创建日志配置：user 为 nil 时使用默认配置
//
// user 中的零值与 nil 字段取默认值。
func New(user *LogOptions) *Config {
	options := createDefaultLogOptions()
	if user != nil {
		applyUserLogOptions(options, user)
	}
	return &Config{options: options}
}

// createDefaultLogOptions 创建默认日志配置
func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:        defaultLogLevel,
		ToConsole:    boolPtr(defaultToConsole),
		FilePath:     "",
		MaxSize:      defaultMaxSize,
		MaxBackups:   defaultMaxBackups,
		MaxAge:       defaultMaxAge,
		Compress:     boolPtr(defaultCompress),
		EnableCaller: boolPtr(defaultEnableCaller),
	}
}

func applyUserLogOptions(options, user *LogOptions) {
	if user.Level != "" {
		options.Level = user.Level
	}
	if user.FilePath != "" {
		options.FilePath = user.FilePath
		options.ToConsole = boolPtr(false) // 指定文件路径时默认不输出到控制台
	}
	if user.ToConsole != nil {
		options.ToConsole = boolPtr(*user.ToConsole)
	}
	if user.MaxSize > 0 {
		options.MaxSize = user.MaxSize
	}
	if user.MaxBackups > 0 {
		options.MaxBackups = user.MaxBackups
	}
	if user.MaxAge > 0 {
		options.MaxAge = user.MaxAge
	}
	if user.Compress != nil {
		options.Compress = boolPtr(*user.Compress)
	}
	if user.EnableCaller != nil {
		options.EnableCaller = boolPtr(*user.EnableCaller)
	}
}

func boolPtr(b bool) *bool { return &b }

// GetOptions 获取完整的日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// GetZapLevel 获取zap日志级别
func (c *Config) GetZapLevel() zapcore.Level {
	if level, exists := defaultLevelMap[c.options.Level]; exists {
		return level
	}
	return zapcore.InfoLevel // 默认返回Info级别
}

// IsConsoleEnabled 是否启用控制台输出
func (c *Config) IsConsoleEnabled() bool {
	return c.options.ToConsole != nil && *c.options.ToConsole
}

// GetFilePath 获取日志文件路径
func (c *Config) GetFilePath() string {
	return c.options.FilePath
}

// IsCallerEnabled 是否启用调用者信息
func (c *Config) IsCallerEnabled() bool {
	return c.options.EnableCaller != nil && *c.options.EnableCaller
}

// IsCompressEnabled 是否压缩轮转后的历史文件
func (c *Config) IsCompressEnabled() bool {
	return c.options.Compress != nil && *c.options.Compress
}

// encoderConfig 文件与控制台共用的编码配置，计时字段以 "1.5ms" 形式输出
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// CreateFileEncoder JSON 格式，RFC3339 纳秒时间戳
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// CreateConsoleEncoder 控制台格式，只显示时分秒
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
