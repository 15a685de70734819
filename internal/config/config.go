package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ExtractorConfig 文本提取配置
type ExtractorConfig struct {
	// 单次提取尝试的超时(秒)，防止单个损坏文档卡住评分
	AttemptTimeoutSeconds int `yaml:"attempt_timeout_seconds"`
}

// AttemptTimeout 返回单次提取尝试的超时时间
func (c ExtractorConfig) AttemptTimeout() time.Duration {
	if c.AttemptTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.AttemptTimeoutSeconds) * time.Second
}

// OCRConfig OCR回退配置（扫描版PDF走Tika服务器识别）
type OCRConfig struct {
	// Tika服务器地址，例如 http://localhost:9998；为空表示OCR能力不可用
	ServerURL string `yaml:"server_url"`
	// HTTP请求超时(秒)
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout 返回OCR请求超时时间
func (c OCRConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuditConfig 审计日志配置
type AuditConfig struct {
	// 审计日志文件路径，外部管理端按空行分块解析该文件
	Path string `yaml:"path"`
}

// MinIOConfig 简历对象存储配置
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
	// 原始简历文件所在桶
	ResumeBucket string `yaml:"resume_bucket"`
	Location     string `yaml:"location"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	TimeFormat   string `yaml:"time_format"`
	ReportCaller bool   `yaml:"report_caller"`
}

// Config 应用程序配置
type Config struct {
	Extractor ExtractorConfig `yaml:"extractor"`
	OCR       OCRConfig       `yaml:"ocr"`
	Audit     AuditConfig     `yaml:"audit"`
	MinIO     MinIOConfig     `yaml:"minio"`
	Logger    LoggerConfig    `yaml:"logger"`
}

// createDefaultConfig 创建默认配置（测试环境或找不到配置文件时使用）
func createDefaultConfig() *Config {
	return &Config{
		Extractor: ExtractorConfig{AttemptTimeoutSeconds: 30},
		OCR:       OCRConfig{TimeoutSeconds: 60},
		Audit:     AuditConfig{Path: "ats_audit.log"},
		Logger:    LoggerConfig{Level: "info", Format: "json"},
	}
}

// inTestEnvironment 检测是否在go test中运行
func inTestEnvironment() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// LoadConfig 加载配置文件
// configPath为空时按约定路径搜索；测试环境中找不到文件则返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		if envPath := os.Getenv("ATS_MATCH_CONFIG"); envPath != "" {
			configPath = envPath
		}
	}

	if configPath == "" {
		workDir, err := os.Getwd()
		if err == nil {
			searchPaths := []string{
				filepath.Join(workDir, "config.yaml"),
				filepath.Join(workDir, "..", "config.yaml"),
				filepath.Join(workDir, "..", "..", "config.yaml"),
			}
			for _, path := range searchPaths {
				if _, err := os.Stat(path); err == nil {
					configPath = path
					break
				}
			}
		}

		if configPath == "" {
			if inTestEnvironment() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if inTestEnvironment() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate 校验配置项并补齐默认值
func (c *Config) Validate() error {
	if c.Extractor.AttemptTimeoutSeconds < 0 {
		return fmt.Errorf("extractor.attempt_timeout_seconds不能为负数: %d", c.Extractor.AttemptTimeoutSeconds)
	}
	if c.OCR.TimeoutSeconds < 0 {
		return fmt.Errorf("ocr.timeout_seconds不能为负数: %d", c.OCR.TimeoutSeconds)
	}
	if c.Audit.Path == "" {
		c.Audit.Path = "ats_audit.log"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	return nil
}
