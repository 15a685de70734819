package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// TikaOCR 基于Apache Tika服务器的OCR识别器
// 把整个PDF交给Tika，强制ocr_only策略逐页渲染识别（服务端需配好tesseract）
type TikaOCR struct {
	// Tika服务器地址，例如 http://localhost:9998
	ServerURL string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	logger zerolog.Logger
}

// TikaOption Tika识别器配置选项
type TikaOption func(*TikaOCR)

// WithTikaTimeout 配置HTTP客户端超时时间
func WithTikaTimeout(timeout time.Duration) TikaOption {
	return func(t *TikaOCR) {
		t.Client.Timeout = timeout
	}
}

// WithTikaHTTPClient 配置自定义HTTP客户端
func WithTikaHTTPClient(client *http.Client) TikaOption {
	return func(t *TikaOCR) {
		if client != nil {
			t.Client = client
		}
	}
}

// WithTikaLogger 配置日志记录器
func WithTikaLogger(logger zerolog.Logger) TikaOption {
	return func(t *TikaOCR) {
		t.logger = logger
	}
}

// 确保TikaOCR实现了OCRConverter接口
var _ OCRConverter = (*TikaOCR)(nil)

// NewTikaOCR 创建Tika OCR识别器
func NewTikaOCR(serverURL string, options ...TikaOption) *TikaOCR {
	t := &TikaOCR{
		ServerURL: serverURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// RecognizeFile 对PDF文件做OCR识别，返回识别出的文本
func (t *TikaOCR) RecognizeFile(ctx context.Context, filePath string) (string, error) {
	startTime := time.Now()

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("打开文件 %s 失败: %w", filePath, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("读取文件内容失败: %w", err)
	}

	url := fmt.Sprintf("%s/tika", t.ServerURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("X-Tika-Resource-Name", filepath.Base(filePath))
	// 只走OCR通道：文本层已经确认为空才会到这里
	req.Header.Set("X-Tika-PDFOcrStrategy", "ocr_only")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("发送请求到Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tika服务器返回错误状态码: %d", resp.StatusCode)
	}

	textBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取Tika响应失败: %w", err)
	}

	text := string(textBytes)
	t.logger.Debug().
		Str("path", filePath).
		Int("text_len", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("OCR识别完成")
	return text, nil
}
