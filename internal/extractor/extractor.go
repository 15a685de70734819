// Package extractor 把任意路径的异构文档转换为纯文本
// 按文档类型分派：PDF（文本层+OCR回退）、Word、纯文本宽松读取
package extractor

import (
	"context"
	"fmt"
	"os"
	"time"

	"ats-match-go/internal/metrics"
	"ats-match-go/internal/types"

	"github.com/rs/zerolog"
)

// 确保DocumentExtractor实现了TextExtractor接口
var _ TextExtractor = (*DocumentExtractor)(nil)

// DocumentExtractor 按文档类型分派的文本提取器
type DocumentExtractor struct {
	// OCR回退能力，nil表示不可用（静默降级）
	ocr OCRConverter
	// 单次提取尝试的超时，防止单个损坏文档卡住评分
	attemptTimeout time.Duration
	logger         zerolog.Logger
}

// Option 提取器配置选项
type Option func(*DocumentExtractor)

// WithOCR 配置OCR回退能力
func WithOCR(ocr OCRConverter) Option {
	return func(e *DocumentExtractor) {
		e.ocr = ocr
	}
}

// WithAttemptTimeout 配置单次提取尝试的超时时间
func WithAttemptTimeout(timeout time.Duration) Option {
	return func(e *DocumentExtractor) {
		if timeout > 0 {
			e.attemptTimeout = timeout
		}
	}
}

// WithLogger 配置日志记录器
func WithLogger(logger zerolog.Logger) Option {
	return func(e *DocumentExtractor) {
		e.logger = logger
	}
}

// New 创建文本提取器
func New(options ...Option) *DocumentExtractor {
	e := &DocumentExtractor{
		attemptTimeout: 30 * time.Second,
		logger:         zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Extract 从文档提取纯文本
// 永远返回可用的字符串（失败时为空），error仅供观测。
// 文件缺失、解析失败、OCR不可用都降级为已累积的文本，绝不向上抛异常。
func (e *DocumentExtractor) Extract(ctx context.Context, doc types.ResumeDocument) (string, error) {
	if doc.Path == "" {
		return "", nil
	}
	// 类型标签应在输入边界解析一次；兜底处理未解析的引用
	if doc.Kind == "" {
		doc = types.ResolveDocument(doc.Path)
	}

	if _, err := os.Stat(doc.Path); err != nil {
		metrics.ExtractionFailed(ctx, string(doc.Kind))
		return "", fmt.Errorf("简历文件不可访问 %s: %w", doc.Path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	var text string
	var err error
	switch doc.Kind {
	case types.KindPDF:
		text, err = e.extractPDF(ctx, doc.Path)
	case types.KindDocBinary:
		text, err = e.extractDocBinary(doc.Path)
	default:
		text, err = extractPlainText(doc.Path)
	}

	if err != nil {
		metrics.ExtractionFailed(ctx, string(doc.Kind))
		e.logger.Warn().
			Str("path", doc.Path).
			Str("kind", string(doc.Kind)).
			Int("text_len", len(text)).
			Err(err).
			Msg("文本提取降级")
	}
	return text, err
}
