package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 评分主流程内部吞掉的失败在这里计数，否则对外"永不失败"的契约会把问题藏死
var (
	meter = otel.Meter("ats-match-go")

	extractionFailures metric.Int64Counter
	ocrFallbacks       metric.Int64Counter
	auditFailures      metric.Int64Counter
	scoredTotal        metric.Int64Counter
)

func init() {
	var err error
	extractionFailures, err = meter.Int64Counter("ats.extraction.failures",
		metric.WithDescription("文档文本提取失败次数（已静默降级为空文本）"))
	if err != nil {
		extractionFailures = nil
	}
	ocrFallbacks, err = meter.Int64Counter("ats.extraction.ocr_fallbacks",
		metric.WithDescription("文本层为空、走OCR回退的次数"))
	if err != nil {
		ocrFallbacks = nil
	}
	auditFailures, err = meter.Int64Counter("ats.audit.failures",
		metric.WithDescription("审计记录写入失败次数（评分结果仍已返回）"))
	if err != nil {
		auditFailures = nil
	}
	scoredTotal, err = meter.Int64Counter("ats.score.total",
		metric.WithDescription("评分调用总次数"))
	if err != nil {
		scoredTotal = nil
	}
}

// ExtractionFailed 记录一次提取失败
func ExtractionFailed(ctx context.Context, kind string) {
	if extractionFailures != nil {
		extractionFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("document.kind", kind)))
	}
}

// OCRFallback 记录一次OCR回退
func OCRFallback(ctx context.Context) {
	if ocrFallbacks != nil {
		ocrFallbacks.Add(ctx, 1)
	}
}

// AuditFailed 记录一次审计写入失败
func AuditFailed(ctx context.Context) {
	if auditFailures != nil {
		auditFailures.Add(ctx, 1)
	}
}

// Scored 记录一次评分调用
func Scored(ctx context.Context, usedResume bool) {
	if scoredTotal != nil {
		scoredTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("used_resume", usedResume)))
	}
}
