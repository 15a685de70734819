package extractor

import (
	"context"
	"fmt"
	"strings"

	"ats-match-go/internal/metrics"

	"github.com/ledongthuc/pdf"
)

// extractPDF 提取PDF文本：先读文本层，逐页拼接；
// 文本层为空（扫描件）时回退OCR。两个阶段都尽力而为，
// 任一失败都降级到已累积的文本。
func (e *DocumentExtractor) extractPDF(ctx context.Context, path string) (string, error) {
	text, layerErr := pdfLayerText(ctx, path)
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	// 文本层没有内容，尝试OCR识别扫描版PDF
	if e.ocr == nil {
		if layerErr != nil {
			return text, layerErr
		}
		return text, nil
	}

	metrics.OCRFallback(ctx)
	e.logger.Debug().Str("path", path).Msg("PDF文本层为空，回退OCR识别")

	ocrText, ocrErr := e.ocr.RecognizeFile(ctx, path)
	if ocrErr != nil {
		return text, fmt.Errorf("OCR识别失败: %w", ocrErr)
	}
	return ocrText, nil
}

// pdfLayerText 逐页读取PDF文本层，页与页之间以空格分隔
func pdfLayerText(ctx context.Context, path string) (text string, err error) {
	// ledongthuc/pdf对部分损坏文件会panic，这里必须兜住
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf解析panic: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("打开PDF文件失败: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		// 超时后返回已累积的文本
		if ctxErr := ctx.Err(); ctxErr != nil {
			return builder.String(), fmt.Errorf("PDF提取超时（已完成%d/%d页）: %w", pageIndex-1, totalPage, ctxErr)
		}

		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil || pageText == "" {
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString(" ")
	}
	return builder.String(), nil
}
