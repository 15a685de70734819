package extractor

import (
	"context"

	"ats-match-go/internal/types"
)

// TextExtractor 文档文本提取接口
type TextExtractor interface {
	// Extract 从文档中提取纯文本
	// 返回的文本永远可用（可能为空串）；error是咨询性的，描述降级原因，
	// 调用方可以记录但不应因此中断流程。提取是尽力而为，不是承重契约。
	Extract(ctx context.Context, doc types.ResumeDocument) (string, error)
}

// OCRConverter OCR识别接口（可插拔能力）
// 文本层为空的扫描版PDF走该接口识别；核心在没有OCR引擎时也要可测试
type OCRConverter interface {
	// RecognizeFile 对文件做光学字符识别，返回识别出的文本
	RecognizeFile(ctx context.Context, filePath string) (string, error)
}
