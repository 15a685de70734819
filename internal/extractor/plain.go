package extractor

import (
	"fmt"
	"os"
	"strings"
)

// extractPlainText 按文本读取文件内容，无法解码的字节直接丢弃
// 未知扩展名统一走这条路径
func extractPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("读取文本文件失败: %w", err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
