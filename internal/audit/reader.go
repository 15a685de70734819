package audit

import (
	"fmt"
	"os"
	"strings"
)

// ReadBlocks 读取审计日志并按空行切分为记录块
// 文件顺序即时间顺序（最新在最后），想要最新在前的消费方自行反转
func ReadBlocks(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取审计日志 %s 失败: %w", path, err)
	}

	var blocks []string
	for _, raw := range strings.Split(string(data), "\n\n") {
		block := strings.TrimSpace(raw)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks, nil
}

// NewestFirst 返回时间倒序（最新在前）的记录块副本
// 文件本身是追加写的，查询端通常最关心最近的评分
func NewestFirst(blocks []string) []string {
	out := make([]string, len(blocks))
	for i, block := range blocks {
		out[len(blocks)-1-i] = block
	}
	return out
}

// FilterByCandidate 按候选人标识的子串过滤记录块
// candidate为空串时返回全部
func FilterByCandidate(blocks []string, candidate string) []string {
	if candidate == "" {
		return blocks
	}
	var filtered []string
	for _, block := range blocks {
		// 管理端的过滤语义是对user字段的子串匹配，不是全等
		if strings.Contains(candidateField(block), candidate) {
			filtered = append(filtered, block)
		}
	}
	return filtered
}

// candidateField 从记录块头行取出user字段值
func candidateField(block string) string {
	idx := strings.Index(block, "user=")
	if idx < 0 {
		return ""
	}
	rest := block[idx+len("user="):]
	if end := strings.IndexAny(rest, " \n"); end >= 0 {
		return rest[:end]
	}
	return rest
}
