package tracing

import (
	"strings"
)

const (
	// maxSnippetAttrLength 简历片段在span属性中的最大长度
	maxSnippetAttrLength = 150
	// maxSkillsAttrLength 技能列表在span属性中的最大长度
	maxSkillsAttrLength = 120
)

// MaskPII 掩码候选人标识等敏感值：保留首尾字符，中间打星
// 例如 "13812345678" -> "13*******78"
func MaskPII(value string) string {
	runes := []rune(value)
	switch n := len(runes); {
	case n == 0:
		return ""
	case n == 1:
		return "*"
	case n == 2:
		return string(runes[:1]) + "*"
	case n <= 4:
		return string(runes[:1]) + strings.Repeat("*", n-2) + string(runes[n-1:])
	default:
		return string(runes[:2]) + strings.Repeat("*", n-4) + string(runes[n-2:])
	}
}

// TruncateString 按rune截断字符串，超长时保留首尾、中间以省略号连接
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	keep := (maxLength - 3) / 2
	if keep < 1 {
		keep = 1
	}
	return string(runes[:keep]) + "..." + string(runes[len(runes)-keep:])
}

// SafeResumeContent 简历文本放进span属性前的安全截断
// 整份简历进属性会把trace后端撑爆，只留一小段供排查
func SafeResumeContent(content string) string {
	return TruncateString(content, maxSnippetAttrLength)
}

// SafeSkillList 技能列表放进span属性前的安全截断
func SafeSkillList(skills []string) string {
	return TruncateString(strings.Join(skills, ","), maxSkillsAttrLength)
}
