// Package classifier 判断提取出的文本是否"像一份简历"
// 用于挡住乱码、样板文件、求职信等不适合做技能匹配的文本源
package classifier

import (
	"strings"
	"unicode/utf8"
)

const (
	// minTextLength 短于该长度的文本直接拒绝
	minTextLength = 150
	// strongTextLength 结构判据要求的文本长度
	strongTextLength = 400
	// denseTextLength 关键词判据要求的文本长度
	denseTextLength = 200
	// substantialLineLength 行去除首尾空白后超过该长度才算"实质行"
	substantialLineLength = 20
	// strongKeywordHits 结构判据要求的关键词命中数
	strongKeywordHits = 2
	// denseKeywordHits 关键词判据要求的命中数
	denseKeywordHits = 4
	// strongLineCount 结构判据要求的实质行数
	strongLineCount = 4
)

// keywords 简历特征词表（小写，大小写不敏感的子串匹配）
var keywords = []string{
	"experience", "education", "skills", "projects", "contact",
	"linkedin", "resume", "curriculum vitae", "objective", "summary",
	"bachelor", "master", "degree",
}

// Classifier 简历似然分类器
type Classifier struct{}

// New 创建分类器
func New() *Classifier {
	return &Classifier{}
}

// IsResumeLike 判断文本是否足够像简历
// 两条独立判据：长文本+结构（长度≥400且关键词≥2且实质行≥4），
// 或短而关键词密集（关键词≥4且长度≥200）。二者满足其一即接受。
func (c *Classifier) IsResumeLike(text string) bool {
	if text == "" {
		return false
	}

	length := utf8.RuneCountInString(text)
	if length < minTextLength {
		return false
	}

	lowered := strings.ToLower(text)
	found := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			found++
		}
	}

	lineCount := 0
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(strings.TrimSpace(line)) > substantialLineLength {
			lineCount++
		}
	}

	if length >= strongTextLength && found >= strongKeywordHits && lineCount >= strongLineCount {
		return true
	}
	if found >= denseKeywordHits && length >= denseTextLength {
		return true
	}
	return false
}
