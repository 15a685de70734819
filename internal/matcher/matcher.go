// Package matcher 在简历文本或档案技能列表中匹配岗位要求的技能
package matcher

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// scoringSkipLength 评分路径跳过的最大token长度：去空白后长度≤2视为不可靠
	// （过短的词在整词匹配下误报率高，例如"Go"会频繁命中无关文本）
	scoringSkipLength = 2
	// breakdownSkipLength 独立明细路径跳过的最大token长度
	// 与评分路径阈值不同（≤1），两处行为各自保持
	breakdownSkipLength = 1
)

// SkillMatcher 技能匹配器
type SkillMatcher struct{}

// New 创建技能匹配器
func New() *SkillMatcher {
	return &SkillMatcher{}
}

// wordPattern 为技能token构造整词匹配的正则（词边界锚定，大小写不敏感）
// 整词匹配保证"Java"不会命中"JavaScript"中的子串
func wordPattern(token string) (*regexp.Regexp, error) {
	return regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(token)) + `\b`)
}

// matchInText 在简历文本中做一次整词匹配
func matchInText(token, loweredText string) bool {
	re, err := wordPattern(token)
	if err != nil {
		return false
	}
	return re.MatchString(loweredText)
}

// containsFold 大小写不敏感地判断token是否在技能列表中
func containsFold(skills []string, token string) bool {
	for _, s := range skills {
		if strings.EqualFold(strings.TrimSpace(s), token) {
			return true
		}
	}
	return false
}

// CountMatches 评分路径的匹配计数
// 返回两个计数：基于简历文本整词匹配的命中数（跳过长度≤2的token），
// 以及岗位技能与档案技能的大小写不敏感交集大小。
// 选用哪个计数由评分器决定（零命中回退规则见评分器）。
func (m *SkillMatcher) CountMatches(jobSkills, profileSkills []string, resumeText string) (resumeMatched, profileMatched int) {
	loweredText := strings.ToLower(resumeText)

	for _, s := range jobSkills {
		token := strings.TrimSpace(s)
		if token == "" || utf8.RuneCountInString(token) <= scoringSkipLength {
			continue
		}
		if resumeText != "" && matchInText(token, loweredText) {
			resumeMatched++
		}
	}

	profileMatched = intersectionCount(jobSkills, profileSkills)
	return resumeMatched, profileMatched
}

// Overlap 要求列表与持有列表的大小写不敏感交集大小
// 证书匹配与档案技能回退都走这里
func (m *SkillMatcher) Overlap(required, held []string) int {
	return intersectionCount(required, held)
}

// intersectionCount 岗位技能与档案技能的交集大小（去重，大小写不敏感）
// 交集不做短token过滤：档案里声明的技能是可信来源，"Go"也算数
func intersectionCount(jobSkills, profileSkills []string) int {
	profileSet := make(map[string]struct{}, len(profileSkills))
	for _, s := range profileSkills {
		token := strings.ToLower(strings.TrimSpace(s))
		if token != "" {
			profileSet[token] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(jobSkills))
	count := 0
	for _, s := range jobSkills {
		token := strings.ToLower(strings.TrimSpace(s))
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if _, ok := profileSet[token]; ok {
			count++
		}
	}
	return count
}

// Breakdown 独立明细路径：返回命中与缺失的技能列表
// 顺序与岗位要求列表一致。usedResume为true且有文本时走整词匹配，
// 否则回退到档案技能列表的大小写不敏感成员判断。
// 注意该路径只跳过长度≤1的token，且没有评分路径的零命中回退。
func (m *SkillMatcher) Breakdown(jobSkills, profileSkills []string, resumeText string, usedResume bool) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	loweredText := strings.ToLower(resumeText)

	for _, s := range jobSkills {
		token := strings.TrimSpace(s)
		if token == "" || utf8.RuneCountInString(token) <= breakdownSkipLength {
			continue
		}

		hit := false
		if usedResume && resumeText != "" {
			hit = matchInText(token, loweredText)
		} else {
			hit = containsFold(profileSkills, token)
		}

		if hit {
			matched = append(matched, token)
		} else {
			missing = append(missing, token)
		}
	}
	return matched, missing
}
