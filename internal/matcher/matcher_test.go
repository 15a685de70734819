package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWholeWordPreventsSubstringFalsePositive(t *testing.T) {
	m := New()

	// "Java"不能命中"JavaScript"里的子串
	resumeMatched, _ := m.CountMatches([]string{"Java"}, nil, "Expert in JavaScript development")
	assert.Equal(t, 0, resumeMatched)

	resumeMatched, _ = m.CountMatches([]string{"Java"}, nil, "Expert in Java and JavaScript development")
	assert.Equal(t, 1, resumeMatched)
}

func TestWholeWordMatchIsCaseInsensitive(t *testing.T) {
	m := New()

	resumeMatched, _ := m.CountMatches([]string{"PYTHON"}, nil, "built services in python and sql")
	assert.Equal(t, 1, resumeMatched)
}

func TestScoringPathSkipsShortTokens(t *testing.T) {
	m := New()

	// 评分路径跳过长度≤2的token："Go"即使出现在文本里也不计
	resumeMatched, profileMatched := m.CountMatches(
		[]string{"Go"},
		[]string{"Go"},
		"Senior Go developer with Go experience",
	)
	assert.Equal(t, 0, resumeMatched)
	// 档案技能交集不做短token过滤，回退时"Go"仍然算数
	assert.Equal(t, 1, profileMatched)
}

func TestBreakdownPathKeepsTwoCharTokens(t *testing.T) {
	m := New()

	// 明细路径只跳过长度≤1的token；档案回退下"Go"可以命中
	matched, missing := m.Breakdown([]string{"Go", "Python"}, []string{"go"}, "", false)
	assert.Equal(t, []string{"Go"}, matched)
	assert.Equal(t, []string{"Python"}, missing)

	// 长度≤1的token被整个跳过，既不算命中也不算缺失
	matched, missing = m.Breakdown([]string{"C", "Python"}, []string{"C", "Python"}, "", false)
	assert.Equal(t, []string{"Python"}, matched)
	assert.Empty(t, missing)
}

func TestBreakdownOrderMirrorsJobSkills(t *testing.T) {
	m := New()

	matched, missing := m.Breakdown(
		[]string{"Docker", "Python", "Terraform", "SQL"},
		nil,
		"Worked with Python and SQL pipelines in production",
		true,
	)
	assert.Equal(t, []string{"Python", "SQL"}, matched)
	assert.Equal(t, []string{"Docker", "Terraform"}, missing)
}

func TestBreakdownFallsBackToProfileWhenResumeUnused(t *testing.T) {
	m := New()

	// usedResume为false时文本被忽略，走档案技能的成员判断（大小写不敏感）
	matched, missing := m.Breakdown(
		[]string{"Python", "Docker"},
		[]string{"python"},
		"Docker appears here but the resume was not accepted",
		false,
	)
	assert.Equal(t, []string{"Python"}, matched)
	assert.Equal(t, []string{"Docker"}, missing)
}

func TestCountMatchesWithEmptyResumeText(t *testing.T) {
	m := New()

	resumeMatched, profileMatched := m.CountMatches(
		[]string{"Python", "SQL", "Docker"},
		[]string{"Python", "sql"},
		"",
	)
	assert.Equal(t, 0, resumeMatched)
	assert.Equal(t, 2, profileMatched)
}

func TestOverlapIsCaseInsensitiveAndDeduplicated(t *testing.T) {
	m := New()

	assert.Equal(t, 1, m.Overlap([]string{"AWS SAA", "aws saa"}, []string{"AWS SAA"}))
	assert.Equal(t, 0, m.Overlap([]string{"CKA"}, nil))
	assert.Equal(t, 2, m.Overlap([]string{"cka", "CKAD"}, []string{"CKA", "ckad", "PMP"}))
}

func TestRegexMetacharactersInTokensAreQuoted(t *testing.T) {
	m := New()

	// 技能token里的正则元字符按字面量处理："Node.js"的点不是通配符
	resumeMatched, _ := m.CountMatches([]string{"Node.js"}, nil, "built Node.js services")
	assert.Equal(t, 1, resumeMatched)

	resumeMatched, _ = m.CountMatches([]string{"Node.js"}, nil, "built NodeXjs services")
	assert.Equal(t, 0, resumeMatched)
}
