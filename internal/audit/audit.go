// Package audit 追加式记录每次评分决策，供外部管理端事后检查
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// AnonymousCandidate 候选人标识缺省时写入的占位符
const AnonymousCandidate = "anonymous"

// Sink 审计落地接口（注入式，测试可替换为内存收集器）
// Record返回的error是内部信号：评分器记录并吞掉它，评分结果照常返回
type Sink interface {
	// Record 追加一条审计记录
	Record(ctx context.Context, entry *Entry) error
}

// Entry 一次评分决策的完整审计记录
type Entry struct {
	// 记录时间（UTC，格式化后可按字典序排序）
	Timestamp time.Time
	// 本次评估的唯一标识
	EvaluationID string
	// 候选人标识
	CandidateID string
	// 岗位标识与标题
	JobID    string
	JobTitle string
	// 实际使用的简历路径，空串表示没有简历
	ResumePath string
	// 提取出的文本长度
	ResumeTextLen int
	// 简历似然判定结果
	ResumeLike bool
	// 经简历文本匹配到的技能数
	MatchedResume int
	// 经档案技能回退匹配到的技能数
	MatchedProfile int
	// 岗位要求的技能总数
	JobSkillsCount int
	// 四个分量与总分
	SkillScore         float64
	EducationScore     float64
	ExperienceScore    float64
	CertificationScore float64
	Total              float64
}

// Format 渲染为文本块：若干行记录加一个空行结尾
// 该格式是对外契约，管理端按空行分块解析，改动需同步消费方
func (e *Entry) Format() string {
	candidate := e.CandidateID
	if candidate == "" {
		candidate = AnonymousCandidate
	}
	resumePath := e.ResumePath
	if resumePath == "" {
		resumePath = "-"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] eval=%s user=%s job_id=%s title=%s\n",
		e.Timestamp.UTC().Format(time.RFC3339), e.EvaluationID, candidate, e.JobID, e.JobTitle)
	fmt.Fprintf(&b, "  resume_path=%s resume_len=%d is_resume_like=%t\n",
		resumePath, e.ResumeTextLen, e.ResumeLike)
	fmt.Fprintf(&b, "  matched_resume=%d matched_profile=%d job_skills_count=%d\n",
		e.MatchedResume, e.MatchedProfile, e.JobSkillsCount)
	fmt.Fprintf(&b, "  skill_score=%.2f edu_score=%.2f exp_score=%.2f cert_score=%.2f total_score=%.2f\n\n",
		e.SkillScore, e.EducationScore, e.ExperienceScore, e.CertificationScore, e.Total)
	return b.String()
}
