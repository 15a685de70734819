// Package scorer 把技能匹配、绩点、工作年限、证书四个维度合成一个可复现的适配度分数
package scorer

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"ats-match-go/internal/audit"
	"ats-match-go/internal/classifier"
	"ats-match-go/internal/extractor"
	"ats-match-go/internal/matcher"
	"ats-match-go/internal/metrics"
	"ats-match-go/internal/tracing"
	"ats-match-go/internal/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// 四个分量的权重，总分满分100
	skillWeight = 40.0
	eduWeight   = 30.0
	expWeight   = 20.0
	certWeight  = 10.0

	// snippetLength 明细输出中简历文本片段的最大长度
	snippetLength = 800
)

var tracer = otel.Tracer("ats-match-go/scorer")

// Scorer 适配度评分器
// 请求级无状态：每次调用独立提取、独立判定，不跨调用缓存提取结果
// （需要吞吐的调用方自行按简历标识在外部缓存）。唯一共享资源是审计日志。
type Scorer struct {
	extractor  extractor.TextExtractor
	classifier *classifier.Classifier
	matcher    *matcher.SkillMatcher
	audit      audit.Sink
	logger     zerolog.Logger
}

// Option 评分器配置选项
type Option func(*Scorer)

// WithLogger 配置日志记录器
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scorer) {
		s.logger = logger
	}
}

// New 创建评分器
// extractor与审计sink为必注入依赖；sink传nil表示不落审计（仅测试场景）
func New(ext extractor.TextExtractor, sink audit.Sink, options ...Option) *Scorer {
	s := &Scorer{
		extractor:  ext,
		classifier: classifier.New(),
		matcher:    matcher.New(),
		audit:      sink,
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// resolvedResume 简历文本解析结果
type resolvedResume struct {
	// 实际使用的简历路径，空串表示没有简历
	Path string
	// 通过似然判定后的文本；被拒绝时为空串
	Text string
	// 提取出的原始文本长度（门控前）
	RawLen int
	// 似然判定结果
	ResumeLike bool
}

// resolveResume 解析本次评分使用的简历文本
// 优先使用显式传入的简历文件，其次候选人档案里存的简历；
// 提取失败降级为空文本，似然判定不通过则弃用文本。
func (s *Scorer) resolveResume(ctx context.Context, profile types.CandidateProfile, explicit *types.ResumeDocument) resolvedResume {
	var doc types.ResumeDocument
	switch {
	case explicit != nil && explicit.Path != "":
		doc = *explicit
	case profile.Resume != nil && profile.Resume.Path != "":
		doc = *profile.Resume
	default:
		return resolvedResume{}
	}

	if doc.Kind == "" {
		doc = types.ResolveDocument(doc.Path)
	}

	// 提取失败已由提取器计数并告警，这里只收下能用的文本，
	// 降级痕迹留在当前span上供排查
	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		errType := tracing.ErrorTypeExtraction
		if errors.Is(err, context.DeadlineExceeded) {
			errType = tracing.ErrorTypeTimeout
		}
		tracing.RecordError(trace.SpanFromContext(ctx), err, errType)
	}

	resolved := resolvedResume{
		Path:       doc.Path,
		RawLen:     utf8.RuneCountInString(text),
		ResumeLike: s.classifier.IsResumeLike(text),
	}
	if resolved.ResumeLike {
		resolved.Text = text
	}
	return resolved
}

// Evaluate 计算适配度分数的完整分解
// 每次调用必然追加一条审计记录（审计失败被吞掉并计数，评分结果照常返回）
func (s *Scorer) Evaluate(ctx context.Context, profile types.CandidateProfile, job types.JobRequirement, resume *types.ResumeDocument) types.ScoreBreakdown {
	ctx, span := tracer.Start(ctx, "scorer.Evaluate")
	defer span.End()

	evalID := uuid.NewString()
	resolved := s.resolveResume(ctx, profile, resume)
	usedResume := strings.TrimSpace(resolved.Text) != ""

	// 技能分量（40）：有简历文本走整词匹配，否则用档案技能交集
	var skillScore float64
	resumeMatched, profileMatched := 0, 0
	if len(job.RequiredSkills) > 0 {
		resumeMatched, profileMatched = s.matcher.CountMatches(job.RequiredSkills, profile.Skills, resolved.Text)
		matchedCount := profileMatched
		if usedResume {
			matchedCount = resumeMatched
			if matchedCount == 0 {
				// 文本像简历却一项技能都没命中，多半是提取出了坏文本，回退档案技能
				matchedCount = profileMatched
			}
		}
		skillScore = float64(matchedCount) / float64(len(job.RequiredSkills)) * skillWeight
	}

	// 教育分量（30）：超过门槛不加分，饱和封顶
	var eduScore float64
	if job.MinCGPA > 0 {
		eduScore = math.Min(profile.CGPA/job.MinCGPA*eduWeight, eduWeight)
	}

	// 经验分量（20）
	var expScore float64
	if job.MinExperienceYears > 0 {
		expScore = math.Min(profile.ExperienceYears/job.MinExperienceYears*expWeight, expWeight)
	}

	// 证书分量（10）
	var certScore float64
	if len(job.RequiredCertifications) > 0 {
		matchedCert := s.matcher.Overlap(job.RequiredCertifications, profile.Certifications)
		certScore = float64(matchedCert) / float64(len(job.RequiredCertifications)) * certWeight
	}

	breakdown := types.ScoreBreakdown{
		SkillScore:         skillScore,
		EducationScore:     eduScore,
		ExperienceScore:    expScore,
		CertificationScore: certScore,
		Total:              round2(skillScore + eduScore + expScore + certScore),
	}

	s.recordAudit(ctx, evalID, profile, job, resolved, resumeMatched, profileMatched, breakdown)
	metrics.Scored(ctx, usedResume)

	span.SetAttributes(
		attribute.String("ats.evaluation_id", evalID),
		attribute.String("ats.candidate", tracing.MaskPII(profile.CandidateID)),
		attribute.String("ats.job_id", job.JobID),
		attribute.Bool("ats.used_resume", usedResume),
		attribute.Bool("ats.resume_like", resolved.ResumeLike),
		attribute.Int("ats.resume_text_len", resolved.RawLen),
		attribute.Float64("ats.total_score", breakdown.Total),
	)

	s.logger.Debug().
		Str("evaluation_id", evalID).
		Str("job_id", job.JobID).
		Bool("used_resume", usedResume).
		Float64("total", breakdown.Total).
		Msg("评分完成")

	return breakdown
}

// Score 计算适配度总分，范围[0,100]，2位小数
func (s *Scorer) Score(ctx context.Context, profile types.CandidateProfile, job types.JobRequirement, resume *types.ResumeDocument) float64 {
	return s.Evaluate(ctx, profile, job, resume).Total
}

// SkillBreakdown 返回技能命中/缺失明细
// 注意：该路径没有评分路径的零命中回退，也不追加审计记录
func (s *Scorer) SkillBreakdown(ctx context.Context, profile types.CandidateProfile, job types.JobRequirement, resume *types.ResumeDocument) types.MatchResult {
	ctx, span := tracer.Start(ctx, "scorer.SkillBreakdown")
	defer span.End()

	resolved := s.resolveResume(ctx, profile, resume)
	usedResume := resolved.ResumeLike && resolved.Text != ""

	matched, missing := s.matcher.Breakdown(job.RequiredSkills, profile.Skills, resolved.Text, usedResume)

	span.SetAttributes(
		attribute.Bool("ats.used_resume", usedResume),
		attribute.Int("ats.matched", len(matched)),
		attribute.Int("ats.missing", len(missing)),
		attribute.String("ats.job_skills", tracing.SafeSkillList(job.RequiredSkills)),
		attribute.String("ats.resume_snippet", tracing.SafeResumeContent(resolved.Text)),
	)

	return types.MatchResult{
		Matched:       matched,
		Missing:       missing,
		UsedResume:    usedResume,
		ResumeSnippet: snippet(resolved.Text),
	}
}

// recordAudit 追加审计记录；写入失败吞掉并计数，评分必须照常返回
func (s *Scorer) recordAudit(ctx context.Context, evalID string, profile types.CandidateProfile, job types.JobRequirement, resolved resolvedResume, resumeMatched, profileMatched int, breakdown types.ScoreBreakdown) {
	if s.audit == nil {
		return
	}

	entry := &audit.Entry{
		Timestamp:          time.Now(),
		EvaluationID:       evalID,
		CandidateID:        profile.CandidateID,
		JobID:              job.JobID,
		JobTitle:           job.Title,
		ResumePath:         resolved.Path,
		ResumeTextLen:      resolved.RawLen,
		ResumeLike:         resolved.ResumeLike,
		MatchedResume:      resumeMatched,
		MatchedProfile:     profileMatched,
		JobSkillsCount:     len(job.RequiredSkills),
		SkillScore:         breakdown.SkillScore,
		EducationScore:     breakdown.EducationScore,
		ExperienceScore:    breakdown.ExperienceScore,
		CertificationScore: breakdown.CertificationScore,
		Total:              breakdown.Total,
	}

	if err := s.audit.Record(ctx, entry); err != nil {
		metrics.AuditFailed(ctx)
		tracing.RecordErrorWithInfo(trace.SpanFromContext(ctx), err, tracing.ErrorTypeAudit,
			attribute.String("ats.evaluation_id", evalID))
		s.logger.Warn().Str("evaluation_id", evalID).Err(err).Msg("审计记录写入失败")
	}
}

// snippet 明细输出用的文本片段：前800字符，截断时以省略号结尾
func snippet(text string) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= snippetLength {
		return text
	}
	return string(runes[:snippetLength]) + "..."
}

// round2 四舍五入到2位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
