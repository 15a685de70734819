package scorer_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"ats-match-go/internal/audit"
	"ats-match-go/internal/scorer"
	"ats-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor 测试用的文本提取器：按路径返回预设文本
type fakeExtractor struct {
	texts map[string]string
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, doc types.ResumeDocument) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.texts[doc.Path], nil
}

// resumeLikeText 构造一段能通过似然判定、且包含指定技能词的文本
func resumeLikeText(skills ...string) string {
	lines := []string{
		"Professional experience section with several years of work history",
		"Education background with a bachelor degree in computer science",
		"Summary of qualifications and career objective statement follows",
		"Project delivery record across multiple production systems here",
	}
	if len(skills) > 0 {
		lines = append(lines, "Skills include "+strings.Join(skills, " and ")+" among other tools")
	}
	text := strings.Join(lines, "\n")
	for len([]rune(text)) < 450 {
		text += "\nAdditional details about responsibilities and accomplishments"
	}
	return text
}

func newScorer(ext *fakeExtractor, sink audit.Sink) *scorer.Scorer {
	return scorer.New(ext, sink)
}

func TestScoreEndToEndWithProfileFallback(t *testing.T) {
	sink := audit.NewMemorySink()
	s := newScorer(&fakeExtractor{}, sink)

	profile := types.CandidateProfile{
		CandidateID:     "u1001",
		Skills:          []string{"Python", "SQL"},
		CGPA:            8.5,
		ExperienceYears: 2,
	}
	job := types.JobRequirement{
		JobID:              "j1",
		Title:              "Data Engineer",
		RequiredSkills:     []string{"Python", "SQL", "Docker"},
		MinCGPA:            7.0,
		MinExperienceYears: 1,
	}

	breakdown := s.Evaluate(context.Background(), profile, job, nil)

	assert.InDelta(t, 26.67, breakdown.SkillScore, 0.01)
	assert.InDelta(t, 30.0, breakdown.EducationScore, 1e-9)
	assert.InDelta(t, 20.0, breakdown.ExperienceScore, 1e-9)
	assert.InDelta(t, 0.0, breakdown.CertificationScore, 1e-9)
	assert.InDelta(t, 76.67, breakdown.Total, 1e-9)

	// 评分必然落一条审计记录
	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "u1001", entries[0].CandidateID)
	assert.Equal(t, "j1", entries[0].JobID)
	assert.Equal(t, 3, entries[0].JobSkillsCount)
	assert.Equal(t, 2, entries[0].MatchedProfile)
	assert.Equal(t, 0, entries[0].MatchedResume)
	assert.False(t, entries[0].ResumeLike)
	assert.InDelta(t, 76.67, entries[0].Total, 1e-9)
}

func TestScoreZeroWhenJobHasNoThresholds(t *testing.T) {
	s := newScorer(&fakeExtractor{}, audit.NewMemorySink())

	// 岗位不设任何门槛时四个分量全为0，任何档案都得0分
	profile := types.CandidateProfile{
		Skills:          []string{"Python", "SQL", "Docker"},
		Certifications:  []string{"CKA"},
		CGPA:            9.9,
		ExperienceYears: 15,
	}
	total := s.Score(context.Background(), profile, types.JobRequirement{JobID: "j2"}, nil)
	assert.Equal(t, 0.0, total)
}

func TestComponentsSaturateAtTheirCaps(t *testing.T) {
	s := newScorer(&fakeExtractor{}, audit.NewMemorySink())

	profile := types.CandidateProfile{
		Skills:          []string{"Python"},
		Certifications:  []string{"CKA"},
		CGPA:            20,
		ExperienceYears: 40,
	}
	job := types.JobRequirement{
		RequiredSkills:         []string{"Python"},
		RequiredCertifications: []string{"CKA"},
		MinCGPA:                2,
		MinExperienceYears:     1,
	}

	breakdown := s.Evaluate(context.Background(), profile, job, nil)

	assert.InDelta(t, 40.0, breakdown.SkillScore, 1e-9)
	assert.InDelta(t, 30.0, breakdown.EducationScore, 1e-9)
	assert.InDelta(t, 20.0, breakdown.ExperienceScore, 1e-9)
	assert.InDelta(t, 10.0, breakdown.CertificationScore, 1e-9)
	assert.InDelta(t, 100.0, breakdown.Total, 1e-9)
}

func TestResumeBasedSkillMatching(t *testing.T) {
	sink := audit.NewMemorySink()
	ext := &fakeExtractor{texts: map[string]string{
		"/resumes/a.pdf": resumeLikeText("Python", "Kubernetes"),
	}}
	s := newScorer(ext, sink)

	profile := types.CandidateProfile{CandidateID: "u1"}
	job := types.JobRequirement{
		JobID:          "j3",
		RequiredSkills: []string{"Python", "Kubernetes", "Terraform"},
	}
	resume := types.ResolveDocument("/resumes/a.pdf")

	breakdown := s.Evaluate(context.Background(), profile, job, &resume)

	// 2/3 * 40
	assert.InDelta(t, 26.67, breakdown.Total, 0.01)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].ResumeLike)
	assert.Equal(t, 2, entries[0].MatchedResume)
	assert.Equal(t, "/resumes/a.pdf", entries[0].ResumePath)
}

func TestZeroResumeMatchFallsBackToProfileSkills(t *testing.T) {
	sink := audit.NewMemorySink()
	// 文本通过似然判定但不含任何岗位技能：视为提取出了坏文本
	ext := &fakeExtractor{texts: map[string]string{
		"/resumes/b.pdf": resumeLikeText(),
	}}
	s := newScorer(ext, sink)

	profile := types.CandidateProfile{
		Skills: []string{"Golang", "Kubernetes"},
		Resume: &types.ResumeDocument{Path: "/resumes/b.pdf", Kind: types.KindPDF},
	}
	job := types.JobRequirement{RequiredSkills: []string{"Golang", "Kubernetes"}}

	breakdown := s.Evaluate(context.Background(), profile, job, nil)

	assert.InDelta(t, 40.0, breakdown.SkillScore, 1e-9)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].MatchedResume)
	assert.Equal(t, 2, entries[0].MatchedProfile)
}

func TestExplicitResumeWinsOverProfileResume(t *testing.T) {
	sink := audit.NewMemorySink()
	ext := &fakeExtractor{texts: map[string]string{
		"/resumes/profile.pdf":  resumeLikeText("Python"),
		"/resumes/explicit.pdf": resumeLikeText("Terraform"),
	}}
	s := newScorer(ext, sink)

	profile := types.CandidateProfile{
		Resume: &types.ResumeDocument{Path: "/resumes/profile.pdf", Kind: types.KindPDF},
	}
	job := types.JobRequirement{RequiredSkills: []string{"Terraform"}}
	explicit := types.ResolveDocument("/resumes/explicit.pdf")

	breakdown := s.Evaluate(context.Background(), profile, job, &explicit)
	assert.InDelta(t, 40.0, breakdown.SkillScore, 1e-9)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "/resumes/explicit.pdf", entries[0].ResumePath)
}

func TestRejectedTextIsDiscarded(t *testing.T) {
	sink := audit.NewMemorySink()
	// 太短的文本过不了似然判定，回退档案技能
	ext := &fakeExtractor{texts: map[string]string{
		"/resumes/short.txt": "Python short note",
	}}
	s := newScorer(ext, sink)

	profile := types.CandidateProfile{
		Skills: []string{"SQL"},
		Resume: &types.ResumeDocument{Path: "/resumes/short.txt", Kind: types.KindPlainText},
	}
	job := types.JobRequirement{RequiredSkills: []string{"Python", "SQL"}}

	breakdown := s.Evaluate(context.Background(), profile, job, nil)

	// 文本被弃用：Python不算命中，SQL经档案命中，1/2*40
	assert.InDelta(t, 20.0, breakdown.SkillScore, 1e-9)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].ResumeLike)
}

func TestScoreIsIdempotent(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{
		"/resumes/a.pdf": resumeLikeText("Python"),
	}}
	s := newScorer(ext, audit.NewMemorySink())

	profile := types.CandidateProfile{
		Skills:          []string{"Python"},
		CGPA:            8,
		ExperienceYears: 3,
		Resume:          &types.ResumeDocument{Path: "/resumes/a.pdf", Kind: types.KindPDF},
	}
	job := types.JobRequirement{
		RequiredSkills:     []string{"Python", "SQL"},
		MinCGPA:            7,
		MinExperienceYears: 2,
	}

	first := s.Score(context.Background(), profile, job, nil)
	second := s.Score(context.Background(), profile, job, nil)
	assert.Equal(t, first, second)
}

func TestSkillBreakdownOutput(t *testing.T) {
	ext := &fakeExtractor{texts: map[string]string{
		"/resumes/a.pdf": resumeLikeText("Python", "SQL"),
	}}
	s := newScorer(ext, audit.NewMemorySink())

	profile := types.CandidateProfile{
		Resume: &types.ResumeDocument{Path: "/resumes/a.pdf", Kind: types.KindPDF},
	}
	job := types.JobRequirement{RequiredSkills: []string{"Python", "Docker", "SQL"}}

	result := s.SkillBreakdown(context.Background(), profile, job, nil)

	assert.True(t, result.UsedResume)
	assert.Equal(t, []string{"Python", "SQL"}, result.Matched)
	assert.Equal(t, []string{"Docker"}, result.Missing)
	assert.NotEmpty(t, result.ResumeSnippet)
}

func TestSkillBreakdownSnippetTruncation(t *testing.T) {
	long := resumeLikeText("Python")
	for len([]rune(long)) < 1200 {
		long += " additional accomplishments and responsibilities in production"
	}
	ext := &fakeExtractor{texts: map[string]string{"/resumes/a.pdf": long}}
	s := newScorer(ext, audit.NewMemorySink())

	resume := types.ResumeDocument{Path: "/resumes/a.pdf", Kind: types.KindPDF}
	result := s.SkillBreakdown(context.Background(), types.CandidateProfile{}, types.JobRequirement{RequiredSkills: []string{"Python"}}, &resume)

	assert.True(t, strings.HasSuffix(result.ResumeSnippet, "..."))
	assert.Equal(t, 803, len([]rune(result.ResumeSnippet)))
}

func TestSkillBreakdownWithoutResume(t *testing.T) {
	s := newScorer(&fakeExtractor{}, audit.NewMemorySink())

	profile := types.CandidateProfile{Skills: []string{"Python"}}
	job := types.JobRequirement{RequiredSkills: []string{"Python", "Docker"}}

	result := s.SkillBreakdown(context.Background(), profile, job, nil)

	assert.False(t, result.UsedResume)
	assert.Equal(t, "", result.ResumeSnippet)
	assert.Equal(t, []string{"Python"}, result.Matched)
	assert.Equal(t, []string{"Docker"}, result.Missing)
}

// failingSink 总是失败的审计sink
type failingSink struct{}

func (failingSink) Record(ctx context.Context, entry *audit.Entry) error {
	return fmt.Errorf("store unwritable")
}

func TestAuditFailureDoesNotAffectScore(t *testing.T) {
	s := newScorer(&fakeExtractor{}, failingSink{})

	profile := types.CandidateProfile{Skills: []string{"Python"}, CGPA: 8}
	job := types.JobRequirement{RequiredSkills: []string{"Python"}, MinCGPA: 8}

	total := s.Score(context.Background(), profile, job, nil)
	assert.InDelta(t, 70.0, total, 1e-9)
}

func TestExtractionFailureDegradesToProfileSkills(t *testing.T) {
	sink := audit.NewMemorySink()
	ext := &fakeExtractor{err: fmt.Errorf("corrupt document")}
	s := newScorer(ext, sink)

	profile := types.CandidateProfile{
		Skills: []string{"Python"},
		Resume: &types.ResumeDocument{Path: "/resumes/broken.pdf", Kind: types.KindPDF},
	}
	job := types.JobRequirement{RequiredSkills: []string{"Python"}}

	total := s.Score(context.Background(), profile, job, nil)
	assert.InDelta(t, 40.0, total, 1e-9)
}

func TestConcurrentScoringProducesOneRecordEach(t *testing.T) {
	sink := audit.NewMemorySink()
	s := newScorer(&fakeExtractor{}, sink)

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profile := types.CandidateProfile{CandidateID: fmt.Sprintf("u%d", i), Skills: []string{"Python"}}
			job := types.JobRequirement{JobID: fmt.Sprintf("j%d", i), RequiredSkills: []string{"Python"}}
			s.Score(context.Background(), profile, job, nil)
		}(i)
	}
	wg.Wait()

	assert.Len(t, sink.Entries(), n)
}
