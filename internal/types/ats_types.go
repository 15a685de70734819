package types

import (
	"path/filepath"
	"strings"
)

// DocumentKind 表示简历文档类型（封闭的标签变体，在输入边界解析一次）
type DocumentKind string

const (
	// KindPDF PDF文档
	KindPDF DocumentKind = "PDF"
	// KindDocBinary Word文档（.docx以及旧式.doc）
	KindDocBinary DocumentKind = "DOC_BINARY"
	// KindPlainText 纯文本或未知扩展名，按文本宽松读取
	KindPlainText DocumentKind = "PLAIN_TEXT"
)

// ResumeDocument 指向存储字节的简历文档引用
// 核心只读取该文件，从不修改或删除；所有权归调用方
type ResumeDocument struct {
	Path string       `json:"path" yaml:"path"`
	Kind DocumentKind `json:"kind" yaml:"kind,omitempty"`
}

// ResolveDocument 按扩展名（大小写不敏感）把路径解析为带类型标签的文档引用
func ResolveDocument(path string) ResumeDocument {
	kind := KindPlainText
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		kind = KindPDF
	case ".docx", ".doc":
		kind = KindDocBinary
	}
	return ResumeDocument{Path: path, Kind: kind}
}

// CandidateProfile 候选人档案，评分请求的输入，评分过程中不可变
type CandidateProfile struct {
	// 候选人标识，缺省时审计记录写为anonymous
	CandidateID string `json:"candidate_id" yaml:"candidate_id"`
	// 已声明的技能列表（有序）
	Skills []string `json:"skills" yaml:"skills"`
	// 证书列表
	Certifications []string `json:"certifications" yaml:"certifications"`
	// 绩点
	CGPA float64 `json:"cgpa" yaml:"cgpa"`
	// 工作年限
	ExperienceYears float64 `json:"experience_years" yaml:"experience_years"`
	// 候选人自己上传的简历（可选）
	Resume *ResumeDocument `json:"resume,omitempty" yaml:"resume,omitempty"`
}

// JobRequirement 岗位要求，评分过程中不可变
type JobRequirement struct {
	JobID string `json:"job_id" yaml:"job_id"`
	Title string `json:"title" yaml:"title"`
	// 要求的技能列表（有序，matched/missing按此顺序输出）
	RequiredSkills []string `json:"required_skills" yaml:"required_skills"`
	// 要求的证书列表
	RequiredCertifications []string `json:"required_certifications" yaml:"required_certifications"`
	// 最低绩点，0表示不设门槛
	MinCGPA float64 `json:"min_cgpa" yaml:"min_cgpa"`
	// 最低工作年限，0表示不设门槛
	MinExperienceYears float64 `json:"min_experience_years" yaml:"min_experience_years"`
}

// MatchResult 技能匹配明细，每次调用新建，核心不持久化
type MatchResult struct {
	// 命中的技能（按岗位要求顺序）
	Matched []string `json:"matched"`
	// 缺失的技能（按岗位要求顺序）
	Missing []string `json:"missing"`
	// 是否基于简历文本匹配（false表示回退到档案技能列表）
	UsedResume bool `json:"used_resume"`
	// 简历文本前800字符，截断时以省略号结尾；未使用简历时为空串
	ResumeSnippet string `json:"resume_snippet"`
}

// ScoreBreakdown 四个加权分量及总分
// 不变式：Total恒等于四个分量之和，各分量独立封顶（40/30/20/10）
type ScoreBreakdown struct {
	SkillScore         float64 `json:"skill_score"`
	EducationScore     float64 `json:"education_score"`
	ExperienceScore    float64 `json:"experience_score"`
	CertificationScore float64 `json:"certification_score"`
	// 四项之和，四舍五入到2位小数，范围[0,100]
	Total float64 `json:"total"`
}
