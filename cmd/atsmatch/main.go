package main

import (
	"context"
	"fmt"
	"os"

	"ats-match-go/internal/audit"
	"ats-match-go/internal/config"
	"ats-match-go/internal/extractor"
	"ats-match-go/internal/logger"
	"ats-match-go/internal/scorer"
	"ats-match-go/internal/storage"
	"ats-match-go/internal/types"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// 命令行参数定义
var (
	configPath      = flag.String("config", "", "配置文件路径，为空时按约定路径搜索")
	command         = flag.String("cmd", "score", "执行的命令: score=计算适配度分数, breakdown=技能匹配明细, extract=仅提取文本, audit=审计记录查询")
	profileFile     = flag.String("profile", "", "候选人档案YAML文件路径")
	jobFile         = flag.String("job", "", "岗位要求YAML文件路径")
	resumeFile      = flag.String("resume", "", "简历文件路径（可选，优先于档案中存的简历）")
	resumeObject    = flag.String("resume-object", "", "对象存储中的简历对象名（可选，需配置minio）")
	outputFormat    = flag.String("format", "text", "输出格式: text, json")
	candidateFilter = flag.String("candidate", "", "审计查询按候选人标识过滤（子串匹配，仅 -cmd audit）")
	maxLen          = flag.Int("maxlen", 1000, "显示的文本最大长度，设为-1显示全部")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	logger.Debug().Str("cmd", *command).Str("audit_path", cfg.Audit.Path).Msg("配置加载完成")

	switch *command {
	case "score":
		handleScoreCommand(cfg)
	case "breakdown":
		handleBreakdownCommand(cfg)
	case "extract":
		handleExtractCommand(cfg)
	case "audit":
		handleAuditCommand(cfg)
	default:
		fmt.Printf("错误: 未知命令 '%s'。支持的命令: score, breakdown, extract, audit\n", *command)
		flag.Usage()
		os.Exit(1)
	}
}

// buildExtractor 按配置组装文本提取器
func buildExtractor(cfg *config.Config) *extractor.DocumentExtractor {
	options := []extractor.Option{
		extractor.WithAttemptTimeout(cfg.Extractor.AttemptTimeout()),
		extractor.WithLogger(logger.Logger),
	}
	// OCR服务器未配置时能力缺失，扫描版PDF静默降级
	if cfg.OCR.ServerURL != "" {
		options = append(options, extractor.WithOCR(extractor.NewTikaOCR(
			cfg.OCR.ServerURL,
			extractor.WithTikaTimeout(cfg.OCR.Timeout()),
			extractor.WithTikaLogger(logger.Logger),
		)))
	}
	return extractor.New(options...)
}

// buildScorer 按配置组装评分器（文件审计sink）
func buildScorer(cfg *config.Config) *scorer.Scorer {
	return scorer.New(
		buildExtractor(cfg),
		audit.NewFileSink(cfg.Audit.Path),
		scorer.WithLogger(logger.Logger),
	)
}

// resolveResumeArg 解析命令行指定的简历：本地文件或对象存储对象
// 返回的清理函数负责删除从对象存储落下来的临时文件
func resolveResumeArg(ctx context.Context, cfg *config.Config) (*types.ResumeDocument, func(), error) {
	noop := func() {}

	if *resumeFile != "" {
		doc := types.ResolveDocument(*resumeFile)
		return &doc, noop, nil
	}

	if *resumeObject != "" {
		store, err := storage.NewResumeStore(&cfg.MinIO, logger.Logger)
		if err != nil {
			return nil, noop, fmt.Errorf("初始化简历对象存储失败: %w", err)
		}
		path, cleanup, err := store.FetchToTemp(ctx, *resumeObject)
		if err != nil {
			return nil, noop, fmt.Errorf("下载简历对象 %s 失败: %w", *resumeObject, err)
		}
		doc := types.ResolveDocument(path)
		return &doc, cleanup, nil
	}

	return nil, noop, nil
}

// loadProfile 从YAML文件加载候选人档案
func loadProfile(path string) (types.CandidateProfile, error) {
	var profile types.CandidateProfile
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("读取档案文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("解析档案文件失败: %w", err)
	}
	// 文档类型在输入边界解析一次
	if profile.Resume != nil && profile.Resume.Kind == "" {
		resolved := types.ResolveDocument(profile.Resume.Path)
		profile.Resume = &resolved
	}
	return profile, nil
}

// loadJob 从YAML文件加载岗位要求
func loadJob(path string) (types.JobRequirement, error) {
	var job types.JobRequirement
	data, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("读取岗位文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &job); err != nil {
		return job, fmt.Errorf("解析岗位文件失败: %w", err)
	}
	return job, nil
}

// displayCandidate 展示用的候选人标识
func displayCandidate(profile types.CandidateProfile) string {
	if profile.CandidateID == "" {
		return audit.AnonymousCandidate
	}
	return profile.CandidateID
}

// truncateForDisplay 按-maxlen截断展示文本
func truncateForDisplay(text string) string {
	if *maxLen >= 0 && len(text) > *maxLen {
		return text[:*maxLen] + "...(已截断，使用 -maxlen 参数显示更多)"
	}
	return text
}
