package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ats-match-go/internal/config"
	"ats-match-go/internal/logger"

	flag "github.com/spf13/pflag"
)

// 处理评分命令
func handleScoreCommand(cfg *config.Config) {
	if *profileFile == "" || *jobFile == "" {
		fmt.Println("错误: 必须提供 -profile 和 -job 参数。")
		flag.Usage()
		os.Exit(1)
	}

	profile, err := loadProfile(*profileFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载候选人档案失败")
	}
	job, err := loadJob(*jobFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载岗位要求失败")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resume, cleanup, err := resolveResumeArg(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("解析简历参数失败")
	}
	defer cleanup()

	s := buildScorer(cfg)
	breakdown := s.Evaluate(ctx, profile, job, resume)

	if *outputFormat == "json" {
		out, err := json.MarshalIndent(breakdown, "", "  ")
		if err != nil {
			logger.Fatal().Err(err).Msg("序列化结果失败")
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("===== 适配度评分: %s x %s =====\n", displayCandidate(profile), job.Title)
	fmt.Printf("技能分量 (40): %.2f\n", breakdown.SkillScore)
	fmt.Printf("教育分量 (30): %.2f\n", breakdown.EducationScore)
	fmt.Printf("经验分量 (20): %.2f\n", breakdown.ExperienceScore)
	fmt.Printf("证书分量 (10): %.2f\n", breakdown.CertificationScore)
	fmt.Printf("总分: %.2f\n", breakdown.Total)
}
