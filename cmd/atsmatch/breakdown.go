package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"ats-match-go/internal/config"
	"ats-match-go/internal/logger"

	flag "github.com/spf13/pflag"
)

// 处理技能匹配明细命令
func handleBreakdownCommand(cfg *config.Config) {
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
	result := s.SkillBreakdown(ctx, profile, job, resume)

	if *outputFormat == "json" {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Fatal().Err(err).Msg("序列化结果失败")
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("===== 技能匹配明细: %s x %s =====\n", displayCandidate(profile), job.Title)
	fmt.Printf("匹配来源: %s\n", matchSource(result.UsedResume))
	fmt.Printf("命中 (%d): %s\n", len(result.Matched), strings.Join(result.Matched, ", "))
	fmt.Printf("缺失 (%d): %s\n", len(result.Missing), strings.Join(result.Missing, ", "))
	if result.ResumeSnippet != "" {
		fmt.Printf("\n----- 简历片段 -----\n%s\n", truncateForDisplay(result.ResumeSnippet))
	}
}

func matchSource(usedResume bool) string {
	if usedResume {
		return "简历文本（整词匹配）"
	}
	return "档案技能列表（回退）"
}
