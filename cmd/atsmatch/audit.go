package main

import (
	"encoding/json"
	"fmt"

	"ats-match-go/internal/audit"
	"ats-match-go/internal/config"
	"ats-match-go/internal/logger"
)

// 处理审计记录查询命令
// 读取审计日志文件，按候选人标识过滤（子串匹配），最新记录在前
func handleAuditCommand(cfg *config.Config) {
	blocks, err := audit.ReadBlocks(cfg.Audit.Path)
	if err != nil {
		logger.Fatal().Str("path", cfg.Audit.Path).Err(err).Msg("读取审计日志失败")
	}

	blocks = audit.NewestFirst(audit.FilterByCandidate(blocks, *candidateFilter))

	if *outputFormat == "json" {
		out, err := json.MarshalIndent(blocks, "", "  ")
		if err != nil {
			logger.Fatal().Err(err).Msg("序列化结果失败")
		}
		fmt.Println(string(out))
		return
	}

	if len(blocks) == 0 {
		fmt.Println("没有匹配的审计记录。")
		return
	}
	fmt.Printf("===== 审计记录 (%d 条, 最新在前) =====\n", len(blocks))
	for _, block := range blocks {
		fmt.Println(block)
		fmt.Println()
	}
}
