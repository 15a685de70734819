package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"ats-match-go/internal/config"
	"ats-match-go/internal/logger"

	flag "github.com/spf13/pflag"
)

// 处理仅提取文本命令
func handleExtractCommand(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	doc, cleanup, err := resolveResumeArg(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("解析简历参数失败")
	}
	defer cleanup()

	if doc == nil {
		fmt.Println("错误: 必须提供 -resume 或 -resume-object 参数。")
		flag.Usage()
		os.Exit(1)
	}

	fmt.Printf("准备提取文档: %s (类型: %s)\n", doc.Path, doc.Kind)
	startTime := time.Now()

	text, err := buildExtractor(cfg).Extract(ctx, *doc)
	if err != nil {
		// 提取是尽力而为的：有错也把已拿到的文本展示出来
		logger.Warn().Str("path", doc.Path).Err(err).Msg("文本提取降级")
	}

	fmt.Printf("提取完成! 耗时: %v\n", time.Since(startTime))
	fmt.Printf("\n===== 提取的文本 (总计 %d 字符) =====\n", len([]rune(text)))
	fmt.Println(truncateForDisplay(text))
}
