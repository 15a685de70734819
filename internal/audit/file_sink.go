package audit

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// 确保FileSink实现了Sink接口
var _ Sink = (*FileSink)(nil)

// FileSink 把审计记录追加写入文本文件
// 并发评分会同时追加；互斥锁加整块单次写入保证记录粒度的原子性，
// 避免多条记录的行交错损坏
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink 创建文件审计器，path为审计日志文件路径
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Record 追加一条审计记录
func (s *FileSink) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return nil
	}
	block := entry.Format()

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("打开审计日志 %s 失败: %w", s.path, err)
	}
	defer f.Close()

	// 整块一次写入，不拆行
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("写入审计记录失败: %w", err)
	}
	return nil
}
