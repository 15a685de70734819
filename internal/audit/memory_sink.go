package audit

import (
	"context"
	"sync"
)

var _ Sink = (*MemorySink)(nil)

// MemorySink 内存审计收集器，测试用
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemorySink 创建内存审计收集器
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Record 收集一条审计记录
func (s *MemorySink) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	return nil
}

// Entries 返回已收集记录的副本
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
