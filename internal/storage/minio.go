// Package storage 简历文件的对象存储访问
// 提取器只认本地路径，对象存储中的简历先落到临时文件再提取
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ats-match-go/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// ObjectStore 简历对象存储接口
type ObjectStore interface {
	// UploadResume 上传简历文件
	UploadResume(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error

	// Download 下载简历文件内容
	Download(ctx context.Context, objectName string) ([]byte, error)

	// FetchToTemp 把简历下载到临时文件，返回本地路径和清理函数
	FetchToTemp(ctx context.Context, objectName string) (string, func(), error)
}

// 确保ResumeStore实现了ObjectStore接口
var _ ObjectStore = (*ResumeStore)(nil)

// ResumeStore 基于MinIO的简历存储
type ResumeStore struct {
	client *minio.Client
	bucket string
	logger zerolog.Logger
}

// NewResumeStore 创建MinIO简历存储客户端
func NewResumeStore(cfg *config.MinIOConfig, logger zerolog.Logger) (*ResumeStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if cfg.ResumeBucket == "" {
		return nil, fmt.Errorf("简历存储桶名称不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	s := &ResumeStore{
		client: client,
		bucket: cfg.ResumeBucket,
		logger: logger,
	}

	if err := s.ensureBucketExists(context.Background(), cfg.Location); err != nil {
		return nil, fmt.Errorf("确保简历存储桶 %s 存在失败: %w", s.bucket, err)
	}

	logger.Info().Str("endpoint", cfg.Endpoint).Str("bucket", s.bucket).Msg("MinIO简历存储初始化完成")
	return s, nil
}

// ensureBucketExists 确保存储桶存在，不存在则创建
func (s *ResumeStore) ensureBucketExists(ctx context.Context, location string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", s.bucket, err)
		}
		s.logger.Info().Str("bucket", s.bucket).Msg("简历存储桶已创建")
	}
	return nil
}

// UploadResume 上传简历文件
func (s *ResumeStore) UploadResume(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("上传简历 %s 失败: %w", objectName, err)
	}
	return nil
}

// Download 下载简历文件内容
func (s *ResumeStore) Download(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取简历对象 %s 失败: %w", objectName, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, obj); err != nil {
		return nil, fmt.Errorf("读取简历对象 %s 内容失败: %w", objectName, err)
	}
	return buf.Bytes(), nil
}

// FetchToTemp 把简历下载到临时文件，返回本地路径和清理函数
// 临时文件名保留原始扩展名，文档类型的解析依赖它
func (s *ResumeStore) FetchToTemp(ctx context.Context, objectName string) (string, func(), error) {
	data, err := s.Download(ctx, objectName)
	if err != nil {
		return "", nil, err
	}

	ext := filepath.Ext(objectName)
	tmp, err := os.CreateTemp("", "resume-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("创建临时文件失败: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("关闭临时文件失败: %w", err)
	}

	path := tmp.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Str("path", path).Err(err).Msg("清理临时简历文件失败")
		}
	}
	return path, cleanup, nil
}
