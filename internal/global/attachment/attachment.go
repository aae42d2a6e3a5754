// Package attachment 为报告附件签发 S3 预签名上传 URL
// 文件本体由前端直传对象存储，不经过本服务
package attachment

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	appconfig "company-oa-system/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Store struct {
	Endpoint     string
	BaseURL      string
	Bucket       string
	Region       string
	Prefix       string
	UsePathStyle bool

	s3Client *s3.Client
	initOnce sync.Once
	initErr  error
}

var defaultStore Store

// Default 返回基于全局配置的附件存储实例
func Default() *Store {
	cfg := appconfig.Get()
	defaultStore.Endpoint = cfg.S3.Endpoint
	defaultStore.BaseURL = cfg.S3.BaseURL
	defaultStore.Bucket = cfg.S3.Bucket
	defaultStore.Region = cfg.S3.Region
	defaultStore.Prefix = cfg.S3.Prefix
	defaultStore.UsePathStyle = cfg.S3.UsePathStyle
	return &defaultStore
}

// InitS3 初始化 S3 客户端（懒加载，只执行一次）
func (s *Store) InitS3(ctx context.Context) error {
	s.initOnce.Do(func() {
		cfg := appconfig.Get()
		awsConfig, err := awscfg.LoadDefaultConfig(ctx,
			awscfg.WithRegion(s.Region),
			awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.S3.AccessKey, cfg.S3.SecretAccessKey, "")),
		)
		if err != nil {
			s.initErr = err
			return
		}

		s.s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if s.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.Endpoint)
			}
			o.UsePathStyle = s.UsePathStyle
		})
	})
	return s.initErr
}

// PresignedUploadRequest 预签名上传请求参数
type PresignedUploadRequest struct {
	Filename    string // 原始文件名
	ContentType string // 文件 MIME 类型
	ExpiresIn   int64  // 过期时间（秒），默认 15 分钟
}

// PresignedUploadResponse 预签名上传响应
type PresignedUploadResponse struct {
	UploadURL string    `json:"upload_url"` // 预签名上传 URL
	FileKey   string    `json:"file_key"`   // 对象存储中的文件 key
	FileURL   string    `json:"file_url"`   // 上传成功后的访问 URL
	ExpiresAt time.Time `json:"expires_at"` // 过期时间
	Method    string    `json:"method"`     // HTTP 方法（通常是 PUT）
}

// GeneratePresignedUploadURL 生成预签名上传 URL
// 允许前端直接上传附件到 S3，无需经过后端中转
func (s *Store) GeneratePresignedUploadURL(ctx context.Context, req PresignedUploadRequest) (*PresignedUploadResponse, error) {
	if err := s.InitS3(ctx); err != nil {
		return nil, fmt.Errorf("初始化 S3 客户端失败: %w", err)
	}

	if s.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket 未配置")
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("文件名不能为空")
	}

	// 默认过期时间 15 分钟
	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 900
	}

	// 生成唯一的文件名（时间戳 + 原始扩展名）
	ext := strings.ToLower(path.Ext(req.Filename))
	uniqueFilename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	key := path.Join(strings.Trim(s.Prefix, "/"), uniqueFilename)
	key = strings.TrimLeft(key, "/")

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	presignClient := s3.NewPresignClient(s.s3Client)

	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ExpiresIn) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("生成预签名 URL 失败: %w", err)
	}

	// 构建访问 URL
	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(s.Endpoint, "/")
	}

	var fileURL string
	if s.UsePathStyle {
		fileURL = base + "/" + s.Bucket + "/" + key
	} else {
		fileURL = base + "/" + key
	}

	return &PresignedUploadResponse{
		UploadURL: presignedReq.URL,
		FileKey:   key,
		FileURL:   fileURL,
		ExpiresAt: time.Now().Add(time.Duration(req.ExpiresIn) * time.Second),
		Method:    presignedReq.Method,
	}, nil
}
