package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage/db"
	"github.com/yeisme/sitevault/pkg/internal/storage/mq"
	"github.com/yeisme/sitevault/pkg/internal/storage/s3"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/queue"
)

// DefaultPresignedOpTimeout 预签名下载链接的有效期.
const DefaultPresignedOpTimeout = 15 * time.Minute

// ArchiveService 把一个任务的全部附件打包成 zip 导出到对象存储，
// 返回限时下载链接。附件本体始终在数据库里，对象存储只承载导出产物.
type ArchiveService struct {
	dbClient *db.Client
	s3Client *s3.Client
	mqClient *mq.Client
}

// NewArchiveService 从 context 获取依赖实例.
func NewArchiveService(c context.Context) *ArchiveService {
	dbc := ctxPkg.GetDBClient(c)
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &ArchiveService{
		dbClient: dbc,
		s3Client: ctxPkg.GetS3Client(c),
		mqClient: ctxPkg.GetMQClient(c),
	}
}

// ArchiveTaskAttachments 打包指定任务的附件并写入对象存储.
func (s *ArchiveService) ArchiveTaskAttachments(ctx context.Context, taskID, actor string) (*types.ArchiveTaskResponse, error) {
	if err := validateID(taskID); err != nil {
		return nil, err
	}

	if s.s3Client == nil {
		return nil, fmt.Errorf("archive storage not configured")
	}

	var atts []model.Attachment
	if err := s.dbClient.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at").
		Find(&atts).Error; err != nil {
		return nil, fmt.Errorf("load attachments for task %s: %w", taskID, err)
	}

	if len(atts) == 0 {
		return nil, ErrNotFound
	}

	buf, totalSize, err := buildZip(atts)
	if err != nil {
		s.publishArchiveFailed(ctx, taskID, err)
		return nil, err
	}

	cfg := s.s3Client.GetConfig()
	objectKey := fmt.Sprintf("archives/%s/%d.zip", taskID, time.Now().UTC().Unix())

	_, err = s.s3Client.PutObject(ctx, cfg.BucketName, objectKey,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "application/zip"})
	if err != nil {
		s.publishArchiveFailed(ctx, taskID, err)
		return nil, fmt.Errorf("upload archive: %w", err)
	}

	urlObj, err := s.s3Client.PresignedGetObject(ctx, cfg.BucketName, objectKey, DefaultPresignedOpTimeout, nil)
	if err != nil {
		return nil, fmt.Errorf("presign archive get: %w", err)
	}

	s.publishArchiveCompleted(ctx, taskID, cfg.BucketName, objectKey, len(atts), totalSize)

	nlog.Logger().Info().
		Str("task_id", taskID).
		Str("object_key", objectKey).
		Str("requested_by", actor).
		Int("file_count", len(atts)).
		Msg("task attachments archived")

	return &types.ArchiveTaskResponse{
		TaskID:    taskID,
		ObjectKey: objectKey,
		GetURL:    urlObj.String(),
		ExpiresIn: int(DefaultPresignedOpTimeout.Seconds()),
		FileCount: len(atts),
		TotalSize: totalSize,
	}, nil
}

// buildZip 在内存中组装 zip，条目名用原始文件名，重名时加序号前缀.
func buildZip(atts []model.Attachment) (*bytes.Buffer, int64, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := make(map[string]int, len(atts))

	var totalSize int64

	for i := range atts {
		att := &atts[i]

		name := att.OriginalName
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%d_%s", n, name)
		}
		seen[att.OriginalName]++

		w, err := zw.Create(name)
		if err != nil {
			return nil, 0, fmt.Errorf("create zip entry %s: %w", name, err)
		}

		if _, err := w.Write(att.Data); err != nil {
			return nil, 0, fmt.Errorf("write zip entry %s: %w", name, err)
		}

		totalSize += att.Size
	}

	if err := zw.Close(); err != nil {
		return nil, 0, fmt.Errorf("finalize zip: %w", err)
	}

	return buf, totalSize, nil
}

func (s *ArchiveService) publishArchiveCompleted(ctx context.Context, taskID, bucket, objectKey string, fileCount int, totalSize int64) {
	cfg := configs.GetConfig().Events
	if s.mqClient == nil || !cfg.Enabled || !cfg.Attachment.Archived {
		return
	}

	msg, err := queue.NewWatermillMessage(queue.TopicArchiveCompleted, queue.ArchiveCompletedPayload{
		TaskID:    taskID,
		Bucket:    bucket,
		ObjectKey: objectKey,
		FileCount: fileCount,
		TotalSize: totalSize,
	}, queue.WithProducer(eventProducer))
	if err != nil {
		nlog.Logger().Warn().Err(err).Msg("build archive event failed")

		return
	}

	if err := s.mqClient.Publish(ctx, queue.TopicArchiveCompleted, msg); err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish archive event failed")
	}
}

func (s *ArchiveService) publishArchiveFailed(ctx context.Context, taskID string, cause error) {
	cfg := configs.GetConfig().Events
	if s.mqClient == nil || !cfg.Enabled || !cfg.Attachment.Archived {
		return
	}

	msg, err := queue.NewWatermillMessage(queue.TopicArchiveFailed, queue.ArchiveFailedPayload{
		TaskID: taskID,
		Error:  cause.Error(),
	}, queue.WithProducer(eventProducer))
	if err != nil {
		return
	}

	if err := s.mqClient.Publish(ctx, queue.TopicArchiveFailed, msg); err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish archive failed event failed")
	}
}
