// Package storage 聚合存储资源：附件元数据与二进制所在的数据库、
// 归档导出用的对象存储、响应缓存用的 KV，以及事件发布用的 MQ.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	dbClient := mgr.GetDBClient()
//	s3Client := mgr.GetS3Client()
package storage

import (
	"context"
	"sync"

	dbc "github.com/yeisme/sitevault/pkg/internal/storage/db"
	kvc "github.com/yeisme/sitevault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/sitevault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/sitevault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/sitevault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB *dbc.Client
	S3 *s3c.Client
	KV *kvc.Client
	MQ *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
// 数据库是附件的真源，初始化失败直接报错；S3/KV/MQ 属于增强能力，
// 失败降级为警告，相关功能在运行时判空跳过.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx)
		if e != nil {
			err = e

			return
		}
		m.DB = dbi

		// S3（归档导出）
		if s3i, e := s3c.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("s3 unavailable, archive export disabled")
		} else {
			m.S3 = s3i
		}

		// KV（响应缓存）
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("kv unavailable, response cache disabled")
		} else {
			m.KV = kvi
		}

		// MQ（事件发布）
		if mqi, e := mqc.New(ctx); e != nil {
			nlog.Logger().Warn().Err(e).Msg("mq unavailable, events disabled")
		} else {
			m.MQ = mqi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}
