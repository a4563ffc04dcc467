package service_test

import (
	contextPkg "context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/sitevault/pkg/configs"
	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage"
	dbc "github.com/yeisme/sitevault/pkg/internal/storage/db"
)

// testAllowedTypes 测试用的 MIME 白名单子集.
var testAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
	"text/plain",
	"application/zip",
}

// newTestContext 构建带内存数据库的测试上下文，每个测试独立一个库.
func newTestContext(t *testing.T) contextPkg.Context {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(
		&model.Project{},
		&model.Task{},
		&model.Issue{},
		&model.Attendance{},
		&model.Attachment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mgr := &storage.Manager{DB: &dbc.Client{DB: gdb}}

	return ctxPkg.WithStorageManager(contextPkg.Background(), mgr)
}

// setTestUploadConfig 写入测试用的上传校验配置并在测试结束后还原.
func setTestUploadConfig(t *testing.T, maxSize int64) {
	t.Helper()

	cfg := configs.GetConfig()
	prev := cfg.Upload

	cfg.Upload = configs.UploadConfig{
		MaxSizeBytes:         maxSize,
		MaxBatchFiles:        configs.DefaultMaxBatchFiles,
		AllowedTypes:         testAllowedTypes,
		OrphanSweepAfterDays: configs.DefaultOrphanSweepAfterDays,
	}

	t.Cleanup(func() {
		cfg.Upload = prev
	})
}
