package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
)

func TestSweepOrphansRemovesOnlyExpiredUnreferenced(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	svc := service.NewAttachmentService(ctx)

	orphan, err := svc.UploadSingle(ctx, "w", uploadItem("old.txt", "text/plain", []byte("x")), nil)
	if err != nil {
		t.Fatalf("upload orphan: %v", err)
	}

	fresh, err := svc.UploadSingle(ctx, "w", uploadItem("new.txt", "text/plain", []byte("x")), nil)
	if err != nil {
		t.Fatalf("upload fresh: %v", err)
	}

	linked, err := svc.UploadSingle(ctx, "w",
		uploadItem("linked.png", "image/png", []byte("x")),
		&types.UploadHints{ProjectID: uuid.NewString()})
	if err != nil {
		t.Fatalf("upload linked: %v", err)
	}

	// 无归属但被任务附件列表手工引用的也不算孤儿
	referenced, err := svc.UploadSingle(ctx, "w", uploadItem("ref.txt", "text/plain", []byte("x")), nil)
	if err != nil {
		t.Fatalf("upload referenced: %v", err)
	}

	tasks := service.NewTaskService(ctx)
	if _, err := tasks.Create(ctx, &types.CreateTaskRequest{
		ProjectID:   uuid.NewString(),
		Title:       "t",
		Attachments: []string{referenced.ID},
	}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	// 把保留期之外的候选回拨到 40 天前
	old := time.Now().UTC().AddDate(0, 0, -40)
	dbc := ctxPkg.GetDBClient(ctx)

	for _, id := range []string{orphan.ID, linked.ID, referenced.ID} {
		if err := dbc.Model(&model.Attachment{}).Where("id = ?", id).
			Update("created_at", old).Error; err != nil {
			t.Fatalf("backdate %s: %v", id, err)
		}
	}

	sweeper := service.NewSweepService(ctx)

	swept, err := sweeper.SweepOrphans(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}

	if _, err := svc.GetMetadataByID(ctx, orphan.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("orphan should be swept, got %v", err)
	}

	for name, id := range map[string]string{
		"fresh": fresh.ID, "linked": linked.ID, "referenced": referenced.ID,
	} {
		if _, err := svc.GetMetadataByID(ctx, id); err != nil {
			t.Errorf("%s attachment should survive sweep: %v", name, err)
		}
	}
}

func TestAuditDanglingRefs(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	issues := service.NewIssueService(ctx)
	svc := service.NewAttachmentService(ctx)

	att, err := svc.UploadSingle(ctx, "w", uploadItem("ok.png", "image/png", []byte("x")), nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	issue, err := issues.Create(ctx, "r", &types.CreateIssueRequest{
		ProjectID:   uuid.NewString(),
		Title:       "leak",
		Attachments: []string{att.ID, uuid.NewString()}, // 第二个指向不存在的附件
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	sweeper := service.NewSweepService(ctx)

	dangling, err := sweeper.AuditDanglingRefs(ctx)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}

	if dangling != 1 {
		t.Fatalf("dangling = %d, want 1", dangling)
	}

	// 审计只上报不修复
	got, err := issues.GetByID(ctx, issue.ID)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}

	if len(got.Attachments) != 2 {
		t.Errorf("issue attachments = %v, audit must not repair references", got.Attachments)
	}
}
