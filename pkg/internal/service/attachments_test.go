package service_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
)

func uploadItem(name, mime string, data []byte) service.UploadItem {
	return service.UploadItem{
		OriginalName: name,
		MimeType:     mime,
		DeclaredSize: int64(len(data)),
		Reader:       bytes.NewReader(data),
	}
}

func TestUploadSingleRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	svc := service.NewAttachmentService(ctx)
	content := []byte("site inspection notes")

	meta, err := svc.UploadSingle(ctx, "worker-1", uploadItem("notes.txt", "text/plain", content), nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if meta.ID == "" {
		t.Fatal("expected generated id")
	}

	if meta.OriginalName != "notes.txt" {
		t.Errorf("original name = %q, want notes.txt", meta.OriginalName)
	}

	if meta.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", meta.Size, len(content))
	}

	if !strings.HasSuffix(meta.FileName, "notes.txt") {
		t.Errorf("stored name %q should keep the original name as suffix", meta.FileName)
	}

	if meta.FileName == meta.OriginalName {
		t.Error("stored name should differ from original name")
	}

	att, err := svc.GetByID(ctx, meta.ID, "worker-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if !bytes.Equal(att.Data, content) {
		t.Error("downloaded content differs from uploaded content")
	}

	if att.MimeType != "text/plain" {
		t.Errorf("mime type = %q, want text/plain", att.MimeType)
	}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	svc := service.NewAttachmentService(ctx)

	_, err := svc.UploadSingle(ctx, "worker-1",
		uploadItem("tool.exe", "application/x-msdownload", []byte("MZ")), nil)
	if !service.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadSizeLimitBoundary(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 64)

	svc := service.NewAttachmentService(ctx)

	// 恰好等于上限：接受
	exact := bytes.Repeat([]byte("a"), 64)
	if _, err := svc.UploadSingle(ctx, "w", uploadItem("exact.txt", "text/plain", exact), nil); err != nil {
		t.Fatalf("file at exact limit should be accepted: %v", err)
	}

	// 超出一个字节：拒绝
	over := bytes.Repeat([]byte("a"), 65)
	_, err := svc.UploadSingle(ctx, "w", uploadItem("over.txt", "text/plain", over), nil)
	if !service.IsValidationError(err) {
		t.Fatalf("file over limit should be rejected, got %v", err)
	}
}

func TestUploadLinksToTask(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	tasks := service.NewTaskService(ctx)

	task, err := tasks.Create(ctx, &types.CreateTaskRequest{
		ProjectID: uuid.NewString(),
		Title:     "pour foundation",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	svc := service.NewAttachmentService(ctx)

	meta, err := svc.UploadSingle(ctx, "w",
		uploadItem("photo.png", "image/png", []byte("png-bytes")),
		&types.UploadHints{TaskID: task.ID})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if meta.TaskID == nil || *meta.TaskID != task.ID {
		t.Fatal("metadata should carry the task id")
	}

	got, err := tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}

	if len(got.Attachments) != 1 || got.Attachments[0] != meta.ID {
		t.Errorf("task attachments = %v, want [%s]", got.Attachments, meta.ID)
	}
}

func TestUploadWithMissingTaskStillStored(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	svc := service.NewAttachmentService(ctx)

	// 关联目标不存在：上传仍然成功
	meta, err := svc.UploadSingle(ctx, "w",
		uploadItem("photo.png", "image/png", []byte("png-bytes")),
		&types.UploadHints{TaskID: uuid.NewString()})
	if err != nil {
		t.Fatalf("upload should succeed with missing task: %v", err)
	}

	if _, err := svc.GetMetadataByID(ctx, meta.ID); err != nil {
		t.Fatalf("stored attachment should be retrievable: %v", err)
	}
}

func TestUploadBatchPartialFailure(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 64)

	svc := service.NewAttachmentService(ctx)

	items := []service.UploadItem{
		uploadItem("a.txt", "text/plain", []byte("ok")),
		uploadItem("b.exe", "application/x-msdownload", []byte("MZ")),
		uploadItem("c.txt", "text/plain", bytes.Repeat([]byte("x"), 100)),
		uploadItem("d.png", "image/png", []byte("png")),
	}

	resp, err := svc.UploadBatch(ctx, "w", items, nil)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	if resp.Total != 4 || resp.Successful != 2 || resp.Failed != 2 {
		t.Fatalf("total/success/failed = %d/%d/%d, want 4/2/2",
			resp.Total, resp.Successful, resp.Failed)
	}

	for i, want := range []bool{true, false, false, true} {
		if resp.Results[i].Success != want {
			t.Errorf("result[%d].Success = %v, want %v", i, resp.Results[i].Success, want)
		}
	}

	if resp.Results[1].Error == "" {
		t.Error("failed result should carry an error message")
	}

	if resp.Results[0].Metadata == nil {
		t.Error("successful result should carry metadata")
	}
}

func TestUploadBatchEmptyAndTooMany(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 64)

	svc := service.NewAttachmentService(ctx)

	if _, err := svc.UploadBatch(ctx, "w", nil, nil); !service.IsValidationError(err) {
		t.Errorf("empty batch should be rejected, got %v", err)
	}

	items := make([]service.UploadItem, 11)
	for i := range items {
		items[i] = uploadItem("f.txt", "text/plain", []byte("x"))
	}

	if _, err := svc.UploadBatch(ctx, "w", items, nil); !service.IsValidationError(err) {
		t.Errorf("oversized batch should be rejected, got %v", err)
	}
}

func TestGetByIDInvalidID(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 64)

	svc := service.NewAttachmentService(ctx)

	if _, err := svc.GetByID(ctx, "not-a-uuid", "w"); !service.IsValidationError(err) {
		t.Errorf("malformed id should fail validation, got %v", err)
	}
}

func TestGetMetadataMissing(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 64)

	svc := service.NewAttachmentService(ctx)

	_, err := svc.GetMetadataByID(ctx, uuid.NewString())
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCleansTaskButKeepsIssueRefs(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	projectID := uuid.NewString()
	tasks := service.NewTaskService(ctx)
	issues := service.NewIssueService(ctx)

	task, err := tasks.Create(ctx, &types.CreateTaskRequest{ProjectID: projectID, Title: "t"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	issue, err := issues.Create(ctx, "reporter", &types.CreateIssueRequest{ProjectID: projectID, Title: "crack"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	svc := service.NewAttachmentService(ctx)

	meta, err := svc.UploadSingle(ctx, "w",
		uploadItem("crack.png", "image/png", []byte("png")),
		&types.UploadHints{TaskID: task.ID, IssueID: issue.ID})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(ctx, meta.ID, "w"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetMetadataByID(ctx, meta.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("deleted attachment should be gone, got %v", err)
	}

	gotTask, err := tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}

	if len(gotTask.Attachments) != 0 {
		t.Errorf("task attachments = %v, want empty after delete", gotTask.Attachments)
	}

	// Issue 的引用不清理，由引用审计任务上报悬空项
	gotIssue, err := issues.GetByID(ctx, issue.ID)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}

	if len(gotIssue.Attachments) != 1 || gotIssue.Attachments[0] != meta.ID {
		t.Errorf("issue attachments = %v, want dangling [%s]", gotIssue.Attachments, meta.ID)
	}
}

func TestDeleteMissingAttachment(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 64)

	svc := service.NewAttachmentService(ctx)

	if err := svc.Delete(ctx, uuid.NewString(), "w"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListByTaskID(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	tasks := service.NewTaskService(ctx)

	task, err := tasks.Create(ctx, &types.CreateTaskRequest{ProjectID: uuid.NewString(), Title: "t"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	svc := service.NewAttachmentService(ctx)
	hints := &types.UploadHints{TaskID: task.ID}

	first, err := svc.UploadSingle(ctx, "w", uploadItem("a.txt", "text/plain", []byte("a")), hints)
	if err != nil {
		t.Fatalf("upload a: %v", err)
	}

	second, err := svc.UploadSingle(ctx, "w", uploadItem("b.txt", "text/plain", []byte("b")), hints)
	if err != nil {
		t.Fatalf("upload b: %v", err)
	}

	// 其他任务的附件不应出现在列表里
	if _, err := svc.UploadSingle(ctx, "w", uploadItem("c.txt", "text/plain", []byte("c")), nil); err != nil {
		t.Fatalf("upload c: %v", err)
	}

	resp, err := svc.ListByTaskID(ctx, task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(resp.Files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(resp.Files))
	}

	if resp.Files[0].ID != first.ID || resp.Files[1].ID != second.ID {
		t.Errorf("files out of upload order: got [%s %s]", resp.Files[0].ID, resp.Files[1].ID)
	}
}

func TestRulesMatchConfig(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 2048)

	svc := service.NewAttachmentService(ctx)
	rules := svc.Rules()

	if rules.MaxSizeBytes != 2048 {
		t.Errorf("max size = %d, want 2048", rules.MaxSizeBytes)
	}

	if len(rules.AllowedTypes) != len(testAllowedTypes) {
		t.Errorf("allowed types = %v, want %v", rules.AllowedTypes, testAllowedTypes)
	}
}
