package service_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
)

func TestAttachmentStats(t *testing.T) {
	ctx := newTestContext(t)
	setTestUploadConfig(t, 1024)

	svc := service.NewAttachmentService(ctx)
	projectID := uuid.NewString()

	if _, err := svc.UploadSingle(ctx, "w",
		uploadItem("a.png", "image/png", []byte("12345")),
		&types.UploadHints{ProjectID: projectID}); err != nil {
		t.Fatalf("upload a: %v", err)
	}

	if _, err := svc.UploadSingle(ctx, "w",
		uploadItem("b.png", "image/png", []byte("123")),
		&types.UploadHints{ProjectID: projectID}); err != nil {
		t.Fatalf("upload b: %v", err)
	}

	if _, err := svc.UploadSingle(ctx, "w",
		uploadItem("c.txt", "text/plain", []byte("12")), nil); err != nil {
		t.Fatalf("upload c: %v", err)
	}

	stats := service.NewStatsService(ctx)

	resp, err := stats.AttachmentStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	sum := resp.Summary
	if sum.TotalFiles != 3 || sum.TotalSize != 10 {
		t.Errorf("total files/size = %d/%d, want 3/10", sum.TotalFiles, sum.TotalSize)
	}

	if sum.LinkedFiles != 2 || sum.OrphanFiles != 1 {
		t.Errorf("linked/orphan = %d/%d, want 2/1", sum.LinkedFiles, sum.OrphanFiles)
	}

	if len(resp.ByType) != 2 {
		t.Fatalf("len(byType) = %d, want 2", len(resp.ByType))
	}

	// count desc：image/png 在前
	if resp.ByType[0].Type != "image/png" || resp.ByType[0].Count != 2 || resp.ByType[0].Size != 8 {
		t.Errorf("byType[0] = %+v, want image/png count=2 size=8", resp.ByType[0])
	}

	if len(resp.ByProject) != 1 || resp.ByProject[0].ProjectID != projectID {
		t.Fatalf("byProject = %+v, want single project %s", resp.ByProject, projectID)
	}

	if resp.ByProject[0].Count != 2 || resp.ByProject[0].Size != 8 {
		t.Errorf("byProject[0] = %+v, want count=2 size=8", resp.ByProject[0])
	}
}
