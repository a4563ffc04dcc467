package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
)

func TestTaskCRUD(t *testing.T) {
	ctx := newTestContext(t)

	svc := service.NewTaskService(ctx)
	projectID := uuid.NewString()

	task, err := svc.Create(ctx, &types.CreateTaskRequest{
		ProjectID:   projectID,
		Title:       "install scaffolding",
		Description: "north wall",
		Status:      "pending",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if task.Attachments == nil {
		t.Error("attachments should decode to empty slice, not nil")
	}

	got, err := svc.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Title != "install scaffolding" || got.ProjectID != projectID {
		t.Errorf("got = %+v", got)
	}

	// 零值字段不更新
	updated, err := svc.Update(ctx, task.ID, &types.UpdateTaskRequest{Status: "in_progress"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Status != "in_progress" {
		t.Errorf("status = %q, want in_progress", updated.Status)
	}

	if updated.Title != "install scaffolding" {
		t.Errorf("title = %q, zero-value update must not clear it", updated.Title)
	}

	if err := svc.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetByID(ctx, task.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("deleted task should be gone, got %v", err)
	}

	if err := svc.Delete(ctx, task.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("double delete should report not found, got %v", err)
	}
}

func TestTaskListFilterByProject(t *testing.T) {
	ctx := newTestContext(t)

	svc := service.NewTaskService(ctx)
	projectA := uuid.NewString()
	projectB := uuid.NewString()

	for _, p := range []string{projectA, projectA, projectB} {
		if _, err := svc.Create(ctx, &types.CreateTaskRequest{ProjectID: p, Title: "t"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}

	onlyA, err := svc.List(ctx, projectA)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}

	if len(onlyA) != 2 {
		t.Errorf("len(onlyA) = %d, want 2", len(onlyA))
	}

	if _, err := svc.List(ctx, "bad-id"); !service.IsValidationError(err) {
		t.Errorf("malformed project filter should fail validation, got %v", err)
	}
}
