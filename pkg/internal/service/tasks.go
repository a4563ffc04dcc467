package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage/db"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
)

// TaskService 任务实体的增删改查.
type TaskService struct {
	dbClient *db.Client
}

// NewTaskService 从 context 获取依赖实例.
func NewTaskService(c context.Context) *TaskService {
	dbc := ctxPkg.GetDBClient(c)
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &TaskService{dbClient: dbc}
}

func taskResponseOf(t *model.Task) (*types.TaskResponse, error) {
	ids, err := t.Attachments()
	if err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []string{}
	}

	return &types.TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		AssignedTo:  t.AssignedTo,
		DueDate:     t.DueDate,
		Attachments: ids,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}, nil
}

// Create 创建任务.前端表单可以把已上传附件的 id 一并带进来.
func (s *TaskService) Create(ctx context.Context, req *types.CreateTaskRequest) (*types.TaskResponse, error) {
	task := &model.Task{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}

	if err := task.SetAttachments(req.Attachments); err != nil {
		return nil, newValidationError("invalid attachments: %v", err)
	}

	if err := s.dbClient.WithContext(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return taskResponseOf(task)
}

// GetByID 按 id 查询任务.
func (s *TaskService) GetByID(ctx context.Context, id string) (*types.TaskResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var task model.Task
	if err := s.dbClient.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load task %s: %w", id, err)
	}

	return taskResponseOf(&task)
}

// List 按项目过滤列出任务，projectID 为空时返回全部.
func (s *TaskService) List(ctx context.Context, projectID string) ([]types.TaskResponse, error) {
	q := s.dbClient.WithContext(ctx).Order("created_at desc")
	if projectID != "" {
		if err := validateID(projectID); err != nil {
			return nil, err
		}

		q = q.Where("project_id = ?", projectID)
	}

	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]types.TaskResponse, 0, len(tasks))

	for i := range tasks {
		resp, err := taskResponseOf(&tasks[i])
		if err != nil {
			return nil, err
		}

		out = append(out, *resp)
	}

	return out, nil
}

// Update 更新任务，零值字段跳过；Attachments 非 nil 时整体覆盖.
func (s *TaskService) Update(ctx context.Context, id string, req *types.UpdateTaskRequest) (*types.TaskResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var task model.Task
	if err := s.dbClient.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load task %s: %w", id, err)
	}

	if req.Title != "" {
		task.Title = req.Title
	}

	if req.Description != "" {
		task.Description = req.Description
	}

	if req.Status != "" {
		task.Status = req.Status
	}

	if req.AssignedTo != "" {
		task.AssignedTo = req.AssignedTo
	}

	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if req.Attachments != nil {
		if err := task.SetAttachments(req.Attachments); err != nil {
			return nil, newValidationError("invalid attachments: %v", err)
		}
	}

	if err := s.dbClient.WithContext(ctx).Save(&task).Error; err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}

	return taskResponseOf(&task)
}

// Delete 软删除任务.任务自身的附件记录不级联删除，交给孤儿清理任务.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	res := s.dbClient.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete task %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
