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

// IssueService 问题/缺陷实体的增删改查.
type IssueService struct {
	dbClient *db.Client
}

// NewIssueService 从 context 获取依赖实例.
func NewIssueService(c context.Context) *IssueService {
	dbc := ctxPkg.GetDBClient(c)
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &IssueService{dbClient: dbc}
}

func issueResponseOf(i *model.Issue) (*types.IssueResponse, error) {
	ids, err := i.Attachments()
	if err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []string{}
	}

	return &types.IssueResponse{
		ID:          i.ID,
		ProjectID:   i.ProjectID,
		TaskID:      i.TaskID,
		Title:       i.Title,
		Description: i.Description,
		Severity:    i.Severity,
		Status:      i.Status,
		ReportedBy:  i.ReportedBy,
		Attachments: ids,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}, nil
}

// Create 创建问题记录.
func (s *IssueService) Create(ctx context.Context, reporter string, req *types.CreateIssueRequest) (*types.IssueResponse, error) {
	issue := &model.Issue{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      req.Status,
		ReportedBy:  reporter,
	}

	if err := issue.SetAttachments(req.Attachments); err != nil {
		return nil, newValidationError("invalid attachments: %v", err)
	}

	if err := s.dbClient.WithContext(ctx).Create(issue).Error; err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}

	return issueResponseOf(issue)
}

// GetByID 按 id 查询问题.
func (s *IssueService) GetByID(ctx context.Context, id string) (*types.IssueResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var issue model.Issue
	if err := s.dbClient.WithContext(ctx).First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load issue %s: %w", id, err)
	}

	return issueResponseOf(&issue)
}

// List 按项目过滤列出问题，projectID 为空时返回全部.
func (s *IssueService) List(ctx context.Context, projectID string) ([]types.IssueResponse, error) {
	q := s.dbClient.WithContext(ctx).Order("created_at desc")
	if projectID != "" {
		if err := validateID(projectID); err != nil {
			return nil, err
		}

		q = q.Where("project_id = ?", projectID)
	}

	var issues []model.Issue
	if err := q.Find(&issues).Error; err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	out := make([]types.IssueResponse, 0, len(issues))

	for i := range issues {
		resp, err := issueResponseOf(&issues[i])
		if err != nil {
			return nil, err
		}

		out = append(out, *resp)
	}

	return out, nil
}

// Update 更新问题，零值字段跳过；Attachments 非 nil 时整体覆盖.
func (s *IssueService) Update(ctx context.Context, id string, req *types.UpdateIssueRequest) (*types.IssueResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var issue model.Issue
	if err := s.dbClient.WithContext(ctx).First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load issue %s: %w", id, err)
	}

	if req.Title != "" {
		issue.Title = req.Title
	}

	if req.Description != "" {
		issue.Description = req.Description
	}

	if req.Severity != "" {
		issue.Severity = req.Severity
	}

	if req.Status != "" {
		issue.Status = req.Status
	}

	if req.Attachments != nil {
		if err := issue.SetAttachments(req.Attachments); err != nil {
			return nil, newValidationError("invalid attachments: %v", err)
		}
	}

	if err := s.dbClient.WithContext(ctx).Save(&issue).Error; err != nil {
		return nil, fmt.Errorf("update issue %s: %w", id, err)
	}

	return issueResponseOf(&issue)
}

// Delete 软删除问题.
func (s *IssueService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	res := s.dbClient.WithContext(ctx).Delete(&model.Issue{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete issue %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
