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

// ProjectService 工程项目的增删改查.
type ProjectService struct {
	dbClient *db.Client
}

// NewProjectService 从 context 获取依赖实例.
func NewProjectService(c context.Context) *ProjectService {
	dbc := ctxPkg.GetDBClient(c)
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &ProjectService{dbClient: dbc}
}

func projectResponseOf(p *model.Project) *types.ProjectResponse {
	return &types.ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		Location:  p.Location,
		Status:    p.Status,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		CreatedAt: p.CreatedAt,
	}
}

// Create 创建项目.
func (s *ProjectService) Create(ctx context.Context, req *types.CreateProjectRequest) (*types.ProjectResponse, error) {
	project := &model.Project{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Code:      req.Code,
		Location:  req.Location,
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if err := s.dbClient.WithContext(ctx).Create(project).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return projectResponseOf(project), nil
}

// GetByID 按 id 查询项目.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*types.ProjectResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var project model.Project
	if err := s.dbClient.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load project %s: %w", id, err)
	}

	return projectResponseOf(&project), nil
}

// List 列出全部项目.
func (s *ProjectService) List(ctx context.Context) ([]types.ProjectResponse, error) {
	var projects []model.Project
	if err := s.dbClient.WithContext(ctx).Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]types.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, *projectResponseOf(&projects[i]))
	}

	return out, nil
}

// Update 更新项目，零值字段保持不变.
func (s *ProjectService) Update(ctx context.Context, id string, req *types.UpdateProjectRequest) (*types.ProjectResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var project model.Project
	if err := s.dbClient.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load project %s: %w", id, err)
	}

	if req.Name != "" {
		project.Name = req.Name
	}

	if req.Code != "" {
		project.Code = req.Code
	}

	if req.Location != "" {
		project.Location = req.Location
	}

	if req.Status != "" {
		project.Status = req.Status
	}

	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := s.dbClient.WithContext(ctx).Save(&project).Error; err != nil {
		return nil, fmt.Errorf("update project %s: %w", id, err)
	}

	return projectResponseOf(&project), nil
}

// Delete 软删除项目.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	res := s.dbClient.WithContext(ctx).Delete(&model.Project{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete project %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
