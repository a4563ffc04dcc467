package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ctxPkg "github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage/db"
	"github.com/yeisme/sitevault/pkg/internal/types"
	nlog "github.com/yeisme/sitevault/pkg/log"
)

// AttendanceService 考勤记录的写入与查询.打卡照片先走附件上传，
// 表单提交时把附件 id 带进来.
type AttendanceService struct {
	dbClient *db.Client
}

// NewAttendanceService 从 context 获取依赖实例.
func NewAttendanceService(c context.Context) *AttendanceService {
	dbc := ctxPkg.GetDBClient(c)
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &AttendanceService{dbClient: dbc}
}

func attendanceResponseOf(a *model.Attendance) (*types.AttendanceResponse, error) {
	ids, err := a.Attachments()
	if err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []string{}
	}

	return &types.AttendanceResponse{
		ID:          a.ID,
		ProjectID:   a.ProjectID,
		WorkerID:    a.WorkerID,
		Date:        a.Date,
		Status:      a.Status,
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
		Attachments: ids,
		CreatedAt:   a.CreatedAt,
	}, nil
}

// Create 创建考勤记录.
func (s *AttendanceService) Create(ctx context.Context, req *types.CreateAttendanceRequest) (*types.AttendanceResponse, error) {
	rec := &model.Attendance{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		WorkerID:  req.WorkerID,
		Date:      req.Date,
		Status:    req.Status,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
	}

	if err := rec.SetAttachments(req.Attachments); err != nil {
		return nil, newValidationError("invalid attachments: %v", err)
	}

	if err := s.dbClient.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}

	return attendanceResponseOf(rec)
}

// GetByID 按 id 查询考勤记录.
func (s *AttendanceService) GetByID(ctx context.Context, id string) (*types.AttendanceResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	var rec model.Attendance
	if err := s.dbClient.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("load attendance %s: %w", id, err)
	}

	return attendanceResponseOf(&rec)
}

// List 列出考勤记录，可按项目/工人/日期过滤.
func (s *AttendanceService) List(ctx context.Context, projectID, workerID string, date *time.Time) ([]types.AttendanceResponse, error) {
	q := s.dbClient.WithContext(ctx).Order("date desc")

	if projectID != "" {
		if err := validateID(projectID); err != nil {
			return nil, err
		}

		q = q.Where("project_id = ?", projectID)
	}

	if workerID != "" {
		q = q.Where("worker_id = ?", workerID)
	}

	if date != nil {
		day := date.UTC().Truncate(24 * time.Hour)
		q = q.Where("date >= ? AND date < ?", day, day.Add(24*time.Hour))
	}

	var recs []model.Attendance
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	out := make([]types.AttendanceResponse, 0, len(recs))

	for i := range recs {
		resp, err := attendanceResponseOf(&recs[i])
		if err != nil {
			return nil, err
		}

		out = append(out, *resp)
	}

	return out, nil
}

// Delete 软删除考勤记录.
func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	res := s.dbClient.WithContext(ctx).Delete(&model.Attendance{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete attendance %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
