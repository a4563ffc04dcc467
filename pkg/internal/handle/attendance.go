package handle

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/rule"
)

// CreateAttendance 创建考勤记录.
//
//	@Summary		创建考勤记录
//	@Description	打卡照片先通过附件上传接口上传，再把附件 id 放进 attachments 提交
//	@Tags			考勤
//	@Accept			json
//	@Produce		json
//	@Param			attendance	body		types.CreateAttendanceRequest	true	"考勤记录"
//	@Success		201			{object}	types.AttendanceResponse
//	@Failure		400			{object}	map[string]string	"请求参数错误"
//	@Router			/api/v1/attendance [post]
func CreateAttendance(c *gin.Context) {
	l := log.Logger()

	var req types.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewAttendanceService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "create attendance failed")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resp})
}

// GetAttendance 按 id 查询考勤记录.
//
//	@Summary		查询考勤记录
//	@Tags			考勤
//	@Produce		json
//	@Param			attendanceId	path		string	true	"考勤记录 id"
//	@Success		200				{object}	types.AttendanceResponse
//	@Failure		404				{object}	map[string]string	"记录不存在"
//	@Router			/api/v1/attendance/{attendanceId} [get]
func GetAttendance(c *gin.Context) {
	svc := service.NewAttendanceService(c.Request.Context())

	resp, err := svc.GetByID(c.Request.Context(), c.Param("attendanceId"))
	if err != nil {
		respondError(c, err, "get attendance failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// ListAttendance 列出考勤记录，支持项目/工人/日期过滤.
//
//	@Summary		列出考勤记录
//	@Tags			考勤
//	@Produce		json
//	@Param			projectId	query		string	false	"按项目过滤"
//	@Param			workerId	query		string	false	"按工人过滤"
//	@Param			date		query		string	false	"按日期过滤（RFC3339 或 2006-01-02）"
//	@Success		200			{array}		types.AttendanceResponse
//	@Router			/api/v1/attendance [get]
func ListAttendance(c *gin.Context) {
	var date *time.Time

	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + raw})

			return
		}

		date = &parsed
	}

	svc := service.NewAttendanceService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), c.Query("projectId"), c.Query("workerId"), date)
	if err != nil {
		respondError(c, err, "list attendance failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", raw)
}

// DeleteAttendance 删除考勤记录.
//
//	@Summary		删除考勤记录
//	@Tags			考勤
//	@Produce		json
//	@Param			attendanceId	path		string	true	"考勤记录 id"
//	@Success		200				{object}	map[string]any
//	@Failure		404				{object}	map[string]string	"记录不存在"
//	@Router			/api/v1/attendance/{attendanceId} [delete]
func DeleteAttendance(c *gin.Context) {
	svc := service.NewAttendanceService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), c.Param("attendanceId")); err != nil {
		respondError(c, err, "delete attendance failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Attendance deleted successfully"})
}
