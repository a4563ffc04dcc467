package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/rule"
)

// CreateTask 创建任务.
//
//	@Summary		创建任务
//	@Tags			任务
//	@Accept			json
//	@Produce		json
//	@Param			task	body		types.CreateTaskRequest	true	"任务"
//	@Success		201		{object}	types.TaskResponse
//	@Failure		400		{object}	map[string]string	"请求参数错误"
//	@Router			/api/v1/tasks [post]
func CreateTask(c *gin.Context) {
	l := log.Logger()

	var req types.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewTaskService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "create task failed")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resp})
}

// GetTask 按 id 查询任务.
//
//	@Summary		查询任务
//	@Tags			任务
//	@Produce		json
//	@Param			taskId	path		string	true	"任务 id"
//	@Success		200		{object}	types.TaskResponse
//	@Failure		404		{object}	map[string]string	"任务不存在"
//	@Router			/api/v1/tasks/{taskId} [get]
func GetTask(c *gin.Context) {
	svc := service.NewTaskService(c.Request.Context())

	resp, err := svc.GetByID(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		respondError(c, err, "get task failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// ListTasks 列出任务，支持 ?projectId= 过滤.
//
//	@Summary		列出任务
//	@Tags			任务
//	@Produce		json
//	@Param			projectId	query		string	false	"按项目过滤"
//	@Success		200			{array}		types.TaskResponse
//	@Router			/api/v1/tasks [get]
func ListTasks(c *gin.Context) {
	svc := service.NewTaskService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), c.Query("projectId"))
	if err != nil {
		respondError(c, err, "list tasks failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// UpdateTask 更新任务.
//
//	@Summary		更新任务
//	@Tags			任务
//	@Accept			json
//	@Produce		json
//	@Param			taskId	path		string					true	"任务 id"
//	@Param			task	body		types.UpdateTaskRequest	true	"更新内容"
//	@Success		200		{object}	types.TaskResponse
//	@Failure		404		{object}	map[string]string	"任务不存在"
//	@Router			/api/v1/tasks/{taskId} [put]
func UpdateTask(c *gin.Context) {
	l := log.Logger()

	var req types.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewTaskService(c.Request.Context())

	resp, err := svc.Update(c.Request.Context(), c.Param("taskId"), &req)
	if err != nil {
		respondError(c, err, "update task failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// DeleteTask 删除任务.
//
//	@Summary		删除任务
//	@Tags			任务
//	@Produce		json
//	@Param			taskId	path		string	true	"任务 id"
//	@Success		200		{object}	map[string]any
//	@Failure		404		{object}	map[string]string	"任务不存在"
//	@Router			/api/v1/tasks/{taskId} [delete]
func DeleteTask(c *gin.Context) {
	svc := service.NewTaskService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), c.Param("taskId")); err != nil {
		respondError(c, err, "delete task failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}
