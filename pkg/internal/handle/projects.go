package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/rule"
)

// CreateProject 创建工程项目.
//
//	@Summary		创建项目
//	@Tags			项目
//	@Accept			json
//	@Produce		json
//	@Param			project	body		types.CreateProjectRequest	true	"项目信息"
//	@Success		201		{object}	types.ProjectResponse
//	@Failure		400		{object}	map[string]string	"请求参数错误"
//	@Router			/api/v1/projects [post]
func CreateProject(c *gin.Context) {
	l := log.Logger()

	var req types.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewProjectService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "create project failed")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resp})
}

// GetProject 按 id 查询项目.
//
//	@Summary		查询项目
//	@Tags			项目
//	@Produce		json
//	@Param			projectId	path		string	true	"项目 id"
//	@Success		200			{object}	types.ProjectResponse
//	@Failure		404			{object}	map[string]string	"项目不存在"
//	@Router			/api/v1/projects/{projectId} [get]
func GetProject(c *gin.Context) {
	svc := service.NewProjectService(c.Request.Context())

	resp, err := svc.GetByID(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		respondError(c, err, "get project failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// ListProjects 列出全部项目.
//
//	@Summary		列出项目
//	@Tags			项目
//	@Produce		json
//	@Success		200	{array}	types.ProjectResponse
//	@Router			/api/v1/projects [get]
func ListProjects(c *gin.Context) {
	svc := service.NewProjectService(c.Request.Context())

	resp, err := svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list projects failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// UpdateProject 更新项目.
//
//	@Summary		更新项目
//	@Tags			项目
//	@Accept			json
//	@Produce		json
//	@Param			projectId	path		string						true	"项目 id"
//	@Param			project		body		types.UpdateProjectRequest	true	"更新字段，零值不更新"
//	@Success		200			{object}	types.ProjectResponse
//	@Failure		400			{object}	map[string]string	"请求参数错误"
//	@Failure		404			{object}	map[string]string	"项目不存在"
//	@Router			/api/v1/projects/{projectId} [put]
func UpdateProject(c *gin.Context) {
	var req types.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewProjectService(c.Request.Context())

	resp, err := svc.Update(c.Request.Context(), c.Param("projectId"), &req)
	if err != nil {
		respondError(c, err, "update project failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// DeleteProject 删除项目.
//
//	@Summary		删除项目
//	@Tags			项目
//	@Produce		json
//	@Param			projectId	path		string	true	"项目 id"
//	@Success		200			{object}	map[string]any
//	@Failure		404			{object}	map[string]string	"项目不存在"
//	@Router			/api/v1/projects/{projectId} [delete]
func DeleteProject(c *gin.Context) {
	svc := service.NewProjectService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), c.Param("projectId")); err != nil {
		respondError(c, err, "delete project failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project deleted successfully"})
}
