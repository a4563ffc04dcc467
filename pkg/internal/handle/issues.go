package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/identity"
	"github.com/yeisme/sitevault/pkg/internal/service"
	"github.com/yeisme/sitevault/pkg/internal/types"
	"github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/rule"
)

// CreateIssue 创建问题记录.
//
//	@Summary		创建问题
//	@Tags			问题
//	@Accept			json
//	@Produce		json
//	@Param			issue	body		types.CreateIssueRequest	true	"问题"
//	@Success		201		{object}	types.IssueResponse
//	@Failure		400		{object}	map[string]string	"请求参数错误"
//	@Router			/api/v1/issues [post]
func CreateIssue(c *gin.Context) {
	l := log.Logger()

	var req types.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	actor := identity.FromRequest(c)
	svc := service.NewIssueService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), actor.ID, &req)
	if err != nil {
		respondError(c, err, "create issue failed")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resp})
}

// GetIssue 按 id 查询问题.
//
//	@Summary		查询问题
//	@Tags			问题
//	@Produce		json
//	@Param			issueId	path		string	true	"问题 id"
//	@Success		200		{object}	types.IssueResponse
//	@Failure		404		{object}	map[string]string	"问题不存在"
//	@Router			/api/v1/issues/{issueId} [get]
func GetIssue(c *gin.Context) {
	svc := service.NewIssueService(c.Request.Context())

	resp, err := svc.GetByID(c.Request.Context(), c.Param("issueId"))
	if err != nil {
		respondError(c, err, "get issue failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// ListIssues 列出问题，支持 ?projectId= 过滤.
//
//	@Summary		列出问题
//	@Tags			问题
//	@Produce		json
//	@Param			projectId	query		string	false	"按项目过滤"
//	@Success		200			{array}		types.IssueResponse
//	@Router			/api/v1/issues [get]
func ListIssues(c *gin.Context) {
	svc := service.NewIssueService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), c.Query("projectId"))
	if err != nil {
		respondError(c, err, "list issues failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// UpdateIssue 更新问题.
//
//	@Summary		更新问题
//	@Tags			问题
//	@Accept			json
//	@Produce		json
//	@Param			issueId	path		string						true	"问题 id"
//	@Param			issue	body		types.UpdateIssueRequest	true	"更新内容"
//	@Success		200		{object}	types.IssueResponse
//	@Failure		404		{object}	map[string]string	"问题不存在"
//	@Router			/api/v1/issues/{issueId} [put]
func UpdateIssue(c *gin.Context) {
	l := log.Logger()

	var req types.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewIssueService(c.Request.Context())

	resp, err := svc.Update(c.Request.Context(), c.Param("issueId"), &req)
	if err != nil {
		respondError(c, err, "update issue failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// DeleteIssue 删除问题.
//
//	@Summary		删除问题
//	@Tags			问题
//	@Produce		json
//	@Param			issueId	path		string	true	"问题 id"
//	@Success		200		{object}	map[string]any
//	@Failure		404		{object}	map[string]string	"问题不存在"
//	@Router			/api/v1/issues/{issueId} [delete]
func DeleteIssue(c *gin.Context) {
	svc := service.NewIssueService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), c.Param("issueId")); err != nil {
		respondError(c, err, "delete issue failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Issue deleted successfully"})
}
