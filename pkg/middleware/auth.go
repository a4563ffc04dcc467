package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/identity"
)

// AuthMiddleware 基于 oauth2-proxy 注入的请求头做统一身份认证校验。
//   - 要求存在 X-Auth-Request-User、X-Auth-Request-Email 或 X-Forwarded-Email 之一
//   - 支持通过配置跳过某些路径（如 /metrics, /api/v1/health）
//   - 开发模式可允许 query user 兜底（由 configs.auth.dev_allow_query 控制）
//
// 通过校验后会把解析出的身份注入 request context，
// 下游 handler 和 service 统一走 identity.FromContext 取用。
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		user := strings.TrimSpace(c.GetHeader("X-Auth-Request-User"))
		if user == "" {
			user = strings.TrimSpace(c.GetHeader("X-Auth-Request-Email"))
		}

		if user == "" {
			user = strings.TrimSpace(c.GetHeader("X-Forwarded-Email"))
		}

		if user == "" {
			if conf.DevAllowQuery && c.Query("user") != "" {
				injectActor(c, identity.Actor{ID: strings.TrimSpace(c.Query("user"))})
				c.Next()

				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

			return
		}

		injectActor(c, identity.Actor{ID: user})
		c.Next()
	}
}

func injectActor(c *gin.Context, a identity.Actor) {
	c.Request = c.Request.WithContext(identity.WithActor(c.Request.Context(), a))
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
