package identity_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/sitevault/pkg/identity"
)

// TestNewAnonymousActor 测试匿名身份策略：带前缀、不可复用.
func TestNewAnonymousActor(t *testing.T) {
	a := identity.NewAnonymousActor()
	if !a.Anonymous {
		t.Error("expected anonymous actor")
	}

	if !strings.HasPrefix(a.ID, identity.AnonymousPrefix) {
		t.Errorf("expected prefix %q, got %q", identity.AnonymousPrefix, a.ID)
	}

	b := identity.NewAnonymousActor()
	if a.ID == b.ID {
		t.Error("anonymous ids must not be reusable across requests")
	}
}

// TestFromRequestHeader 测试认证头优先提取.
func TestFromRequestHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("X-Auth-Request-User", "foreman@example.com")

	a := identity.FromRequest(c)
	if a.Anonymous {
		t.Error("expected authenticated actor")
	}

	if a.ID != "foreman@example.com" {
		t.Errorf("unexpected id %q", a.ID)
	}
}

// TestFromRequestFallback 测试无任何身份信息时回落到匿名策略.
func TestFromRequestFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	a := identity.FromRequest(c)
	if !a.Anonymous {
		t.Error("expected anonymous fallback")
	}
}

// TestContextRoundTrip 测试 context 注入与提取.
func TestContextRoundTrip(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	want := identity.Actor{ID: "engineer@example.com"}
	ctx := identity.WithActor(c.Request.Context(), want)

	got := identity.FromContext(ctx)
	if got.ID != want.ID || got.Anonymous {
		t.Errorf("unexpected actor %+v", got)
	}
}
