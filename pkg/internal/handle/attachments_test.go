package handle_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/router"
	"github.com/yeisme/sitevault/pkg/internal/storage"
	dbc "github.com/yeisme/sitevault/pkg/internal/storage/db"
	"github.com/yeisme/sitevault/pkg/middleware"
)

// newTestEngine 搭一个带内存数据库的最小路由栈.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(
		&model.Project{}, &model.Task{}, &model.Issue{},
		&model.Attendance{}, &model.Attachment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := configs.GetConfig()
	prevUpload := cfg.Upload
	prevAuth := cfg.Auth
	cfg.Auth.Enabled = false
	cfg.Upload = configs.UploadConfig{
		MaxSizeBytes:         1024,
		MaxBatchFiles:        configs.DefaultMaxBatchFiles,
		AllowedTypes:         []string{"image/png", "application/pdf", "text/plain"},
		OrphanSweepAfterDays: configs.DefaultOrphanSweepAfterDays,
	}

	t.Cleanup(func() {
		cfg.Upload = prevUpload
		cfg.Auth = prevAuth
	})

	mgr := &storage.Manager{DB: &dbc.Client{DB: gdb}}

	engine := gin.New()
	engine.Use(middleware.StorageMiddleware(mgr))
	router.RegisterAPIRoutes(engine.Group("/api/v1"))

	return engine
}

// multipartBody 构造带显式 Content-Type 的 multipart 请求体.
func multipartBody(t *testing.T, field string, files map[string]string, hints map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for name, mime := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
		h.Set("Content-Type", mime)

		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}

		if _, err := part.Write([]byte("content-of-" + name)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}

	for k, v := range hints {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return body, w.FormDataContentType()
}

func doRequest(engine *gin.Engine, method, path string, body *bytes.Buffer, contentType string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}

	if !envelope.Success {
		t.Fatalf("success = false: %s", rec.Body.String())
	}

	return envelope.Data
}

func TestUploadDownloadDeleteFlow(t *testing.T) {
	engine := newTestEngine(t)

	body, ct := multipartBody(t, "file", map[string]string{"report.pdf": "application/pdf"}, nil)

	rec := doRequest(engine, http.MethodPost, "/api/v1/files/upload", body, ct, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)

	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("no id in response: %v", data)
	}

	if data["originalName"] != "report.pdf" {
		t.Errorf("originalName = %v", data["originalName"])
	}

	// 元数据
	rec = doRequest(engine, http.MethodGet, "/api/v1/files/"+id+"/info", nil, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("info status = %d", rec.Code)
	}

	// 下载：内容原样返回，附带 inline disposition
	rec = doRequest(engine, http.MethodGet, "/api/v1/files/"+id, nil, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}

	if got := rec.Body.String(); got != "content-of-report.pdf" {
		t.Errorf("downloaded body = %q", got)
	}

	if ctHeader := rec.Header().Get("Content-Type"); !strings.HasPrefix(ctHeader, "application/pdf") {
		t.Errorf("content type = %q", ctHeader)
	}

	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "report.pdf") {
		t.Errorf("content disposition = %q", cd)
	}

	// 删除
	rec = doRequest(engine, http.MethodDelete, "/api/v1/files/"+id, nil, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", rec.Code, rec.Body.String())
	}

	if !strings.Contains(rec.Body.String(), "File deleted successfully") {
		t.Errorf("delete message missing: %s", rec.Body.String())
	}

	// 删除后元数据 404
	rec = doRequest(engine, http.MethodGet, "/api/v1/files/"+id+"/info", nil, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("info after delete status = %d", rec.Code)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	engine := newTestEngine(t)

	body, ct := multipartBody(t, "file", nil, map[string]string{"taskId": uuid.NewString()})

	rec := doRequest(engine, http.MethodPost, "/api/v1/files/upload", body, ct, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadDisallowedType(t *testing.T) {
	engine := newTestEngine(t)

	body, ct := multipartBody(t, "file", map[string]string{"run.exe": "application/x-msdownload"}, nil)

	rec := doRequest(engine, http.MethodPost, "/api/v1/files/upload", body, ct, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestUploadMultiplePartialFailure(t *testing.T) {
	engine := newTestEngine(t)

	body, ct := multipartBody(t, "files", map[string]string{
		"a.png": "image/png",
		"b.exe": "application/x-msdownload",
	}, nil)

	rec := doRequest(engine, http.MethodPost, "/api/v1/files/upload-multiple", body, ct, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Total      int `json:"total"`
			Successful int `json:"successful"`
			Failed     int `json:"failed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if envelope.Data.Total != 2 || envelope.Data.Successful != 1 || envelope.Data.Failed != 1 {
		t.Errorf("total/success/failed = %d/%d/%d, want 2/1/1",
			envelope.Data.Total, envelope.Data.Successful, envelope.Data.Failed)
	}
}

func TestGetRules(t *testing.T) {
	engine := newTestEngine(t)

	rec := doRequest(engine, http.MethodGet, "/api/v1/files/rules", nil, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	data := decodeData(t, rec)

	if _, ok := data["allowedTypes"]; !ok {
		t.Errorf("rules should list allowed types: %v", data)
	}

	if size, ok := data["maxSizeBytes"].(float64); !ok || int64(size) != 1024 {
		t.Errorf("maxSizeBytes = %v, want 1024", data["maxSizeBytes"])
	}
}

func TestGetInfoInvalidID(t *testing.T) {
	engine := newTestEngine(t)

	rec := doRequest(engine, http.MethodGet, "/api/v1/files/not-a-uuid/info", nil, "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteRequiresUploaderWhenAuthEnabled(t *testing.T) {
	engine := newTestEngine(t)

	configs.GetConfig().Auth.Enabled = true

	body, ct := multipartBody(t, "file", map[string]string{"a.png": "image/png"}, nil)

	rec := doRequest(engine, http.MethodPost, "/api/v1/files/upload", body, ct,
		map[string]string{"X-Auth-Request-User": "alice"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}

	id, _ := decodeData(t, rec)["id"].(string)

	// 非上传者且非管理员：拒绝
	rec = doRequest(engine, http.MethodDelete, "/api/v1/files/"+id, nil, "",
		map[string]string{"X-Auth-Request-User": "bob"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete by stranger status = %d, want 403", rec.Code)
	}

	// 上传者本人：放行
	rec = doRequest(engine, http.MethodDelete, "/api/v1/files/"+id, nil, "",
		map[string]string{"X-Auth-Request-User": "alice"})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete by uploader status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListTaskAttachmentsEmpty(t *testing.T) {
	engine := newTestEngine(t)

	rec := doRequest(engine, http.MethodGet, "/api/v1/files/task/"+uuid.NewString(), nil, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
