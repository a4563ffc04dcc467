package cache_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/yeisme/sitevault/pkg/cache"
)

// uploadRules 测试用的上传规则结构体.
type uploadRules struct {
	AllowedTypes []string `json:"allowedTypes"`
	MaxSizeBytes int64    `json:"maxSizeBytes"`
}

// mockKVStore 模拟KV存储实现.
type mockKVStore struct {
	data map[string][]byte
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		data: make(map[string][]byte),
	}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, exists := m.data[key]; exists {
		return value, nil
	}

	return nil, fmt.Errorf("key not found")
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockKVStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	_, exists := m.data[key]
	return exists, nil
}

func (m *mockKVStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (m *mockKVStore) Close() error {
	return nil
}

// TestCacheRoundTrip 测试设置后读取的完整路径.
func TestCacheRoundTrip(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	// 未命中不应视为正常返回
	if _, err := cache.Get[uploadRules](ctx, c, "rules"); err == nil {
		t.Error("expected error for nonexistent key")
	}

	rules := uploadRules{AllowedTypes: []string{"image/png", "application/pdf"}, MaxSizeBytes: 10 << 20}

	if err := cache.Set(ctx, c, "rules", rules, 0); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	got, err := cache.Get[uploadRules](ctx, c, "rules")
	if err != nil {
		t.Fatalf("failed to get cache: %v", err)
	}

	if got.MaxSizeBytes != rules.MaxSizeBytes || len(got.AllowedTypes) != 2 {
		t.Errorf("retrieved rules %+v do not match original %+v", got, rules)
	}
}

// TestCacheKeyNamespace 验证底层键带服务命名空间前缀.
func TestCacheKeyNamespace(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	if err := cache.Set(ctx, c, "stats", 42, 0); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	if len(mockStore.data) != 1 {
		t.Fatalf("expected 1 stored key, got %d", len(mockStore.data))
	}

	for key := range mockStore.data {
		if !strings.HasPrefix(key, "sv:") {
			t.Errorf("stored key %q missing namespace prefix", key)
		}
	}
}

// TestCacheDeleteAndExists 测试删除与存在性检查.
func TestCacheDeleteAndExists(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	if err := cache.Set(ctx, c, "task:abc", uploadRules{MaxSizeBytes: 1}, 0); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}

	exists, err := c.Exists(ctx, "task:abc")
	if err != nil {
		t.Fatalf("failed to check existence: %v", err)
	}

	if !exists {
		t.Error("key should exist before deletion")
	}

	if err := c.Delete(ctx, "task:abc"); err != nil {
		t.Fatalf("failed to delete cache: %v", err)
	}

	exists, err = c.Exists(ctx, "task:abc")
	if err != nil {
		t.Fatalf("failed to check existence after deletion: %v", err)
	}

	if exists {
		t.Error("key should not exist after deletion")
	}
}

// TestGetOrSet 测试 GetOrSet 的回源与命中行为.
func TestGetOrSet(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	callCount := 0
	getter := func() (uploadRules, error) {
		callCount++
		return uploadRules{MaxSizeBytes: 10 << 20}, nil
	}

	// 第一次调用，应该回源
	first, err := cache.GetOrSet(ctx, c, "rules", getter, 0)
	if err != nil {
		t.Fatalf("failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected getter to be called once, got %d", callCount)
	}

	// 第二次调用，应该命中缓存
	second, err := cache.GetOrSet(ctx, c, "rules", getter, 0)
	if err != nil {
		t.Fatalf("failed to get or set: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected getter to be called only once, got %d", callCount)
	}

	if first.MaxSizeBytes != second.MaxSizeBytes {
		t.Errorf("results don't match: %+v vs %+v", first, second)
	}
}

// TestGetOrSetGetterError 测试回源函数返回错误的情况.
func TestGetOrSetGetterError(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	getter := func() (uploadRules, error) {
		return uploadRules{}, errors.New("getter error")
	}

	_, err := cache.GetOrSet(ctx, c, "rules", getter, 0)
	if err == nil {
		t.Error("expected error from getter")
	}

	if err.Error() != "getter error" {
		t.Errorf("expected 'getter error', got '%s'", err.Error())
	}
}

// TestCacheClear 测试清空命名空间下所有键.
func TestCacheClear(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	for i := range 3 {
		key := fmt.Sprintf("task:%d", i)
		if err := cache.Set(ctx, c, key, uploadRules{MaxSizeBytes: int64(i)}, 0); err != nil {
			t.Fatalf("failed to set cache for %s: %v", key, err)
		}
	}

	if len(mockStore.data) != 3 {
		t.Errorf("expected 3 items, got %d", len(mockStore.data))
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("failed to clear cache: %v", err)
	}

	if len(mockStore.data) != 0 {
		t.Errorf("expected 0 items after clear, got %d", len(mockStore.data))
	}
}

// TestCacheGenericTypes 测试对基础类型的泛型支持.
func TestCacheGenericTypes(t *testing.T) {
	mockStore := newMockKVStore()
	c := cache.NewCache(mockStore)
	ctx := context.Background()

	if err := cache.Set(ctx, c, "string:key", "hello world", 0); err != nil {
		t.Fatalf("failed to set string: %v", err)
	}

	str, err := cache.Get[string](ctx, c, "string:key")
	if err != nil {
		t.Fatalf("failed to get string: %v", err)
	}

	if str != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", str)
	}

	if err := cache.Set(ctx, c, "ids", []string{"a", "b", "c"}, 0); err != nil {
		t.Fatalf("failed to set slice: %v", err)
	}

	ids, err := cache.Get[[]string](ctx, c, "ids")
	if err != nil {
		t.Fatalf("failed to get slice: %v", err)
	}

	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Errorf("unexpected slice %v", ids)
	}
}
