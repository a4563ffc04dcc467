package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/sitevault/pkg/rule"
)

// createTaskInput 模拟带校验标签的创建请求.
type createTaskInput struct {
	ProjectID string `rule:"required,entity_id"`
	Title     string `rule:"required,max=512"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试结构体校验的通过与失败路径.
func TestValidateStruct(t *testing.T) {
	valid := createTaskInput{ProjectID: "7b8a1452-9c6d-4f4e-8d9a-0a1b2c3d4e5f", Title: "浇筑三层楼板"}

	if err := rule.ValidateStruct(valid); err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 缺少 Title
	missingTitle := createTaskInput{ProjectID: "7b8a1452-9c6d-4f4e-8d9a-0a1b2c3d4e5f"}
	if err := rule.ValidateStruct(missingTitle); err == nil {
		t.Error("Expected error for missing title, got nil")
	}

	// ProjectID 不是 uuid4
	badID := createTaskInput{ProjectID: "not-a-uuid", Title: "浇筑三层楼板"}
	if err := rule.ValidateStruct(badID); err == nil {
		t.Error("Expected error for malformed project id, got nil")
	}
}

// TestEntityIDAlias 测试 entity_id 别名对单变量同样生效.
func TestEntityIDAlias(t *testing.T) {
	if err := rule.ValidateVar("7b8a1452-9c6d-4f4e-8d9a-0a1b2c3d4e5f", "entity_id"); err != nil {
		t.Errorf("Expected no error for valid entity id, got %v", err)
	}

	if err := rule.ValidateVar("12345", "entity_id"); err == nil {
		t.Error("Expected error for invalid entity id, got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	if err := rule.ValidateVar("worker@example.com", "required,email"); err != nil {
		t.Errorf("Expected no error for valid email, got %v", err)
	}

	if err := rule.ValidateVar("invalid-email", "required,email"); err == nil {
		t.Error("Expected error for invalid email, got nil")
	}

	if err := rule.ValidateVar(25, "gte=18"); err != nil {
		t.Errorf("Expected no error for valid number, got %v", err)
	}

	if err := rule.ValidateVar(15, "gte=18"); err == nil {
		t.Error("Expected error for invalid number, got nil")
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	// 自定义规则：MIME 形如 type/subtype
	err := rule.RegisterValidation("mime_like", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		slash := 0
		for _, r := range str {
			if r == '/' {
				slash++
			}
		}

		return slash == 1 && str[0] != '/' && str[len(str)-1] != '/'
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	if err := rule.ValidateVar("image/png", "mime_like"); err != nil {
		t.Errorf("Expected no error for valid mime type, got %v", err)
	}

	if err := rule.ValidateVar("imagepng", "mime_like"); err == nil {
		t.Error("Expected error for malformed mime type, got nil")
	}
}

// TestRegisterAlias 测试注册别名.
func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("worker_id", "required,min=3,max=255")

	if err := rule.ValidateVar("W-1024", "worker_id"); err != nil {
		t.Errorf("Expected no error for valid worker id, got %v", err)
	}

	if err := rule.ValidateVar("W", "worker_id"); err == nil {
		t.Error("Expected error for short worker id, got nil")
	}
}
