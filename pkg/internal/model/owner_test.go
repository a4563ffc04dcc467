package model

import (
	"testing"
)

func TestTaskAttachmentHelpers(t *testing.T) {
	task := &Task{}

	ids, err := task.Attachments()
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}

	if len(ids) != 0 {
		t.Fatalf("empty column should decode to no ids, got %v", ids)
	}

	if err := task.AppendAttachment("a"); err != nil {
		t.Fatalf("append a: %v", err)
	}

	if err := task.AppendAttachment("b"); err != nil {
		t.Fatalf("append b: %v", err)
	}

	ids, err = task.Attachments()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("ids = %v, want [a b]", ids)
	}

	removed, err := task.RemoveAttachment("a")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}

	if !removed {
		t.Fatal("remove should report a change")
	}

	removed, err = task.RemoveAttachment("missing")
	if err != nil {
		t.Fatalf("remove missing: %v", err)
	}

	if removed {
		t.Fatal("removing an absent id must not report a change")
	}

	ids, _ = task.Attachments()
	if len(ids) != 1 || ids[0] != "b" {
		t.Fatalf("ids = %v, want [b]", ids)
	}
}

func TestSetAttachmentsNilEncodesEmptyList(t *testing.T) {
	issue := &Issue{}

	if err := issue.SetAttachments(nil); err != nil {
		t.Fatalf("set nil: %v", err)
	}

	if issue.AttachmentsJSON != "[]" {
		t.Fatalf("json = %q, want []", issue.AttachmentsJSON)
	}
}

func TestDecodeIDListMalformed(t *testing.T) {
	task := &Task{AttachmentsJSON: "{not json"}

	if _, err := task.Attachments(); err == nil {
		t.Fatal("malformed column should fail to decode")
	}
}
