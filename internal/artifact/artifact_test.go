package artifact

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/TimurManjosov/rulebridge/internal/catalog"
	"github.com/TimurManjosov/rulebridge/internal/convert"
)

func TestRender_EmptyBuckets(t *testing.T) {
	doc := convert.NewDocument(convert.Transform("", catalog.BehaviorDomain))

	data, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	want := `{
  "version": 1,
  "rules": [
    {
      "domain": [],
      "domain_suffix": [],
      "ip_cidr": [],
      "process_name": []
    }
  ]
}`
	if string(data) != want {
		t.Errorf("Render() = %q, want %q", data, want)
	}
}

func TestRender_KeyAndEntryOrder(t *testing.T) {
	raw := "payload:\n  - '+.mail.example.com'\n  - 'static.example.org'\n  - '+.example.com'"
	doc := convert.NewDocument(convert.Transform(raw, catalog.BehaviorDomain))

	data, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	want := `{
  "version": 1,
  "rules": [
    {
      "domain": [
        "mail.example.com",
        "static.example.org"
      ],
      "domain_suffix": [
        ".mail.example.com",
        ".example.com"
      ],
      "ip_cidr": [],
      "process_name": []
    }
  ]
}`
	if string(data) != want {
		t.Errorf("Render() = %q, want %q", data, want)
	}
}

func TestRender_ByteStable(t *testing.T) {
	raw := "payload:\n  - '+.example.com'\n  - '10.0.0.0/8'"
	doc := convert.NewDocument(convert.Transform(raw, catalog.BehaviorIPCIDR))

	first, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	second, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Render() is not byte-stable across runs")
	}
}

func TestChecksum(t *testing.T) {
	a := Checksum([]byte("hello"))
	b := Checksum([]byte("hello"))
	c := Checksum([]byte("world"))

	if a != b {
		t.Errorf("Checksum not stable: %s != %s", a, b)
	}
	if a == c {
		t.Errorf("Checksum collision for different inputs: %s", a)
	}
	if a == "" {
		t.Error("Checksum returned empty string")
	}
}

func TestWrite_CreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.json")

	if err := Write(path, []byte("content")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back written file: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("file content = %q, want %q", data, "content")
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := Write(path, []byte("first")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := Write(path, []byte("second")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back written file: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("file content = %q, want %q", data, "second")
	}
}
