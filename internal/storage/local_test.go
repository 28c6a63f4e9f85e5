package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestClient(t *testing.T) *LocalStorageClient {
	t.Helper()
	client, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "charts"))
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewLocalStorageClientCreatesBaseDir(t *testing.T) {
	client := newTestClient(t)
	info, err := os.Stat(client.BaseDir())
	if err != nil || !info.IsDir() {
		t.Fatalf("base directory not created: %v", err)
	}
}

func TestLocalStorageClient_StoreAndGet(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		data []byte
	}{
		{"top level", "chart.svg", []byte("<svg/>")},
		{"nested", "2025/09/17/team/chart.png", []byte{0x89, 'P', 'N', 'G'}},
		{"empty file", "empty.txt", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := client.StoreFile(ctx, tt.path, tt.data); err != nil {
				t.Fatalf("StoreFile() error = %v", err)
			}
			got, err := client.GetFile(ctx, tt.path)
			if err != nil {
				t.Fatalf("GetFile() error = %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("GetFile() = %q, want %q", got, tt.data)
			}
			exists, err := client.FileExists(ctx, tt.path)
			if err != nil || !exists {
				t.Errorf("FileExists() = %v, %v; want true", exists, err)
			}
		})
	}
}

func TestLocalStorageClient_StoreOverwrites(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	client.StoreFile(ctx, "chart.svg", []byte("first"))
	if err := client.StoreFile(ctx, "chart.svg", []byte("second")); err != nil {
		t.Fatalf("StoreFile() error = %v", err)
	}
	got, _ := client.GetFile(ctx, "chart.svg")
	if string(got) != "second" {
		t.Errorf("GetFile() = %q, want second", got)
	}
}

func TestLocalStorageClient_GetMissingFile(t *testing.T) {
	client := newTestClient(t)
	if _, err := client.GetFile(context.Background(), "missing.svg"); err == nil {
		t.Error("GetFile() expected error for missing file")
	}
	exists, err := client.FileExists(context.Background(), "missing.svg")
	if err != nil || exists {
		t.Errorf("FileExists() = %v, %v; want false, nil", exists, err)
	}
}

func TestLocalStorageClient_PathsStayInsideBase(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.StoreFile(ctx, "../../escape.svg", []byte("x")); err != nil {
		t.Fatalf("StoreFile() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(client.BaseDir(), "escape.svg")); err != nil {
		t.Errorf("file was not kept inside base dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(client.BaseDir()), "escape.svg")); err == nil {
		t.Error("file escaped the base dir")
	}
}

func TestLocalStorageClient_CreateDir(t *testing.T) {
	client := newTestClient(t)
	if err := client.CreateDir(context.Background(), "2025/09/17"); err != nil {
		t.Fatalf("CreateDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Join(client.BaseDir(), "2025", "09", "17"))
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
	exists, _ := client.FileExists(context.Background(), "2025/09/17")
	if exists {
		t.Error("FileExists() should be false for a directory")
	}
}

func TestLocalStorageClient_ListDir(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	for _, p := range []string{"a/chart.svg", "a/chart.png", "a/b/deep.html", "top.json"} {
		if err := client.StoreFile(ctx, p, []byte("x")); err != nil {
			t.Fatalf("StoreFile(%s) error = %v", p, err)
		}
	}

	tests := []struct {
		name      string
		dir       string
		recursive bool
		want      []string
	}{
		{"flat", "a", false, []string{"a/chart.png", "a/chart.svg"}},
		{"recursive", "a", true, []string{"a/b/deep.html", "a/chart.png", "a/chart.svg"}},
		{"root flat", "", false, []string{"top.json"}},
		{"missing", "nope", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.ListDir(ctx, tt.dir, tt.recursive)
			if err != nil {
				t.Fatalf("ListDir() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListDir() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewStorageClient(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "out")

	client, err := NewStorageClient(ctx, DeploymentLocal, cfgWithDir(dir))
	if err != nil {
		t.Fatalf("NewStorageClient(local) error = %v", err)
	}
	if _, ok := client.(*LocalStorageClient); !ok {
		t.Errorf("client type = %T, want *LocalStorageClient", client)
	}

	if _, err := NewStorageClient(ctx, DeploymentGCS, cfgWithDir(dir)); err == nil {
		t.Error("expected error for gcs without bucket")
	}
	if _, err := NewStorageClient(ctx, DeploymentMode("s3"), cfgWithDir(dir)); err == nil {
		t.Error("expected error for unsupported mode")
	}
}
