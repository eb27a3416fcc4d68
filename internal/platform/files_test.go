package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeVideosDir(t *testing.T) {
	videosDir, err := GetHomeVideosDir()
	if err != nil {
		t.Fatalf("Failed to get videos directory: %v", err)
	}

	if videosDir == "" {
		t.Fatal("Videos directory is empty")
	}

	expected := VideosDirName
	if runtime.GOOS == OSDarwin {
		expected = MacMoviesDirName
	}
	if filepath.Base(videosDir) != expected {
		t.Errorf("Expected directory to end with '%s', got: %s", expected, videosDir)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandHome("~/meus_videos"); got != filepath.Join(home, "meus_videos") {
		t.Errorf("Expected %s, got %s", filepath.Join(home, "meus_videos"), got)
	}
	if got := ExpandHome("./meus_videos"); got != "./meus_videos" {
		t.Errorf("Relative path should be unchanged, got %s", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("Other users' homes should be unchanged, got %s", got)
	}
}

func TestOpenFolder_NonExistent(t *testing.T) {
	err := OpenFolder(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Expected error for non-existent folder, got nil")
	}

	if !strings.Contains(err.Error(), "folder does not exist") {
		t.Errorf("Error message should contain 'folder does not exist', got: %v", err)
	}
}

func TestOpenFolder_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	err := OpenFolder(file)
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Expected 'not a directory' error, got: %v", err)
	}
}
