package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_BasicLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "repline.log")

	logger, err := New(logPath, LevelDebug)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")
	_ = logger.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	if !strings.Contains(logContent, "DEBUG: debug message") {
		t.Error("Debug message not found in log")
	}
	if !strings.Contains(logContent, "INFO: info message") {
		t.Error("Info message not found in log")
	}
	if !strings.Contains(logContent, "WARN: warning message") {
		t.Error("Warning message not found in log")
	}
	if !strings.Contains(logContent, "ERROR: error message") {
		t.Error("Error message not found in log")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "repline.log")

	logger, err := New(logPath, LevelWarn)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")
	_ = logger.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	if strings.Contains(logContent, "DEBUG") {
		t.Error("Debug message should have been filtered")
	}
	if strings.Contains(logContent, "INFO") {
		t.Error("Info message should have been filtered")
	}
	if !strings.Contains(logContent, "WARN: warning message") {
		t.Error("Warning message should be present")
	}
	if !strings.Contains(logContent, "ERROR: error message") {
		t.Error("Error message should be present")
	}
}

func TestLogger_FilePermissions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "repline.log")

	logger, err := New(logPath, LevelInfo)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("test message")
	_ = logger.Close()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}

	if info.Mode().Perm() != os.FileMode(0600) {
		t.Errorf("Log file permissions = %o, want %o", info.Mode().Perm(), 0600)
	}
}

func TestLogger_CreatesNestedDirectory(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	logPath := filepath.Join(logDir, "repline.log")

	logger, err := New(logPath, LevelInfo)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	_ = logger.Close()

	info, err := os.Stat(logDir)
	if err != nil {
		t.Fatalf("Failed to stat log directory: %v", err)
	}
	if info.Mode() != os.FileMode(0700)|os.ModeDir {
		t.Errorf("Log directory permissions = %o, want %o", info.Mode(), os.FileMode(0700)|os.ModeDir)
	}
}

func TestLogger_AppendMode(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "repline.log")

	logger1, err := New(logPath, LevelInfo)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger1.Info("first message")
	_ = logger1.Close()

	logger2, err := New(logPath, LevelInfo)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger2.Info("second message")
	_ = logger2.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	if !strings.Contains(logContent, "first message") {
		t.Error("First message not found")
	}
	if !strings.Contains(logContent, "second message") {
		t.Error("Second message not found")
	}
}

func TestLogger_Disabled(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "repline.log")

	logger, err := New(logPath, LevelInfo)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Info("enabled message")
	logger.SetEnabled(false)
	logger.Info("disabled message")
	logger.SetEnabled(true)
	logger.Info("enabled again")
	_ = logger.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	if !strings.Contains(logContent, "enabled message") {
		t.Error("First message not found")
	}
	if strings.Contains(logContent, "disabled message") {
		t.Error("Disabled message should not be present")
	}
	if !strings.Contains(logContent, "enabled again") {
		t.Error("Third message not found")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"unknown", LevelWarn}, // Default to warn
		{"", LevelWarn},        // Default to warn
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ParseLevel(tt.input); result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, result, tt.expected)
		}
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger

	// Should not panic
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	logger.SetEnabled(true)

	if err := logger.Close(); err != nil {
		t.Errorf("Close() on nil logger should return nil, got %v", err)
	}
}

func TestNew_MkdirAllError(t *testing.T) {
	// Create a regular file and try to use it as a directory component.
	filePath := filepath.Join(t.TempDir(), "afile")
	f, err := os.Create(filePath)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	_ = f.Close()

	badLogPath := filepath.Join(filePath, "subdir", "repline.log")
	_, err = New(badLogPath, LevelInfo)
	if err == nil {
		t.Error("New() should fail when path contains a file as directory")
	}
	if !strings.Contains(err.Error(), "create log directory") {
		t.Errorf("Error should mention directory creation, got: %v", err)
	}
}

func TestNew_OpenFileError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping test as root can write anywhere")
	}

	readOnlyDir := filepath.Join(t.TempDir(), "readonly")
	if err := os.Mkdir(readOnlyDir, 0500); err != nil {
		t.Fatalf("Failed to create read-only directory: %v", err)
	}

	logPath := filepath.Join(readOnlyDir, "repline.log")
	_, err := New(logPath, LevelInfo)
	if err == nil {
		t.Error("New() should fail when directory is read-only")
	}
	if !strings.Contains(err.Error(), "open log file") {
		t.Errorf("Error should mention opening file, got: %v", err)
	}
}
