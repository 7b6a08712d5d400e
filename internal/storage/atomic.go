package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// AtomicWriter writes report files via temp file and rename, optionally
// keeping a timestamped backup of the file being replaced
type AtomicWriter struct {
	backupDir string
}

// NewAtomicWriter creates a new atomic writer. An empty backupDir disables backups.
func NewAtomicWriter(backupDir string) *AtomicWriter {
	return &AtomicWriter{
		backupDir: backupDir,
	}
}

// WriteFile writes data to a file atomically with backup
func (w *AtomicWriter) WriteFile(filename string, data []byte, perm os.FileMode) error {
	if err := w.createBackup(filename); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// temp file lives next to the target so the rename stays on one filesystem
	tempFile := filepath.Join(dir, "."+filepath.Base(filename)+".tmp."+generateTempSuffix())

	if err := os.WriteFile(tempFile, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := w.verifyFileIntegrity(tempFile, data); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("file integrity check failed: %w", err)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// createBackup creates a backup of the existing file
func (w *AtomicWriter) createBackup(filename string) error {
	if w.backupDir == "" {
		return nil
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}

	if err := os.MkdirAll(w.backupDir, 0755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102-150405")
	backupName := fmt.Sprintf("%s.%s.backup", filepath.Base(filename), timestamp)
	backupPath := filepath.Join(w.backupDir, backupName)

	return w.copyFile(filename, backupPath)
}

// verifyFileIntegrity verifies that written data matches expected data
func (w *AtomicWriter) verifyFileIntegrity(filename string, expectedData []byte) error {
	actualData, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	expectedHash := sha256.Sum256(expectedData)
	actualHash := sha256.Sum256(actualData)

	if expectedHash != actualHash {
		return fmt.Errorf("hash mismatch")
	}

	return nil
}

// copyFile copies a file from src to dst
func (w *AtomicWriter) copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// generateTempSuffix generates a unique suffix for temporary files
func generateTempSuffix() string {
	timestamp := time.Now().UnixNano()
	hash := sha256.Sum256([]byte(fmt.Sprintf("%d-%d", timestamp, os.Getpid())))
	return hex.EncodeToString(hash[:4])
}
