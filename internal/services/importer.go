package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const moxfieldTimeout = 30 * time.Second

// ImporterService replaces the local collection CSV from a Moxfield
// collection URL or another local file, taking a backup of the existing file
// first.
type ImporterService struct {
	client    *http.Client
	backupDir string
}

// NewImporterService creates an importer that stores backups under backupDir
func NewImporterService(backupDir string) *ImporterService {
	return &ImporterService{
		client:    &http.Client{Timeout: moxfieldTimeout},
		backupDir: backupDir,
	}
}

// ExtractCollectionID pulls the collection ID out of a Moxfield URL
func ExtractCollectionID(rawURL string) string {
	idx := strings.Index(rawURL, "/collection/")
	if idx < 0 {
		return ""
	}
	id := rawURL[idx+len("/collection/"):]
	if cut := strings.IndexAny(id, "/?"); cut >= 0 {
		id = id[:cut]
	}
	return id
}

// ImportFromURL downloads a collection export from a Moxfield URL and
// replaces outputFile with it. The existing file is backed up first unless
// backup is false. Several export endpoints are tried because Moxfield has
// moved the route across API versions.
func (s *ImporterService) ImportFromURL(ctx context.Context, rawURL, outputFile string, backup bool) error {
	collectionID := ExtractCollectionID(rawURL)
	if collectionID == "" {
		return fmt.Errorf("could not find a collection ID in %q", rawURL)
	}

	endpoints := []string{
		fmt.Sprintf("https://api.moxfield.com/v2/collections/%s/export/csv", collectionID),
		fmt.Sprintf("https://api.moxfield.com/v3/collections/%s/export/csv", collectionID),
		fmt.Sprintf("https://moxfield.com/collections/%s/export/csv", collectionID),
	}

	var lastErr error
	for _, endpoint := range endpoints {
		content, err := s.download(ctx, endpoint)
		if err != nil {
			lastErr = err
			continue
		}
		if !looksLikeCollectionCSV(content) {
			lastErr = fmt.Errorf("%s did not return a collection CSV", endpoint)
			continue
		}
		return s.replaceFile(outputFile, content, backup)
	}
	return fmt.Errorf("failed to export collection %s: %w", collectionID, lastErr)
}

// ImportFromFile replaces outputFile with the contents of sourceFile,
// backing up the existing file first unless backup is false
func (s *ImporterService) ImportFromFile(sourceFile, outputFile string, backup bool) error {
	content, err := os.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sourceFile, err)
	}
	if !looksLikeCollectionCSV(content) {
		return fmt.Errorf("%s does not look like a collection CSV", sourceFile)
	}
	return s.replaceFile(outputFile, content, backup)
}

func (s *ImporterService) download(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv,text/plain,*/*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// looksLikeCollectionCSV does a cheap sanity check on downloaded content
// before it is allowed to replace the collection file
func looksLikeCollectionCSV(content []byte) bool {
	head := string(content)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "Name") && strings.Contains(head, "Count")
}

// replaceFile swaps in new content for outputFile: back up the existing
// file, write the new content to a temp file, rename into place. The rename
// is the only destructive step, so a failure anywhere leaves the original
// intact.
func (s *ImporterService) replaceFile(outputFile string, content []byte, backup bool) error {
	if backup {
		if _, err := os.Stat(outputFile); err == nil {
			backupPath, err := s.BackupFile(outputFile)
			if err != nil {
				return fmt.Errorf("failed to back up %s: %w", outputFile, err)
			}
			log.Printf("Backed up %s to %s", outputFile, backupPath)
		}
	}

	dir := filepath.Dir(outputFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(outputFile)+".tmp-"+uuid.New().String())
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("failed to write import: %w", err)
	}
	if err := os.Rename(tmp, outputFile); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", outputFile, err)
	}
	return nil
}

// BackupFile copies a file into the backup directory with a timestamped name
// and returns the backup path
func (s *ImporterService) BackupFile(path string) (string, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	backupPath := filepath.Join(s.backupDir, fmt.Sprintf("%s_%s%s", stem, time.Now().Format("20060102_150405"), ext))

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backupPath, nil
}

// ListBackups returns the backups taken for a file, oldest first
func (s *ImporterService) ListBackups(path string) ([]string, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), stem+"_") {
			backups = append(backups, filepath.Join(s.backupDir, entry.Name()))
		}
	}
	return backups, nil
}
