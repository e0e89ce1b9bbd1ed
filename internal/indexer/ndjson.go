package indexer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/vecsearch/internal/fileid"
	"github.com/hyperjump/vecsearch/internal/models"
	"github.com/hyperjump/vecsearch/internal/storage"
)

const maxLineBytes = 4 << 20

// ParseNDJSON reads one document per non-blank line. A line is either
// {"id": "...", "source": {...}} or a bare source object. idFor, when non-nil,
// supplies the ID of a document that has none, given its 1-based line number.
func ParseNDJSON(r io.Reader, idFor func(line int) string) ([]*models.DocumentInput, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var inputs []*models.DocumentInput
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		input, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if input.ID == "" && idFor != nil {
			input.ID = idFor(line)
		}
		inputs = append(inputs, input)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}
	return inputs, nil
}

func parseLine(text []byte) (*models.DocumentInput, error) {
	var envelope struct {
		ID     *string         `json:"id"`
		Source json.RawMessage `json:"source"`
	}
	if err := json.Unmarshal(text, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if envelope.Source == nil {
		return &models.DocumentInput{Source: append(json.RawMessage(nil), text...)}, nil
	}
	input := &models.DocumentInput{Source: envelope.Source}
	if envelope.ID != nil {
		input.ID = *envelope.ID
	}
	return input, nil
}

// IndexFile ingests an NDJSON file. Documents without an ID get one derived from the
// file path and line number, so re-ingesting a file replaces its documents.
// If allowedExts is non-empty, the file's extension must be in the list.
func (idx *Indexer) IndexFile(ctx context.Context, path string, allowedExts []string) ([]*models.IndexOutcome, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
		return nil, fmt.Errorf("extension %q not in allowed list", ext)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", absPath)
	}
	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	idx.logger.Debug("indexer indexing file", zap.String("path", absPath))
	inputs, err := ParseNDJSON(f, func(line int) string { return fileid.LineDocID(absPath, line) })
	if err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}
	outcomes, err := idx.IndexBulk(ctx, inputs)
	if err != nil {
		return nil, err
	}
	rejected := 0
	current := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		if o.Status == models.StatusRejected {
			rejected++
			continue
		}
		current[o.ID] = true
	}
	// Lines that disappeared since the last ingestion leave stale documents behind.
	if err := idx.removeFileDocuments(ctx, absPath, current); err != nil {
		return outcomes, err
	}
	idx.logger.Info("file indexed",
		zap.String("path", absPath),
		zap.Int("documents", len(outcomes)),
		zap.Int("rejected", rejected),
	)
	return outcomes, nil
}

// IndexDirectory walks dir recursively and ingests each regular file whose extension
// is in allowedExts. Returns the number of files ingested and the first error encountered.
func (idx *Indexer) IndexDirectory(ctx context.Context, dir string, allowedExts []string) (n int, err error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return 0, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("not a directory: %s", absDir)
	}
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, indexErr := idx.IndexFile(ctx, path, allowedExts); indexErr != nil {
			return indexErr
		}
		n++
		return nil
	})
	return n, err
}

func extensionAllowed(ext string, allowed []string) bool {
	extNorm := strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == extNorm {
			return true
		}
	}
	return false
}

// IngestFile indexes an NDJSON file. It lets the indexer serve as a watcher sink.
func (idx *Indexer) IngestFile(ctx context.Context, path string) error {
	_, err := idx.IndexFile(ctx, path, nil)
	return err
}

// RemoveFile deletes every document whose ID was derived from path.
func (idx *Indexer) RemoveFile(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	return idx.removeFileDocuments(ctx, absPath, nil)
}

func (idx *Indexer) removeFileDocuments(ctx context.Context, absPath string, keep map[string]bool) error {
	ids, err := idx.storage.DocumentIDsWithPrefix(ctx, fileid.FileDocID(absPath)+":")
	if err != nil {
		return fmt.Errorf("failed to list documents of %s: %w", absPath, err)
	}
	removed := 0
	for _, id := range ids {
		if keep[id] {
			continue
		}
		if err := idx.DeleteDocument(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		removed++
	}
	if removed > 0 {
		idx.logger.Info("removed file documents", zap.String("path", absPath), zap.Int("documents", removed))
	}
	return nil
}
