package toolbox

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
)

// Export file extensions
const (
	ExtText     = ".txt"
	ExtMarkdown = ".md"
	ExtHTML     = ".html"
)

// Clipboard is the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

// WriteAll places text on the OS clipboard
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ExportSpec describes the file a result is exported to
type ExportSpec struct {
	Tool      string
	Qualifier string
	Ext       string
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9]+`)

// maxNameAttempts bounds the collision suffixes tried for one export
const maxNameAttempts = 100

// FileName returns <tool>[-<qualifier>]-<unix millis><ext>
func (s ExportSpec) FileName(at time.Time) string {
	return s.fileName(at, 0)
}

// fileName appends -<n> after the timestamp when n > 0
func (s ExportSpec) fileName(at time.Time, n int) string {
	parts := []string{sanitizeName(s.Tool)}
	if q := sanitizeName(s.Qualifier); q != "" {
		parts = append(parts, q)
	}
	parts = append(parts, fmt.Sprintf("%d", at.UnixMilli()))
	if n > 0 {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	ext := s.Ext
	if ext == "" {
		ext = ExtText
	}
	return strings.Join(parts, "-") + ext
}

func sanitizeName(s string) string {
	return strings.Trim(unsafeNameChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// PostProcessor copies and exports results. It never changes the text.
type PostProcessor struct {
	fs        afero.Fs
	dir       string
	clipboard Clipboard
	now       func() time.Time
}

// NewPostProcessor creates a post-processor writing exports under dir
func NewPostProcessor(fs afero.Fs, dir string, cb Clipboard) *PostProcessor {
	if cb == nil {
		cb = SystemClipboard{}
	}
	return &PostProcessor{fs: fs, dir: dir, clipboard: cb, now: time.Now}
}

// Copy places the result on the clipboard verbatim. An empty successful
// result is copied as is.
func (p *PostProcessor) Copy(res Snapshot[string]) error {
	if !res.HasResult {
		return newValidationError("result", "there is nothing to copy yet")
	}
	if err := p.clipboard.WriteAll(res.Result); err != nil {
		log.Warnf("Clipboard write failed: %v", err)
		return &ClipboardError{Err: err}
	}
	return nil
}

// Export writes the result verbatim to a new file and returns its path
func (p *PostProcessor) Export(res Snapshot[string], spec ExportSpec) (string, error) {
	if !res.HasResult {
		return "", newValidationError("result", "there is nothing to export yet")
	}
	return p.write([]byte(res.Result), spec)
}

// ExportHTML renders a markdown result to a standalone HTML file
func (p *PostProcessor) ExportHTML(res Snapshot[string], spec ExportSpec) (string, error) {
	if !res.HasResult {
		return "", newValidationError("result", "there is nothing to export yet")
	}
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(res.Result), &body); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"></head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	spec.Ext = ExtHTML
	return p.write(page.Bytes(), spec)
}

func (p *PostProcessor) write(data []byte, spec ExportSpec) (string, error) {
	if err := p.fs.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	at := p.now()
	for n := 0; n < maxNameAttempts; n++ {
		path := filepath.Join(p.dir, spec.fileName(at, n))
		f, err := p.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create export file: %w", err)
		}
		_, err = f.Write(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", fmt.Errorf("failed to write export file: %w", err)
		}
		log.Infof("Exported %d bytes to %s", len(data), path)
		return path, nil
	}
	return "", fmt.Errorf("failed to pick a free name for %s in %s", spec.FileName(at), p.dir)
}
