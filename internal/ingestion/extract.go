// Package ingestion extracts plain text from uploaded resume documents.
package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// DefaultMaxBytes is the upload size cap
const DefaultMaxBytes int64 = 10 << 20

// reader turns raw bytes into text
type reader struct {
	name string
	read func(data []byte) (string, error)
}

// readers lists the readers tried for each extension, in order
var readers = map[string][]reader{
	".pdf":  pdfReaders(),
	".docx": {{name: "docx", read: readDocx}},
	".doc":  {{name: "docx", read: readDocx}},
	".txt":  {{name: "text", read: readPlain}},
	".md":   {{name: "text", read: readPlain}},
	".html": {{name: "html", read: readHTML}},
	".htm":  {{name: "html", read: readHTML}},
}

// Options configures extraction
type Options struct {
	MaxBytes int64
	// Formats restricts the accepted extensions; empty means all supported
	Formats []string
	Logger  *slog.Logger
}

// DefaultOptions returns sensible defaults
func DefaultOptions() *Options {
	return &Options{MaxBytes: DefaultMaxBytes}
}

// SupportedFormats lists every extension a reader exists for
func SupportedFormats() []string {
	formats := make([]string, 0, len(readers))
	for ext := range readers {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

// Extract reads a document's text. Unsupported extensions and oversize input
// are errors; a document no reader can decode yields placeholder text with
// LowQuality set.
func Extract(data []byte, fileName string, opts *Options) (*types.Document, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	chain, ok := readers[ext]
	if !ok || !allowed(ext, opts.Formats) {
		return nil, &UnsupportedFormatError{Extension: ext}
	}

	limit := opts.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	if int64(len(data)) > limit {
		return nil, &FileTooLargeError{Size: int64(len(data)), Limit: limit}
	}

	doc := &types.Document{
		FileName:   filepath.Base(fileName),
		FileFormat: ext,
		Checksum:   computeHash(data),
	}

	for _, r := range chain {
		text, err := r.read(data)
		if err != nil {
			logger.Warn("document reader failed",
				slog.String("reader", r.name),
				slog.String("file", doc.FileName),
				slog.Any("error", err))
			continue
		}
		if text = CleanText(text); text != "" {
			doc.RawText = text
			return doc, nil
		}
	}

	doc.RawText = placeholder(ext)
	doc.LowQuality = true
	return doc, nil
}

// ReadFile extracts a document from disk
func ReadFile(path string, opts *Options) (*types.Document, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	// Check the extension before touching the file
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := readers[ext]; !ok || !allowed(ext, opts.Formats) {
		return nil, &UnsupportedFormatError{Extension: ext}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Extract(content, path, opts)
}

func allowed(ext string, formats []string) bool {
	if len(formats) == 0 {
		return true
	}
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !strings.HasPrefix(f, ".") {
			f = "." + f
		}
		if f == ext {
			return true
		}
	}
	return false
}

func placeholder(ext string) string {
	return fmt.Sprintf("[%s text could not be extracted]", strings.ToUpper(strings.TrimPrefix(ext, ".")))
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
