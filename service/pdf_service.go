package service

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/huduassist/huduassist-be/types"
)

// PDFService handles PDF text extraction and chunking
type PDFService struct {
	maxChunkSize int // Maximum size of each text chunk
	overlapSize  int // Size of overlap between chunks
	logger       *zap.Logger
}

var DefaultDocumentServiceConfig = types.DocumentServiceConfig{
	MaxChunkSize: 1000,
	OverlapSize:  200,
}

// NewPDFService creates a new PDF service with configurable chunk sizes
func NewPDFService(config types.DocumentServiceConfig, logger *zap.Logger) *PDFService {
	if config.MaxChunkSize <= 0 {
		config.MaxChunkSize = DefaultDocumentServiceConfig.MaxChunkSize
	}
	if config.OverlapSize < 0 || config.OverlapSize >= config.MaxChunkSize {
		config.OverlapSize = DefaultDocumentServiceConfig.OverlapSize
		if config.OverlapSize >= config.MaxChunkSize {
			config.OverlapSize = config.MaxChunkSize / 4
		}
	}
	return &PDFService{
		maxChunkSize: config.MaxChunkSize,
		overlapSize:  config.OverlapSize,
		logger:       logger,
	}
}

// ExtractPages reads the PDF at filePath and returns one cleaned text string
// per page, in page order. It fails with ErrUnreadableDocument when the file
// cannot be parsed or no page yields any text (scanned/image-only PDFs).
func (s *PDFService) ExtractPages(filePath string) (pages []string, err error) {
	// The parser panics on some malformed files; treat that the same as a
	// parse error.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", types.ErrUnreadableDocument, r)
		}
	}()

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnreadableDocument, err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	s.logger.Debug("extracting pdf text", zap.String("file", filePath), zap.Int("pages", totalPages))

	extracted := false
	pages = make([]string, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			s.logger.Warn("failed to extract text from page",
				zap.Int("page", pageNum), zap.Error(err))
			pages = append(pages, "")
			continue
		}
		text = s.cleanText(text)
		if text != "" {
			extracted = true
		}
		pages = append(pages, text)
	}

	if !extracted {
		return nil, fmt.Errorf("%w: no extractable text in %d pages", types.ErrUnreadableDocument, totalPages)
	}
	return pages, nil
}

// CreateChunks splits text into overlapping chunks by sliding a window of
// maxChunkSize characters, advancing maxChunkSize-overlapSize each step. The
// final chunk may be shorter; text that fits in one window produces exactly
// one chunk. Fails with ErrEmptyDocument when the input is empty after
// normalization.
func (s *PDFService) CreateChunks(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, types.ErrEmptyDocument
	}

	runes := []rune(text)
	if len(runes) <= s.maxChunkSize {
		return []string{text}, nil
	}

	step := s.maxChunkSize - s.overlapSize
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.maxChunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks, nil
}

func (s *PDFService) cleanText(text string) string {
	replacements := map[string]string{
		"\x00": "",   // Null character
		"�": "",   // Unicode replacement character
		"\x1b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	return strings.TrimSpace(cleaned)
}
