package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/huduassist/huduassist-be/types"
	"github.com/huduassist/huduassist-be/utils"
)

// FileService stages uploaded PDFs on disk for the duration of ingestion.
// Files are transient: callers must invoke the returned cleanup func on all
// exit paths.
type FileService struct {
	uploadDir string
	client    *http.Client
	logger    *zap.Logger
}

func NewFileService(uploadDir string, downloadTimeout time.Duration, logger *zap.Logger) *FileService {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		panic(err)
	}
	if downloadTimeout <= 0 {
		downloadTimeout = 30 * time.Second
	}
	return &FileService{
		uploadDir: uploadDir,
		client:    &http.Client{Timeout: downloadTimeout},
		logger:    logger,
	}
}

// SaveUpload validates and stages a multipart PDF upload. It returns the
// staged path and a cleanup func that removes the file.
func (s *FileService) SaveUpload(file *multipart.FileHeader) (string, func(), error) {
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return "", nil, fmt.Errorf("%w: only PDF files are supported", types.ErrInvalidInput)
	}

	src, err := file.Open()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	defer src.Close()

	return s.stage(src, file.Filename)
}

// DownloadFromURL fetches a PDF from an http(s) URL into the staging dir.
// It returns the staged path, the filename derived from the URL, and a
// cleanup func. Unreachable or non-PDF URLs fail with ErrInvalidInput.
func (s *FileService) DownloadFromURL(ctx context.Context, rawURL string) (string, string, func(), error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", "", nil, fmt.Errorf("%w: URL must start with http:// or https://", types.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", types.ErrInvalidInput, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: failed to download file from URL: %v", types.ErrInvalidInput, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", nil, fmt.Errorf("%w: download returned %s", types.ErrInvalidInput, resp.Status)
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "pdf") && !strings.HasSuffix(strings.ToLower(parsed.Path), ".pdf") {
		return "", "", nil, fmt.Errorf("%w: URL does not point to a PDF file", types.ErrInvalidInput)
	}

	filename := filepath.Base(parsed.Path)
	if filename == "." || filename == "/" || filename == "" {
		filename = "document.pdf"
	}

	path, cleanup, err := s.stage(resp.Body, filename)
	if err != nil {
		return "", "", nil, err
	}
	return path, filename, cleanup, nil
}

func (s *FileService) stage(src io.Reader, originalName string) (string, func(), error) {
	destName := utils.TimestampedName(originalName)
	destPath := filepath.Join(s.uploadDir, destName)

	dst, err := os.Create(destPath)
	if err != nil {
		return "", nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(destPath)
		return "", nil, err
	}

	cleanup := func() {
		if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove staged file",
				zap.String("path", destPath), zap.Error(err))
		}
	}
	return destPath, cleanup, nil
}
