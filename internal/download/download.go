// Package download writes generated documents to the local download
// directory.
package download

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"
)

const (
	filePrefix       = "offer_"
	defaultExtension = ".pdf"
)

var pdfMagic = []byte("%PDF-")

// Result describes a saved document.
type Result struct {
	Path  string
	Name  string
	Size  int
	Pages int // zero when the page count could not be read
}

// Saver stores documents as offer_<unix-millis><ext> in Dir. Files with the
// same name are overwritten.
type Saver struct {
	Dir string
	Now func() time.Time
	Log logrus.FieldLogger
}

// NewSaver returns a Saver writing into dir.
func NewSaver(dir string, log logrus.FieldLogger) *Saver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Saver{Dir: dir, Now: time.Now, Log: log}
}

// FileName returns the name a document saved at t would get.
func FileName(t time.Time, ext string) string {
	return fmt.Sprintf("%s%d%s", filePrefix, t.UnixMilli(), ext)
}

// Save writes data and returns where it went.
func (s *Saver) Save(data []byte, contentType string) (Result, error) {
	if s == nil {
		return Result{}, fmt.Errorf("saver is nil")
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	dir := strings.TrimSpace(s.Dir)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create download dir: %w", err)
	}

	ext := Extension(data, contentType)
	name := FileName(now(), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Result{}, fmt.Errorf("write document: %w", err)
	}

	res := Result{Path: path, Name: name, Size: len(data)}
	if ext == ".pdf" {
		pages, err := api.PageCountFile(path)
		if err != nil {
			s.logger().WithError(err).WithField("path", path).Warn("could not read page count")
		} else {
			res.Pages = pages
		}
	}
	s.logger().WithFields(logrus.Fields{
		"path":  path,
		"size":  res.Size,
		"pages": res.Pages,
	}).Info("document saved")
	return res, nil
}

func (s *Saver) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// Extension picks the file extension for a document body: PDF magic wins,
// then the Content-Type, then .pdf.
func Extension(data []byte, contentType string) string {
	if bytes.HasPrefix(data, pdfMagic) {
		return ".pdf"
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "application/octet-stream" {
		return defaultExtension
	}
	if mediaType == "application/pdf" {
		return ".pdf"
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return defaultExtension
	}
	return exts[0]
}
