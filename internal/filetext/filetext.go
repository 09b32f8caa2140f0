// Package filetext extracts plain text from user-supplied input files.
// Dispatch is by filename extension: .pdf, .docx and .txt are supported.
package filetext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// FromFile reads the file at path and returns its extracted plain text,
// trimmed of surrounding whitespace.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return FromBytes(data, path)
}

// FromBytes extracts plain text from an in-memory payload. The filename is
// used only for its extension.
func FromBytes(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return strings.TrimSpace(string(data)), nil
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("extracting pdf text from %s: %w", filename, err)
		}
		return strings.TrimSpace(text), nil
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			return "", fmt.Errorf("extracting docx text from %s: %w", filename, err)
		}
		return strings.TrimSpace(text), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filename)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}
