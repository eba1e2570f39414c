package invoice

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestExtractTextReadsPlainFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "juni.txt")
	assert.NoError(t, os.WriteFile(path, []byte(statement), 0600))

	data, err := ExtractText(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, statement, string(data))
}

func TestExtractTextMissingFile(t *testing.T) {
	_, err := ExtractText(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.IsError(t, err, fs.ErrNotExist)
}

func TestExtractTextWithoutExtractor(t *testing.T) {
	original := pdftotext
	pdftotext = "pdftotext-that-does-not-exist"
	t.Cleanup(func() { pdftotext = original })

	_, err := ExtractText(context.Background(), filepath.Join(t.TempDir(), "juni.PDF"))
	assert.IsError(t, err, ErrNoExtractor)
}
