package invoice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/commute/telemetry"
)

// pdftotext is a variable so tests can point it at a stub.
var pdftotext = "pdftotext"

// ExtractText returns the text of the statement at path. PDF files are
// converted with pdftotext in layout mode, which keeps each fare on a single
// line; any other file is read as text.
func ExtractText(ctx context.Context, path string) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}

	timer := telemetry.StartTimer(ctx, fmt.Sprintf("invoice.extract %s", filepath.Base(path)))
	defer timer.End()

	bin, err := exec.LookPath(pdftotext)
	if err != nil {
		return nil, ErrNoExtractor
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-layout", "-enc", "UTF-8", path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to extract text from %s: %s: %w", path, msg, err)
	}

	return stdout.Bytes(), nil
}
