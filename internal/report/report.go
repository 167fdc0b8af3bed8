// Package report exports analysis results to a directory of JSON files with
// a markdown index, and formats them for the terminal.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/investorlens/investorlens/internal/analysis"
	"github.com/investorlens/investorlens/internal/logger"
)

const (
	indexFile   = "README.md"
	indexMarker = "<!-- REPORTS -->"
	tableHeader = "| Startup | Report | Request ID | Date |"
	tableSep    = "|---------|--------|------------|------|"
)

// Envelope is the on-disk form of a saved result. Result is stored as
// returned by the service.
type Envelope struct {
	StartupName string          `json:"startup_name"`
	RequestID   string          `json:"request_id"`
	AnalyzedAt  time.Time       `json:"analyzed_at"`
	Result      json.RawMessage `json:"result"`
}

// Save writes res into dir and records it in the directory index.
// It returns the path of the written file.
func Save(dir, startupName string, res *analysis.Result, now time.Time) (string, error) {
	if res == nil {
		return "", fmt.Errorf("no result to save")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := slug.Make(startupName)
	if name == "" {
		name = "unnamed-startup"
	}
	fileName := fmt.Sprintf("%s-%s.json", name, now.UTC().Format("20060102-150405"))
	path := filepath.Join(dir, fileName)

	data, err := json.MarshalIndent(Envelope{
		StartupName: startupName,
		RequestID:   res.RequestID,
		AnalyzedAt:  now.UTC(),
		Result:      res.Payload,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	logger.Debug("Writing report to %s", path)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	row := indexRow(startupName, fileName, res.RequestID, now)
	if err := updateIndex(filepath.Join(dir, indexFile), row); err != nil {
		return "", fmt.Errorf("failed to update report index: %w", err)
	}
	return path, nil
}

// Pretty indents a JSON payload for display.
func Pretty(payload []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return "", fmt.Errorf("formatting result: %w", err)
	}
	return buf.String(), nil
}

func indexRow(startupName, fileName, requestID string, now time.Time) string {
	title := strings.TrimSpace(startupName)
	if title == "" {
		title = "Unnamed startup"
	}
	if runes := []rune(title); len(runes) > 100 {
		title = string(runes[:97]) + "..."
	}
	title = strings.ReplaceAll(title, "|", "\\|")
	if requestID == "" {
		requestID = "-"
	}
	return fmt.Sprintf("| %s | [%s](%s) | %s | %s |", title, fileName, fileName, requestID, now.Format("2006-01-02"))
}

// updateIndex adds row to the index table, creating the file or the table
// when missing. Newest rows come first.
func updateIndex(path, row string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read index: %w", err)
	}

	var content string
	if os.IsNotExist(err) {
		logger.Debug("Creating report index at %s", path)
		content = newIndex(row)
	} else {
		content = insertRow(string(existing), row)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

func newIndex(row string) string {
	return fmt.Sprintf(`# Analysis reports

Startup analyses saved by investorlens.

%s

%s
%s
%s
`, indexMarker, tableHeader, tableSep, row)
}

// insertRow puts row at the top of the table that follows the marker. A
// missing marker or table is appended.
func insertRow(content, row string) string {
	lines := strings.Split(content, "\n")

	markerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == indexMarker {
			markerIdx = i
			break
		}
	}

	if markerIdx == -1 {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if strings.TrimSpace(content) != "" {
			content += "\n"
		}
		return content + indexMarker + "\n\n" + tableHeader + "\n" + tableSep + "\n" + row + "\n"
	}

	at := markerIdx + 1
	for at < len(lines) && strings.TrimSpace(lines[at]) == "" {
		at++
	}

	var insert []string
	if at < len(lines) && strings.TrimSpace(lines[at]) == tableHeader {
		at++
		if at < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[at]), "|--") {
			at++
		}
		insert = []string{row}
	} else {
		insert = []string{"", tableHeader, tableSep, row}
	}

	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)
	return strings.Join(out, "\n")
}
