package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/investorlens/investorlens/internal/analysis"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestSave_WritesEnvelopeAndIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	res := &analysis.Result{
		Payload:   json.RawMessage(`{"score":7.5,"verdict":"promising"}`),
		RequestID: "req-123",
		Status:    200,
	}

	path, err := Save(dir, "Acme Robotics!", res, fixedNow)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "acme-robotics-20260314-092653.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, "Acme Robotics!", env.StartupName)
	require.Equal(t, "req-123", env.RequestID)
	require.True(t, env.AnalyzedAt.Equal(fixedNow))
	require.JSONEq(t, `{"score":7.5,"verdict":"promising"}`, string(env.Result))

	index, err := os.ReadFile(filepath.Join(dir, indexFile))
	require.NoError(t, err)
	require.Contains(t, string(index), indexMarker)
	require.Contains(t, string(index), "| Acme Robotics! | [acme-robotics-20260314-092653.json](acme-robotics-20260314-092653.json) | req-123 | 2026-03-14 |")
}

func TestSave_UnnamedStartup(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, "   ", &analysis.Result{Payload: json.RawMessage(`{}`)}, fixedNow)
	require.NoError(t, err)
	require.Equal(t, "unnamed-startup-20260314-092653.json", filepath.Base(path))

	index, err := os.ReadFile(filepath.Join(dir, indexFile))
	require.NoError(t, err)
	require.Contains(t, string(index), "| Unnamed startup |")
	require.Contains(t, string(index), "| - |")
}

func TestSave_NilResult(t *testing.T) {
	_, err := Save(t.TempDir(), "Acme", nil, fixedNow)
	require.Error(t, err)
}

func TestSave_NewestFirst(t *testing.T) {
	dir := t.TempDir()
	res := &analysis.Result{Payload: json.RawMessage(`{}`), RequestID: "a"}

	_, err := Save(dir, "First", res, fixedNow)
	require.NoError(t, err)
	_, err = Save(dir, "Second", res, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(dir, indexFile))
	require.NoError(t, err)
	content := string(index)
	require.Equal(t, 1, strings.Count(content, tableHeader))
	require.Less(t, strings.Index(content, "| Second |"), strings.Index(content, "| First |"))
}

func TestIndexRow(t *testing.T) {
	row := indexRow("Pipe|Co", "pipe-co.json", "r1", fixedNow)
	require.Equal(t, `| Pipe\|Co | [pipe-co.json](pipe-co.json) | r1 | 2026-03-14 |`, row)

	long := strings.Repeat("x", 150)
	row = indexRow(long, "x.json", "r1", fixedNow)
	require.Contains(t, row, strings.Repeat("x", 97)+"...")
	require.NotContains(t, row, strings.Repeat("x", 98))
}

func TestInsertRow(t *testing.T) {
	row := "| New | [n.json](n.json) | r | 2026-03-14 |"

	tests := []struct {
		name     string
		content  string
		contains []string
		before   [2]string
	}{
		{
			name:     "existing table",
			content:  "# Reports\n\n" + indexMarker + "\n\n" + tableHeader + "\n" + tableSep + "\n| Old | [o.json](o.json) | r | 2026-01-01 |\n",
			contains: []string{row},
			before:   [2]string{"| New |", "| Old |"},
		},
		{
			name:     "marker without table",
			content:  "# Reports\n\n" + indexMarker + "\n\nSome notes.\n",
			contains: []string{tableHeader, tableSep, row, "Some notes."},
			before:   [2]string{"| New |", "Some notes."},
		},
		{
			name:     "no marker",
			content:  "# Hand-written index\n\nNothing here yet.",
			contains: []string{"# Hand-written index", indexMarker, tableHeader, row},
			before:   [2]string{"Nothing here yet.", indexMarker},
		},
		{
			name:     "empty file",
			content:  "",
			contains: []string{indexMarker, tableHeader, row},
			before:   [2]string{indexMarker, tableHeader},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := insertRow(tt.content, row)
			for _, s := range tt.contains {
				require.Contains(t, out, s)
			}
			require.Less(t, strings.Index(out, tt.before[0]), strings.Index(out, tt.before[1]))
			require.Equal(t, 1, strings.Count(out, row))
		})
	}
}

func TestNewIndex(t *testing.T) {
	out := newIndex("| A | [a.json](a.json) | r | 2026-03-14 |")
	require.True(t, strings.HasPrefix(out, "# Analysis reports"))
	require.Contains(t, out, indexMarker+"\n\n"+tableHeader+"\n"+tableSep+"\n| A |")
}

func TestPretty(t *testing.T) {
	out, err := Pretty([]byte(`{"a":1,"b":[true]}`))
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    true\n  ]\n}", out)

	_, err = Pretty([]byte(`{"a":`))
	require.Error(t, err)
}

func TestHighlight(t *testing.T) {
	src := "{\n  \"score\": 7\n}"
	out := Highlight(src)
	require.Contains(t, out, "score")
	require.Contains(t, out, "\x1b[")
}
