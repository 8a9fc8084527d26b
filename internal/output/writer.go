package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
)

// HistoryFile is the name of the plain-text export.
const HistoryFile = "debate_history.txt"

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug turns a topic into a lowercase, dash-separated directory name
// of at most 50 characters. Topics without ASCII letters or digits yield "debate".
func GenerateSlug(topic string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(topic), "-"), "-")
	if len(slug) > 50 {
		slug = strings.TrimRight(slug[:50], "-")
	}
	if slug == "" {
		slug = "debate"
	}
	return slug
}

// CreateOutputDir creates base/<slug>-YYYYMMDD-HHMMSS and returns its path.
func CreateOutputDir(base, slug string) (string, error) {
	dir := filepath.Join(base, slug+"-"+time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output: creating %s: %w", dir, err)
	}
	return dir, nil
}

// Writer stores the files of one run in a directory.
type Writer struct {
	dir string
	mu  sync.Mutex
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// WriteText writes the plain-text export to debate_history.txt.
func (w *Writer) WriteText(result *debate.Result) error {
	return w.write(HistoryFile, []byte(result.Export()))
}

// WriteJSON writes the full result, prompts included, to debate.json.
func (w *Writer) WriteJSON(result *debate.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("output: encoding result: %w", err)
	}
	return w.write("debate.json", data)
}

// WriteMarkdown writes a readable report to report.md.
func (w *Writer) WriteMarkdown(result *debate.Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", result.Topic)
	fmt.Fprintf(&sb, "- Profile: %s\n", result.Profile)
	fmt.Fprintf(&sb, "- Proponent: `%s`\n", result.Roles.Proponent)
	fmt.Fprintf(&sb, "- Opponent: `%s`\n", result.Roles.Opponent)
	fmt.Fprintf(&sb, "- Judge: `%s`\n\n", result.Roles.Judge)

	for _, turn := range result.Transcript.Turns {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", turn.Label, turn.Content)
	}

	switch {
	case result.Verdict != nil:
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n**Outcome:** %s\n", result.Verdict.Label, result.Verdict.Text, result.Verdict.Outcome)
	case result.Failure != "":
		fmt.Fprintf(&sb, "> %s\n", result.Failure)
	}
	return w.write("report.md", []byte(sb.String()))
}

// Log appends a timestamped line to debate.log immediately.
func (w *Writer) Log(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	f, err := os.OpenFile(filepath.Join(w.dir, "debate.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s %s\n", time.Now().Format(time.RFC3339), msg)
}

func (w *Writer) write(name string, data []byte) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("output: writing %s: %w", name, err)
	}
	return nil
}
