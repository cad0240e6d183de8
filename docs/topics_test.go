package docs

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced code blocks with these info strings are executed by TestCodeBlocks.
const (
	bashSetup    = "bash setup"    // starts a new scenario in a fresh folder
	bashRun      = "bash run"      // its output is checked by the next console check
	consoleCheck = "console check" // expected output of the previous bash run
	bashCheck    = "bash check"    // must succeed
)

// readmeTopics returns the topics listed in readme.md as "* name: summary".
func readmeTopics(t *testing.T) []string {
	t.Helper()
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	var topics []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	return topics
}

// TestTopics checks that readme.md lists exactly the topics of the folder.
func TestTopics(t *testing.T) {
	listed := readmeTopics(t)
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("readme.md lists %q: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
}

func TestGetAllTopics(t *testing.T) {
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"formatting", "modes", "ranges", "sources"}
	if !slices.Equal(topics, want) {
		t.Errorf("GetAllTopics() = %v, want %v", topics, want)
	}
}

func TestGetTopicsStar(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"# Formatting", "# Display modes", "# Ranges", "# Sources"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopic(*) does not contain %q", title)
		}
	}
	if strings.Contains(all, "# dash documentation") {
		t.Error("GetTopic(*) contains the table of contents")
	}
	if _, err := GetTopics("ranges", "nope"); err == nil {
		t.Error("GetTopics() expected an error for an unknown topic")
	}
}

func TestList(t *testing.T) {
	topics, err := List()
	if err != nil {
		t.Fatal(err)
	}
	want := []Topic{
		{Name: "formatting", Title: "Formatting"},
		{Name: "modes", Title: "Display modes"},
		{Name: "ranges", Title: "Ranges"},
		{Name: "sources", Title: "Sources"},
	}
	if !slices.Equal(topics, want) {
		t.Errorf("List() = %v, want %v", topics, want)
	}
	if got := title([]byte("no heading"), "def"); got != "def" {
		t.Errorf("title() = %q, want the default", got)
	}
}

func TestHTML(t *testing.T) {
	html, err := HTML("ranges")
	if err != nil {
		t.Fatalf("HTML() unexpected error = %v", err)
	}
	for _, want := range []string{"<h1", "<table>", "<td>1W</td>"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() does not contain %q", want)
		}
	}

	if _, err := HTML("nope"); err == nil {
		t.Error("HTML() expected an error for an unknown topic")
	}
}

// TestCodeBlocks runs the command examples of the documentation against a
// freshly built dash.
func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat("../README.md"); err == nil {
		files = append(files, "../README.md")
	}

	var dash string
	binDir := t.TempDir()
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			blocks := parseBlocks(t, file)
			if len(blocks) == 0 {
				return
			}
			if dash == "" {
				dash = buildDash(t, binDir)
			}
			r := newRunner(t, filepath.Dir(dash))
			for _, b := range blocks {
				r.run(t, b)
			}
		})
	}
}

// block is an executable fenced code block.
type block struct {
	kind    string
	content string
	file    string
	line    int
}

func (b block) String() string { return fmt.Sprintf("%s:%d: %s", b.file, b.line, b.kind) }

// buildDash builds the dash executable in dir and returns its path.
func buildDash(t *testing.T, dir string) string {
	t.Helper()
	output := filepath.Join(dir, "dash")
	build := exec.Command("go", "build", "-o", output, "../dash/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build dash command: %v\n%s", err, out)
	}
	return output
}

// parseBlocks returns the executable blocks of a markdown file, in order.
func parseBlocks(t *testing.T, file string) []block {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	var blocks []block
	root := md.Parser().Parse(text.NewReader(content))
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(content))
		switch kind {
		case bashCheck, bashSetup, bashRun, consoleCheck:
		default:
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, block{
			kind:    kind,
			content: b.String(),
			file:    file,
			line:    bytes.Count(content[:fcb.Info.Segment.Start], []byte("\n")) + 1,
		})
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return blocks
}

// runner executes the blocks of a file in sequence.
type runner struct {
	env            []string
	dir            string
	previousOutput string
}

func newRunner(t *testing.T, binDir string) *runner {
	path := fmt.Sprintf("PATH=%s%c%s", binDir, os.PathListSeparator, os.Getenv("PATH"))
	// no live data in documentation scenarios
	env := append(os.Environ(), path, "DASH_SOURCE=synthetic", "EODHD_API_KEY=", "DASH_CURRENCY=")
	return &runner{env: env, dir: t.TempDir()}
}

func (r *runner) run(t *testing.T, b block) {
	t.Helper()

	if b.kind == consoleCheck {
		want := strings.TrimSpace(b.content)
		got := strings.ReplaceAll(strings.TrimSpace(r.previousOutput), "\t", "        ")
		if want != got {
			t.Errorf("%v: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q\n", b, got, want, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		r.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = r.dir
	cmd.Env = r.env
	output, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		r.previousOutput = string(output)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%v failed: %v with output:\n%s\n", b, err, output)
		return
	}
	t.Fatalf("%v failed: %v with output:\n%s\n", b, err, output)
}
