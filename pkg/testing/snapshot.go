package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/visualds/pkg/graphics"
	"github.com/go-drift/visualds/pkg/scene"
)

// UpdateSnapshotsEnv names the variable that makes MatchesFile rewrite
// golden files instead of comparing.
const UpdateSnapshotsEnv = "VISUALDS_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the scene tree and the SVG it paints to.
type Snapshot struct {
	Tree *SceneNode `json:"tree"`
	SVG  []string   `json:"svg,omitempty"`
}

// SceneNode is a scene node in serialized form. IDs are stable across
// runs ("rect#0", "rect#1", ...), unlike scene.Node.ID.
type SceneNode struct {
	ID       string       `json:"id"`
	Class    string       `json:"class,omitempty"`
	Offset   [2]float64   `json:"offset"`
	Size     [2]float64   `json:"size,omitzero"`
	Opacity  float64      `json:"opacity"`
	Fill     string       `json:"fill,omitempty"`
	Text     string       `json:"text,omitempty"`
	Exiting  bool         `json:"exiting,omitempty"`
	Children []*SceneNode `json:"children,omitempty"`
}

// CaptureSnapshot captures the mounted scene.
func (t *SceneTester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if t.root == nil {
		return snap
	}
	snap.Tree = captureNode(t.root, &kindCounter{})

	canvas := graphics.NewSVGCanvas(t.size)
	t.root.Paint(canvas)
	var buf bytes.Buffer
	if _, err := canvas.WriteTo(&buf); err == nil {
		snap.SVG = strings.Split(strings.TrimSpace(buf.String()), "\n")
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// VISUALDS_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// kindCounter assigns stable IDs like "rect#0", "rect#1".
type kindCounter struct {
	counts map[scene.Kind]int
}

func (c *kindCounter) next(kind scene.Kind) string {
	if c.counts == nil {
		c.counts = make(map[scene.Kind]int)
	}
	n := c.counts[kind]
	c.counts[kind] = n + 1
	return fmt.Sprintf("%s#%d", kind, n)
}

func captureNode(n *scene.Node, counter *kindCounter) *SceneNode {
	out := &SceneNode{
		ID:      counter.next(n.Kind()),
		Class:   n.Class,
		Offset:  [2]float64{round2(n.Pos.X), round2(n.Pos.Y)},
		Size:    [2]float64{round2(n.Size.Width), round2(n.Size.Height)},
		Opacity: round2(n.Opacity),
		Text:    n.Text,
		Exiting: n.Exiting(),
	}
	if n.Fill != graphics.ColorTransparent {
		out.Fill = n.Fill.Hex()
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, captureNode(c, counter))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := range max(len(expectedLines), len(actualLines)) {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
