package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/visualds/pkg/structure"
)

const sample = `
version: v1.2.0
container: queue
props:
  cellWidth: 50
steps:
  - push: a
  - pop: {}
  - set: {field: showIndex, value: false}
  - props: {cellSpace: 10}
  - wait: 250ms
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, structure.KindQueue, sc.Kind)
	assert.Equal(t, 50, sc.Props["cellWidth"])
	require.Len(t, sc.Steps, 5)
	assert.Equal(t, Step{Op: OpPush, Value: "a"}, sc.Steps[0])
	assert.Equal(t, OpPop, sc.Steps[1].Op)
	assert.Equal(t, Step{Op: OpSet, Field: "showIndex", SetTo: false}, sc.Steps[2])
	assert.Equal(t, 10, sc.Steps[3].Props["cellSpace"])
	assert.Equal(t, 250*time.Millisecond, sc.Steps[4].Wait)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"no version":    "container: stack\n",
		"bad version":   "version: one\ncontainer: stack\n",
		"future major":  "version: v2.0.0\ncontainer: stack\n",
		"bad container": "version: v1\ncontainer: heap\n",
		"graph":         "version: v1\ncontainer: graph\n",
		"unknown step":  "version: v1\ncontainer: stack\nsteps:\n  - shove: a\n",
		"empty push":    "version: v1\ncontainer: stack\nsteps:\n  - push: \"\"\n",
		"set no field":  "version: v1\ncontainer: stack\nsteps:\n  - set: {value: 1}\n",
		"bad duration":  "version: v1\ncontainer: stack\nsteps:\n  - wait: soon\n",
		"two keys":      "version: v1\ncontainer: stack\nsteps:\n  - {push: a, pop: {}}\n",
		"not yaml":      "version: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("version: v2.0.0\ncontainer: stack\n"))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sc.Steps, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
