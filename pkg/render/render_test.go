package render

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/visualds/pkg/animation"
	"github.com/go-drift/visualds/pkg/errors"
	"github.com/go-drift/visualds/pkg/graphics"
	"github.com/go-drift/visualds/pkg/props"
	"github.com/go-drift/visualds/pkg/scene"
	"github.com/go-drift/visualds/pkg/structure"
	viztest "github.com/go-drift/visualds/pkg/testing"
)

func settle(t *testing.T, tester *viztest.SceneTester) {
	t.Helper()
	require.NoError(t, tester.PumpAndSettle(time.Second))
}

var liveBoxes = viztest.Live(viztest.ByClass("box"))

func layerOf[T any](t *testing.T, r *Renderer[T], name string) *scene.Node {
	t.Helper()
	for i, k := range drawerKinds {
		if k.name == name {
			return r.Node().Children()[i]
		}
	}
	t.Fatalf("no drawer %q", name)
	return nil
}

func ids(nodes []*scene.Node) []uint64 {
	out := make([]uint64, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func TestNewRejectsWrongContainer(t *testing.T) {
	var nilStack *structure.Stack[string]
	cases := map[string]any{
		"nil":        nil,
		"typed nil":  nilStack,
		"queue":      structure.NewQueue[string](),
		"elem type":  structure.NewStack[int](),
		"not a type": "stack",
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewStack[string](c, nil)
			assert.Nil(t, r)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

			var verr *errors.VizError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, errors.KindInvalidArgument, verr.Kind)
			assert.Equal(t, "render.NewStack", verr.Op)
		})
	}

	_, err := NewQueue[string](structure.NewStack[string](), nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestNewIsLive(t *testing.T) {
	viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)

	assert.Equal(t, StateLive, r.State())
	assert.True(t, r.Alive())
	assert.Equal(t, 1, s.ObserverCount())
	assert.Equal(t, 1, r.Rebuilds())
	assert.Len(t, r.Node().Children(), len(drawerKinds))
	assert.Equal(t, 40.0, r.Props().Float(FieldCellWidth))
}

func TestEnterAnimation(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())
	l := LayoutOf(r.Props())

	s.Push("x")
	box := tester.Find(liveBoxes)
	require.Equal(t, 1, box.Count())
	assert.Equal(t, l.CellX(0)+l.FlyDistance, box.First().Pos.X)
	assert.Zero(t, box.First().Opacity)

	tester.PumpFor(TransitionDuration / 2)
	assert.Greater(t, box.First().Opacity, 0.5, "ease-out is past halfway at half time")
	assert.Less(t, box.First().Pos.X, l.CellX(0)+l.FlyDistance)

	settle(t, tester)
	assert.Equal(t, graphics.Offset{X: l.CellX(0), Y: l.BoxStartY()}, box.First().Pos)
	assert.Equal(t, 1.0, box.First().Opacity)
	assert.Equal(t, graphics.Size{Width: 40, Height: 30}, box.First().Size)

	assert.Equal(t, []string{"x"}, tester.Find(viztest.ByClass("val")).Texts())
	assert.Equal(t, l.CellCenterX(0), tester.Find(viztest.ByText("x")).First().Pos.X)

	idx := tester.Find(viztest.ByClass("idx"))
	require.Equal(t, 1, idx.Count())
	assert.Equal(t, "0", idx.First().Text)
	assert.Equal(t, float64(indexHeight-10), idx.First().Pos.Y)
}

func TestKeyStability(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	s.Push("x")
	s.Push("y")
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())
	settle(t, tester)

	before := ids(tester.Find(liveBoxes).All())
	require.Len(t, before, 2)

	s.Push("z")
	after := tester.Find(liveBoxes).All()
	require.Len(t, after, 3)
	assert.Equal(t, before, ids(after[:2]), "x and y keep their elements")
	assert.NotContains(t, before, after[2].ID())
	settle(t, tester)

	zID := after[2].ID()
	_, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, before, ids(tester.Find(liveBoxes).All()))
	all := tester.Find(viztest.ByClass("box"))
	require.Equal(t, 3, all.Count())
	assert.True(t, all.At(2).Exiting())
	assert.Equal(t, zID, all.At(2).ID(), "only z exits")

	settle(t, tester)
	assert.Equal(t, 2, tester.Find(viztest.ByClass("box")).Count())
}

func TestReenterWhileExiting(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())
	s.Push("a")
	s.Push("b")
	settle(t, tester)

	old := tester.Find(liveBoxes).At(1)

	s.Pop()
	tester.PumpFor(TransitionDuration / 3)
	s.Push("c")

	live := tester.Find(liveBoxes)
	require.Equal(t, 2, live.Count())
	assert.NotEqual(t, old.ID(), live.At(1).ID(), "re-entering element is a new node")
	assert.Equal(t, 3, tester.Find(viztest.ByClass("box")).Count())
	assert.True(t, old.Exiting())

	settle(t, tester)
	assert.True(t, old.Removed())
	assert.Equal(t, 2, tester.Find(viztest.ByClass("box")).Count())
	assert.Equal(t, []string{"a", "c"}, tester.Find(viztest.ByClass("val")).Texts())
	assert.Zero(t, animation.ActiveTickers())
}

func TestEmptyPopIsTolerated(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())

	_, ok := s.Pop()
	assert.False(t, ok)
	assert.False(t, tester.Find(viztest.ByClass("box")).Exists())
	assert.True(t, r.Alive())
}

func TestReplacePropsRebuilds(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 240, Height: 120})
	s := structure.NewStack[string]()
	s.Push("1")
	s.Push("2")
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())
	settle(t, tester)
	oldRoot := r.Node()

	r.SetProps(props.Values{FieldCellWidth: 60})
	assert.Equal(t, 2, r.Rebuilds())
	assert.Same(t, oldRoot, r.Node())
	assert.Equal(t, s.Size(), r.Node().Count(scene.KindRect), "rebuild neither duplicates nor drops cells")
	assert.Len(t, r.Node().Children(), len(drawerKinds))

	settle(t, tester)
	for _, b := range tester.Find(liveBoxes).All() {
		assert.Equal(t, 60.0, b.Size.Width)
	}
	assert.Equal(t, 5.0, r.Props().Float(FieldCellSpace), "unset fields take defaults")
	tester.CaptureSnapshot().MatchesFile(t, filepath.Join("testdata", "replace_props.snapshot.json"))
}

func TestReplacedPropsAreDetached(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	s.Push("a")
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())

	old := r.Props()
	r.SetProps(props.Values{FieldCellWidth: 60})
	require.Equal(t, 2, r.Rebuilds())

	old.Set(FieldCellWidth, 10)
	assert.Equal(t, 2, r.Rebuilds(), "writes through a replaced Props are ignored")
	assert.Equal(t, 60.0, r.Props().Float(FieldCellWidth))

	settle(t, tester)
	assert.Equal(t, 60.0, tester.Find(liveBoxes).First().Size.Width)

	r.Props().Set(FieldCellWidth, 50)
	assert.Equal(t, 3, r.Rebuilds())
}

func TestFieldWriteRebuildsOnce(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewQueue[string]()
	s.Push("a")
	r, err := NewQueue[string](s, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())

	r.Props().Set(FieldShowIndex, false)
	assert.Equal(t, 2, r.Rebuilds())
	assert.Empty(t, layerOf(t, r, "index").Children())
	assert.False(t, tester.Find(viztest.ByClass("idx")).Exists())
	assert.Zero(t, LayoutOf(r.Props()).BoxStartY())

	r.Props().Set("unknownField", 1)
	assert.Equal(t, 3, r.Rebuilds(), "unknown fields are accepted and still rebuild")
}

func TestPointerTracksEnd(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	q := structure.NewQueue[int]()
	r, err := NewQueue[int](q, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())
	l := LayoutOf(r.Props())

	arrow := tester.Find(viztest.ByKind(scene.KindPath)).First()
	caption := tester.Find(viztest.ByText("FRONT")).First()
	assert.Equal(t, l.EndX(0), caption.Pos.X)

	q.Push(1)
	q.Push(2)
	settle(t, tester)
	assert.Equal(t, l.EndX(2), caption.Pos.X)
	assert.Equal(t, graphics.Offset{X: l.EndX(2) - 12, Y: l.BoxEndY()}, arrow.Pos)
}

func TestUnchangedElementsStayPut(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	s.Push("x")
	s.Push("y")
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	tester.Mount(r.Node())
	settle(t, tester)

	r.Refresh()
	assert.Zero(t, animation.ActiveTickers(), "a refresh with the same data starts nothing")

	s.Push("z")
	assert.Equal(t, 5, animation.ActiveTickers(), "box, text and index of z plus arrow and caption")
	for _, n := range tester.Find(liveBoxes).All()[:2] {
		pos, opacity := n.Target()
		assert.Equal(t, n.Pos, pos)
		assert.Equal(t, 1.0, opacity)
		assert.False(t, n.Animating())
	}
	assert.True(t, tester.Find(liveBoxes).At(2).Animating())
}

func TestDisposeIsTerminal(t *testing.T) {
	viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	root := r.Node()
	p := r.Props()

	r.Dispose()
	assert.Equal(t, StateDisposed, r.State())
	assert.False(t, r.Alive())
	assert.Nil(t, r.Node())
	assert.True(t, root.Removed())
	assert.Zero(t, s.ObserverCount())

	s.Push("late")
	r.Refresh()
	r.ForceRebuild()
	r.SetProps(props.Values{FieldCellWidth: 10})
	p.Set(FieldCellWidth, 20)
	r.Dispose()
	assert.Equal(t, 1, r.Rebuilds())
	assert.Nil(t, r.Node())
	assert.Zero(t, animation.ActiveTickers())
}

func TestRenderersShareContainer(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	a, err := NewStack[string](s, nil)
	require.NoError(t, err)
	b, err := NewStack[string](s, props.Values{FieldShowLabel: false})
	require.NoError(t, err)
	assert.Equal(t, 2, s.ObserverCount())

	s.Push("v")
	settle(t, tester)
	assert.Equal(t, 1, a.Node().Count(scene.KindRect))
	assert.Equal(t, 1, b.Node().Count(scene.KindRect))
	assert.Equal(t, 50.0, layerOf(t, a, "box").Select("box")[0].Pos.X)
	assert.Zero(t, layerOf(t, b, "box").Select("box")[0].Pos.X)

	a.Dispose()
	s.Push("w")
	settle(t, tester)
	assert.Equal(t, 2, b.Node().Count(scene.KindRect))
}

type panicDrawer struct{}

func (panicDrawer) Update([]string) { panic("boom") }
func (panicDrawer) Remove()         {}

type recordingHandler struct {
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(*errors.VizError)       {}
func (h *recordingHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func TestDrawerPanicIsReported(t *testing.T) {
	viztest.NewSceneTesterWithT(t)
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })

	s := structure.NewStack[string]()
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() { r.update("broken", panicDrawer{}, nil) })
	require.Len(t, h.panics, 1)
	assert.Equal(t, "render.broken.Update", h.panics[0].Op)
	assert.Equal(t, "boom", h.panics[0].Value)
}

func TestLayout(t *testing.T) {
	p := props.New(nil, DefaultValues(), nil)
	l := LayoutOf(p)
	assert.Equal(t, 50.0, l.BoxStartX())
	assert.Equal(t, 30.0, l.BoxStartY())
	assert.Equal(t, 95.0, l.CellX(1))
	assert.Equal(t, 60.0, l.BoxEndY())
	assert.Equal(t, 50.0, l.EndX(0))
	assert.Equal(t, 135.0, l.EndX(2))

	l.ShowLabel, l.ShowIndex = false, false
	assert.Zero(t, l.CellX(0))
	assert.Equal(t, 30.0, l.BoxEndY())
}

func TestPaintSVG(t *testing.T) {
	tester := viztest.NewSceneTesterWithT(t)
	s := structure.NewStack[string]()
	r, err := NewStack[string](s, nil)
	require.NoError(t, err)
	s.Push("7")
	settle(t, tester)

	c := graphics.NewSVGCanvas(graphics.Size{Width: 200, Height: 100})
	r.Node().Paint(c)
	var buf bytes.Buffer
	_, err = c.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `<rect x="50" y="30" width="40" height="30" fill="#660eb3"/>`)
	assert.Contains(t, out, ">7</text>")
	assert.Contains(t, out, ">TOP</text>")
	assert.Contains(t, out, ">Index</text>")
	assert.Contains(t, out, "<path d=")
}
