// Package player plays a scenario against a live container and renderer
// on a board, stepping animation time frame by frame.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/visualds/cmd/dsviz/internal/scenario"
	"github.com/go-drift/visualds/pkg/animation"
	"github.com/go-drift/visualds/pkg/board"
	"github.com/go-drift/visualds/pkg/errors"
	"github.com/go-drift/visualds/pkg/graphics"
	"github.com/go-drift/visualds/pkg/logging"
	"github.com/go-drift/visualds/pkg/props"
	"github.com/go-drift/visualds/pkg/render"
	"github.com/go-drift/visualds/pkg/structure"
)

// Margin is the offset of the renderer inside the board.
var Margin = graphics.Offset{X: 10, Y: 10}

// Options configures a Player.
type Options struct {
	FPS            int
	Size           graphics.Size
	AllowUnderflow bool
}

// FrameFunc receives each rendered frame. index counts from 0.
type FrameFunc func(index int, b *board.Board) error

type sequence interface {
	Push(string)
	Pop() (string, bool)
	Size() int
	Snapshot() []string
}

type view interface {
	board.Renderable
	Props() *props.Props
	SetProps(props.Values)
	Pointer() string
}

// Player owns the container, renderer and board of one scenario run. It
// installs a manual animation clock until Close.
type Player struct {
	sc        *scenario.Scenario
	opts      Options
	clock     *animation.ManualClock
	prevClock animation.Clock
	board     *board.Board
	seq       sequence
	view      view
	frame     int
	skipped   int
	log       zerolog.Logger
}

// New builds the container and renderer for sc.
func New(sc *scenario.Scenario, opts Options) (*Player, error) {
	if opts.FPS <= 0 {
		return nil, errors.InvalidArgument("player.New", "fps must be positive, got %d", opts.FPS)
	}
	p := &Player{
		sc:    sc,
		opts:  opts,
		clock: animation.NewManualClock(),
		board: board.New(opts.Size),
		log:   logging.Component("player").With().Str("container", sc.Kind.String()).Logger(),
	}
	// Transitions started while building must already run on the manual clock.
	p.prevClock = animation.SetClock(p.clock)
	if err := p.build(); err != nil {
		animation.SetClock(p.prevClock)
		return nil, err
	}
	return p, nil
}

func (p *Player) build() error {
	sc := p.sc
	switch sc.Kind {
	case structure.KindStack:
		s := structure.NewStack[string]()
		r, err := render.NewStack[string](s, sc.Props)
		if err != nil {
			return err
		}
		p.seq, p.view = s, r
	case structure.KindQueue:
		q := structure.NewQueue[string]()
		r, err := render.NewQueue[string](q, sc.Props)
		if err != nil {
			return err
		}
		p.seq, p.view = q, r
	default:
		return errors.InvalidArgument("player.New", "no renderer for %s", sc.Kind)
	}

	if _, err := p.board.Add(p.view, Margin); err != nil {
		p.view.Dispose()
		return err
	}
	return nil
}

// Close disposes the board and restores the previous clock.
func (p *Player) Close() {
	p.board.Dispose()
	animation.StopAllTickers()
	animation.SetClock(p.prevClock)
}

// Board returns the board being played on.
func (p *Player) Board() *board.Board { return p.board }

// Snapshot returns the container contents.
func (p *Player) Snapshot() []string { return p.seq.Snapshot() }

// Pointer returns the renderer's end caption.
func (p *Player) Pointer() string { return p.view.Pointer() }

// Skipped returns how many pops were dropped because the container was
// empty.
func (p *Player) Skipped() int { return p.skipped }

// Frames returns how many frames have been emitted.
func (p *Player) Frames() int { return p.frame }

// FrameInterval is the animation time between frames.
func (p *Player) FrameInterval() time.Duration {
	return time.Second / time.Duration(p.opts.FPS)
}

// Run plays every step. With a nil sink, transitions are jumped to their
// end state and no frames are produced; otherwise the sink receives the
// initial frame and every frame until each step settles.
func (p *Player) Run(ctx context.Context, sink FrameFunc) error {
	if err := p.emit(sink); err != nil {
		return err
	}
	for i, step := range p.sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.log.Debug().Int("step", i).Str("op", string(step.Op)).Msg("apply")
		p.Apply(step)
		if err := p.settle(ctx, sink, step.Wait); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

// Apply performs one step without advancing time.
func (p *Player) Apply(step scenario.Step) {
	switch step.Op {
	case scenario.OpPush:
		p.seq.Push(step.Value)
	case scenario.OpPop:
		if p.seq.Size() == 0 && !p.opts.AllowUnderflow {
			p.skipped++
			p.log.Warn().Msg("pop on empty container ignored")
			return
		}
		p.seq.Pop()
	case scenario.OpSet:
		p.view.Props().Set(step.Field, step.SetTo)
	case scenario.OpProps:
		p.view.SetProps(step.Props)
	case scenario.OpWait:
	}
}

// SetProps replaces the renderer options, rebuilding it.
func (p *Player) SetProps(values props.Values) {
	p.view.SetProps(values)
}

// Settle emits frames until every transition has finished, or jumps to
// the end state when sink is nil.
func (p *Player) Settle(ctx context.Context, sink FrameFunc) error {
	return p.settle(ctx, sink, 0)
}

func (p *Player) settle(ctx context.Context, sink FrameFunc, hold time.Duration) error {
	if sink == nil {
		p.board.Root().FinishTransitions()
		return nil
	}
	interval := p.FrameInterval()
	for elapsed := time.Duration(0); p.board.Animating() || elapsed < hold; elapsed += interval {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.clock.Advance(interval)
		animation.StepTickers()
		if err := p.emit(sink); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) emit(sink FrameFunc) error {
	if sink == nil {
		return nil
	}
	if err := sink(p.frame, p.board); err != nil {
		return fmt.Errorf("frame %d: %w", p.frame, err)
	}
	p.frame++
	return nil
}
