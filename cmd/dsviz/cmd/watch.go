package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/visualds/cmd/dsviz/internal/config"
	"github.com/go-drift/visualds/cmd/dsviz/internal/player"
	"github.com/go-drift/visualds/pkg/logging"
	"github.com/go-drift/visualds/pkg/props"
)

// reloadDebounce coalesces the bursts of events editors emit on save.
const reloadDebounce = 100 * time.Millisecond

func newWatchCommand(a *app) *cobra.Command {
	var propsPath string
	cmd := &cobra.Command{
		Use:   "watch <scenario.yaml> --props <props.yaml>",
		Short: "Re-render a scenario whenever its props file changes",
		Long: `Play a scenario to its final state, then watch a YAML props file.

Every time the file is saved its fields replace the renderer options and
the final frame is written again to <out>/watch.<format>. Stop with
Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, args[0], propsPath)
		},
	}
	cmd.Flags().StringVar(&propsPath, "props", "", "YAML file of renderer options to watch")
	_ = cmd.MarkFlagRequired("props")
	config.BindRenderFlags(cmd.Flags())
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, scenarioPath, propsPath string) error {
	p, err := a.openPlayer(scenarioPath)
	if err != nil {
		return err
	}
	defer p.Close()

	frames, err := openFrames(a.cfg.Render.Out, a.cfg.Render.Format)
	if err != nil {
		return err
	}
	defer frames.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx, nil); err != nil {
		return err
	}
	out := filepath.Join(a.cfg.Render.Out, "watch."+a.cfg.Render.Format)
	emit := func() error {
		if err := frames.writeFile(out, p.Board()); err != nil {
			return err
		}
		color.New(color.FgCyan).Fprintf(a.out, "rendered %s\n", out)
		return nil
	}

	err = watchProps(ctx, p, propsPath, emit, logging.Component("watch"))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchProps applies propsPath to p once and then after every change,
// calling emit with the settled board. The fsnotify loop and the player
// run on separate goroutines; only the latter touches p.
func watchProps(ctx context.Context, p *player.Player, propsPath string, emit func() error, log zerolog.Logger) error {
	propsPath = filepath.Clean(propsPath)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// fsnotify watches directories; editors often replace the file.
	if err := watcher.Add(filepath.Dir(propsPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", propsPath, err)
	}

	reload := make(chan struct{}, 1)
	reload <- struct{}{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer watcher.Close()
		var debounce <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != propsPath || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				log.Debug().Str("op", ev.Op.String()).Msg("props changed")
				debounce = time.After(reloadDebounce)
			case <-debounce:
				debounce = nil
				select {
				case reload <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warn().Err(err).Msg("file watcher error")
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-reload:
			}
			values, err := readProps(propsPath)
			if err != nil {
				// Keep the last good options until the file is fixed.
				log.Error().Err(err).Str("file", propsPath).Msg("props not applied")
				continue
			}
			p.SetProps(values)
			if err := p.Settle(ctx, nil); err != nil {
				return err
			}
			if err := emit(); err != nil {
				return err
			}
		}
	})
	return g.Wait()
}

func readProps(path string) (props.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return props.LoadYAML(data)
}
