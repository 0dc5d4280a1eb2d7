package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/hashicorp/go-multierror"
	"github.com/saitoha/tff"
	"github.com/saitoha/tff/internal/termview"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRunCommand() *cobra.Command {
	var cols, rows int
	var timeout time.Duration
	var showColors bool

	cmd := &cobra.Command{
		Use:   "run -- command [args...]",
		Short: "Run a command under a pseudo-terminal and render its final screen",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cols == 0 || rows == 0 {
				cols, rows = terminalSize()
			}
			out, err := captureInPTY(args[0], args[1:], cols, rows, timeout)
			if err != nil {
				return err
			}
			view, parseErr := renderInto(out, cols, rows)
			if parseErr != nil {
				log.WithError(parseErr).Warn("dispatch error; showing partial render")
			}
			if showColors {
				fmt.Println(view.StyledText())
			} else {
				fmt.Println(view.PlainText())
			}
			for _, seq := range view.Invalid {
				log.WithField("sequence", string(seq)).Debug("rejected by parser")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "pty column count (default: detect from stdin)")
	cmd.Flags().IntVar(&rows, "rows", 0, "pty row count (default: detect from stdin)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "how long to let the child run before it is killed")
	cmd.Flags().BoolVar(&showColors, "colors", false, "re-emit SGR sequences in the rendered output")
	return cmd
}

func terminalSize() (cols, rows int) {
	w, h, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

// captureInPTY spawns name under a pseudo-terminal sized cols x rows and
// collects everything it writes until it exits or timeout elapses,
// whichever comes first.
func captureInPTY(name string, args []string, cols, rows int, timeout time.Duration) ([]byte, error) {
	c := exec.Command(name, args...)
	c.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.Start(c)
	if err != nil {
		return nil, fmt.Errorf("starting %s under pty: %w", name, err)
	}
	defer ptmx.Close()

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		log.WithError(err).Debug("could not set pty size")
	}

	deadline := time.Now().Add(timeout)
	var output []byte
	buf := make([]byte, 4096)
	for time.Now().Before(deadline) {
		ptmx.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, err := ptmx.Read(buf)
		if n > 0 {
			output = append(output, buf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			if !os.IsTimeout(err) {
				log.WithError(err).Debug("pty read error")
			}
		}
	}

	if c.Process != nil {
		_ = c.Process.Kill()
	}
	_ = c.Wait()
	return output, nil
}

// renderInto drives data through a fresh Parser/View pair, returning the
// final grid even if a Context call errored partway through.
func renderInto(data []byte, cols, rows int) (*termview.View, error) {
	view := termview.New(cols, rows)
	p := tff.NewParser()
	p.Init(view)
	return view, p.Parse(data)
}

// renderFiles parses each of paths independently into its own View and
// returns one rendered plain-text frame per file, aggregating any per-file
// error into a single multierror rather than aborting the batch.
func renderFiles(paths []string, cols, rows int) ([]string, error) {
	var result *multierror.Error
	frames := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", p, err))
			continue
		}
		view, parseErr := renderInto(data, cols, rows)
		if parseErr != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", p, parseErr))
			continue
		}
		frames = append(frames, view.PlainText())
	}
	return frames, result.ErrorOrNil()
}
