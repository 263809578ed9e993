// Command ktermdemo drives a kterm.Terminal against a real shell PTY
// and renders it to the host terminal, the way the pack's CLI adapters
// wire a terminal engine to an actual display: PTY in, grid model,
// screen out.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kterm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var shellOverride string

	cmd := &cobra.Command{
		Use:   "ktermdemo",
		Short: "Run a shell inside the kterm terminal engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if shellOverride != "" {
				cfg.Shell = shellOverride
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "ktermdemo.yaml", "path to YAML config")
	cmd.Flags().StringVar(&shellOverride, "shell", "", "override the configured shell")
	return cmd
}

func run(cfg Config) error {
	cols, rows := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}

	logger := log.New(os.Stderr, "ktermdemo: ", log.LstdFlags)

	pty, err := startPty(cfg.Shell, cols, rows)
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer pty.Close()

	term0 := kterm.NewTerminal(kterm.Options{
		Width:              cols,
		Height:             rows,
		ScrollbackCapacity: cfg.Scrollback,
		ErrorCallback:      kterm.DefaultErrorLogger(logger),
		ResponseCallback: func(t *kterm.Terminal, session int, data []byte) {
			pty.Write(data)
		},
	})

	r, err := newRenderer()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer r.Close()

	errs := make(chan error, 2)
	go pumpPtyToTerminal(pty, term0, errs)
	go pumpEventsToPty(r.screen, pty, term0, errs)

	frame := time.NewTicker(16 * time.Millisecond)
	defer frame.Stop()
	for {
		select {
		case err := <-errs:
			return err
		case <-frame.C:
			term0.Update()
			r.Draw(term0.GetSession())
		}
	}
}

func pumpPtyToTerminal(p *ptySession, t *kterm.Terminal, errs chan<- error) {
	buf := make([]byte, 4096)
	for {
		n, err := p.Read(buf)
		if n > 0 {
			t.WriteToSession(0, buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				errs <- err
			} else {
				errs <- nil
			}
			return
		}
	}
}

func pumpEventsToPty(screen tcell.Screen, p *ptySession, t *kterm.Terminal, errs chan<- error) {
	for {
		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			p.Write([]byte(keyEventBytes(e)))
		case *tcell.EventResize:
			cols, rows := e.Size()
			p.Resize(cols, rows)
		case nil:
			return
		}
	}
}

func keyEventBytes(e *tcell.EventKey) string {
	if e.Key() == tcell.KeyRune {
		return string(e.Rune())
	}
	switch e.Key() {
	case tcell.KeyEnter:
		return "\r"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "\x7f"
	case tcell.KeyTab:
		return "\t"
	case tcell.KeyEsc:
		return "\x1b"
	case tcell.KeyCtrlC:
		return "\x03"
	case tcell.KeyUp:
		return "\x1b[A"
	case tcell.KeyDown:
		return "\x1b[B"
	case tcell.KeyRight:
		return "\x1b[C"
	case tcell.KeyLeft:
		return "\x1b[D"
	default:
		return ""
	}
}
