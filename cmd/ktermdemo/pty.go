package main

import (
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// ptySession wraps a shell running under a pseudo-terminal, grounded on
// RavenTerminal's shell/pty.go pattern: os/exec plus creack/pty rather
// than hand-rolled syscalls for opening the PTY pair.
type ptySession struct {
	cmd *exec.Cmd
	f   *os.File
}

func startPty(shell string, cols, rows int) (*ptySession, error) {
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, err
	}
	return &ptySession{cmd: cmd, f: f}, nil
}

func (p *ptySession) Resize(cols, rows int) error {
	return pty.Setsize(p.f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

func (p *ptySession) Read(buf []byte) (int, error)  { return p.f.Read(buf) }
func (p *ptySession) Write(buf []byte) (int, error) { return p.f.Write(buf) }
func (p *ptySession) Close() error {
	p.f.Close()
	return p.cmd.Wait()
}
