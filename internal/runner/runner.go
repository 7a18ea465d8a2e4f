// Package runner spawns project shell commands and streams their merged
// output line by line, keeping a bounded replay buffer of recent lines.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Handler receives each output line as it is produced. Calls are serialized
// per stream but stdout and stderr lines may interleave.
type Handler func(line string)

// Session is one running project command.
type Session struct {
	cmd    *exec.Cmd
	replay *Ring[string]
	wg     sync.WaitGroup
}

// Start launches command (a shell line) in dir and begins streaming its
// output to handler. The handler may be nil.
func Start(ctx context.Context, dir, command string, handler Handler) (*Session, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %q: %w", command, err)
	}

	s := &Session{
		cmd:    cmd,
		replay: NewRing[string](ReplayLines),
	}
	s.wg.Add(2)
	go s.stream(stdout, handler)
	go s.stream(stderr, handler)
	return s, nil
}

func (s *Session) stream(r io.Reader, handler Handler) {
	defer s.wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		s.replay.Append(line)
		if handler != nil {
			handler(line)
		}
	}
}

// Wait blocks until the command exits and both streams are drained.
func (s *Session) Wait() error {
	s.wg.Wait()
	return s.cmd.Wait()
}

// Replay returns the most recent output lines, oldest first.
func (s *Session) Replay() []string {
	return s.replay.Items()
}

// PID returns the process ID, or 0 before start.
func (s *Session) PID() int {
	if s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Run starts a command, waits for it, and returns its replay buffer. Used
// for short-lived commands like npm install.
func Run(ctx context.Context, dir, command string, handler Handler) ([]string, error) {
	s, err := Start(ctx, dir, command, handler)
	if err != nil {
		return nil, err
	}
	err = s.Wait()
	return s.Replay(), err
}
