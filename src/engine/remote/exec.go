package remote

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"secondbest/src/engine"
	"secondbest/src/logx"
)

// execTransport speaks newline delimited JSON over a child process' stdio.
type execTransport struct {
	cmd *exec.Cmd
	in  io.WriteCloser
	out io.ReadCloser

	lines chan []byte
	eof   chan struct{}
	rerr  error

	wg     sync.WaitGroup
	closed sync.Once
	logx   logx.Logger
}

// StartExec launches an engine binary and talks to it over stdin/stdout.
func StartExec(ctx context.Context, logx logx.Logger, path string, args ...string) (*Client, error) {
	if path == "" {
		return nil, errors.New("engine path is empty")
	}

	cmd := exec.Command(path, args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("connect to stdin of engine %s: %w", path, err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connect to stdout of engine %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("open engine %s: %w", path, err)
	}
	logx.Infof("open engine %s (pid %d)", path, cmd.Process.Pid)

	t := &execTransport{
		cmd: cmd, in: in, out: out,
		lines: make(chan []byte, 64),
		eof:   make(chan struct{}),
		logx:  logx,
	}
	t.wg.Add(1)
	go t.stdoutLoop()
	return newClient(t, logx), nil
}

func (t *execTransport) stdoutLoop() {
	defer t.wg.Done()
	defer close(t.eof)
	scr := bufio.NewScanner(t.out)
	scr.Buffer(make([]byte, 0, 64*1024), wsReadLimit)
	for scr.Scan() {
		line := bytes.TrimSpace(scr.Bytes())
		if len(line) == 0 {
			continue
		}
		msg := make([]byte, len(line))
		copy(msg, line)
		t.lines <- msg
	}
	t.rerr = scr.Err()
	if t.rerr == nil {
		t.rerr = io.EOF
	}
}

func (t *execTransport) send(ctx context.Context, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, 0, len(msg)+1)
	buf = append(buf, msg...)
	buf = append(buf, '\n')
	_, err := t.in.Write(buf)
	return err
}

func (t *execTransport) recv(ctx context.Context) ([]byte, error) {
	select {
	case line := <-t.lines:
		return line, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.eof:
		// lines queued before the pipe closed still count
		select {
		case line := <-t.lines:
			return line, nil
		default:
		}
		return nil, t.rerr
	}
}

func (t *execTransport) close() error {
	var err error
	t.closed.Do(func() {
		_ = t.in.Close()

		done := make(chan struct{})
		go func() {
			// drain so the stdout loop is never stuck on a full channel
			for {
				select {
				case <-t.lines:
				case <-t.eof:
					close(done)
					return
				}
			}
		}()

		select {
		case <-done:
		case <-time.After(engine.CloseTimeout):
			if t.cmd.Process != nil {
				_ = t.cmd.Process.Kill()
			}
			<-done
		}
		t.wg.Wait()

		err = t.cmd.Wait()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			t.logx.Warnf("engine exited: %v", err)
			err = nil
		}
		t.logx.Info("engine process terminated")
	})
	return err
}
