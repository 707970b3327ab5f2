package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Program implements the COPY ... TO/FROM PROGRAM bridge: the configured
// shell command is spawned via os/exec, its stdin/stdout is piped through
// a temporary local file (os.CreateTemp), and the temp file is then
// treated as a file:// URI for the actual Parquet read/write.
type Program struct {
	Command string
}

// programWriteCloser buffers written bytes in the temp file; on Close it
// starts the program, streams the temp file to its stdin, and waits for it
// to exit.
type programWriteCloser struct {
	tmp  *os.File
	cmd  *exec.Cmd
	done chan error
}

func (w *programWriteCloser) Write(p []byte) (int, error) {
	return w.tmp.Write(p)
}

func (w *programWriteCloser) Close() error {
	if err := w.tmp.Close(); err != nil {
		return err
	}
	f, err := os.Open(w.tmp.Name())
	if err != nil {
		return err
	}
	defer f.Close()
	defer os.Remove(w.tmp.Name())

	stdin, err := w.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("store: program: creating stdin pipe: %w", err)
	}
	if err := w.cmd.Start(); err != nil {
		return fmt.Errorf("store: program: starting %q: %w", w.cmd.Args, err)
	}
	if _, err := io.Copy(stdin, f); err != nil {
		return fmt.Errorf("store: program: writing to stdin: %w", err)
	}
	if err := stdin.Close(); err != nil {
		return err
	}
	return w.cmd.Wait()
}

// Create runs the program, writing the Parquet bytes to a temp file
// first and streaming that file to the program's stdin once Close is
// called (Parquet's footer-at-the-end layout requires a fully written
// file before any meaningful stream to the consumer can begin).
func (p Program) Create(ctx context.Context, uri string) (io.WriteCloser, error) {
	tmp, err := os.CreateTemp("", "pgparquet-program-*.parquet")
	if err != nil {
		return nil, fmt.Errorf("store: program: creating temp file: %w", err)
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", p.Command)
	return &programWriteCloser{tmp: tmp, cmd: cmd, done: make(chan error, 1)}, nil
}

// OpenRange runs the program to completion, capturing its stdout into a
// temp file, then opens that temp file for random-access reads.
func (p Program) OpenRange(ctx context.Context, uri string) (RangeReader, error) {
	tmp, err := os.CreateTemp("", "pgparquet-program-*.parquet")
	if err != nil {
		return nil, fmt.Errorf("store: program: creating temp file: %w", err)
	}
	// unlinked once the returned reader holds its own open fd; the file's
	// blocks stay live until that fd closes.
	defer os.Remove(tmp.Name())

	cmd := exec.CommandContext(ctx, "sh", "-c", p.Command)
	cmd.Stdout = tmp
	if err := cmd.Run(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("store: program: running %q: %w", p.Command, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	f, err := os.Open(tmp.Name())
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &localRangeReader{File: f, size: info.Size()}, nil
}

func (Program) List(ctx context.Context, uri string) ([]string, error) {
	return nil, fmt.Errorf("store: list program uri %q: %w", uri, ErrUriUnsupported)
}
