package lspclient

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// rwc adapts a child process's stdin/stdout pipes plus the process handle
// itself into a single io.ReadWriteCloser, so jsonrpc2 can frame messages
// over it without knowing a subprocess is involved. Closing it closes stdin
// first (signaling EOF to the server), then waits for the process to exit.
type rwc struct {
	io.ReadCloser
	io.WriteCloser
	cmd *exec.Cmd
}

func (r rwc) Close() error {
	if err := r.WriteCloser.Close(); err != nil {
		return fmt.Errorf("close stdin: %w", err)
	}

	if err := r.ReadCloser.Close(); err != nil {
		return fmt.Errorf("close stdout: %w", err)
	}

	if err := r.cmd.Wait(); err != nil {
		return fmt.Errorf("wait for lsp server: %w", err)
	}

	return nil
}

// startServer spawns the LSP server subprocess described by cfg and returns
// a stream ready to be wrapped in a JSON-RPC connection. Stderr lines are
// forwarded to logger at debug level rather than discarded, since server
// diagnostics are often the only clue when initialization fails.
func startServer(ctx context.Context, cfg ServerConfig, logger *slog.Logger) (io.ReadWriteCloser, error) {
	cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)
	if cfg.RootPath != "" {
		cmd.Dir = cfg.RootPath
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if startErr := cmd.Start(); startErr != nil {
		return nil, fmt.Errorf("start %s: %w", cfg.Command, startErr)
	}

	go forwardStderr(stderr, logger, cfg.Language)

	return rwc{ReadCloser: stdout, WriteCloser: stdin, cmd: cmd}, nil
}

func forwardStderr(r io.Reader, logger *slog.Logger, language string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if logger != nil {
			logger.Debug("lsp server stderr", "language", language, "line", scanner.Text())
		}
	}
}
