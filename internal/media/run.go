package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// runCmd executes a compiled ffmpeg command under a deadline. A stalled
// transcode must never hang a pipeline run, so on timeout the process is
// killed and the timeout is surfaced like any other tool failure.
func runCmd(ctx context.Context, cmd *exec.Cmd, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return fmt.Errorf("%s: %w", cmd.Path, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s: %w: %s", cmd.Path, err, lastStderrLine(&stderr))
		}
		return nil
	}
}

// lastStderrLine trims ffmpeg's banner noise down to the line that actually
// names the failure.
func lastStderrLine(buf *bytes.Buffer) string {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no diagnostic output"
}
