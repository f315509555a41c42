package squery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// ExecReader is an [Input] over the standard output of a subprocess.
type ExecReader struct {
	*LineReader
	cmd    *exec.Cmd
	stdout io.ReadCloser
	logger *log.Entry
}

// NewExecReader starts program with args and reads rows from its standard
// output. The process is killed if ctx is cancelled. Call Close once done.
func NewExecReader(ctx context.Context, program string, args []string, opts ...LineReaderOption) (*ExecReader, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("exec %s: %w", program, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("exec %s: %w", program, err)
	}
	r := &ExecReader{
		LineReader: NewLineReader(NewLineSource(stdout), opts...),
		cmd:        cmd,
		stdout:     stdout,
	}
	r.logger = r.LineReader.logger.WithFields(log.Fields{"program": program, "pid": cmd.Process.Pid})
	r.logger.Debug("started subprocess")
	return r, nil
}

// Close releases the output pipe and waits for the process to exit. If the
// output was not read to the end, a process still writing is killed by
// SIGPIPE and Close reports that as an error.
func (r *ExecReader) Close() error {
	closeErr := r.stdout.Close()
	err := r.cmd.Wait()
	r.logger.WithField("stats", r.Stats()).Debug("subprocess exited")
	if err != nil {
		err = fmt.Errorf("wait %s: %w", r.cmd.Path, err)
	}
	if closeErr != nil {
		closeErr = fmt.Errorf("close %s output: %w", r.cmd.Path, closeErr)
	}
	return errors.Join(closeErr, err)
}
