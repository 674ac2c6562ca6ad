package subprocess

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"loggingtalk/internal/logging"
	"loggingtalk/internal/procexec"
	"loggingtalk/internal/style"
)

var (
	// ErrLaunch marks failures to start a process.
	ErrLaunch = errors.New("launch failed")
	// ErrNoCommand is returned when Run receives no arguments.
	ErrNoCommand = errors.New("no command given")
)

// DefaultShell interprets RunShell commands unless WithShell says otherwise.
const DefaultShell = "bash"

var dim = style.Style{Dim: true}

// Result is the outcome of a finished process.
type Result struct {
	// ExitCode is the exit status, or the negated signal number when the
	// process was killed by a signal.
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner launches processes and logs their output.
type Runner struct {
	logger *logging.Logger
	shell  string
}

// Option configures a Runner.
type Option func(*Runner)

// WithShell sets the shell used by RunShell.
func WithShell(shell string) Option {
	return func(r *Runner) {
		if shell = strings.TrimSpace(shell); shell != "" {
			r.shell = shell
		}
	}
}

// New returns a Runner logging through logger.
func New(logger *logging.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{logger: logger, shell: DefaultShell}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Shell returns the shell used by RunShell.
func (r *Runner) Shell() string {
	return r.shell
}

// RunOption adjusts a single run.
type RunOption func(*runConfig)

type runConfig struct {
	dir string
	env map[string]string
}

// WithDir runs the process in dir.
func WithDir(dir string) RunOption {
	return func(c *runConfig) {
		c.dir = dir
	}
}

// WithEnv replaces the environment of the process with env.
func WithEnv(env map[string]string) RunOption {
	return func(c *runConfig) {
		c.env = env
	}
}

// RunShell runs command with the configured shell.
func (r *Runner) RunShell(ctx context.Context, command string, opts ...RunOption) (Result, error) {
	return r.Run(ctx, []string{r.shell, "-c", "--", command}, opts...)
}

// Run starts args[0] with the remaining arguments, logs every line it prints
// and waits for it to exit. Stdin is the null device.
func (r *Runner) Run(ctx context.Context, args []string, opts ...RunOption) (Result, error) {
	if len(args) == 0 {
		return Result{ExitCode: -1}, ErrNoCommand
	}
	if ctx == nil {
		ctx = context.Background()
	}
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	cmd := procexec.Command(ctx, args[0], args[1:]...)
	cmd.Dir = cfg.dir
	if cfg.env != nil {
		cmd.Env = environ(cfg.env)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := procexec.Start(ctx, cmd); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %s: %w", ErrLaunch, procexec.CommandLine(args), err)
	}

	var (
		wg             sync.WaitGroup
		outBuf, errBuf bytes.Buffer
		readErr        error
		once           sync.Once
	)
	pump := func(label string, rd io.Reader, buf *bytes.Buffer) {
		defer wg.Done()
		if err := r.pump(ctx, label, rd, buf); err != nil {
			once.Do(func() {
				readErr = fmt.Errorf("read %s: %w", label, err)
			})
		}
	}
	wg.Add(2)
	go pump("stdout", stdout, &outBuf)
	go pump("stderr", stderr, &errBuf)
	wg.Wait()

	waitErr := cmd.Wait()
	result := Result{ExitCode: procexec.ExitCode(cmd), Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return result, fmt.Errorf("wait %s: %w", procexec.CommandLine(args), waitErr)
	}
	if result.ExitCode != 0 {
		r.logger.Infof(ctx, "  %s", dim.Apply(fmt.Sprintf(":exited: %d", result.ExitCode)))
	}
	return result, readErr
}

// pump logs each line read from rd and appends the raw bytes to buf. Lines
// have no length limit.
func (r *Runner) pump(ctx context.Context, label string, rd io.Reader, buf *bytes.Buffer) error {
	tag := dim.Apply(":" + label + ": ")
	reader := bufio.NewReader(rd)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			buf.Write(line)
			text := strings.ToValidUTF8(strings.TrimSuffix(string(line), "\n"), "�")
			r.logger.Infof(ctx, "  %s%s", tag, dim.Apply(text))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func environ(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, key+"="+env[key])
	}
	return out
}
