package procexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

var commandContext = exec.CommandContext

// Hook observes a command right before it is started. Hooks cannot veto a
// launch.
type Hook func(ctx context.Context, cmd *exec.Cmd)

var (
	hooksMu sync.RWMutex
	hooks   []*hookEntry
)

type hookEntry struct {
	fn Hook
}

// AddHook registers fn to run before every launch, after previously added
// hooks. The returned function removes it again.
func AddHook(fn Hook) (remove func()) {
	if fn == nil {
		return func() {}
	}
	entry := &hookEntry{fn: fn}
	hooksMu.Lock()
	hooks = append(hooks, entry)
	hooksMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			hooksMu.Lock()
			defer hooksMu.Unlock()
			for i, existing := range hooks {
				if existing == entry {
					hooks = append(hooks[:i:i], hooks[i+1:]...)
					return
				}
			}
		})
	}
}

// Command builds a command for name and args bound to ctx.
func Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	return commandContext(ctx, name, args...) //nolint:gosec
}

// Start runs the registered hooks and starts cmd.
func Start(ctx context.Context, cmd *exec.Cmd) error {
	if cmd == nil {
		return errors.New("procexec: nil command")
	}
	runHooks(ctx, cmd)
	return cmd.Start()
}

// Output starts cmd, collects both output streams in full and waits for it.
// A non-zero exit is reported through exitCode with a nil error; err is only
// set when the process could not be started or waited for.
func Output(ctx context.Context, cmd *exec.Cmd) (stdout, stderr []byte, exitCode int, err error) {
	if cmd == nil {
		return nil, nil, -1, errors.New("procexec: nil command")
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	if err := Start(ctx, cmd); err != nil {
		return nil, nil, -1, fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	waitErr := cmd.Wait()
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return outBuf.Bytes(), errBuf.Bytes(), -1, fmt.Errorf("wait %s: %w", cmd.Path, waitErr)
	}
	return outBuf.Bytes(), errBuf.Bytes(), ExitCode(cmd), nil
}

func runHooks(ctx context.Context, cmd *exec.Cmd) {
	hooksMu.RLock()
	snapshot := make([]*hookEntry, len(hooks))
	copy(snapshot, hooks)
	hooksMu.RUnlock()

	for _, entry := range snapshot {
		entry.fn(ctx, cmd)
	}
}
