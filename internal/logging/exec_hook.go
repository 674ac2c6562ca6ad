package logging

import (
	"context"
	"os/exec"
	"strings"

	"loggingtalk/internal/procexec"
	"loggingtalk/internal/style"
)

// subprocessHook logs each launch with its command line, and its working
// directory and environment when the command overrides them.
func subprocessHook(logger *Logger) procexec.Hook {
	return func(ctx context.Context, cmd *exec.Cmd) {
		args := []any{procexec.CommandLine(cmd.Args)}
		var extra []string
		if cmd.Dir != "" {
			extra = append(extra, "cwd: %s")
			args = append(args, Path(cmd.Dir))
		}
		if cmd.Env != nil {
			extra = append(extra, "env: %s")
			args = append(args, style.Style{Color: style.Yellow}.Apply(envMap(cmd.Env)))
		}
		template := "Running %s"
		if len(extra) > 0 {
			template += " (" + strings.Join(extra, ", ") + ")"
		}
		logger.Infof(ctx, template, args...)
	}
}

func envMap(env []string) map[string]string {
	out := make(map[string]string, len(env))
	for _, entry := range env {
		key, value, _ := strings.Cut(entry, "=")
		out[key] = value
	}
	return out
}
