// Package workload is the toy system the slides run: it loads a config,
// initializes slowly and then runs four jobs side by side, one of which
// launches a process with a hostile file name.
package workload

import (
	"context"
	"fmt"
	"time"

	"loggingtalk/internal/jobs"
	"loggingtalk/internal/logging"
	"loggingtalk/internal/procexec"
	"loggingtalk/internal/style"
	"loggingtalk/internal/subprocess"
)

const (
	defaultConfigPath   = "/etc/mnt/var/usr/share/lib.conf"
	defaultSearchDir    = "/usr/local"
	defaultShellCommand = "ssh -n git@github.com | cat -n"
)

// Options tunes a Workload.
type Options struct {
	// BetterSubprocess runs job2 through the logging subprocess runner
	// instead of collecting its output silently.
	BetterSubprocess bool
	// SleepScale multiplies every pause. Zero skips them.
	SleepScale float64
	// Limit bounds the number of concurrent jobs. Zero means no bound.
	Limit int
	// SearchDir is the working directory of job2.
	SearchDir string
	// ShellCommand is what complex_shell runs.
	ShellCommand string
	// ConfigPath is the path reported as the loaded config.
	ConfigPath string
}

// Workload runs the demo jobs.
type Workload struct {
	logger *logging.Logger
	runner *subprocess.Runner
	opts   Options
	now    func() time.Time
}

// New returns a Workload logging through logger and launching processes with
// runner.
func New(logger *logging.Logger, runner *subprocess.Runner, opts Options) *Workload {
	if logger == nil {
		logger = logging.NewNop()
	}
	if runner == nil {
		runner = subprocess.New(logger)
	}
	if opts.SearchDir == "" {
		opts.SearchDir = defaultSearchDir
	}
	if opts.ShellCommand == "" {
		opts.ShellCommand = defaultShellCommand
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath
	}
	return &Workload{logger: logger, runner: runner, opts: opts, now: time.Now}
}

// Run loads the config, initializes the system and runs all jobs. It returns
// every job outcome; failed jobs do not stop the others.
func (w *Workload) Run(ctx context.Context) ([]jobs.Outcome, error) {
	w.logger.Infof(ctx, "Loaded config from %s", logging.Path(w.opts.ConfigPath))
	w.logger.Debugf(ctx, "Using config: %v", style.Style{Dim: true, Italic: true}.Apply(nestedConfig))
	w.logger.Infof(ctx, "Initializing the system...")
	if err := w.sleep(ctx, time.Second); err != nil {
		return nil, err
	}
	w.logger.Debugf(ctx, "Finished %s",
		style.Style{Color: style.Magenta}.Apply("<that one step that takes several seconds for some reason>"))
	w.logger.Infof(ctx, "Starting jobs...")
	return jobs.RunAll(ctx, w.logger, w.Jobs(), jobs.WithLimit(w.opts.Limit)), nil
}

// Jobs returns the jobs in the order they are started.
func (w *Workload) Jobs() []jobs.Job {
	job2 := jobs.Job{Name: "job2", Run: w.job2}
	if w.opts.BetterSubprocess {
		job2 = jobs.Job{Name: "job2_better", Run: w.job2Better}
	}
	return []jobs.Job{
		{Name: "numbers", Run: w.numbers},
		job2,
		{Name: "useful_work", Run: w.usefulWork},
		{Name: "complex_shell", Run: w.complexShell},
	}
}

func (w *Workload) numbers(ctx context.Context) error {
	if err := w.sleep(ctx, 400*time.Millisecond); err != nil {
		return err
	}
	for n := 1; n <= 5; n++ {
		if err := w.sleep(ctx, 200*time.Millisecond); err != nil {
			return err
		}
		w.logger.Infof(ctx, "%d", n)
	}
	return nil
}

// job2 collects the output of grep and only logs it after the fact, so the
// lines never carry a timestamp of their own.
func (w *Workload) job2(ctx context.Context) error {
	cmd := procexec.Command(ctx, "grep", "foobar", w.evilFilename())
	cmd.Dir = w.opts.SearchDir
	_, stderr, exitCode, err := procexec.Output(ctx, cmd)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		w.logger.Warnf(ctx, "stderr: %s", string(stderr))
	}
	return nil
}

func (w *Workload) job2Better(ctx context.Context) error {
	if err := w.sleep(ctx, 100*time.Millisecond); err != nil {
		return err
	}
	_, err := w.runner.Run(ctx, []string{"grep", "foobar", w.evilFilename()}, subprocess.WithDir(w.opts.SearchDir))
	return err
}

func (w *Workload) usefulWork(ctx context.Context) error {
	w.logger.Infof(ctx, "Starting to do some useful work!")
	if err := w.sleep(ctx, 300*time.Millisecond); err != nil {
		return err
	}
	w.logger.Infof(ctx, "Almost done doing useful work!")
	if err := w.sleep(ctx, 1200*time.Millisecond); err != nil {
		return err
	}
	w.logger.Infof(ctx, "Done!")
	return nil
}

func (w *Workload) complexShell(ctx context.Context) error {
	_, err := w.runner.RunShell(ctx, w.opts.ShellCommand)
	return err
}

// evilFilename contains a newline followed by text shaped like a log record,
// so an unescaped error message forges a second record.
func (w *Workload) evilFilename() string {
	return fmt.Sprintf("lib/loggingtalk/foobar.txt: No such file or directory\n%s      DEBUG: some_other_file.txt",
		w.now().Format("2006-01-02 15:04:05"))
}

func (w *Workload) sleep(ctx context.Context, d time.Duration) error {
	d = time.Duration(float64(d) * w.opts.SleepScale)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var nestedConfig = map[string]any{
	"config": map[string]any{
		"inner_config": map[string]any{
			"innest_config": map[string]any{
				"values": map[string]any{
					"a": 1,
					"b": 2,
					"c": "It's unclear why the config is structured in the way that it is. Fortunately, someone left a comment explaining it. Unfortunately, the comment just says: “It's unclear why the config is structured in the way that it is, and unfortunately nobody left a comment explaining why.”",
				},
			},
		},
	},
}
