package config

const (
	defaultConfigFile     = "loggingtalk.toml"
	defaultLogDir         = "logs"
	defaultColorFile      = "loggingtalk.log"
	defaultPlainFile      = "loggingtalk-plain.log"
	defaultLogLevel       = "debug"
	defaultTerminalColors = TerminalColorsAlways
	defaultShell          = "bash"
	defaultSleepScale     = 1.0
	defaultSearchDir      = "/usr/local"
	defaultShellCommand   = "ssh -n git@github.com | cat -n"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Dir:            defaultLogDir,
			ColorFile:      defaultColorFile,
			PlainFile:      defaultPlainFile,
			Level:          defaultLogLevel,
			TerminalColors: defaultTerminalColors,
		},
		Subprocess: Subprocess{
			Shell: defaultShell,
		},
		Workload: Workload{
			SleepScale:   defaultSleepScale,
			SearchDir:    defaultSearchDir,
			ShellCommand: defaultShellCommand,
		},
	}
}
