package main

import (
	"log/slog"
	"strconv"

	"loggingtalk/internal/logging"
)

// levelNextSlide sits between debug and info.
const levelNextSlide = slog.Level(-2)

type slide struct {
	Number int
	Title  string

	Colors           bool
	Prefixes         bool
	ReplaceNewlines  bool
	Subprocesses     bool
	BetterSubprocess bool
}

var slides = []slide{
	{Number: 1, Title: "Run the workload with standard logging"},
	{Number: 2, Title: "Add prefixes", Prefixes: true},
	{Number: 3, Title: "Add some color", Prefixes: true, Colors: true},
	{Number: 4, Title: "Log all subprocess execs", Prefixes: true, Colors: true, Subprocesses: true},
	{Number: 5, Title: "Log all subprocess output as it happens", Prefixes: true, Colors: true, Subprocesses: true, BetterSubprocess: true},
	{Number: 6, Title: "Replace newlines", Prefixes: true, Colors: true, Subprocesses: true, BetterSubprocess: true, ReplaceNewlines: true},
}

func lookupSlide(number int) (slide, bool) {
	for _, s := range slides {
		if s.Number == number {
			return s, true
		}
	}
	return slide{}, false
}

// nextSlideMessage is what the closing record of slide number announces.
func nextSlideMessage(number int) string {
	if next, ok := lookupSlide(number + 1); ok {
		return next.Title
	}
	return "No more slides!"
}

func (s slide) loggingOptions(base logging.Options) logging.Options {
	base.Colors = s.Colors
	base.Prefixes = s.Prefixes
	base.ReplaceNewlines = s.ReplaceNewlines
	base.Subprocesses = s.Subprocesses
	base.LevelNames = map[slog.Level]string{levelNextSlide: "NEXT SLIDE"}
	return base
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "-"
}

func slideTable() string {
	rows := make([][]string, 0, len(slides))
	for _, s := range slides {
		rows = append(rows, []string{
			strconv.Itoa(s.Number), s.Title,
			yesNo(s.Prefixes), yesNo(s.Colors), yesNo(s.Subprocesses), yesNo(s.BetterSubprocess), yesNo(s.ReplaceNewlines),
		})
	}
	return renderTable(
		[]string{"#", "Slide", "Prefixes", "Colors", "Execs", "Live output", "Newlines"},
		rows,
		[]columnAlignment{alignRight},
	)
}
