package domain

import (
	"fmt"
	"time"

	m "github.com/phi-fell/mwt/internal/model"
)

// OutputMode selects where Expand writes expanded files.
type OutputMode string

// Available OutputMode values.
const (
	OutputStdout OutputMode = "stdout"
	OutputWrite  OutputMode = "write"
	OutputDir    OutputMode = "output"
	OutputDiff   OutputMode = "diff"
)

// ParseOutputMode validates a mode name from flags or config.
func ParseOutputMode(s string) (OutputMode, error) {
	switch mode := OutputMode(s); mode {
	case OutputStdout, OutputWrite, OutputDir, OutputDiff:
		return mode, nil
	case "":
		return OutputStdout, nil
	}

	return "", fmt.Errorf("unknown output mode %q (want stdout, write, output or diff)", s)
}

// ExpandArgs contains the arguments for expanding marked functions.
type ExpandArgs struct {
	Paths     []m.Path
	Exclude   []string
	Parallel  int
	Mode      OutputMode
	OutputDir m.Path
	DiffFile  m.Path
}

// ListArgs contains the arguments for listing marked functions.
type ListArgs struct {
	Paths    []m.Path
	Exclude  []string
	Parallel int
}

// WatchArgs contains the arguments for the watch loop. Expanded files are
// mirrored under OutputDir.
type WatchArgs struct {
	Paths     []m.Path
	Exclude   []string
	Parallel  int
	OutputDir m.Path
	Debounce  time.Duration
}
