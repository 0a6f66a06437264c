package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/barysiuk/catalyst/internal/core"
	"github.com/barysiuk/catalyst/internal/tui"
)

var (
	successMark = color.New(color.FgGreen).Sprint("✓")
	dim         = color.New(color.FgHiBlack)
)

// printSuccess writes a checkmarked line to stdout.
func printSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "%s %s\n", successMark, fmt.Sprintf(format, args...))
}

// withChoiceHint explains how to avoid a prompt that could not be shown.
func withChoiceHint(err error, hint string) error {
	if errors.Is(err, tui.ErrNotInteractive) || errors.Is(err, core.ErrNoSelection) {
		return fmt.Errorf("%w; %s", err, hint)
	}
	return err
}

// yesNo renders a boolean as a status word.
func yesNo(b bool) string {
	if b {
		return color.GreenString("installed")
	}
	return dim.Sprint("not installed")
}
