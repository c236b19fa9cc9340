package versiongate

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter writes the human-readable status lines of a gate run.
// Informational lines go to Out and errors go to Err.
type Reporter struct {
	Out io.Writer
	Err io.Writer

	info  *color.Color
	ok    *color.Color
	warn  *color.Color
	fail  *color.Color
	plain *color.Color
}

// NewReporter returns a Reporter writing to out and errOut. When useColor is
// false all output is plain text.
func NewReporter(out, errOut io.Writer, useColor bool) *Reporter {
	r := &Reporter{
		Out:   out,
		Err:   errOut,
		info:  color.New(color.FgCyan),
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		plain: color.New(color.Reset),
	}
	for _, c := range []*color.Color{r.info, r.ok, r.warn, r.fail, r.plain} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Pass reports that the version file is already staged.
func (r *Reporter) Pass(file string) {
	if r == nil {
		return
	}
	r.ok.Fprintf(r.Out, "%s is already updated, continuing commit...\n", file)
}

// Bumping reports that the version file has no staged change.
func (r *Reporter) Bumping(file string) {
	if r == nil {
		return
	}
	r.info.Fprintf(r.Out, "%s was not changed. Auto-incrementing patch version...\n", file)
}

// Bumped reports the rewrite and asks for the commit to be retried.
func (r *Reporter) Bumped(file, oldVersion, newVersion string) {
	if r == nil {
		return
	}
	r.plain.Fprintf(r.Out, "Updated %s from %s to %s.\n", file, oldVersion, newVersion)
	r.warn.Fprintln(r.Out, "Please commit again with the new version.")
}

// WouldBump reports what a dry run would have written.
func (r *Reporter) WouldBump(file, oldVersion, newVersion string) {
	if r == nil {
		return
	}
	r.plain.Fprintf(r.Out, "Dry run: would update %s from %s to %s and stage it.\n", file, oldVersion, newVersion)
	r.warn.Fprintln(r.Out, "The commit would be blocked.")
}

// Failure writes err to the error stream.
func (r *Reporter) Failure(err error) {
	if r == nil || err == nil {
		return
	}
	r.fail.Fprintln(r.Err, "Error:", err)
}

// Infof writes a formatted informational line.
func (r *Reporter) Infof(format string, a ...any) {
	if r == nil {
		return
	}
	r.info.Fprintln(r.Out, fmt.Sprintf(format, a...))
}
