package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/yakoovad/hackathon-registration/internal/form"
)

// terminalView renders the form controller's output as lines of text.
// Field errors and banners go to errw, progress and success to out.
type terminalView struct {
	mu     sync.Mutex
	out    io.Writer
	errw   io.Writer
	values map[form.Field]string
}

func newTerminalView(out, errw io.Writer) *terminalView {
	return &terminalView{
		out:    out,
		errw:   errw,
		values: map[form.Field]string{},
	}
}

func (v *terminalView) Value(f form.Field) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[f]
}

func (v *terminalView) SetValue(f form.Field, val string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[f] = val
}

func (v *terminalView) SetFieldError(f form.Field, msg string) {
	v.printf(v.errw, "  %s: %s\n", f, msg)
}

func (v *terminalView) ClearFieldError(form.Field) {}

func (v *terminalView) ShowBanner(kind form.BannerKind, msg string) {
	v.printf(v.errw, "[%s] %s\n", kind, msg)
}

func (v *terminalView) HideBanner() {}

func (v *terminalView) SetSubmitting(submitting bool) {
	if submitting {
		v.printf(v.out, "Submitting registration...\n")
	}
}

func (v *terminalView) SetAddMemberEnabled(bool) {}

func (v *terminalView) RenderMembers([]*form.MemberRow) {}

func (v *terminalView) ShowSuccess(p form.SuccessPanel) {
	v.printf(v.out, "Registered team %q\nHackathon ID: %s\n%s\n", p.TeamName, p.HackathonID, p.Message)
}

func (v *terminalView) printf(w io.Writer, format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(w, format, args...)
}
