package form

type BannerKind string

const (
	BannerWarning BannerKind = "warning"
	BannerError   BannerKind = "error"
)

// SuccessPanel is what the view shows once the server accepted the team.
type SuccessPanel struct {
	HackathonID string
	TeamName    string
	Message     string
}

// View is everything the controller needs from the page. A browser DOM, a
// terminal or a test fake can all stand behind it.
type View interface {
	// Value returns the current raw value of an input field.
	Value(f Field) string
	// SetValue replaces what the input shows, e.g. after phone sanitizing.
	SetValue(f Field, v string)

	SetFieldError(f Field, msg string)
	ClearFieldError(f Field)

	ShowBanner(kind BannerKind, msg string)
	HideBanner()

	// SetSubmitting toggles the submit control between its loading state
	// (disabled, spinner shown, label hidden) and its interactive state.
	SetSubmitting(submitting bool)

	SetAddMemberEnabled(enabled bool)
	// RenderMembers redraws member rows after add or remove.
	RenderMembers(rows []*MemberRow)

	// ShowSuccess hides the form and reveals the success panel.
	ShowSuccess(p SuccessPanel)
}
