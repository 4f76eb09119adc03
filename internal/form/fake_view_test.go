package form

import "sync"

type banner struct {
	kind BannerKind
	msg  string
}

type fakeView struct {
	mu sync.Mutex

	values      map[Field]string
	fieldErrors map[Field]string
	banner      *banner

	submitting       bool
	submittingCalls  []bool
	addMemberEnabled bool
	placeholders     []string

	formVisible bool
	success     *SuccessPanel
}

func newFakeView() *fakeView {
	return &fakeView{
		values:           map[Field]string{},
		fieldErrors:      map[Field]string{},
		addMemberEnabled: true,
		formVisible:      true,
	}
}

func (v *fakeView) Value(f Field) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[f]
}

func (v *fakeView) SetValue(f Field, val string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[f] = val
}

func (v *fakeView) SetFieldError(f Field, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fieldErrors[f] = msg
}

func (v *fakeView) ClearFieldError(f Field) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.fieldErrors, f)
}

func (v *fakeView) ShowBanner(kind BannerKind, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banner = &banner{kind: kind, msg: msg}
}

func (v *fakeView) HideBanner() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banner = nil
}

func (v *fakeView) SetSubmitting(submitting bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitting = submitting
	v.submittingCalls = append(v.submittingCalls, submitting)
}

func (v *fakeView) SetAddMemberEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addMemberEnabled = enabled
}

func (v *fakeView) RenderMembers(rows []*MemberRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.placeholders = v.placeholders[:0]
	for _, r := range rows {
		v.placeholders = append(v.placeholders, r.Placeholder())
	}
}

func (v *fakeView) ShowSuccess(p SuccessPanel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.formVisible = false
	v.success = &p
}

// fill puts a complete, valid single-person team into the view.
func (v *fakeView) fill() {
	v.SetValue(FieldTeamName, "Nova")
	v.SetValue(FieldProblemTrack, "healthcare")
	v.SetValue(FieldTeamSize, "1")
	v.SetValue(FieldLeadName, "Asha Rao")
	v.SetValue(FieldLeadEmail, "Asha@Example.com")
	v.SetValue(FieldLeadPhone, "9876543210")
}
