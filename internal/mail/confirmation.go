package mail

import (
	"bytes"
	htmltemplate "html/template"
	"text/template"

	"github.com/pkg/errors"
	"github.com/yakoovad/hackathon-registration/internal/model"
)

// Message is a rendered confirmation e-mail.
type Message struct {
	To      string
	Subject string
	Plain   string
	HTML    string
}

type confirmationData struct {
	*model.Registration
	RegisteredAt string
}

var plainTemplate = template.Must(template.New("plain").Funcs(template.FuncMap{"inc": inc}).Parse(`HACKATHON REGISTRATION CONFIRMED
========================================
Hackathon ID : {{.HackathonID}}
Team Name    : {{.TeamName}}
Problem Track: {{.ProblemTrack}}
Team Size    : {{.TeamSize}}
Lead Name    : {{.LeadName}}
Lead Email   : {{.LeadEmail}}
Lead Phone   : {{.LeadPhone}}
Registered At: {{.RegisteredAt}}
{{- if .Members}}

Additional Members:
{{- range $i, $m := .Members}}
  {{inc $i}}. {{$m.Name}} ({{$m.Email}})
{{- end}}
{{- end}}
`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Funcs(htmltemplate.FuncMap{"inc": inc}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;background:#f0f4f8;padding:30px;margin:0;">
  <div style="max-width:620px;margin:auto;background:#ffffff;border-radius:14px;overflow:hidden;">
    <div style="background:#667eea;padding:36px 32px;text-align:center;">
      <h1 style="color:#fff;margin:0;font-size:28px;">StraveX '26</h1>
      <p style="color:#e9d8fd;margin:10px 0 0;font-size:16px;">You're officially registered!</p>
    </div>
    <div style="padding:36px 32px;">
      <p>Hi <strong>{{.LeadName}}</strong>,</p>
      <p>Your team has been successfully registered. Keep your <strong>Hackathon ID</strong> handy, you'll need it at check-in.</p>
      <div style="border:2px dashed #667eea;border-radius:12px;padding:22px;text-align:center;margin:28px 0;">
        <p style="margin:0;font-size:11px;color:#718096;text-transform:uppercase;">Your Hackathon ID</p>
        <p style="margin:10px 0 0;font-size:34px;font-weight:bold;color:#667eea;">{{.HackathonID}}</p>
      </div>
      <table style="border-collapse:collapse;width:100%;font-size:14px;">
        <tr><td>Team Name</td><td>{{.TeamName}}</td></tr>
        <tr><td>Problem Track</td><td>{{.ProblemTrack}}</td></tr>
        <tr><td>Team Size</td><td>{{.TeamSize}} member(s)</td></tr>
        <tr><td>Team Lead</td><td>{{.LeadName}}</td></tr>
        <tr><td>Lead Email</td><td>{{.LeadEmail}}</td></tr>
        <tr><td>Lead Phone</td><td>{{.LeadPhone}}</td></tr>
        <tr><td>Registered At</td><td>{{.RegisteredAt}}</td></tr>
      </table>
      {{- if .Members}}
      <h3>Additional Team Members</h3>
      <table style="border-collapse:collapse;width:100%;font-size:14px;">
        <thead><tr><th>#</th><th>Name</th><th>Email</th></tr></thead>
        <tbody>
        {{- range $i, $m := .Members}}
          <tr><td>{{inc $i}}</td><td>{{$m.Name}}</td><td>{{if $m.Email}}{{$m.Email}}{{else}}-{{end}}</td></tr>
        {{- end}}
        </tbody>
      </table>
      {{- end}}
      <p style="color:#a0aec0;font-size:12px;margin-top:28px;">Didn't register? Please ignore this email.</p>
    </div>
  </div>
</body>
</html>`))

func inc(i int) int { return i + 1 }

func Subject(hackathonID string) string {
	return "Hackathon Registration Confirmed: " + hackathonID
}

// BuildConfirmation renders the confirmation e-mail for reg.
func BuildConfirmation(reg *model.Registration) (*Message, error) {
	data := confirmationData{
		Registration: reg,
		RegisteredAt: reg.RegisteredAt.UTC().Format(model.RegisteredAtLayout),
	}

	var plain, html bytes.Buffer
	if err := plainTemplate.Execute(&plain, data); err != nil {
		return nil, errors.Wrap(err, "render plain body")
	}
	if err := htmlTemplate.Execute(&html, data); err != nil {
		return nil, errors.Wrap(err, "render html body")
	}

	return &Message{
		To:      reg.LeadEmail,
		Subject: Subject(reg.HackathonID),
		Plain:   plain.String(),
		HTML:    html.String(),
	}, nil
}
