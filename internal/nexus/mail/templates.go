package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	texttemplate "text/template"
)

//go:embed templates
var templateFS embed.FS

const templateRoot = "templates"

// Template names, one directory each under templates/.
const (
	TemplateInvitation = "invitation"
)

type template struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// Templates renders the embedded email templates. Every template directory
// holds an html.tmpl and a plaintext.tmpl.
type Templates struct {
	byName map[string]template
}

// LoadTemplates parses every template group in the embedded filesystem.
func LoadTemplates() (*Templates, error) {
	groups, err := fs.ReadDir(templateFS, templateRoot)
	if err != nil {
		return nil, fmt.Errorf("read email templates: %w", err)
	}

	t := &Templates{byName: make(map[string]template, len(groups))}
	for _, g := range groups {
		if !g.IsDir() {
			continue
		}
		dir := templateRoot + "/" + g.Name()

		h, err := htmltemplate.ParseFS(templateFS, dir+"/html.tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s html template: %w", g.Name(), err)
		}
		p, err := texttemplate.ParseFS(templateFS, dir+"/plaintext.tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s plaintext template: %w", g.Name(), err)
		}
		t.byName[g.Name()] = template{html: h, text: p}
	}

	if len(t.byName) == 0 {
		return nil, fmt.Errorf("no email templates found")
	}
	return t, nil
}

// Render executes the named template with data and returns a Message
// addressed to to.
func (t *Templates) Render(name, to, subject string, data any) (Message, error) {
	tmpl, ok := t.byName[name]
	if !ok {
		return Message{}, fmt.Errorf("email template %q not found", name)
	}

	var html, text bytes.Buffer
	if err := tmpl.html.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", name, err)
	}
	if err := tmpl.text.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render %s plaintext: %w", name, err)
	}

	return Message{To: to, Subject: subject, HTML: html.String(), Text: text.String()}, nil
}

// InvitationData fills the invitation template.
type InvitationData struct {
	OrganizationName string
	RoleLabel        string
	Link             string
	ExpiresInDays    int
}

// Invitation renders the invitation email.
func (t *Templates) Invitation(to string, data InvitationData) (Message, error) {
	subject := fmt.Sprintf("Invitation to join %s on Nexus", data.OrganizationName)
	return t.Render(TemplateInvitation, to, subject, data)
}
