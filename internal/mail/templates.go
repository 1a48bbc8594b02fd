package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	welcomeTemplate = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/welcome.html"))
	resetTemplate   = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/password_reset.html"))
)

// Welcome is sent to a newly created account with its initial credentials.
type Welcome struct {
	To        string
	FirstName string
	Password  string
	LoginURL  string
}

// PasswordReset carries the one-time reset link.
type PasswordReset struct {
	To        string
	FirstName string
	ResetURL  string
	ExpiresIn string
}

type welcomeView struct {
	Welcome
	AppName string
}

type resetView struct {
	PasswordReset
	AppName string
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
