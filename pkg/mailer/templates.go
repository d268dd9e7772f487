package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	"strings"
)

const welcomeTmpl = `<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your account for <strong>{{.AppName}}</strong> was created with the email address {{.Email}}.</p>
  <p>You can now log in and manage your profile and addresses.</p>
  <p style="color:#888; font-size: 12px;">If you did not sign up, you can ignore this message.</p>
</body>
</html>`

var welcome = htmpl.Must(htmpl.New("welcome").Parse(welcomeTmpl))

// Render produces subject and HTML body for a job's template. Unknown
// templates are an error so the worker can dead-letter the message.
func Render(job *EmailJob) (subject, html string, err error) {
	switch strings.ToLower(job.Template) {
	case "welcome":
		var buf bytes.Buffer
		if err := welcome.Execute(&buf, job.Data); err != nil {
			return "", "", err
		}
		subject = job.Subject
		if subject == "" {
			subject = "Welcome aboard"
		}
		return subject, buf.String(), nil
	default:
		return "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
}
