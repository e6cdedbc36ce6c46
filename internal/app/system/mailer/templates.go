// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dalemusser/meethub/internal/app/system/notify"
)

// BuildMeetingEmail creates the email for a meeting notification event.
// The recipient is the meeting owner.
func BuildMeetingEmail(ev notify.Event) Email {
	return Email{
		To:       ev.Meeting.OwnerEmail,
		Subject:  ev.Title,
		TextBody: buildMeetingText(ev),
		HTMLBody: buildMeetingHTML(ev),
	}
}

func buildMeetingText(ev notify.Event) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", ev.Message)
	fmt.Fprintf(&buf, "Meeting Title: %s\n", ev.Meeting.Title)
	fmt.Fprintf(&buf, "Meeting Purpose: %s\n", ev.Meeting.Description)
	fmt.Fprintf(&buf, "Meeting Location: %s\n", ev.Meeting.Location)
	fmt.Fprintf(&buf, "Meeting Time: %s\n", ev.Meeting.Start.Format(time.RFC1123))
	return buf.String()
}

func buildMeetingHTML(ev notify.Event) string {
	tmpl := template.Must(template.New("meeting").Parse(meetingHTMLTemplate))
	data := struct {
		Message  string
		Title    string
		Purpose  string
		Location string
		Time     string
	}{
		Message:  ev.Message,
		Title:    ev.Meeting.Title,
		Purpose:  ev.Meeting.Description,
		Location: ev.Meeting.Location,
		Time:     ev.Meeting.Start.Format(time.RFC1123),
	}
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const meetingHTMLTemplate = `<p>{{.Message}}</p>
<p>Meeting Title : {{.Title}}</p>
<p>Meeting Purpose : {{.Purpose}}</p>
<p>Meeting Location : {{.Location}}</p>
<p>Meeting Time : {{.Time}}</p>
`

// BuildWelcomeEmail creates the signup welcome mail.
func BuildWelcomeEmail(to, firstName string) Email {
	body := fmt.Sprintf("Thank you for signing up at MeetHub %s. Stay organized!", firstName)
	return Email{
		To:       to,
		Subject:  "Welcome Email",
		TextBody: body,
		HTMLBody: "<p>" + template.HTMLEscapeString(body) + "</p>",
	}
}

// BuildResetEmail creates the password-reset mail with a single-use link.
func BuildResetEmail(to, baseURL, token string) Email {
	link := fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)
	return Email{
		To:       to,
		Subject:  "Password Reset",
		TextBody: "To reset your password, open this link: " + link,
		HTMLBody: fmt.Sprintf(`<p>Did you forget your password? No worries! Simply click on the <a href=%q>link</a> below.</p><p><a href=%q>%s</a></p>`, link, link, link),
	}
}
