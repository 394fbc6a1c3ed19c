// internal/app/system/mailer/digest.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/google/uuid"
)

// DigestData holds data for the periodic check-in digest email.
type DigestData struct {
	SiteName      string
	RecipientName string
	Cadence       string // "weekly" or "bi-weekly"
	ProfileURL    string
	PixelURL      string
}

// NewEventID returns a fresh identifier for one sent email. The same ID
// is recorded in the profile's email history and embedded in the
// tracking pixel URL, so an open can be matched back to the send.
func NewEventID() string {
	return uuid.NewString()
}

// PixelURL builds the open-tracking pixel URL for a sent email.
func PixelURL(baseURL, employeeID, eventID string) string {
	q := url.Values{}
	q.Set("id", employeeID)
	q.Set("eid", eventID)
	return baseURL + "/track?" + q.Encode()
}

// BuildDigestEmail creates the check-in digest with both HTML and text
// bodies. The caller sets To.
func BuildDigestEmail(data DigestData) Email {
	return Email{
		Subject:  fmt.Sprintf("Your %s check-in", data.SiteName),
		TextBody: buildDigestText(data),
		HTMLBody: buildDigestHTML(data),
	}
}

func buildDigestText(data DigestData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi %s,\n\n", data.RecipientName)
	fmt.Fprintf(&buf, "It's time for your %s check-in on %s.\n\n", data.Cadence, data.SiteName)
	buf.WriteString("Review or update your profile here:\n")
	buf.WriteString(data.ProfileURL + "\n\n")
	buf.WriteString("Keeping your skills, tools, and challenges current helps your supervisor support you.\n")
	return buf.String()
}

func buildDigestHTML(data DigestData) string {
	tmpl := template.Must(template.New("digest").Parse(digestHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const digestHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Check-in</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>

          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hi {{.RecipientName}}, it&rsquo;s time for your {{.Cadence}} check-in.
              </p>

              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.ProfileURL}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 500; border-radius: 6px;">
                      Update My Profile
                    </a>
                  </td>
                </tr>
              </table>

              <p style="margin: 24px 0 0; font-size: 13px; color: #9ca3af; text-align: center;">
                Keeping your skills, tools, and challenges current helps your supervisor support you.
              </p>
            </td>
          </tr>

          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                You receive this because your check-in cadence is set to {{.Cadence}}.
              </p>
            </td>
          </tr>
        </table>
        <img src="{{.PixelURL}}" width="1" height="1" alt="" style="display: block;">
      </td>
    </tr>
  </table>
</body>
</html>`
