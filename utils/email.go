package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a rendered notification email.
type Message struct {
	Kind    string
	ToName  string
	ToEmail string
	Subject string
	HTML    string
}

// Mailer sends notification emails through SendGrid.
type Mailer struct {
	apiKey            string
	fromName          string
	fromEmail         string
	notificationEmail string
	timeout           time.Duration
}

// NewMailer returns a Mailer. An empty apiKey makes every send fail fast.
func NewMailer(apiKey, fromName, fromEmail, notificationEmail string) *Mailer {
	return &Mailer{
		apiKey:            apiKey,
		fromName:          fromName,
		fromEmail:         fromEmail,
		notificationEmail: notificationEmail,
		timeout:           15 * time.Second,
	}
}

// Send sends msg with a plain text part derived from its HTML.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if m.apiKey == "" {
		return errors.New("SENDGRID_API_KEY is not set")
	}
	if msg.ToEmail == "" {
		return errors.New("missing recipient")
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, PlainText(msg.HTML), msg.HTML)
	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.ToEmail, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// SendAsync sends msg on its own goroutine. Failures are logged and counted, never returned.
func (m *Mailer) SendAsync(msg Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		if err := m.Send(ctx, msg); err != nil {
			NotificationsFailedTotal.WithLabelValues(msg.Kind).Inc()
			log.Warn().Err(err).Str("kind", msg.Kind).Str("to", msg.ToEmail).Msg("Notification not sent")
			return
		}
		log.Info().Str("kind", msg.Kind).Str("to", msg.ToEmail).Msg("Notification sent")
	}()
}

// NotifyAdmin sends an admin notification when NOTIFICATION_EMAIL is configured.
func (m *Mailer) NotifyAdmin(event string, details map[string]string) {
	if m.notificationEmail == "" {
		return
	}
	m.SendAsync(AdminNotification(m.notificationEmail, event, details))
}

// PlainText strips markup from an HTML body.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("style, script").Remove()
	var lines []string
	doc.Find("h1, h2, h3, p, li, td").Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " ")
	}
	return strings.Join(lines, "\n")
}

var templates = template.Must(template.New("mail").Parse(`
{{define "welcome"}}<h1>Welcome to NutriWise, {{.Name}}!</h1>
<p>Your account has been created. You can now track your meals, water, weight and exercise, generate diet plans and book consultations with our dietitians.</p>
<p>Stay healthy,<br>The NutriWise Team</p>{{end}}
{{define "consultation"}}<h1>Consultation confirmed</h1>
<p>Hi {{.PatientName}}, your consultation has been booked.</p>
<table>
<tr><td>Booking ID</td><td>{{.BookingID}}</td></tr>
<tr><td>Dietitian</td><td>{{.DietitianName}}</td></tr>
<tr><td>Type</td><td>{{.Type}}</td></tr>
<tr><td>Date</td><td>{{.Date}}</td></tr>
<tr><td>Time</td><td>{{.Time}}</td></tr>
<tr><td>Duration</td><td>{{.Duration}} minutes</td></tr>
<tr><td>Fee</td><td>Rs. {{.Price}}</td></tr>
</table>
{{if .MeetingLink}}<p>Join the call: <a href="{{.MeetingLink}}">{{.MeetingLink}}</a></p>{{end}}
<p>The NutriWise Team</p>{{end}}
{{define "contact"}}<h1>We received your message</h1>
<p>Hi {{.Name}}, thanks for contacting NutriWise about "{{.Subject}}". Our team will reply within 24 hours.</p>
<p>Reference: {{.ID}}</p>{{end}}
{{define "admin"}}<h1>{{.Event}}</h1>
<table>{{range $k, $v := .Details}}<tr><td>{{$k}}</td><td>{{$v}}</td></tr>{{end}}</table>{{end}}
`))

func render(name string, data interface{}) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render email")
		return ""
	}
	return strings.TrimSpace(buf.String())
}

// RegistrationWelcome is sent after a successful registration.
func RegistrationWelcome(name, email string) Message {
	return Message{
		Kind:    "registration_welcome",
		ToName:  name,
		ToEmail: email,
		Subject: "Welcome to NutriWise",
		HTML:    render("welcome", map[string]string{"Name": name}),
	}
}

// ConsultationDetails fills the consultation confirmation.
type ConsultationDetails struct {
	PatientName   string
	PatientEmail  string
	BookingID     int64
	DietitianName string
	Type          string
	Date          string
	Time          string
	Duration      int
	Price         int
	MeetingLink   string
}

// ConsultationConfirmation is sent to the patient after booking.
func ConsultationConfirmation(d ConsultationDetails) Message {
	return Message{
		Kind:    "consultation_confirmation",
		ToName:  d.PatientName,
		ToEmail: d.PatientEmail,
		Subject: fmt.Sprintf("Consultation confirmed: booking #%d", d.BookingID),
		HTML:    render("consultation", d),
	}
}

// ContactConfirmation acknowledges a contact form submission.
func ContactConfirmation(id, name, email, subject string) Message {
	return Message{
		Kind:    "contact_confirmation",
		ToName:  name,
		ToEmail: email,
		Subject: "We received your message",
		HTML:    render("contact", map[string]string{"ID": id, "Name": name, "Subject": subject}),
	}
}

// AdminNotification reports an event to the operations inbox.
func AdminNotification(to, event string, details map[string]string) Message {
	return Message{
		Kind:    "admin_notification",
		ToName:  "NutriWise Admin",
		ToEmail: to,
		Subject: "[NutriWise] " + event,
		HTML:    render("admin", map[string]interface{}{"Event": event, "Details": details}),
	}
}
