package utils

import (
	"context"
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	got := PlainText("<h1>Hello</h1><p>Your   booking is <b>confirmed</b>.</p><ul><li>one</li></ul>")
	want := "Hello\nYour booking is confirmed.\none"
	if got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

func TestConsultationConfirmationMeetingLink(t *testing.T) {
	t.Parallel()

	video := ConsultationConfirmation(ConsultationDetails{
		PatientName: "Asha", PatientEmail: "asha@example.com", BookingID: 7,
		Type: "video_call", Price: 1500, MeetingLink: "https://meet.nutriwise.com/room/7",
	})
	if !strings.Contains(video.HTML, "https://meet.nutriwise.com/room/7") {
		t.Fatalf("video confirmation missing meeting link: %s", video.HTML)
	}
	if !strings.Contains(video.Subject, "#7") {
		t.Fatalf("unexpected subject %q", video.Subject)
	}

	phone := ConsultationConfirmation(ConsultationDetails{BookingID: 8, Type: "phone_call", Price: 1200})
	if strings.Contains(phone.HTML, "Join the call") {
		t.Fatalf("phone confirmation should not carry a meeting link: %s", phone.HTML)
	}
}

func TestTemplatesEscapeInput(t *testing.T) {
	t.Parallel()

	msg := ContactConfirmation("1", "<script>x</script>", "a@b.com", "hi")
	if strings.Contains(msg.HTML, "<script>") {
		t.Fatalf("expected escaped name, got %s", msg.HTML)
	}
}

func TestSendWithoutAPIKey(t *testing.T) {
	t.Parallel()

	m := NewMailer("", "NutriWise", "no-reply@nutriwise.com", "")
	if err := m.Send(context.Background(), RegistrationWelcome("A", "a@b.com")); err == nil {
		t.Fatal("expected error without API key")
	}
}
