package contact

import (
	"context"
	"testing"

	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/store"
	"github.com/raushankrgupta/nutriwise/utils"
)

type memStore struct {
	msgs []models.ContactMessage
}

func (m *memStore) Create(_ context.Context, c *models.ContactMessage) error {
	m.msgs = append(m.msgs, *c)
	return nil
}

func (m *memStore) ListRecent(_ context.Context, limit int) ([]models.ContactMessage, error) {
	out := []models.ContactMessage{}
	for i := len(m.msgs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.msgs[i])
	}
	return out, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id, status string) error {
	for i := range m.msgs {
		if m.msgs[i].ID == id {
			m.msgs[i].Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

type counter struct{ n int64 }

func (c *counter) Next(context.Context, string) (int64, error) {
	c.n++
	return c.n, nil
}

type notifier struct {
	sent   []utils.Message
	events []string
}

func (n *notifier) SendAsync(msg utils.Message) { n.sent = append(n.sent, msg) }

func (n *notifier) NotifyAdmin(event string, _ map[string]string) { n.events = append(n.events, event) }

func TestSubmitAndList(t *testing.T) {
	t.Parallel()

	st := &memStore{}
	n := &notifier{}
	svc := NewService(st, &counter{}, n)
	ctx := context.Background()

	for _, subject := range []string{"Pricing", "Booking help"} {
		if _, err := svc.Submit(ctx, SubmitRequest{Name: "Ravi", Email: "ravi@example.com", Subject: subject, Message: "Hello there"}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	msgs, err := svc.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "2" || msgs[0].Status != models.ContactPending {
		t.Fatalf("messages = %+v", msgs)
	}
	if len(n.sent) != 2 || len(n.events) != 2 {
		t.Fatalf("expected confirmation and admin mail per message, got %d/%d", len(n.sent), len(n.events))
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	st := &memStore{msgs: []models.ContactMessage{{ID: "1", Status: models.ContactPending}}}
	svc := NewService(st, &counter{}, &notifier{})
	ctx := context.Background()

	if err := svc.UpdateStatus(ctx, "1", "archived"); models.KindOf(err) != models.KindValidation {
		t.Fatalf("invalid status err = %v", err)
	}
	if err := svc.UpdateStatus(ctx, "9", models.ContactRead); models.KindOf(err) != models.KindNotFound {
		t.Fatalf("missing message err = %v", err)
	}
	if err := svc.UpdateStatus(ctx, "1", models.ContactReplied); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if st.msgs[0].Status != models.ContactReplied {
		t.Fatalf("status = %q", st.msgs[0].Status)
	}
}
