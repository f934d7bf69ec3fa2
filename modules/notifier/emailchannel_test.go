package notifier_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/modules/billing"
	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/modules/notifier"
	"github.com/dmitrymomot/schoolkit/pkg/email"
)

type fakeMailer struct {
	mu       sync.Mutex
	err      error
	messages []email.Message
}

func (m *fakeMailer) Send(ctx context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *fakeMailer) sent() []email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Message(nil), m.messages...)
}

type fakeRenderer struct{ err error }

func (r fakeRenderer) RenderDocument(ctx context.Context, id int64) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 fake invoice"), nil
}

func emailEvent() notifier.Event {
	return notifier.Event{
		Kind: notifier.KindInvoiceCreated,
		Recipient: directory.Person{
			ID:    uuid.New(),
			Name:  "Moussa Diop",
			Email: "moussa@example.com",
		},
		Invoice: billing.Invoice{
			ID: 7,
			Fee: billing.FeeSnapshot{
				Name:     "Tuition",
				Amount:   decimal.NewFromInt(20000),
				Currency: "XOF",
			},
			Status: billing.StatusPending,
		},
		Title:  "New invoice 000007",
		Body:   "Invoice 000007 (Tuition) has been issued for Awa Diop. Amount due: 20,000 XOF.",
		Entity: notifier.EntityRef{Type: "invoice", ID: "7"},
	}
}

func TestEmailChannel_Deliver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("nil sender skips", func(t *testing.T) {
		t.Parallel()

		ch := notifier.NewEmailChannel(nil, fakeRenderer{})
		outcome, err := ch.Deliver(ctx, emailEvent())
		require.NoError(t, err)
		assert.Equal(t, notifier.OutcomeSkipped, outcome)
	})

	t.Run("recipient without address skips", func(t *testing.T) {
		t.Parallel()

		mailer := &fakeMailer{}
		ch := notifier.NewEmailChannel(mailer, fakeRenderer{})

		event := emailEvent()
		event.Recipient.Email = ""
		outcome, err := ch.Deliver(ctx, event)
		require.NoError(t, err)
		assert.Equal(t, notifier.OutcomeSkipped, outcome)
		assert.Empty(t, mailer.sent())
	})

	t.Run("sends with invoice document attached", func(t *testing.T) {
		t.Parallel()

		mailer := &fakeMailer{}
		ch := notifier.NewEmailChannel(mailer, fakeRenderer{})

		outcome, err := ch.Deliver(ctx, emailEvent())
		require.NoError(t, err)
		assert.Equal(t, notifier.OutcomeDelivered, outcome)

		messages := mailer.sent()
		require.Len(t, messages, 1)
		msg := messages[0]
		assert.Equal(t, "moussa@example.com", msg.To)
		assert.Equal(t, "New invoice 000007", msg.Subject)
		assert.Contains(t, msg.BodyHTML, "20,000 XOF")
		assert.NotEmpty(t, msg.BodyText)

		require.Len(t, msg.Attachments, 1)
		assert.Equal(t, "invoice-000007.pdf", msg.Attachments[0].Filename)
		assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
		assert.Equal(t, "%PDF", string(msg.Attachments[0].Content[:4]))
	})

	t.Run("render failure fails delivery", func(t *testing.T) {
		t.Parallel()

		mailer := &fakeMailer{}
		ch := notifier.NewEmailChannel(mailer, fakeRenderer{err: errors.New("render broke")})

		outcome, err := ch.Deliver(ctx, emailEvent())
		assert.Equal(t, notifier.OutcomeFailed, outcome)
		assert.Error(t, err)
		assert.Empty(t, mailer.sent())
	})

	t.Run("transport failure fails delivery", func(t *testing.T) {
		t.Parallel()

		ch := notifier.NewEmailChannel(&fakeMailer{err: errors.New("smtp down")}, fakeRenderer{})
		outcome, err := ch.Deliver(ctx, emailEvent())
		assert.Equal(t, notifier.OutcomeFailed, outcome)
		assert.Error(t, err)
	})
}
