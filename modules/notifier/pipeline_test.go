package notifier_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/modules/billing"
	"github.com/dmitrymomot/schoolkit/modules/catalog"
	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/modules/enrollment"
	"github.com/dmitrymomot/schoolkit/modules/notifier"
)

// The full pipeline: an admin approves a pending enrollment, the class
// fees become invoices, and the guardian hears about each invoice on
// every reachable channel.
func TestApprovalPipeline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	people := directory.NewMemoryResolver()
	student := directory.Person{ID: uuid.New(), Name: "Awa Diop", Email: "awa@example.com"}
	guardian := directory.Person{ID: uuid.New(), Name: "Moussa Diop", Email: "moussa@example.com"}
	people.AddStudent(student, &guardian)

	cat := catalog.NewService(catalog.NewMemoryStorage())
	enrollFee, err := cat.CreateFee(ctx, catalog.CreateFeeParams{
		Name: "Enrollment fee", Amount: decimal.NewFromInt(5000), Currency: "XOF",
	})
	require.NoError(t, err)
	tuitionFee, err := cat.CreateFee(ctx, catalog.CreateFeeParams{
		Name: "Tuition", Amount: decimal.NewFromInt(20000), Currency: "XOF",
	})
	require.NoError(t, err)
	class, err := cat.CreateClass(ctx, catalog.CreateClassParams{
		SchoolID:        uuid.New(),
		TeacherID:       uuid.New(),
		Name:            "CM2 A",
		EnrollmentFeeID: &enrollFee.ID,
		TuitionFeeID:    &tuitionFee.ID,
	})
	require.NoError(t, err)

	// Channels: durable inbox, live sessions, push without a sender
	// (skips), email into a fake transport.
	inbox := notifier.NewInbox(notifier.NewMemoryStorage())
	hub := notifier.NewSessionHub(8)
	t.Cleanup(func() { _ = hub.Close() })
	push := notifier.NewPushChannel(notifier.NewMemorySubscriptionStore(), nil)
	mailer := &fakeMailer{}

	// The email channel renders documents through a billing service on
	// the same invoice storage; the event-emitting service is built last
	// so the bridge can sit between them.
	invoiceStore := billing.NewMemoryStorage()
	renderSvc := billing.NewService(invoiceStore, cat, people)
	emailCh := notifier.NewEmailChannel(mailer, renderSvc)

	dispatcher := notifier.NewDispatcher([]notifier.Channel{hub, inbox, push, emailCh})
	bridge := notifier.NewEventBridge(dispatcher, people)

	billingSvc := billing.NewService(invoiceStore, cat, people,
		billing.WithEvents(bridge),
	)
	enrollSvc := enrollment.NewService(enrollment.NewMemoryStorage(), cat, billingSvc, people,
		enrollment.WithEvents(bridge),
	)

	// The guardian has one live session open.
	session := hub.Subscribe(ctx, guardian.ID)
	t.Cleanup(func() { _ = session.Close() })

	e, err := enrollSvc.Submit(ctx, student.ID, class.ID)
	require.NoError(t, err)
	_, invoices, err := enrollSvc.Approve(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	// Two inbox records, one per invoice.
	var records []notifier.Record
	require.Eventually(t, func() bool {
		records, err = inbox.List(ctx, guardian.ID)
		return err == nil && len(records) == 2
	}, 2*time.Second, 10*time.Millisecond)

	titles := []string{records[0].Title, records[1].Title}
	assert.Contains(t, titles, "New invoice "+invoices[0].Number())
	assert.Contains(t, titles, "New invoice "+invoices[1].Number())

	count, err := inbox.UnreadCount(ctx, guardian.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// The live session received both events.
	received := 0
	deadline := time.After(2 * time.Second)
	for received < 2 {
		select {
		case msg := <-session.Receive(ctx):
			assert.Equal(t, guardian.ID, msg.Data.Recipient.ID)
			received++
		case <-deadline:
			t.Fatalf("live session received %d of 2 events", received)
		}
	}

	// Both emails went out with their invoice documents attached.
	require.Eventually(t, func() bool {
		return len(mailer.sent()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	for _, msg := range mailer.sent() {
		assert.Equal(t, guardian.Email, msg.To)
		require.Len(t, msg.Attachments, 1)
		assert.Equal(t, "%PDF", string(msg.Attachments[0].Content[:4]))
	}

	// The student, not being the recipient, has nothing.
	records, err = inbox.List(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}
