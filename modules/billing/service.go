package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/modules/catalog"
	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/pkg/invoicedoc"
	"github.com/dmitrymomot/schoolkit/pkg/logger"
)

// FeeSource resolves fee definitions for the admin-direct issuance
// path. The catalog service satisfies it.
type FeeSource interface {
	Fee(ctx context.Context, id uuid.UUID) (catalog.FeeDefinition, error)
}

// Issuer identifies the school on rendered invoice documents.
type Issuer struct {
	Name   string `env:"ISSUER_NAME" envDefault:"School Administration"`
	Detail string `env:"ISSUER_DETAIL"`
}

// Service owns invoice state transitions and emits the domain events
// the notification dispatcher consumes.
type Service struct {
	storage Storage
	fees    FeeSource
	people  directory.Resolver
	events  EventHandler
	issuer  Issuer
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithEvents sets the domain event handler.
func WithEvents(h EventHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.events = h
		}
	}
}

// WithIssuer sets the issuer block rendered on invoice documents.
func WithIssuer(issuer Issuer) Option {
	return func(s *Service) { s.issuer = issuer }
}

// WithLogger sets the logger for the Service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// NewService creates a billing service.
func NewService(storage Storage, fees FeeSource, people directory.Resolver, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		fees:    fees,
		people:  people,
		events:  NoopEvents{},
		issuer:  Issuer{Name: "School Administration"},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueParams holds the input for Issue.
type IssueParams struct {
	StudentID uuid.UUID
	Fee       FeeSnapshot
	DueDate   *time.Time
}

func (p IssueParams) validate() error {
	if p.StudentID == uuid.Nil {
		return fmt.Errorf("%w: student is required", ErrInvalidIssue)
	}
	if p.Fee.Name == "" {
		return fmt.Errorf("%w: fee snapshot is required", ErrInvalidIssue)
	}
	if p.Fee.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidIssue)
	}
	return nil
}

// Issue creates a pending invoice from a fee snapshot and emits
// InvoiceCreated. Called by enrollment approval and by the admin-direct
// creation path; never by client requests.
func (s *Service) Issue(ctx context.Context, params IssueParams) (Invoice, error) {
	invoices, err := s.IssueBatch(ctx, []IssueParams{params})
	if err != nil {
		return Invoice{}, err
	}
	return invoices[0], nil
}

// IssueBatch creates one invoice per params entry as a unit: either
// every entry produces an invoice, or none does. On partial failure the
// already-created invoices are deleted and no events are emitted.
// Events fire only after the whole batch is persisted, so a rolled-back
// issuance never notifies anyone.
func (s *Service) IssueBatch(ctx context.Context, batch []IssueParams) ([]Invoice, error) {
	for _, params := range batch {
		if err := params.validate(); err != nil {
			return nil, err
		}
	}

	created := make([]Invoice, 0, len(batch))
	for _, params := range batch {
		inv := Invoice{
			StudentID: params.StudentID,
			Fee:       params.Fee,
			Status:    StatusPending,
			DueDate:   params.DueDate,
			CreatedAt: time.Now(),
		}
		if err := s.storage.Create(ctx, &inv); err != nil {
			ids := make([]int64, len(created))
			for i, c := range created {
				ids[i] = c.ID
			}
			if delErr := s.storage.Delete(ctx, ids...); delErr != nil {
				s.logger.LogAttrs(ctx, slog.LevelError, "failed to roll back partially issued invoices",
					logger.Error(delErr),
				)
			}
			return nil, fmt.Errorf("issue invoice: %w", err)
		}
		created = append(created, inv)
	}

	for _, inv := range created {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "invoice issued",
			logger.InvoiceID(inv.ID),
			logger.UserID(inv.StudentID),
			slog.String("amount", inv.FormattedAmount()),
		)
		s.events.InvoiceCreated(ctx, inv)
	}

	return created, nil
}

// IssueFromFee resolves a fee definition, snapshots it, and issues an
// invoice. This is the admin-direct "create invoice" operation.
func (s *Service) IssueFromFee(ctx context.Context, studentID, feeID uuid.UUID, dueDate *time.Time) (Invoice, error) {
	fee, err := s.fees.Fee(ctx, feeID)
	if err != nil {
		return Invoice{}, err
	}
	return s.Issue(ctx, IssueParams{
		StudentID: studentID,
		Fee:       SnapshotOf(fee),
		DueDate:   dueDate,
	})
}

// Invoice returns an invoice by id.
func (s *Service) Invoice(ctx context.Context, id int64) (Invoice, error) {
	return s.storage.ByID(ctx, id)
}

// InvoicesByStudent lists a student's invoices in issuance order.
func (s *Service) InvoicesByStudent(ctx context.Context, studentID uuid.UUID) ([]Invoice, error) {
	return s.storage.ListByStudent(ctx, studentID)
}

// Pay settles a pending or overdue invoice. Paid is terminal on this
// path: paying an already-paid invoice fails with ErrAlreadyPaid.
func (s *Service) Pay(ctx context.Context, id int64) (Invoice, error) {
	inv, err := s.storage.ByID(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if inv.Status == StatusPaid {
		return Invoice{}, ErrAlreadyPaid
	}

	now := time.Now()
	inv.Status = StatusPaid
	inv.PaidAt = &now

	if err := s.storage.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "invoice paid",
		logger.InvoiceID(inv.ID),
		logger.UserID(inv.StudentID),
	)
	s.events.InvoicePaid(ctx, inv)

	return inv, nil
}

// SetStatus is the administrative override: it moves an invoice freely
// between pending, overdue, and paid. A transition into paid emits
// InvoicePaid and stamps PaidAt; leaving paid clears it.
func (s *Service) SetStatus(ctx context.Context, id int64, status Status) (Invoice, error) {
	if !status.Valid() {
		return Invoice{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	inv, err := s.storage.ByID(ctx, id)
	if err != nil {
		return Invoice{}, err
	}

	wasPaid := inv.Status == StatusPaid
	inv.Status = status

	switch {
	case status == StatusPaid && !wasPaid:
		now := time.Now()
		inv.PaidAt = &now
	case status != StatusPaid:
		inv.PaidAt = nil
	}

	if err := s.storage.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "invoice status overridden",
		logger.InvoiceID(inv.ID),
		slog.String("status", string(status)),
	)

	if status == StatusPaid && !wasPaid {
		s.events.InvoicePaid(ctx, inv)
	}

	return inv, nil
}

// SetDueDate changes an invoice's due date. No events are emitted.
func (s *Service) SetDueDate(ctx context.Context, id int64, dueDate *time.Time) (Invoice, error) {
	inv, err := s.storage.ByID(ctx, id)
	if err != nil {
		return Invoice{}, err
	}

	inv.DueDate = dueDate
	if err := s.storage.Update(ctx, inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// RenderDocument renders an invoice into its PDF document, usable
// standalone for downloads and by the email notification channel.
func (s *Service) RenderDocument(ctx context.Context, id int64) ([]byte, error) {
	inv, err := s.storage.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderInvoice(ctx, inv)
}

func (s *Service) renderInvoice(ctx context.Context, inv Invoice) ([]byte, error) {
	data := invoicedoc.Data{
		Number:          inv.Number(),
		Issuer:          invoicedoc.Party{Name: s.issuer.Name, Detail: s.issuer.Detail},
		ItemName:        inv.Fee.Name,
		ItemDescription: inv.Fee.Description,
		Amount:          inv.FormattedAmount(),
		Status:          string(inv.Status),
		IssuedAt:        inv.CreatedAt,
		DueDate:         inv.DueDate,
	}

	if student, err := s.people.Student(ctx, inv.StudentID); err == nil {
		data.Student = invoicedoc.Party{Name: student.Name, Detail: student.Email}
	} else {
		data.Student = invoicedoc.Party{Name: inv.StudentID.String()}
	}
	if guardian, err := s.people.Guardian(ctx, inv.StudentID); err == nil {
		data.Guardian = invoicedoc.Party{Name: guardian.Name, Detail: guardian.Email}
	}

	if inv.Status == StatusPaid && inv.PaidAt != nil {
		data.PaidAt = inv.PaidAt
		data.PaymentRef = "PAY-" + inv.Number()
	}

	return invoicedoc.Render(data)
}
