package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/modules/billing"
	"github.com/dmitrymomot/schoolkit/modules/catalog"
	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/pkg/logger"
)

// ClassSource resolves class offerings and their attached fees.
// The catalog service satisfies it.
type ClassSource interface {
	Class(ctx context.Context, id uuid.UUID) (catalog.ClassOffering, error)
	Fee(ctx context.Context, id uuid.UUID) (catalog.FeeDefinition, error)
}

// InvoiceIssuer issues the approval's invoices as one unit.
// The billing service satisfies it.
type InvoiceIssuer interface {
	IssueBatch(ctx context.Context, batch []billing.IssueParams) ([]billing.Invoice, error)
}

// EventHandler consumes the approval event.
type EventHandler interface {
	// EnrollmentApproved fires once per successful approval, carrying
	// the invoices the approval issued.
	EnrollmentApproved(ctx context.Context, e Enrollment, invoices []billing.Invoice)
}

// NoopEvents is an EventHandler that does nothing.
type NoopEvents struct{}

func (NoopEvents) EnrollmentApproved(ctx context.Context, e Enrollment, invoices []billing.Invoice) {
}

// Service governs the enrollment state machine.
type Service struct {
	storage Storage
	classes ClassSource
	billing InvoiceIssuer
	people  directory.Resolver
	events  EventHandler
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithEvents sets the approval event handler.
func WithEvents(h EventHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.events = h
		}
	}
}

// WithLogger sets the logger for the Service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// NewService creates an enrollment service.
func NewService(storage Storage, classes ClassSource, issuer InvoiceIssuer, people directory.Resolver, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		classes: classes,
		billing: issuer,
		people:  people,
		events:  NoopEvents{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit creates a pending enrollment for a student in a class.
// The student and class must exist, and at most one pending request per
// (student, class) pair is allowed.
func (s *Service) Submit(ctx context.Context, studentID, classID uuid.UUID) (Enrollment, error) {
	if _, err := s.people.Student(ctx, studentID); err != nil {
		return Enrollment{}, fmt.Errorf("%w: %s", ErrStudentNotFound, studentID)
	}
	if _, err := s.classes.Class(ctx, classID); err != nil {
		return Enrollment{}, fmt.Errorf("%w: %s", ErrClassNotFound, classID)
	}

	pending, err := s.storage.HasPending(ctx, studentID, classID)
	if err != nil {
		return Enrollment{}, err
	}
	if pending {
		return Enrollment{}, ErrAlreadySubmitted
	}

	e := Enrollment{
		ID:        uuid.New(),
		StudentID: studentID,
		ClassID:   classID,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.storage.Create(ctx, e); err != nil {
		return Enrollment{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "enrollment submitted",
		logger.EnrollmentID(e.ID),
		logger.UserID(studentID),
	)
	return e, nil
}

// Enrollment returns an enrollment by id.
func (s *Service) Enrollment(ctx context.Context, id uuid.UUID) (Enrollment, error) {
	return s.storage.ByID(ctx, id)
}

// Approve transitions a pending enrollment to approved and issues
// exactly one invoice per fee attached to the class, as one unit.
//
// The pending -> approved flip goes through the storage's conditional
// claim, so under concurrent calls exactly one approver wins; the rest
// observe ErrNotPending and no duplicate invoices exist. If issuance
// fails the claim is reverted and ErrIssuanceFailed wraps the cause:
// the enrollment is pending again and no invoices remain.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (Enrollment, []billing.Invoice, error) {
	e, err := s.storage.ByID(ctx, id)
	if err != nil {
		return Enrollment{}, nil, err
	}

	class, err := s.classes.Class(ctx, e.ClassID)
	if err != nil {
		return Enrollment{}, nil, fmt.Errorf("%w: %s", ErrClassNotFound, e.ClassID)
	}

	batch, err := s.feeBatch(ctx, e.StudentID, class)
	if err != nil {
		return Enrollment{}, nil, err
	}

	claimed, err := s.storage.ClaimPending(ctx, id)
	if err != nil {
		return Enrollment{}, nil, err
	}
	if !claimed {
		return Enrollment{}, nil, ErrNotPending
	}
	e.Status = StatusApproved

	invoices, err := s.billing.IssueBatch(ctx, batch)
	if err != nil {
		// Compensate: the enrollment must not stay approved with
		// missing invoices. IssueBatch already removed its own partial
		// creations.
		if revertErr := s.storage.SetStatus(ctx, id, StatusPending); revertErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to revert enrollment after issuance failure",
				logger.EnrollmentID(id),
				logger.Error(revertErr),
			)
		}
		return Enrollment{}, nil, errors.Join(ErrIssuanceFailed, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "enrollment approved",
		logger.EnrollmentID(e.ID),
		logger.UserID(e.StudentID),
		slog.Int("invoices", len(invoices)),
	)
	s.events.EnrollmentApproved(ctx, e, invoices)

	return e, invoices, nil
}

// feeBatch builds the issuance batch for the class's attached fees:
// zero, one, or two entries depending on the class configuration.
func (s *Service) feeBatch(ctx context.Context, studentID uuid.UUID, class catalog.ClassOffering) ([]billing.IssueParams, error) {
	feeIDs := class.FeeIDs()
	batch := make([]billing.IssueParams, 0, len(feeIDs))
	for _, feeID := range feeIDs {
		fee, err := s.classes.Fee(ctx, feeID)
		if err != nil {
			return nil, fmt.Errorf("resolve class fee %s: %w", feeID, err)
		}
		batch = append(batch, billing.IssueParams{
			StudentID: studentID,
			Fee:       billing.SnapshotOf(fee),
		})
	}
	return batch, nil
}
