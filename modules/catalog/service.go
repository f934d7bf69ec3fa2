package catalog

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// currencyRegex matches ISO-like currency codes (XOF, USD, EUR, ...).
var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Service owns fee definitions and class offerings.
type Service struct {
	storage Storage
}

// NewService creates a catalog service.
func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// CreateFeeParams holds the input for CreateFee.
type CreateFeeParams struct {
	Name        string
	Description string
	Amount      decimal.Decimal
	Currency    string
}

func (p CreateFeeParams) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFee)
	}
	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidFee)
	}
	if !currencyRegex.MatchString(p.Currency) {
		return fmt.Errorf("%w: currency must be a three-letter code", ErrInvalidFee)
	}
	return nil
}

// CreateFee registers a new fee definition.
func (s *Service) CreateFee(ctx context.Context, params CreateFeeParams) (FeeDefinition, error) {
	if err := params.validate(); err != nil {
		return FeeDefinition{}, err
	}

	fee := FeeDefinition{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		Amount:      params.Amount,
		Currency:    params.Currency,
		CreatedAt:   time.Now(),
	}
	if err := s.storage.CreateFee(ctx, fee); err != nil {
		return FeeDefinition{}, err
	}
	return fee, nil
}

// Fee returns a fee definition by id.
func (s *Service) Fee(ctx context.Context, id uuid.UUID) (FeeDefinition, error) {
	return s.storage.FeeByID(ctx, id)
}

// Fees lists all fee definitions.
func (s *Service) Fees(ctx context.Context) ([]FeeDefinition, error) {
	return s.storage.ListFees(ctx)
}

// UpdateFee changes a fee definition. Already-issued invoices are
// unaffected: they carry their own snapshot of amount and currency.
func (s *Service) UpdateFee(ctx context.Context, id uuid.UUID, params CreateFeeParams) (FeeDefinition, error) {
	if err := params.validate(); err != nil {
		return FeeDefinition{}, err
	}

	fee, err := s.storage.FeeByID(ctx, id)
	if err != nil {
		return FeeDefinition{}, err
	}

	fee.Name = params.Name
	fee.Description = params.Description
	fee.Amount = params.Amount
	fee.Currency = params.Currency

	if err := s.storage.UpdateFee(ctx, fee); err != nil {
		return FeeDefinition{}, err
	}
	return fee, nil
}

// CreateClassParams holds the input for CreateClass.
type CreateClassParams struct {
	SchoolID        uuid.UUID
	TeacherID       uuid.UUID
	Name            string
	EnrollmentFeeID *uuid.UUID
	TuitionFeeID    *uuid.UUID
}

// CreateClass registers a class offering. Attached fee references must
// resolve to existing fee definitions.
func (s *Service) CreateClass(ctx context.Context, params CreateClassParams) (ClassOffering, error) {
	if params.Name == "" {
		return ClassOffering{}, fmt.Errorf("%w: name is required", ErrInvalidClass)
	}
	for _, feeID := range []*uuid.UUID{params.EnrollmentFeeID, params.TuitionFeeID} {
		if feeID == nil {
			continue
		}
		if _, err := s.storage.FeeByID(ctx, *feeID); err != nil {
			return ClassOffering{}, fmt.Errorf("%w: fee %s: %w", ErrInvalidClass, *feeID, err)
		}
	}

	class := ClassOffering{
		ID:              uuid.New(),
		SchoolID:        params.SchoolID,
		TeacherID:       params.TeacherID,
		Name:            params.Name,
		EnrollmentFeeID: params.EnrollmentFeeID,
		TuitionFeeID:    params.TuitionFeeID,
		CreatedAt:       time.Now(),
	}
	if err := s.storage.CreateClass(ctx, class); err != nil {
		return ClassOffering{}, err
	}
	return class, nil
}

// Class returns a class offering by id.
func (s *Service) Class(ctx context.Context, id uuid.UUID) (ClassOffering, error) {
	return s.storage.ClassByID(ctx, id)
}
