// Package service orchestrates registration: validate every field, then ask
// the store to append under its uniqueness guarantee. Handlers stay thin and
// domain logic stays out of transport.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"regportal/internal/registration"
	"regportal/internal/registration/metrics"
	"regportal/internal/registration/store"
	dErrors "regportal/pkg/domain-errors"
	"regportal/pkg/requestcontext"
)

type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(st store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: st, logger: logger, metrics: m}
}

// Register validates the candidate and appends it to the store. Either every
// field passes and the record is persisted, or nothing is stored and the
// caller gets the complete list of validation messages.
func (s *Service) Register(ctx context.Context, candidate registration.Registrant) (registration.Registrant, error) {
	if msgs := registration.Validate(candidate); len(msgs) > 0 {
		if s.metrics != nil {
			s.metrics.ValidationsRejected.Inc()
		}
		return registration.Registrant{}, dErrors.Validation(msgs)
	}

	start := time.Now()
	stored, err := s.store.Append(ctx, candidate)
	if s.metrics != nil {
		s.metrics.ObserveAppend(start)
	}
	if err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			if s.metrics != nil {
				s.metrics.DuplicatesRejected.Inc()
			}
			s.logger.InfoContext(ctx, "duplicate registration rejected",
				"request_id", requestcontext.RequestID(ctx),
				"national_id", registration.NormalizeNationalID(candidate.NationalID),
			)
			return registration.Registrant{}, dErrors.New(dErrors.CodeDuplicateID, "this national ID is already registered")
		}
		s.logger.ErrorContext(ctx, "registration append failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return registration.Registrant{}, dErrors.New(dErrors.CodeInternal, "could not store registration")
	}

	if s.metrics != nil {
		s.metrics.RegistrationsCreated.Inc()
	}
	s.logger.InfoContext(ctx, "registration stored",
		"request_id", requestcontext.RequestID(ctx),
		"national_id", stored.NationalID,
	)
	return stored, nil
}

// ListAll returns a snapshot of every registrant in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]registration.Registrant, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "listing registrations failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, dErrors.New(dErrors.CodeInternal, "could not load registrations")
	}
	return records, nil
}

// Stats computes the aggregate document over the current snapshot.
func (s *Service) Stats(ctx context.Context) (registration.Stats, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return registration.Stats{}, err
	}
	return registration.ComputeStats(records), nil
}
