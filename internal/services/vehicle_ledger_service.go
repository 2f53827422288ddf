package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"parkapp/internal/common"
	"parkapp/internal/metrics"
	"parkapp/internal/models"
	"parkapp/internal/repositories"
)

// VehicleLedgerService records vehicle check-ins and check-outs.
type VehicleLedgerService interface {
	RecordEntry(ctx context.Context, entry *models.NewVehicleEntry) (*models.VehicleEntry, error)
	RecordExit(ctx context.Context, numberPlate string) (*models.VehicleEntry, error)
	ListEntries(ctx context.Context, includeExited bool) ([]*models.VehicleEntry, error)
	CountEntries(ctx context.Context, filter models.CountFilter) (int64, error)
}

type vehicleLedgerService struct {
	entryRepo repositories.VehicleEntryRepository
	now       func() time.Time
}

func NewVehicleLedgerService(entryRepo repositories.VehicleEntryRepository) VehicleLedgerService {
	return &vehicleLedgerService{entryRepo: entryRepo, now: time.Now}
}

func (s *vehicleLedgerService) RecordEntry(ctx context.Context, entry *models.NewVehicleEntry) (*models.VehicleEntry, error) {
	entry.NumberPlate = strings.TrimSpace(entry.NumberPlate)
	if entry.NumberPlate == "" {
		return nil, common.ValidationError("numberPlate is required")
	}
	if entry.PassengerCount < 0 {
		return nil, common.ValidationError("passengerCount cannot be negative")
	}
	if entry.Timestamp == nil {
		ts := s.now().UTC()
		entry.Timestamp = &ts
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	metrics.VehicleEntriesTotal.Inc()
	return created, nil
}

// RecordExit checks out one open entry for the plate. A plate with no open
// entry is common.ErrNotFound.
func (s *vehicleLedgerService) RecordExit(ctx context.Context, numberPlate string) (*models.VehicleEntry, error) {
	numberPlate = strings.TrimSpace(numberPlate)
	if numberPlate == "" {
		return nil, common.ValidationError("numberPlate is required")
	}

	entry, err := s.entryRepo.MarkExited(ctx, numberPlate)
	if errors.Is(err, common.ErrNotFound) {
		metrics.VehicleExitsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	metrics.VehicleExitsTotal.WithLabelValues("exited").Inc()
	return entry, nil
}

func (s *vehicleLedgerService) ListEntries(ctx context.Context, includeExited bool) ([]*models.VehicleEntry, error) {
	return s.entryRepo.List(ctx, includeExited)
}

func (s *vehicleLedgerService) CountEntries(ctx context.Context, filter models.CountFilter) (int64, error) {
	if err := common.ValidateDateRange(filter.Start, filter.End); err != nil {
		return 0, err
	}
	return s.entryRepo.Count(ctx, filter)
}
