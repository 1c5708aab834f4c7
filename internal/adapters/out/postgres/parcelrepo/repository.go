package parcelrepo

import (
	"context"
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel and its initial timeline to the database.
// A tracking number collision is reported as a conflict so the caller can
// regenerate and retry.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("trackingNumber", err)
		}
		return err
	}

	if err := r.insertUncommittedEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel and appends any new timeline events.
// Runs inside the unit of work transaction, so the row update and the event
// inserts land atomically.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.insertUncommittedEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel with its full timeline by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByTrackingNumber retrieves a parcel with its full timeline by tracking number.
func (r *GormParcelRepository) GetByTrackingNumber(ctx context.Context, trackingNumber parcel.TrackingNumber) (*parcel.Parcel, error) {
	if err := trackingNumber.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", trackingNumber.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

func (r *GormParcelRepository) load(ctx context.Context, dto ParcelDTO) (*parcel.Parcel, error) {
	var eventDTOs []TrackingEventDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", dto.ID).
		Order("id").
		Find(&eventDTOs).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, eventDTOs)
}

func (r *GormParcelRepository) insertUncommittedEvents(ctx context.Context, aggregate *parcel.Parcel) error {
	uncommitted := aggregate.UncommittedEvents()
	if len(uncommitted) == 0 {
		return nil
	}

	eventDTOs := make([]TrackingEventDTO, 0, len(uncommitted))
	for _, event := range uncommitted {
		eventDTOs = append(eventDTOs, eventFromDomain(aggregate.ID().Bytes(), event))
	}

	return r.db.WithContext(ctx).Create(&eventDTOs).Error
}
