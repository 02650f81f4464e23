package deliveryrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shipping/internal/core/domain/model/delivery"
	"shipping/internal/pkg/errs"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GORM delivery queue repository.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add enqueues a new delivery task.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists the result of a delivery attempt.
// Writes every column so a cleared last_error is persisted too.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	return nil
}

// ClaimDue retrieves up to limit pending tasks that are due, locking the
// rows with FOR UPDATE SKIP LOCKED. Rows claimed by a concurrent dispatcher
// are skipped instead of blocking, so two dispatchers never attempt the same
// task. The locks are held until the surrounding transaction ends.
func (r *GormDeliveryRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND next_attempt_at <= ?", delivery.StatusPending.String(), now).
		Order("next_attempt_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		task, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
