package subscriptionrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/pkg/errs"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM.
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GORM subscription repository.
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Upsert stores the subscription. An existing registration for the same
// owner and event kind is replaced in place via ON CONFLICT, keeping its
// original row identity.
func (r *GormSubscriptionRepository) Upsert(ctx context.Context, aggregate *subscription.Subscription) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "event_kind"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"url", "headers", "max_retry", "updated_at",
		}),
	}).Create(&dto).Error
}

// Delete removes the subscription of the given owner for the given event
// kind.
func (r *GormSubscriptionRepository) Delete(ctx context.Context, ownerID kernel.UUID, eventKind subscription.EventKind) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	if err := eventKind.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND event_kind = ?", ownerID.Bytes(), eventKind.String()).
		Delete(&SubscriptionDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("subscription", ownerID.String())
	}

	return nil
}

// GetByOwnerAndKind retrieves the subscription of the given owner for the
// given event kind.
func (r *GormSubscriptionRepository) GetByOwnerAndKind(ctx context.Context, ownerID kernel.UUID, eventKind subscription.EventKind) (*subscription.Subscription, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	if err := eventKind.Validate(); err != nil {
		return nil, err
	}

	var dto SubscriptionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "owner_id = ? AND event_kind = ?", ownerID.Bytes(), eventKind.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("subscription", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
