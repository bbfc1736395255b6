package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainnotification "github.com/sangamhq/sangam/pkg/domain/notification"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// New creates a notification repository bound to the given session.
func New(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(
	ctx context.Context,
	create *dto.NotificationCreate,
) (*dto.NotificationRead, error) {
	model := &Notification{
		ID:        uuid.New(),
		AccountID: create.AccountID,
		Title:     create.Title,
		Message:   create.Message,
		Category:  string(create.Category),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(model), nil
}

func (r *notificationRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.NotificationRead, error) {
	var model Notification
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

// ListForAccount returns the account's own notifications plus broadcasts,
// newest first.
func (r *notificationRepository) ListForAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*dto.NotificationRead, error) {
	var models []Notification
	err := r.db.WithContext(ctx).
		Where("account_id = ? OR account_id IS NULL", accountID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.NotificationRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func (r *notificationRepository) MarkRead(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

// DeleteByAccount removes only targeted notifications; broadcasts have no
// owner and survive account deletion.
func (r *notificationRepository) DeleteByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Delete(&Notification{}, "account_id = ?", accountID).Error
}

func mapModelToDTO(model *Notification) *dto.NotificationRead {
	return &dto.NotificationRead{
		ID:        model.ID,
		AccountID: model.AccountID,
		Title:     model.Title,
		Message:   model.Message,
		Category:  domainnotification.Category(model.Category),
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}
