package document

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

// New creates a document repository bound to the given session.
func New(db *gorm.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

// Replace creates the account's bundle or overwrites every field of an
// existing one. A bundle is never partially updated or duplicated.
func (r *documentRepository) Replace(
	ctx context.Context,
	accountID uuid.UUID,
	bundle *dto.DocumentRead,
) error {
	db := r.db.WithContext(ctx)

	var existing Bundle
	err := db.Where("account_id = ?", accountID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&Bundle{
			ID:             bundle.ID,
			AccountID:      accountID,
			ApprovalURL:    bundle.ApprovalURL,
			IDCardURL:      bundle.IDCardURL,
			CertificateURL: bundle.CertificateURL,
			GeneratedAt:    bundle.GeneratedAt,
		}).Error
	}
	if err != nil {
		return err
	}

	return db.Model(&Bundle{}).
		Where("account_id = ?", accountID).
		Updates(map[string]interface{}{
			"approval_url":    bundle.ApprovalURL,
			"id_card_url":     bundle.IDCardURL,
			"certificate_url": bundle.CertificateURL,
			"generated_at":    bundle.GeneratedAt,
		}).Error
}

func (r *documentRepository) GetByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (*dto.DocumentRead, error) {
	var model Bundle
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dto.DocumentRead{
		ID:             model.ID,
		AccountID:      model.AccountID,
		ApprovalURL:    model.ApprovalURL,
		IDCardURL:      model.IDCardURL,
		CertificateURL: model.CertificateURL,
		GeneratedAt:    model.GeneratedAt,
	}, nil
}

func (r *documentRepository) DeleteByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Delete(&Bundle{}, "account_id = ?", accountID).Error
}
