package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	domainprofile "github.com/sangamhq/sangam/pkg/domain/profile"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// New creates a profile repository bound to the given session.
func New(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert creates the profile or overwrites every field of an existing
// one, clearing any prior rejection reason and refreshing the submission
// timestamp. Only the lifecycle submission path calls this.
func (r *profileRepository) Upsert(
	ctx context.Context,
	upsert *dto.ProfileUpsert,
) (*dto.ProfileRead, error) {
	db := r.db.WithContext(ctx)

	var existing Profile
	err := db.Where("account_id = ?", upsert.AccountID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		model := &Profile{
			ID:              uuid.New(),
			AccountID:       upsert.AccountID,
			FullName:        upsert.FullName,
			FatherName:      upsert.FatherName,
			DateOfBirth:     upsert.DateOfBirth,
			Age:             upsert.Age,
			Gender:          string(upsert.Gender),
			Address:         upsert.Address,
			Phone:           upsert.Phone,
			IdentityFileURL: upsert.IdentityFileURL,
			PhotoURL:        upsert.PhotoURL,
			SubmittedAt:     time.Now().UTC(),
		}
		if err := db.Create(model).Error; err != nil {
			return nil, err
		}
		return mapModelToDTO(model), nil
	case err != nil:
		return nil, err
	}

	updates := map[string]interface{}{
		"full_name":         upsert.FullName,
		"father_name":       upsert.FatherName,
		"date_of_birth":     upsert.DateOfBirth,
		"age":               upsert.Age,
		"gender":            string(upsert.Gender),
		"address":           upsert.Address,
		"phone":             upsert.Phone,
		"identity_file_url": upsert.IdentityFileURL,
		"photo_url":         upsert.PhotoURL,
		"submitted_at":      time.Now().UTC(),
		"rejection_reason":  "",
	}
	if err := db.Model(&Profile{}).
		Where("account_id = ?", upsert.AccountID).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByAccount(ctx, upsert.AccountID)
}

// Update applies a partial administrative edit. Nil fields stay as they
// are; the rejection reason and submission timestamp are untouched.
func (r *profileRepository) Update(
	ctx context.Context,
	accountID uuid.UUID,
	update *dto.ProfileUpdate,
) error {
	updates := make(map[string]interface{})
	if update.FullName != nil {
		updates["full_name"] = *update.FullName
	}
	if update.FatherName != nil {
		updates["father_name"] = *update.FatherName
	}
	if update.DateOfBirth != nil {
		updates["date_of_birth"] = *update.DateOfBirth
	}
	if update.Age != nil {
		updates["age"] = *update.Age
	}
	if update.Gender != nil {
		updates["gender"] = string(*update.Gender)
	}
	if update.Address != nil {
		updates["address"] = *update.Address
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.IdentityFileURL != nil {
		updates["identity_file_url"] = *update.IdentityFileURL
	}
	if update.PhotoURL != nil {
		updates["photo_url"] = *update.PhotoURL
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Profile{}).
		Where("account_id = ?", accountID).
		Updates(updates).Error
}

func (r *profileRepository) GetByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) (*dto.ProfileRead, error) {
	var model Profile
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

// SetRejectionReason stores the reason on an existing profile. A missing
// profile is a no-op: rejection is legal before any form was submitted.
func (r *profileRepository) SetRejectionReason(
	ctx context.Context,
	accountID uuid.UUID,
	reason string,
) error {
	return r.db.WithContext(ctx).Model(&Profile{}).
		Where("account_id = ?", accountID).
		Update("rejection_reason", reason).Error
}

func (r *profileRepository) DeleteByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Delete(&Profile{}, "account_id = ?", accountID).Error
}

func mapModelToDTO(model *Profile) *dto.ProfileRead {
	return &dto.ProfileRead{
		ID:              model.ID,
		AccountID:       model.AccountID,
		FullName:        model.FullName,
		FatherName:      model.FatherName,
		DateOfBirth:     model.DateOfBirth,
		Age:             model.Age,
		Gender:          domainprofile.Gender(model.Gender),
		Address:         model.Address,
		Phone:           model.Phone,
		IdentityFileURL: model.IdentityFileURL,
		PhotoURL:        model.PhotoURL,
		SubmittedAt:     model.SubmittedAt,
		RejectionReason: model.RejectionReason,
	}
}
