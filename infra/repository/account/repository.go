package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	domainaccount "github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const memberSequence = "member_id"

type accountRepository struct {
	db *gorm.DB
}

// New creates an account repository bound to the given session.
func New(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// forUpdate applies a row lock on dialects that support it. The sqlite
// test databases serialize writers on the database lock instead.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func (r *accountRepository) Create(
	ctx context.Context,
	create *dto.AccountCreate,
) error {
	model := &Account{
		ID:          create.ID,
		MemberID:    create.MemberID,
		Email:       create.Email,
		Phone:       create.Phone,
		Password:    create.Password,
		Role:        string(create.Role),
		Permissions: joinPermissions(create.Permissions),
		Status:      string(create.Status),
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *accountRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.AccountRead, error) {
	var model Account
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *accountRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*dto.AccountRead, error) {
	var model Account
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *accountRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.AccountRead, error) {
	var model Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&model), nil
}

func (r *accountRepository) GetCredentials(
	ctx context.Context,
	email string,
) (*dto.AccountRead, string, error) {
	var model Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return mapModelToDTO(&model), model.Password, nil
}

func (r *accountRepository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).
		Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter translates the query specification into WHERE clauses.
// Search matches email, phone and member ID substrings case-insensitively.
func applyFilter(db *gorm.DB, filter dto.AccountFilter) *gorm.DB {
	if filter.Status != "" {
		db = db.Where("status = ?", string(filter.Status))
	}
	if filter.Role != "" {
		db = db.Where("role = ?", string(filter.Role))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where(
			"LOWER(email) LIKE LOWER(?) OR LOWER(phone) LIKE LOWER(?) OR LOWER(member_id) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	return db
}

func (r *accountRepository) List(
	ctx context.Context,
	filter dto.AccountFilter,
	page dto.Page,
) ([]*dto.AccountRead, int64, error) {
	var total int64
	query := applyFilter(r.db.WithContext(ctx).Model(&Account{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []Account
	err := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.AccountRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, total, nil
}

func (r *accountRepository) ListByStatus(
	ctx context.Context,
	status domainaccount.Status,
) ([]*dto.AccountRead, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AccountRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func (r *accountRepository) ListByRole(
	ctx context.Context,
	role domainaccount.Role,
) ([]*dto.AccountRead, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AccountRead, 0, len(models))
	for i := range models {
		result = append(result, mapModelToDTO(&models[i]))
	}
	return result, nil
}

func (r *accountRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domainaccount.Status,
) error {
	return r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *accountRepository) UpdatePermissions(
	ctx context.Context,
	id uuid.UUID,
	perms []domainaccount.Permission,
) error {
	return r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("permissions", joinPermissions(perms)).Error
}

func (r *accountRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.AccountUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.Role != nil {
		updates["role"] = string(*update.Role)
	}
	if update.Permissions != nil {
		updates["permissions"] = joinPermissions(*update.Permissions)
	}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *accountRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id).Error
}

func (r *accountRepository) CountByStatus(
	ctx context.Context,
	status domainaccount.Status,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).
		Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

func (r *accountRepository) CountByRole(
	ctx context.Context,
	role domainaccount.Role,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).
		Where("role = ?", string(role)).Count(&count).Error
	return count, err
}

// NextMemberID advances the member counter under a row lock and returns
// the next identifier. Must run inside the same transaction as the
// account insert so a failed creation does not publish a half-issued row,
// though the counter itself may skip values on rollback. Skipping is
// fine; reuse is not.
func (r *accountRepository) NextMemberID(ctx context.Context) (string, error) {
	var seq Sequence
	db := r.db.WithContext(ctx)
	err := forUpdate(db).
		Where(Sequence{Name: memberSequence}).
		FirstOrCreate(&seq).Error
	if err != nil {
		return "", err
	}
	seq.Value++
	if err := db.Model(&Sequence{}).
		Where("name = ?", memberSequence).
		Update("value", seq.Value).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("member_%d", seq.Value), nil
}

func mapModelToDTO(model *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:          model.ID,
		MemberID:    model.MemberID,
		Email:       model.Email,
		Phone:       model.Phone,
		Role:        domainaccount.Role(model.Role),
		Permissions: splitPermissions(model.Permissions),
		Status:      domainaccount.Status(model.Status),
		CreatedAt:   model.CreatedAt,
	}
}
