// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create persists a new account, including its academic profile when attached.
// GORM's Create with associations inserts account and profile together.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		return translateConstraintError(err, "create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt
	if account.AcademicProfile != nil && accountM.AcademicProfile != nil {
		account.AcademicProfile.UpdatedAt = accountM.AcademicProfile.UpdatedAt
	}

	return nil
}

// FindByID retrieves a single account by its unique ID, profile included.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUsername retrieves a single account by its exact username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return repo.findOne(ctx, "username = ?", username)
}

// FindByEmail retrieves a single account by its exact email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *accountRepository) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var accountM model.AccountModel

	if err := repo.db.WithContext(ctx).
		Preload("AcademicProfile").
		Where(query, arg).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewStorageError(err, "failed to find account")
	}

	return toAccountDomain(&accountM), nil
}

// FindAll returns every account, newest first.
func (repo *accountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	var accountModels []*model.AccountModel

	if err := repo.db.WithContext(ctx).
		Preload("AcademicProfile").
		Order("created_at DESC").
		Find(&accountModels).Error; err != nil {
		return nil, domainerrors.NewStorageError(err, "failed to list accounts")
	}

	return toAccountDomainSlice(accountModels), nil
}

// FindPage returns a bounded page of accounts, newest first.
func (repo *accountRepository) FindPage(ctx context.Context, skip, limit int) ([]*entity.Account, error) {
	var accountModels []*model.AccountModel

	if err := repo.db.WithContext(ctx).
		Preload("AcademicProfile").
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&accountModels).Error; err != nil {
		return nil, domainerrors.NewStorageError(err, "failed to page accounts")
	}

	return toAccountDomainSlice(accountModels), nil
}

// UsernameExists reports whether an account with the username exists.
// This is a fast-path check; the unique index remains the final arbiter.
func (repo *accountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return repo.exists(ctx, "username = ?", username)
}

// EmailExists reports whether an account with the email exists.
func (repo *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return repo.exists(ctx, "email = ?", email)
}

func (repo *accountRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where(query, arg).
		Count(&count).Error; err != nil {
		return false, domainerrors.NewStorageError(err, "failed to check account existence")
	}

	return count > 0, nil
}

// Update persists the current state of an already-loaded account and,
// when attached, its academic profile.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)
	accountM.CreatedAt = account.CreatedAt

	if err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(accountM).Error; err != nil {
		return translateConstraintError(err, "update account")
	}

	account.UpdatedAt = accountM.UpdatedAt
	if account.AcademicProfile != nil && accountM.AcademicProfile != nil {
		account.AcademicProfile.UpdatedAt = accountM.AcademicProfile.UpdatedAt
	}

	return nil
}

// Delete removes the account. The profile goes with it: the FK constraint
// cascades, and the explicit delete below keeps the invariant even on stores
// migrated without the constraint.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", id).
		Delete(&model.AcademicProfileModel{}).Error; err != nil {
		return domainerrors.NewStorageError(err, "failed to delete academic profile")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AccountModel{})
	if result.Error != nil {
		return domainerrors.NewStorageError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// translateConstraintError converts PostgreSQL constraint violations into
// domain errors; anything unclassified becomes an opaque storage failure.
func translateConstraintError(err error, op string) error {
	switch {
	case uniqueViolationOn(err, "username"):
		return domainerrors.ErrUsernameTaken.WrapMessage("username already exists")
	case uniqueViolationOn(err, "email"):
		return domainerrors.ErrEmailTaken.WrapMessage("email already exists")
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrUsernameTaken.WrapMessage("duplicate unique field")
	case isNotNullConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WrapMessage("missing required account information")
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WrapMessage("invalid account reference")
	default:
		return domainerrors.NewStorageError(err, "failed to "+op)
	}
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:              data.ID,
		Username:        data.Username,
		Email:           data.Email,
		PasswordHash:    data.PasswordHash,
		Permission:      entity.Permission(data.Permission),
		AcademicProfile: toProfileDomain(data.AcademicProfile),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toAccountDomainSlice(data []*model.AccountModel) []*entity.Account {
	accounts := make([]*entity.Account, 0, len(data))
	for _, m := range data {
		accounts = append(accounts, toAccountDomain(m))
	}

	return accounts
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:              data.ID,
		Username:        data.Username,
		Email:           data.Email,
		PasswordHash:    data.PasswordHash,
		Permission:      data.Permission.String(),
		AcademicProfile: fromProfileDomain(data.AcademicProfile),
	}
}

func toProfileDomain(data *model.AcademicProfileModel) *entity.AcademicProfile {
	if data == nil {
		return nil
	}

	return &entity.AcademicProfile{
		AccountID:          data.AccountID,
		EnrollmentYear:     data.EnrollmentYear,
		GraduationYear:     data.GraduationYear,
		EnrollmentSemester: toSemesterDomain(data.EnrollmentSemester),
		GraduationSemester: toSemesterDomain(data.GraduationSemester),
		Major:              data.Major,
		Minor:              data.Minor,
		Concentration:      data.Concentration,
		UpdatedAt:          data.UpdatedAt,
	}
}

func fromProfileDomain(data *entity.AcademicProfile) *model.AcademicProfileModel {
	if data == nil {
		return nil
	}

	return &model.AcademicProfileModel{
		AccountID:          data.AccountID,
		EnrollmentYear:     data.EnrollmentYear,
		GraduationYear:     data.GraduationYear,
		EnrollmentSemester: fromSemesterDomain(data.EnrollmentSemester),
		GraduationSemester: fromSemesterDomain(data.GraduationSemester),
		Major:              data.Major,
		Minor:              data.Minor,
		Concentration:      data.Concentration,
	}
}

func toSemesterDomain(data *string) *entity.Semester {
	if data == nil {
		return nil
	}

	semester := entity.Semester(*data)

	return &semester
}

func fromSemesterDomain(data *entity.Semester) *string {
	if data == nil {
		return nil
	}

	value := data.String()

	return &value
}
