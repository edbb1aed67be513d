// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"helios/config"
	deliverycontext "helios/internal/delivery/context"
	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/domain/service"
	"helios/internal/domain/validation"
	"helios/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DefaultListLimit bounds a page when the caller does not supply a limit.
const DefaultListLimit = 100

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager      repository.TransactionManager
	hasher         service.PasswordHasher
	passwordPolicy validation.PasswordPolicy
	logger         *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	policy := validation.DefaultPasswordPolicy()
	if params.Config != nil && params.Config.PasswordPolicy != nil {
		policy = toPasswordPolicy(params.Config.PasswordPolicy, policy)
	}

	return &accountService{
		txManager:      params.TxManager,
		hasher:         params.Hasher,
		passwordPolicy: policy,
		logger:         params.Logger,
	}
}

// toPasswordPolicy overlays configured complexity requirements on the
// defaults. Zero lengths keep their default values.
func toPasswordPolicy(cfg *config.PasswordPolicyConfig, policy validation.PasswordPolicy) validation.PasswordPolicy {
	if cfg.MinLength > 0 {
		policy.MinLength = cfg.MinLength
	}
	if cfg.MaxLength > 0 {
		policy.MaxLength = cfg.MaxLength
	}
	policy.RequireUppercase = cfg.RequireUppercase
	policy.RequireLowercase = cfg.RequireLowercase
	policy.RequireNumbers = cfg.RequireNumbers

	return policy
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterAccountInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	if err := srv.validateRegistration(input); err != nil {
		return nil, err
	}

	var registered *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if err := srv.checkUniqueness(ctx, accountRepo, input.Username, input.Email); err != nil {
			return err
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		account := buildNewAccountEntity(input, hash)
		if err := accountRepo.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}

		registered = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", registered.ID))

	return toAccountOutput(registered), nil
}

// Authenticate verifies a username/password pair. A missing account and a
// wrong password are indistinguishable to the caller.
func (srv *accountService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	var hash string
	found := false
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := repoFactory.AccountRepo().FindByUsername(ctx, username)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to find account by username")
		}

		hash = account.PasswordHash
		found = true

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute authentication transaction", slog.String("username", username), slog.Any("error", err))

		return false, errors.Wrap(err, "failed to execute authentication transaction")
	}

	if !found {
		srv.log(ctx).Debug("Authentication rejected", slog.String("username", username))

		return false, nil
	}

	ok := srv.hasher.Check(password, hash)
	if !ok {
		srv.log(ctx).Debug("Authentication rejected", slog.String("username", username))
	}

	return ok, nil
}

// Get retrieves a single account by ID.
func (srv *accountService) Get(ctx context.Context, id uuid.UUID) (*usecase.AccountOutput, error) {
	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindByID(ctx, id)
		if err != nil {
			return translateLookupError(err, "failed to find account by ID")
		}

		account = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return toAccountOutput(account), nil
}

// List retrieves every account, newest first.
func (srv *accountService) List(ctx context.Context) ([]*usecase.AccountOutput, error) {
	var accounts []*entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list accounts")
		}

		accounts = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account listing transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account listing transaction")
	}

	return toAccountOutputs(accounts), nil
}

// ListPage retrieves a bounded page of accounts, newest first. A non-positive
// limit falls back to DefaultListLimit and a negative skip is clamped to zero.
func (srv *accountService) ListPage(ctx context.Context, skip, limit int) ([]*usecase.AccountOutput, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var accounts []*entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindPage(ctx, skip, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list account page")
		}

		accounts = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account page transaction", slog.Int("skip", skip), slog.Int("limit", limit), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account page transaction")
	}

	return toAccountOutputs(accounts), nil
}

// Update applies a partial update inside a single transaction. Fields that are
// nil in the input keep their stored values.
func (srv *accountService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateAccountInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Info("Starting account update", slog.Any("accountID", id))

	if err := srv.validateUpdateFields(input); err != nil {
		return nil, err
	}

	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, id)
		if err != nil {
			return translateLookupError(err, "failed to find account by ID")
		}

		if err := srv.applyAccountUpdate(ctx, accountRepo, account, input); err != nil {
			return err
		}

		account.UpdatedAt = time.Now()
		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account")
		}

		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account update transaction", slog.Any("accountID", id), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Account update completed", slog.Any("accountID", id))

	return toAccountOutput(updated), nil
}

// Delete removes an account together with its academic profile.
func (srv *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Starting account deletion", slog.Any("accountID", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.AccountRepo().Delete(ctx, id); err != nil {
			return translateLookupError(err, "failed to delete account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account deletion transaction", slog.Any("accountID", id), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Account deletion completed", slog.Any("accountID", id))

	return nil
}

// --- registration helpers ---

func (srv *accountService) validateRegistration(input *usecase.RegisterAccountInput) error {
	if err := validation.Username(input.Username); err != nil {
		return err
	}
	if err := validation.Email(input.Email); err != nil {
		return err
	}
	if err := validation.Password(input.Password, srv.passwordPolicy); err != nil {
		return err
	}
	if input.Permission != "" {
		if err := validation.Permission(input.Permission); err != nil {
			return err
		}
		if entity.Permission(input.Permission) != entity.PermissionUser {
			return domainerrors.ErrValidationFailed.WrapMessage("permission cannot be elevated at registration")
		}
	}
	if input.Profile != nil {
		if err := validateProfileInput(input.Profile); err != nil {
			return err
		}
	}

	return nil
}

func (srv *accountService) checkUniqueness(ctx context.Context, accountRepo repository.AccountRepository, username, email string) error {
	taken, err := accountRepo.UsernameExists(ctx, username)
	if err != nil {
		return errors.Wrap(err, "failed to check username uniqueness")
	}
	if taken {
		return domainerrors.ErrUsernameTaken
	}

	taken, err = accountRepo.EmailExists(ctx, email)
	if err != nil {
		return errors.Wrap(err, "failed to check email uniqueness")
	}
	if taken {
		return domainerrors.ErrEmailTaken
	}

	return nil
}

func buildNewAccountEntity(input *usecase.RegisterAccountInput, hash string) *entity.Account {
	now := time.Now()
	account := &entity.Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Permission:   entity.PermissionUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Profile != nil {
		account.AcademicProfile = buildProfileEntity(account.ID, input.Profile, now)
	}

	return account
}

func buildProfileEntity(accountID uuid.UUID, input *usecase.ProfileInput, now time.Time) *entity.AcademicProfile {
	profile := &entity.AcademicProfile{
		AccountID:      accountID,
		EnrollmentYear: input.EnrollmentYear,
		GraduationYear: input.GraduationYear,
		Major:          input.Major,
		Minor:          input.Minor,
		Concentration:  input.Concentration,
		UpdatedAt:      now,
	}
	if input.EnrollmentSemester != "" {
		semester := entity.Semester(input.EnrollmentSemester)
		profile.EnrollmentSemester = &semester
	}
	if input.GraduationSemester != "" {
		semester := entity.Semester(input.GraduationSemester)
		profile.GraduationSemester = &semester
	}

	return profile
}

func validateProfileInput(input *usecase.ProfileInput) error {
	if input.Major == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("major is required")
	}
	if err := validation.YearRange(input.EnrollmentYear, "enrollment year"); err != nil {
		return err
	}
	if err := validation.YearRange(input.GraduationYear, "graduation year"); err != nil {
		return err
	}
	if err := validation.YearOrdering(input.EnrollmentYear, input.GraduationYear); err != nil {
		return err
	}
	if input.EnrollmentSemester != "" {
		if err := validation.Semester(input.EnrollmentSemester); err != nil {
			return err
		}
	}
	if input.GraduationSemester != "" {
		if err := validation.Semester(input.GraduationSemester); err != nil {
			return err
		}
	}

	return nil
}

// --- update helpers ---

func (srv *accountService) validateUpdateFields(input *usecase.UpdateAccountInput) error {
	if input.Username != nil {
		if err := validation.Username(*input.Username); err != nil {
			return err
		}
	}
	if input.Email != nil {
		if err := validation.Email(*input.Email); err != nil {
			return err
		}
	}
	if input.Password != nil {
		if err := validation.Password(*input.Password, srv.passwordPolicy); err != nil {
			return err
		}
	}
	if input.Profile != nil {
		if input.Profile.EnrollmentSemester != nil && *input.Profile.EnrollmentSemester != "" {
			if err := validation.Semester(*input.Profile.EnrollmentSemester); err != nil {
				return err
			}
		}
		if input.Profile.GraduationSemester != nil && *input.Profile.GraduationSemester != "" {
			if err := validation.Semester(*input.Profile.GraduationSemester); err != nil {
				return err
			}
		}
	}

	return nil
}

func (srv *accountService) applyAccountUpdate(ctx context.Context, accountRepo repository.AccountRepository, account *entity.Account, input *usecase.UpdateAccountInput) error {
	if input.Username != nil && *input.Username != account.Username {
		taken, err := accountRepo.UsernameExists(ctx, *input.Username)
		if err != nil {
			return errors.Wrap(err, "failed to check username uniqueness")
		}
		if taken {
			return domainerrors.ErrUsernameTaken
		}
		account.Username = *input.Username
	}

	if input.Email != nil && *input.Email != account.Email {
		taken, err := accountRepo.EmailExists(ctx, *input.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check email uniqueness")
		}
		if taken {
			return domainerrors.ErrEmailTaken
		}
		account.Email = *input.Email
	}

	if input.Password != nil {
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}
		account.PasswordHash = hash
	}

	if input.Profile != nil {
		if err := applyProfileUpdate(account, input.Profile); err != nil {
			return err
		}
	}

	return nil
}

// applyProfileUpdate merges the set fields into the stored profile, then
// re-validates the merged years so a one-sided change cannot break ordering.
func applyProfileUpdate(account *entity.Account, input *usecase.UpdateProfileInput) error {
	profile := account.AcademicProfile
	if profile == nil {
		if input.EnrollmentYear == nil || input.GraduationYear == nil || input.Major == nil {
			return domainerrors.ErrValidationFailed.WrapMessage("creating a profile requires enrollment year, graduation year and major")
		}
		profile = &entity.AcademicProfile{AccountID: account.ID}
		account.AcademicProfile = profile
	}

	if input.EnrollmentYear != nil {
		profile.EnrollmentYear = *input.EnrollmentYear
	}
	if input.GraduationYear != nil {
		profile.GraduationYear = *input.GraduationYear
	}
	if input.Major != nil {
		if *input.Major == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("major cannot be empty")
		}
		profile.Major = *input.Major
	}
	if input.Minor != nil {
		profile.Minor = *input.Minor
	}
	if input.Concentration != nil {
		profile.Concentration = *input.Concentration
	}
	if input.EnrollmentSemester != nil {
		profile.EnrollmentSemester = toSemesterPtr(*input.EnrollmentSemester)
	}
	if input.GraduationSemester != nil {
		profile.GraduationSemester = toSemesterPtr(*input.GraduationSemester)
	}

	if err := validation.YearRange(profile.EnrollmentYear, "enrollment year"); err != nil {
		return err
	}
	if err := validation.YearRange(profile.GraduationYear, "graduation year"); err != nil {
		return err
	}
	if err := validation.YearOrdering(profile.EnrollmentYear, profile.GraduationYear); err != nil {
		return err
	}

	profile.UpdatedAt = time.Now()

	return nil
}

func toSemesterPtr(value string) *entity.Semester {
	if value == "" {
		return nil
	}
	semester := entity.Semester(value)

	return &semester
}

// translateLookupError maps the repository's not-found sentinel onto the
// domain error the delivery layer renders as 404.
func translateLookupError(err error, message string) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return domainerrors.ErrAccountNotFound
	}

	return errors.Wrap(err, message)
}

// --- output mapping ---

func toAccountOutput(account *entity.Account) *usecase.AccountOutput {
	output := &usecase.AccountOutput{
		ID:         account.ID,
		Username:   account.Username,
		Email:      account.Email,
		Permission: account.Permission.String(),
		CreatedAt:  account.CreatedAt,
	}
	if account.AcademicProfile != nil {
		output.Profile = toProfileOutput(account.AcademicProfile)
	}

	return output
}

func toProfileOutput(profile *entity.AcademicProfile) *usecase.ProfileOutput {
	output := &usecase.ProfileOutput{
		EnrollmentYear: profile.EnrollmentYear,
		GraduationYear: profile.GraduationYear,
		Major:          profile.Major,
		Minor:          profile.Minor,
		Concentration:  profile.Concentration,
	}
	if profile.EnrollmentSemester != nil {
		output.EnrollmentSemester = profile.EnrollmentSemester.String()
	}
	if profile.GraduationSemester != nil {
		output.GraduationSemester = profile.GraduationSemester.String()
	}

	return output
}

func toAccountOutputs(accounts []*entity.Account) []*usecase.AccountOutput {
	outputs := make([]*usecase.AccountOutput, 0, len(accounts))
	for _, account := range accounts {
		outputs = append(outputs, toAccountOutput(account))
	}

	return outputs
}
