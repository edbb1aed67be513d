package impl

import (
	"context"
	"testing"
	"time"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/domain/repository"
	"helios/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().UsernameExists(ctx, input.Username).Return(false, nil)
	fx.accountRepo.EXPECT().EmailExists(ctx, input.Email).Return(false, nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			assert.NotEqual(t, uuid.Nil, account.ID)
			assert.Equal(t, "hashed_password", account.PasswordHash)
			assert.Equal(t, entity.PermissionUser, account.Permission)
			assert.Nil(t, account.AcademicProfile)
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Username, output.Username)
	assert.Equal(t, input.Email, output.Email)
	assert.Equal(t, "user", output.Permission)
	assert.Nil(t, output.Profile)
}

func TestAccountService_Register_WithProfile(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()
	input.Profile = &usecase.ProfileInput{
		EnrollmentYear:     2022,
		GraduationYear:     2026,
		EnrollmentSemester: "FALL",
		GraduationSemester: "SPRING",
		Major:              "Computer Science",
		Minor:              "Mathematics",
	}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().UsernameExists(ctx, input.Username).Return(false, nil)
	fx.accountRepo.EXPECT().EmailExists(ctx, input.Email).Return(false, nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			require.NotNil(t, account.AcademicProfile)
			assert.Equal(t, account.ID, account.AcademicProfile.AccountID)
			assert.Equal(t, 2022, account.AcademicProfile.EnrollmentYear)
			require.NotNil(t, account.AcademicProfile.EnrollmentSemester)
			assert.Equal(t, entity.SemesterFall, *account.AcademicProfile.EnrollmentSemester)
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output.Profile)
	assert.Equal(t, "Computer Science", output.Profile.Major)
	assert.Equal(t, "FALL", output.Profile.EnrollmentSemester)
	assert.Equal(t, "SPRING", output.Profile.GraduationSemester)
}

func TestAccountService_Register_UsernameTaken(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().UsernameExists(ctx, input.Username).Return(true, nil)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	fx.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().UsernameExists(ctx, input.Username).Return(false, nil)
	fx.accountRepo.EXPECT().EmailExists(ctx, input.Email).Return(true, nil)

	output, err := fx.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	fx := createTestAccountService(t)

	input := validRegisterInput()
	input.Password = "alllowercase1"

	output, err := fx.service.Register(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAccountService_Register_ElevatedPermissionRejected(t *testing.T) {
	fx := createTestAccountService(t)

	for _, permission := range []string{"admin", "moderator"} {
		input := validRegisterInput()
		input.Permission = permission

		output, err := fx.service.Register(context.Background(), input)

		require.Error(t, err, permission)
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAccountService_Register_ExplicitUserPermissionAccepted(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := validRegisterInput()
	input.Permission = "user"

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().UsernameExists(ctx, input.Username).Return(false, nil)
	fx.accountRepo.EXPECT().EmailExists(ctx, input.Email).Return(false, nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.accountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "user", output.Permission)
}

func TestAccountService_Register_InvalidProfileYears(t *testing.T) {
	fx := createTestAccountService(t)

	input := validRegisterInput()
	input.Profile = &usecase.ProfileInput{
		EnrollmentYear: 2026,
		GraduationYear: 2022,
		Major:          "Physics",
	}

	output, err := fx.service.Register(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAccountService_Authenticate_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           uuid.New(),
		Username:     "johndoe",
		PasswordHash: "stored_hash",
	}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByUsername(ctx, "johndoe").Return(account, nil)
	fx.hasher.EXPECT().Check("Password123", "stored_hash").Return(true)

	ok, err := fx.service.Authenticate(ctx, "johndoe", "Password123")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccountService_Authenticate_UnknownUsername(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrAccountNotFound)

	ok, err := fx.service.Authenticate(ctx, "ghost", "Password123")

	require.NoError(t, err)
	assert.False(t, ok)
	fx.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestAccountService_Authenticate_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           uuid.New(),
		Username:     "johndoe",
		PasswordHash: "stored_hash",
	}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByUsername(ctx, "johndoe").Return(account, nil)
	fx.hasher.EXPECT().Check("WrongPass1", "stored_hash").Return(false)

	ok, err := fx.service.Authenticate(ctx, "johndoe", "WrongPass1")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountService_Get_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()
	account := &entity.Account{
		ID:           id,
		Username:     "johndoe",
		Email:        "john@example.com",
		PasswordHash: "stored_hash",
		Permission:   entity.PermissionUser,
		CreatedAt:    time.Now(),
	}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(account, nil)

	output, err := fx.service.Get(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, id, output.ID)
	assert.Equal(t, "johndoe", output.Username)
}

func TestAccountService_Get_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Get(ctx, id)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_List_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accounts := []*entity.Account{
		{ID: uuid.New(), Username: "newer"},
		{ID: uuid.New(), Username: "older"},
	}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindAll(ctx).Return(accounts, nil)

	outputs, err := fx.service.List(ctx)

	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, "newer", outputs[0].Username)
	assert.Equal(t, "older", outputs[1].Username)
}

func TestAccountService_ListPage_ClampsArguments(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindPage(ctx, 0, DefaultListLimit).Return(nil, nil)

	outputs, err := fx.service.ListPage(ctx, -5, 0)

	require.NoError(t, err)
	assert.Empty(t, outputs)
}

func TestAccountService_ListPage_PassesWindow(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	accounts := []*entity.Account{{ID: uuid.New(), Username: "paged"}}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindPage(ctx, 20, 10).Return(accounts, nil)

	outputs, err := fx.service.ListPage(ctx, 20, 10)

	require.NoError(t, err)
	require.Len(t, outputs, 1)
}

func TestAccountService_Update_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()
	account := &entity.Account{
		ID:           id,
		Username:     "johndoe",
		Email:        "john@example.com",
		PasswordHash: "old_hash",
		Permission:   entity.PermissionUser,
	}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(account, nil)
	fx.accountRepo.EXPECT().UsernameExists(ctx, "janedoe").Return(false, nil)
	fx.hasher.EXPECT().Hash("NewSecret1").Return("new_hash", nil)
	fx.accountRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, updated *entity.Account) {
			assert.Equal(t, "janedoe", updated.Username)
			assert.Equal(t, "john@example.com", updated.Email)
			assert.Equal(t, "new_hash", updated.PasswordHash)
		}).
		Return(nil)

	output, err := fx.service.Update(ctx, id, &usecase.UpdateAccountInput{
		Username: stringPtr("janedoe"),
		Password: stringPtr("NewSecret1"),
	})

	require.NoError(t, err)
	assert.Equal(t, "janedoe", output.Username)
	fx.accountRepo.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
}

func TestAccountService_Update_SameUsernameSkipsUniquenessCheck(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()
	account := &entity.Account{ID: id, Username: "johndoe", Email: "john@example.com"}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(account, nil)
	fx.accountRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

	_, err := fx.service.Update(ctx, id, &usecase.UpdateAccountInput{
		Username: stringPtr("johndoe"),
	})

	require.NoError(t, err)
	fx.accountRepo.AssertNotCalled(t, "UsernameExists", mock.Anything, mock.Anything)
}

func TestAccountService_Update_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()
	account := &entity.Account{ID: id, Username: "johndoe", Email: "john@example.com"}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(account, nil)
	fx.accountRepo.EXPECT().EmailExists(ctx, "taken@example.com").Return(true, nil)

	output, err := fx.service.Update(ctx, id, &usecase.UpdateAccountInput{
		Email: stringPtr("taken@example.com"),
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
	fx.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAccountService_Update_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Update(ctx, id, &usecase.UpdateAccountInput{
		Email: stringPtr("new@example.com"),
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_Update_ProfileMerge(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()
	account := &entity.Account{
		ID:       id,
		Username: "johndoe",
		Email:    "john@example.com",
		AcademicProfile: &entity.AcademicProfile{
			AccountID:      id,
			EnrollmentYear: 2022,
			GraduationYear: 2026,
			Major:          "Computer Science",
		},
	}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(account, nil)
	fx.accountRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

	output, err := fx.service.Update(ctx, id, &usecase.UpdateAccountInput{
		Profile: &usecase.UpdateProfileInput{
			GraduationYear: intPtr(2027),
			Minor:          stringPtr("Statistics"),
		},
	})

	require.NoError(t, err)
	require.NotNil(t, output.Profile)
	assert.Equal(t, 2022, output.Profile.EnrollmentYear)
	assert.Equal(t, 2027, output.Profile.GraduationYear)
	assert.Equal(t, "Statistics", output.Profile.Minor)
	assert.Equal(t, "Computer Science", output.Profile.Major)
}

func TestAccountService_Update_ProfileMergeBreaksOrdering(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()
	account := &entity.Account{
		ID:       id,
		Username: "johndoe",
		Email:    "john@example.com",
		AcademicProfile: &entity.AcademicProfile{
			AccountID:      id,
			EnrollmentYear: 2022,
			GraduationYear: 2026,
			Major:          "Computer Science",
		},
	}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(account, nil)

	output, err := fx.service.Update(ctx, id, &usecase.UpdateAccountInput{
		Profile: &usecase.UpdateProfileInput{
			GraduationYear: intPtr(2020),
		},
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAccountService_Update_ProfileCreationRequiresCoreFields(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()
	account := &entity.Account{ID: id, Username: "johndoe", Email: "john@example.com"}

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().FindByID(ctx, id).Return(account, nil)

	output, err := fx.service.Update(ctx, id, &usecase.UpdateAccountInput{
		Profile: &usecase.UpdateProfileInput{
			Minor: stringPtr("Statistics"),
		},
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAccountService_Delete_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().Delete(ctx, id).Return(nil)

	err := fx.service.Delete(ctx, id)

	require.NoError(t, err)
}

func TestAccountService_Delete_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.expectTransaction(t, ctx)
	fx.accountRepo.EXPECT().Delete(ctx, id).Return(repository.ErrAccountNotFound)

	err := fx.service.Delete(ctx, id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}
