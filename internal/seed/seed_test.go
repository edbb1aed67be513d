package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"helios/config"
	"helios/internal/domain/entity"
	"helios/internal/domain/repository"
	mockRepo "helios/internal/mocks/repository"
	mockSvc "helios/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSeedParams(t *testing.T, adminSeed *config.AdminSeedConfig) (Params, *mockRepo.MockTransactionManager, *mockRepo.MockAccountRepository, *mockSvc.MockPasswordHasher) {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	params := Params{
		Config:    &config.Config{AdminSeed: adminSeed},
		TxManager: txManager,
		Hasher:    hasher,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return params, txManager, accountRepo, hasher
}

func expectSeedTransaction(t *testing.T, txManager *mockRepo.MockTransactionManager, accountRepo *mockRepo.MockAccountRepository) {
	t.Helper()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().AccountRepo().Return(accountRepo)

			return fn(factory)
		})
}

func TestSeedAdmin_CreatesMissingAdmin(t *testing.T) {
	params, txManager, accountRepo, hasher := newSeedParams(t, &config.AdminSeedConfig{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "AdminSecret1",
	})

	expectSeedTransaction(t, txManager, accountRepo)
	accountRepo.EXPECT().UsernameExists(mock.Anything, "admin").Return(false, nil)
	hasher.EXPECT().Hash("AdminSecret1").Return("hashed_admin", nil)
	accountRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.Account")).
		Run(func(_ context.Context, account *entity.Account) {
			assert.Equal(t, entity.PermissionAdmin, account.Permission)
			assert.Equal(t, "hashed_admin", account.PasswordHash)
		}).
		Return(nil)

	require.NoError(t, seedAdmin(context.Background(), params))
}

func TestSeedAdmin_SkipsExistingAdmin(t *testing.T) {
	params, txManager, accountRepo, _ := newSeedParams(t, &config.AdminSeedConfig{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "AdminSecret1",
	})

	expectSeedTransaction(t, txManager, accountRepo)
	accountRepo.EXPECT().UsernameExists(mock.Anything, "admin").Return(true, nil)

	require.NoError(t, seedAdmin(context.Background(), params))
	accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeedAdmin_SkipsIncompleteConfig(t *testing.T) {
	params, txManager, _, _ := newSeedParams(t, &config.AdminSeedConfig{
		Username: "admin",
	})

	require.NoError(t, seedAdmin(context.Background(), params))
	txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
