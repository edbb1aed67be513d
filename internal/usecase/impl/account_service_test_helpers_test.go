package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"helios/config"
	"helios/internal/domain/repository"
	mockRepo "helios/internal/mocks/repository"
	mockSvc "helios/internal/mocks/service"
	"helios/internal/usecase"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 12,
		},
		PasswordPolicy: &config.PasswordPolicyConfig{
			MinLength:        8,
			MaxLength:        255,
			RequireUppercase: true,
			RequireNumbers:   true,
		},
	}
}

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	txManager   *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewAccountService(AccountServiceParams{
		TxManager: txManager,
		Hasher:    hasher,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:     service,
		txManager:   txManager,
		accountRepo: accountRepo,
		hasher:      hasher,
	}
}

// expectTransaction wires the transaction manager mock to run the callback
// against a factory handing out the fixture's account repository, propagating
// the callback's error like the real manager does.
func (f accountServiceFixtures) expectTransaction(t *testing.T, ctx context.Context) {
	t.Helper()

	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().AccountRepo().Return(f.accountRepo)

			return fn(factory)
		})
}

func validRegisterInput() *usecase.RegisterAccountInput {
	return &usecase.RegisterAccountInput{
		Username: "johndoe",
		Email:    "john@example.com",
		Password: "Password123",
	}
}

func stringPtr(value string) *string { return &value }

func intPtr(value int) *int { return &value }
