package handler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/GoArmGo/ShopApp/internal/domain"
	"github.com/GoArmGo/ShopApp/internal/session"
	"github.com/GoArmGo/ShopApp/internal/usecase"
)

// fakeAccountUseCase реализует usecase.AccountUseCase для тестов обработчиков
type fakeAccountUseCase struct {
	loginUser   *domain.User
	loginErr    error
	registerErr error
	registered  []*domain.User
	loginCalls  int
}

func (f *fakeAccountUseCase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginUser, nil
}

func (f *fakeAccountUseCase) Register(ctx context.Context, user *domain.User) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, user)
	return nil
}

// fakeProductUseCase реализует usecase.ProductUseCase для тестов обработчиков
type fakeProductUseCase struct {
	products    []domain.Product
	listCalls   int
	added       []usecase.ProductInput
	updated     []usecase.ProductInput
	deletedIDs  []int64
	listErr     error
	mutationErr error
}

func (f *fakeProductUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeProductUseCase) AddProduct(ctx context.Context, input usecase.ProductInput, upload *usecase.Upload) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	f.added = append(f.added, input)
	return nil
}

func (f *fakeProductUseCase) UpdateProduct(ctx context.Context, input usecase.ProductInput, upload *usecase.Upload) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	f.updated = append(f.updated, input)
	return nil
}

func (f *fakeProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSessionStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore("test_session", 30*time.Minute, testLogger())
}
