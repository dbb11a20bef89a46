package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/influmatch/backend/internal/auth/service"
	"github.com/influmatch/backend/internal/common/clock"
	commonerrors "github.com/influmatch/backend/internal/common/errors"
	"github.com/influmatch/backend/internal/common/logger"
	userdomain "github.com/influmatch/backend/internal/user/domain"
	userrepo "github.com/influmatch/backend/internal/user/repository"
)

func setupAuthService(t *testing.T, repo userrepo.Repository) (*service.AuthService, *mockHasher, *mockIDGenerator) {
	t.Helper()

	hasher := &mockHasher{}
	idGenerator := &mockIDGenerator{}
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	issuer, err := service.NewTokenIssuer(testTokenSecret, 30*time.Minute, clk)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}

	svc := service.NewAuthService(service.AuthServiceDeps{
		Repo:        repo,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Issuer:      issuer,
		Log:         log,
	})

	return svc, hasher, idGenerator
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := &mockUserRepo{}
	svc, _, idGen := setupAuthService(t, repo)

	idGen.newIDFunc = func() (string, error) {
		return "user-123", nil
	}

	var created userdomain.User
	repo.createFunc = func(ctx context.Context, user userdomain.User) error {
		created = user
		return nil
	}

	err := svc.Signup(context.Background(), service.SignupInput{
		UserName: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.ID != "user-123" {
		t.Errorf("expected id user-123, got %s", created.ID)
	}
	if created.UserName != "alice" {
		t.Errorf("expected user_name alice, got %s", created.UserName)
	}
	if created.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", created.Email)
	}
	if created.PasswordHash == "password123" {
		t.Error("plaintext password stored instead of hash")
	}
	if created.PasswordHash != "hashed:password123" {
		t.Errorf("expected hash output stored, got %s", created.PasswordHash)
	}
}

func TestAuthService_Signup_DuplicateEmail_Lookup(t *testing.T) {
	repo := &mockUserRepo{}
	svc, _, _ := setupAuthService(t, repo)

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{ID: "existing", Email: email}, nil
	}

	var createCalled bool
	repo.createFunc = func(ctx context.Context, user userdomain.User) error {
		createCalled = true
		return nil
	}

	err := svc.Signup(context.Background(), service.SignupInput{
		UserName: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if createCalled {
		t.Error("expected no store write on the duplicate path")
	}
}

func TestAuthService_Signup_DuplicateEmail_InsertRace(t *testing.T) {
	repo := &mockUserRepo{}
	svc, _, _ := setupAuthService(t, repo)

	repo.createFunc = func(ctx context.Context, user userdomain.User) error {
		return userrepo.ErrEmailAlreadyExists
	}

	err := svc.Signup(context.Background(), service.SignupInput{
		UserName: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.Code() != "EMAIL_ALREADY_EXISTS" {
		t.Fatalf("expected EMAIL_ALREADY_EXISTS, got %v", err)
	}
	if domainErr.HTTPStatus() != 400 {
		t.Errorf("expected status 400, got %d", domainErr.HTTPStatus())
	}
}

func TestAuthService_Signup_ValidationError(t *testing.T) {
	svc, _, _ := setupAuthService(t, &mockUserRepo{})

	testCases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing user_name", "", "alice@example.com", "password123"},
		{"missing email", "alice", "", "password123"},
		{"invalid email", "alice", "not-an-email", "password123"},
		{"missing password", "alice", "alice@example.com", ""},
		{"short password", "alice", "alice@example.com", "short"},
		{"long password", "alice", "alice@example.com", string(make([]byte, 80))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Signup(context.Background(), service.SignupInput{
				UserName: tc.userName,
				Email:    tc.email,
				Password: tc.password,
			})

			domainErr, ok := commonerrors.AsDomainError(err)
			if !ok || domainErr.Code() != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED, got %v", err)
			}
		})
	}
}

func TestAuthService_Signup_StoreError(t *testing.T) {
	repo := &mockUserRepo{}
	svc, _, _ := setupAuthService(t, repo)

	repo.createFunc = func(ctx context.Context, user userdomain.User) error {
		return errors.New("connection refused")
	}

	err := svc.Signup(context.Background(), service.SignupInput{
		UserName: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.Code() != "DATABASE_ERROR" {
		t.Fatalf("expected DATABASE_ERROR, got %v", err)
	}
	if domainErr.HTTPStatus() != 500 {
		t.Errorf("expected status 500, got %d", domainErr.HTTPStatus())
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := &mockUserRepo{}
	svc, _, _ := setupAuthService(t, repo)

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{
			ID:           "user-123",
			Email:        email,
			PasswordHash: "hashed:password123",
		}, nil
	}

	token, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
}

func TestAuthService_Login_NoEnumerationLeak(t *testing.T) {
	unknownEmailRepo := &mockUserRepo{}

	wrongPasswordRepo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{
				ID:           "user-123",
				Email:        email,
				PasswordHash: "hashed:other-password",
			}, nil
		},
	}

	repos := map[string]*mockUserRepo{
		"unknown email":  unknownEmailRepo,
		"wrong password": wrongPasswordRepo,
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			svc, _, _ := setupAuthService(t, repo)

			_, err := svc.Login(context.Background(), service.LoginInput{
				Email:    "alice@example.com",
				Password: "password123",
			})

			if !errors.Is(err, service.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}

			domainErr, _ := commonerrors.AsDomainError(err)
			if domainErr.Code() != "INVALID_CREDENTIALS" {
				t.Errorf("expected INVALID_CREDENTIALS, got %s", domainErr.Code())
			}
			if domainErr.HTTPStatus() != 401 {
				t.Errorf("expected status 401, got %d", domainErr.HTTPStatus())
			}
		})
	}
}

func TestAuthService_Login_MalformedStoredHashDenies(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{ID: "user-123", Email: email, PasswordHash: "corrupt"}, nil
		},
	}
	svc, hasher, _ := setupAuthService(t, repo)

	hasher.compareFunc = func(hash, password string) error {
		return errors.New("hashedSecret too short to be a bcrypted password")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected fail-closed ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{}, errors.New("connection refused")
		},
	}
	svc, _, _ := setupAuthService(t, repo)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.Code() != "DATABASE_ERROR" {
		t.Fatalf("expected DATABASE_ERROR, got %v", err)
	}
}

func TestAuthService_Signup_ConcurrentSameEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc, _, idGen := setupAuthService(t, repo)

	var seq sync.Mutex
	next := 0
	idGen.newIDFunc = func() (string, error) {
		seq.Lock()
		defer seq.Unlock()
		next++
		return string(rune('a' + next)), nil
	}

	const workers = 10

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Signup(context.Background(), service.SignupInput{
				UserName: "alice",
				Email:    "alice@example.com",
				Password: "password123",
			})
		}()
	}

	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, service.ErrEmailTaken):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if duplicates != workers-1 {
		t.Errorf("expected %d duplicates, got %d", workers-1, duplicates)
	}
	if repo.count() != 1 {
		t.Errorf("expected exactly 1 stored record, got %d", repo.count())
	}
}
