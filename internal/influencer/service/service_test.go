package service_test

import (
	"context"
	"errors"
	"testing"

	commonerrors "github.com/influmatch/backend/internal/common/errors"
	"github.com/influmatch/backend/internal/common/logger"
	"github.com/influmatch/backend/internal/influencer/domain"
	influencerrepo "github.com/influmatch/backend/internal/influencer/repository"
	"github.com/influmatch/backend/internal/influencer/service"
)

type mockRepo struct {
	createInfluencerFunc    func(ctx context.Context, inf domain.Influencer) error
	findInfluencerByIDFunc  func(ctx context.Context, id domain.ID) (domain.Influencer, error)
	listInfluencersFunc     func(ctx context.Context, limit int) ([]domain.Influencer, error)
	createSocialMediaFunc   func(ctx context.Context, sm domain.SocialMedia) error
	listSocialMediaByIDFunc func(ctx context.Context, influencerID domain.ID) ([]domain.SocialMedia, error)
}

func (m *mockRepo) CreateInfluencer(ctx context.Context, inf domain.Influencer) error {
	if m.createInfluencerFunc != nil {
		return m.createInfluencerFunc(ctx, inf)
	}
	return nil
}

func (m *mockRepo) FindInfluencerByID(ctx context.Context, id domain.ID) (domain.Influencer, error) {
	if m.findInfluencerByIDFunc != nil {
		return m.findInfluencerByIDFunc(ctx, id)
	}
	return domain.Influencer{}, influencerrepo.ErrInfluencerNotFound
}

func (m *mockRepo) ListInfluencers(ctx context.Context, limit int) ([]domain.Influencer, error) {
	if m.listInfluencersFunc != nil {
		return m.listInfluencersFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockRepo) CreateSocialMedia(ctx context.Context, sm domain.SocialMedia) error {
	if m.createSocialMediaFunc != nil {
		return m.createSocialMediaFunc(ctx, sm)
	}
	return nil
}

func (m *mockRepo) ListSocialMediaByInfluencer(ctx context.Context, influencerID domain.ID) ([]domain.SocialMedia, error) {
	if m.listSocialMediaByIDFunc != nil {
		return m.listSocialMediaByIDFunc(ctx, influencerID)
	}
	return nil, nil
}

type mockIDGenerator struct {
	id string
}

func (m *mockIDGenerator) NewID() (string, error) {
	return m.id, nil
}

const testUUID = "550e8400-e29b-41d4-a716-446655440000"

func setupService(t *testing.T, repo *mockRepo) *service.InfluencerService {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	return service.NewInfluencerService(repo, &mockIDGenerator{id: testUUID}, log)
}

func TestCreateInfluencer_Success(t *testing.T) {
	var created domain.Influencer
	repo := &mockRepo{
		createInfluencerFunc: func(ctx context.Context, inf domain.Influencer) error {
			created = inf
			return nil
		},
	}
	svc := setupService(t, repo)

	imageURL := "https://cdn.example.com/alice.png"
	inf, err := svc.CreateInfluencer(context.Background(), service.CreateInfluencerInput{
		Name:     "Alice",
		ImageURL: &imageURL,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if inf.ID != domain.ID(testUUID) {
		t.Errorf("expected id %s, got %s", testUUID, inf.ID)
	}
	if created.Name != "Alice" {
		t.Errorf("expected stored name Alice, got %s", created.Name)
	}
}

func TestCreateInfluencer_Validation(t *testing.T) {
	svc := setupService(t, &mockRepo{})

	badURL := "not-a-url"
	testCases := []struct {
		name  string
		input service.CreateInfluencerInput
	}{
		{"missing name", service.CreateInfluencerInput{}},
		{"bad image url", service.CreateInfluencerInput{Name: "Alice", ImageURL: &badURL}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateInfluencer(context.Background(), tc.input)

			domainErr, ok := commonerrors.AsDomainError(err)
			if !ok || domainErr.Code() != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED, got %v", err)
			}
		})
	}
}

func TestGetInfluencer_NotFound(t *testing.T) {
	svc := setupService(t, &mockRepo{})

	_, err := svc.GetInfluencer(context.Background(), testUUID)
	if !errors.Is(err, commonerrors.ErrInfluencerNotFound) {
		t.Fatalf("expected ErrInfluencerNotFound, got %v", err)
	}
}

func TestAddSocialMedia_Success(t *testing.T) {
	repo := &mockRepo{
		findInfluencerByIDFunc: func(ctx context.Context, id domain.ID) (domain.Influencer, error) {
			return domain.Influencer{ID: id, Name: "Alice"}, nil
		},
	}
	svc := setupService(t, repo)

	sm, err := svc.AddSocialMedia(context.Background(), service.AddSocialMediaInput{
		InfluencerID: testUUID,
		Platform:     "Instagram",
		URL:          "https://instagram.com/alice",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sm.InfluencerID != domain.ID(testUUID) {
		t.Errorf("expected influencer id %s, got %s", testUUID, sm.InfluencerID)
	}
}

func TestAddSocialMedia_UnknownInfluencer(t *testing.T) {
	svc := setupService(t, &mockRepo{})

	_, err := svc.AddSocialMedia(context.Background(), service.AddSocialMediaInput{
		InfluencerID: testUUID,
		Platform:     "Instagram",
		URL:          "https://instagram.com/alice",
	})
	if !errors.Is(err, commonerrors.ErrInfluencerNotFound) {
		t.Fatalf("expected ErrInfluencerNotFound, got %v", err)
	}
}

func TestAddSocialMedia_Validation(t *testing.T) {
	repo := &mockRepo{
		findInfluencerByIDFunc: func(ctx context.Context, id domain.ID) (domain.Influencer, error) {
			return domain.Influencer{ID: id}, nil
		},
	}
	svc := setupService(t, repo)

	negative := int64(-1)
	testCases := []struct {
		name  string
		input service.AddSocialMediaInput
	}{
		{"bad influencer id", service.AddSocialMediaInput{InfluencerID: "nope", Platform: "Instagram", URL: "https://x.com/a"}},
		{"unknown platform", service.AddSocialMediaInput{InfluencerID: testUUID, Platform: "MySpace", URL: "https://x.com/a"}},
		{"bad url", service.AddSocialMediaInput{InfluencerID: testUUID, Platform: "Instagram", URL: "nope"}},
		{"negative followers", service.AddSocialMediaInput{InfluencerID: testUUID, Platform: "Instagram", URL: "https://x.com/a", FollowersCount: &negative}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddSocialMedia(context.Background(), tc.input)

			domainErr, ok := commonerrors.AsDomainError(err)
			if !ok || domainErr.Code() != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED, got %v", err)
			}
		})
	}
}

func TestListInfluencers_StoreError(t *testing.T) {
	repo := &mockRepo{
		listInfluencersFunc: func(ctx context.Context, limit int) ([]domain.Influencer, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := setupService(t, repo)

	_, err := svc.ListInfluencers(context.Background(), 20)
	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.Code() != "DATABASE_ERROR" {
		t.Fatalf("expected DATABASE_ERROR, got %v", err)
	}
}
