package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	commoncrypto "github.com/influmatch/backend/internal/common/crypto"
	commonerrors "github.com/influmatch/backend/internal/common/errors"
	"github.com/influmatch/backend/internal/common/logger"
	"github.com/influmatch/backend/internal/influencer/domain"
	influencerrepo "github.com/influmatch/backend/internal/influencer/repository"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service interface {
	CreateInfluencer(ctx context.Context, input CreateInfluencerInput) (domain.Influencer, error)
	GetInfluencer(ctx context.Context, id string) (domain.Influencer, error)
	ListInfluencers(ctx context.Context, limit int) ([]domain.Influencer, error)
	AddSocialMedia(ctx context.Context, input AddSocialMediaInput) (domain.SocialMedia, error)
	ListSocialMedia(ctx context.Context, influencerID string) ([]domain.SocialMedia, error)
}

type InfluencerService struct {
	repo        influencerrepo.Repository
	idGenerator commoncrypto.IDGenerator
	log         *logger.Logger
}

func NewInfluencerService(repo influencerrepo.Repository, idGenerator commoncrypto.IDGenerator, log *logger.Logger) *InfluencerService {
	return &InfluencerService{
		repo:        repo,
		idGenerator: idGenerator,
		log:         log,
	}
}

type CreateInfluencerInput struct {
	Name     string  `validate:"required,min=1,max=128"`
	ImageURL *string `validate:"omitempty,url"`
	Score    *float64
}

type AddSocialMediaInput struct {
	InfluencerID   string `validate:"required,uuid"`
	Platform       string `validate:"required,oneof=Instagram YouTube TikTok Twitter Facebook"`
	URL            string `validate:"required,url"`
	FollowersCount *int64 `validate:"omitempty,gte=0"`
}

func (s *InfluencerService) CreateInfluencer(ctx context.Context, input CreateInfluencerInput) (domain.Influencer, error) {
	if err := validate.Struct(input); err != nil {
		return domain.Influencer{}, validationError(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Influencer{}, commonerrors.ErrInternalError.WithCause(err)
	}

	inf := domain.Influencer{
		ID:       domain.ID(id),
		Name:     input.Name,
		ImageURL: input.ImageURL,
		Score:    input.Score,
	}

	if err := s.repo.CreateInfluencer(ctx, inf); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"influencer": input.Name,
			"action":     "create_influencer_failed",
		}).Errorf("create influencer failed: %v", err)
		return domain.Influencer{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"influencer_id": string(inf.ID),
		"action":        "influencer_created",
	}).Info("influencer created")
	return inf, nil
}

func (s *InfluencerService) GetInfluencer(ctx context.Context, id string) (domain.Influencer, error) {
	inf, err := s.repo.FindInfluencerByID(ctx, domain.ID(id))
	if err != nil {
		if errors.Is(err, influencerrepo.ErrInfluencerNotFound) {
			return domain.Influencer{}, commonerrors.ErrInfluencerNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"influencer_id": id,
			"action":        "get_influencer_failed",
		}).Errorf("get influencer failed: %v", err)
		return domain.Influencer{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return inf, nil
}

func (s *InfluencerService) ListInfluencers(ctx context.Context, limit int) ([]domain.Influencer, error) {
	result, err := s.repo.ListInfluencers(ctx, limit)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_influencers_failed",
		}).Errorf("list influencers failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return result, nil
}

func (s *InfluencerService) AddSocialMedia(ctx context.Context, input AddSocialMediaInput) (domain.SocialMedia, error) {
	if err := validate.Struct(input); err != nil {
		return domain.SocialMedia{}, validationError(err)
	}

	if _, err := s.GetInfluencer(ctx, input.InfluencerID); err != nil {
		return domain.SocialMedia{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.SocialMedia{}, commonerrors.ErrInternalError.WithCause(err)
	}

	sm := domain.SocialMedia{
		ID:             domain.ID(id),
		InfluencerID:   domain.ID(input.InfluencerID),
		Platform:       input.Platform,
		URL:            input.URL,
		FollowersCount: input.FollowersCount,
	}

	if err := s.repo.CreateSocialMedia(ctx, sm); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"influencer_id": input.InfluencerID,
			"platform":      input.Platform,
			"action":        "create_social_media_failed",
		}).Errorf("create social media failed: %v", err)
		return domain.SocialMedia{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"influencer_id": input.InfluencerID,
		"platform":      input.Platform,
		"action":        "social_media_created",
	}).Info("social media record created")
	return sm, nil
}

func (s *InfluencerService) ListSocialMedia(ctx context.Context, influencerID string) ([]domain.SocialMedia, error) {
	result, err := s.repo.ListSocialMediaByInfluencer(ctx, domain.ID(influencerID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"influencer_id": influencerID,
			"action":        "list_social_media_failed",
		}).Errorf("list social media failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return result, nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return commonerrors.NewDomainError(
			"VALIDATION_FAILED",
			commonerrors.CategoryValidation,
			400,
			fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()),
		).WithCause(err)
	}
	return commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		400,
		"validation failed",
	).WithCause(err)
}
