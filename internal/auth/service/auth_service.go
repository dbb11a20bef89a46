package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	commoncrypto "github.com/influmatch/backend/internal/common/crypto"
	commonerrors "github.com/influmatch/backend/internal/common/errors"
	"github.com/influmatch/backend/internal/common/logger"
	userdomain "github.com/influmatch/backend/internal/user/domain"
	userrepo "github.com/influmatch/backend/internal/user/repository"
)

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	issuer      *TokenIssuer
	log         *logger.Logger
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Issuer      *TokenIssuer
	Log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		issuer:      deps.Issuer,
		log:         deps.Log,
	}
}

type SignupInput struct {
	UserName string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Signup checks the email fast-path, hashes the password, and inserts the new
// user. The lookup and insert are not atomic; the unique index on
// users(email) is the actual enforcement, surfaced here as ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) error {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signup_attempt",
	}).Info("signup attempt")

	if err := validateSignup(input.UserName, input.Email, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_validation_failed",
		}).Warnf("signup validation failed: %v", err)
		incrementSignups("validation_failed")
		return err
	}

	_, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_email_exists",
		}).Warn("signup failed: email already exists")
		incrementSignups("duplicate")
		return ErrEmailTaken
	}
	if !errors.Is(err, userrepo.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_lookup_failed",
		}).Errorf("signup failed: %v", err)
		incrementSignups("store_error")
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		incrementSignups("hash_error")
		return commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_id_generation_failed",
		}).Errorf("signup failed: id generation error: %v", err)
		incrementSignups("id_error")
		return commonerrors.ErrInternalError.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		UserName:     input.UserName,
		Email:        input.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "signup_email_exists",
			}).Warn("signup failed: email already exists")
			incrementSignups("duplicate")
			return ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		incrementSignups("store_error")
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "signup_success",
	}).Info("signup success")
	incrementSignups("success")

	return nil
}

// Login verifies credentials and mints a signed token. Unknown email and
// wrong password collapse into the same failure.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	if err := validateLogin(input.Email, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		incrementLogins("validation_failed")
		return "", err
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			incrementLogins("invalid_credentials")
			return "", ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		incrementLogins("store_error")
		return "", commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		// A malformed stored hash still denies access, but it is an
		// infrastructure problem, not a wrong password.
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.log.WithFields(ctx, logger.Fields{
				"email":   input.Email,
				"user_id": string(user.ID),
				"action":  "login_hash_corrupt",
			}).Errorf("login failed: stored hash unreadable: %v", err)
		} else {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_invalid_password",
			}).Warn("login failed: invalid password")
		}
		incrementLogins("invalid_credentials")
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		incrementLogins("token_error")
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")
	incrementLogins("success")

	return token, nil
}
