package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/influmatch/backend/internal/common/clock"
	"github.com/influmatch/backend/internal/common/jwtverify"
	"github.com/influmatch/backend/internal/observability/metrics"
	userdomain "github.com/influmatch/backend/internal/user/domain"
)

var ErrEmptyTokenSecret = errors.New("token secret is empty")

// TokenIssuer signs identity claims with a symmetric secret. Claims carry the
// persisted id and email plus iat/exp; tokens without expiry are not issued.
type TokenIssuer struct {
	secret         []byte
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(secret string, accessTokenTTL time.Duration, clk clock.Clock) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrEmptyTokenSecret
	}

	return &TokenIssuer{
		secret:         []byte(secret),
		clock:          clk,
		accessTokenTTL: accessTokenTTL,
	}, nil
}

func (ti *TokenIssuer) IssueAccessToken(user userdomain.User) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"id":    string(user.ID),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ti.accessTokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.secret)
	if err != nil {
		return "", err
	}

	metrics.AccessTokensIssued.Inc()
	return tokenString, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.secret)
}
