package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/influmatch/backend/internal/common/db"
	"github.com/influmatch/backend/internal/influencer/domain"
)

var ErrInfluencerNotFound = errors.New("influencer not found")

type Repository interface {
	CreateInfluencer(ctx context.Context, inf domain.Influencer) error
	FindInfluencerByID(ctx context.Context, id domain.ID) (domain.Influencer, error)
	ListInfluencers(ctx context.Context, limit int) ([]domain.Influencer, error)
	CreateSocialMedia(ctx context.Context, sm domain.SocialMedia) error
	ListSocialMediaByInfluencer(ctx context.Context, influencerID domain.ID) ([]domain.SocialMedia, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) CreateInfluencer(ctx context.Context, inf domain.Influencer) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO influencers (id, influencer_name, image_url, score) VALUES ($1, $2, $3, $4)`,
		string(inf.ID),
		inf.Name,
		inf.ImageURL,
		inf.Score,
	)
	return db.HandleExecError(err, "create influencer", start)
}

func (r *PgRepository) FindInfluencerByID(ctx context.Context, id domain.ID) (domain.Influencer, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, influencer_name, image_url, score, created_at FROM influencers WHERE id = $1`,
		string(id),
	)

	var inf domain.Influencer
	err := row.Scan(&inf.ID, &inf.Name, &inf.ImageURL, &inf.Score, &inf.CreatedAt)
	if err := db.HandleQueryError(err, ErrInfluencerNotFound, "find influencer by id", start); err != nil {
		return domain.Influencer{}, err
	}
	return inf, nil
}

func (r *PgRepository) ListInfluencers(ctx context.Context, limit int) ([]domain.Influencer, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, influencer_name, image_url, score, created_at
		 FROM influencers
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list influencers", start)
	}
	defer rows.Close()

	var result []domain.Influencer
	for rows.Next() {
		var inf domain.Influencer
		if err := rows.Scan(&inf.ID, &inf.Name, &inf.ImageURL, &inf.Score, &inf.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan influencer: %w", err)
		}
		result = append(result, inf)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	db.MeasureQueryDuration("list influencers", start)
	return result, nil
}

func (r *PgRepository) CreateSocialMedia(ctx context.Context, sm domain.SocialMedia) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO social_media (id, influencer_id, platform, url, followers_count) VALUES ($1, $2, $3, $4, $5)`,
		string(sm.ID),
		string(sm.InfluencerID),
		sm.Platform,
		sm.URL,
		sm.FollowersCount,
	)
	return db.HandleExecError(err, "create social media", start)
}

func (r *PgRepository) ListSocialMediaByInfluencer(ctx context.Context, influencerID domain.ID) ([]domain.SocialMedia, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, influencer_id, platform, url, followers_count, created_at
		 FROM social_media
		 WHERE influencer_id = $1
		 ORDER BY created_at ASC`,
		string(influencerID),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list social media", start)
	}
	defer rows.Close()

	var result []domain.SocialMedia
	for rows.Next() {
		var sm domain.SocialMedia
		if err := rows.Scan(&sm.ID, &sm.InfluencerID, &sm.Platform, &sm.URL, &sm.FollowersCount, &sm.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan social media: %w", err)
		}
		result = append(result, sm)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	db.MeasureQueryDuration("list social media", start)
	return result, nil
}
