package domain

import "time"

type ID string

// Influencer and SocialMedia are storage-only records; nothing in the service
// layer does more than persist and fetch them.
type Influencer struct {
	ID        ID
	Name      string
	ImageURL  *string
	Score     *float64
	CreatedAt time.Time
}

type SocialMedia struct {
	ID             ID
	InfluencerID   ID
	Platform       string
	URL            string
	FollowersCount *int64
	CreatedAt      time.Time
}
