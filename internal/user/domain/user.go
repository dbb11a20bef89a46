package domain

import "time"

type ID string

// User is the only entity with behavior in this system. Password always holds
// the bcrypt hash; the plaintext never reaches the store.
type User struct {
	ID           ID
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
