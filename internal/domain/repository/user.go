package repository

import "context"

// UserRepository describes persistence of PIN-authorized users.
type UserRepository interface {
	IsAuthorized(ctx context.Context, userID int64) (bool, error)
	Authorize(ctx context.Context, userID int64) error
}
