package model

// AuthorizedUser records a user that passed PIN entry. Authorization never
// expires on its own.
type AuthorizedUser struct {
	UserID     int64
	Authorized bool
}
