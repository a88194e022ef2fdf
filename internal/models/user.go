package models

// User is the display projection of a user; accounts are managed by the identity service.
type User struct {
	UserID      string `db:"user_id"`
	DisplayName string `db:"display_name"`
}
