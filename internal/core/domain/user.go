package domain

// User is the display projection of an application user.
type User struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}
