package dto

// AuthRes is returned by signup and login.
type AuthRes struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// UserItem is one entry of the user list. The password hash is never part of it.
type UserItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Image      string `json:"image"`
	PlaceCount int    `json:"placeCount"`
}

// UsersRes wraps the user list.
type UsersRes struct {
	Users []UserItem `json:"users"`
}
