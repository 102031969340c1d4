package models

// User is a user record in the tree, keyed by its username. Passwords are
// stored as bcrypt hashes only; credential material never serializes into
// API responses.
type User struct {
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	ColNo        int    `json:"col_no"`
	Avatar       string `json:"avatar"`
	SessionKey   string `json:"-"`
}

// UserPatch carries optional new values for a partial update. A nil field
// means "leave unchanged"; a non-nil field overwrites, even with a zero
// value.
type UserPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	ColNo     *int    `json:"col_no"`
	Avatar    *string `json:"avatar"`
}
