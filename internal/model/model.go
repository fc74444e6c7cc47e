// internal/model/model.go
//
// Persisted entities. Field names are the on-disk JSON keys of the store
// document; HTTP responses use their own payload types.

package model

// User is a registered account.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Token        string `json:"token,omitempty"` // most recently issued bearer token
	IsChirpyRed  bool   `json:"is_chirpy_red"`
}

// Chirp is a short post owned by AuthorID.
type Chirp struct {
	ID       int    `json:"id"`
	Body     string `json:"body"`
	AuthorID int    `json:"author_id"`
}
