package store

import (
	"strings"

	"github.com/robalobadob/chirpy/internal/model"
)

// Document is the whole persisted state. It is always read and written as
// one unit.
//
// LastUserID and LastChirpID are high-water marks: ids are assigned as
// max-plus-one over both the live records and the mark, so an id freed by a
// deletion is never handed out again.
type Document struct {
	Users       []model.User  `json:"users"`
	Chirps      []model.Chirp `json:"chirps"`
	LastUserID  int           `json:"last_user_id,omitempty"`
	LastChirpID int           `json:"last_chirp_id,omitempty"`
}

func newDocument() *Document {
	return &Document{Users: []model.User{}, Chirps: []model.Chirp{}}
}

// normalize replaces nil slices so an empty document encodes as [] not null.
func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []model.User{}
	}
	if d.Chirps == nil {
		d.Chirps = []model.Chirp{}
	}
}

// Clone returns a copy that shares no slices with d.
func (d *Document) Clone() *Document {
	out := &Document{
		Users:       make([]model.User, len(d.Users)),
		Chirps:      make([]model.Chirp, len(d.Chirps)),
		LastUserID:  d.LastUserID,
		LastChirpID: d.LastChirpID,
	}
	copy(out.Users, d.Users)
	copy(out.Chirps, d.Chirps)
	return out
}

// NextUserID returns the id the next AddUser call will assign.
func (d *Document) NextUserID() int {
	next := d.LastUserID
	for _, u := range d.Users {
		if u.ID > next {
			next = u.ID
		}
	}
	return next + 1
}

// NextChirpID returns the id the next AddChirp call will assign.
func (d *Document) NextChirpID() int {
	next := d.LastChirpID
	for _, c := range d.Chirps {
		if c.ID > next {
			next = c.ID
		}
	}
	return next + 1
}

// AddUser assigns u a fresh id, appends it and returns the stored copy.
func (d *Document) AddUser(u model.User) model.User {
	u.ID = d.NextUserID()
	d.LastUserID = u.ID
	d.Users = append(d.Users, u)
	return u
}

// AddChirp assigns c a fresh id, appends it and returns the stored copy.
func (d *Document) AddChirp(c model.Chirp) model.Chirp {
	c.ID = d.NextChirpID()
	d.LastChirpID = c.ID
	d.Chirps = append(d.Chirps, c)
	return c
}

// UserByID returns a pointer into the document; writes through it are
// persisted by the enclosing Update.
func (d *Document) UserByID(id int) (*model.User, bool) {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i], true
		}
	}
	return nil, false
}

// UserByEmail matches case-insensitively after trimming spaces.
func (d *Document) UserByEmail(email string) (*model.User, bool) {
	email = strings.TrimSpace(email)
	for i := range d.Users {
		if strings.EqualFold(d.Users[i].Email, email) {
			return &d.Users[i], true
		}
	}
	return nil, false
}

func (d *Document) ChirpByID(id int) (*model.Chirp, bool) {
	for i := range d.Chirps {
		if d.Chirps[i].ID == id {
			return &d.Chirps[i], true
		}
	}
	return nil, false
}

// RemoveChirp deletes the chirp with id, keeping the order of the rest.
func (d *Document) RemoveChirp(id int) bool {
	for i := range d.Chirps {
		if d.Chirps[i].ID == id {
			d.Chirps = append(d.Chirps[:i], d.Chirps[i+1:]...)
			return true
		}
	}
	return false
}
