package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names of the users collection touched by updates and lookups.
const (
	UserFieldEmail           = "email"
	UserFieldRole            = "userRole"
	UserFieldSelectedClasses = "mySelectedClasses"
	UserFieldEnrolledClasses = "myEnrolledClasses"
)

// User is a registered account. Only the lookup key is typed; userRole, the
// class lists and anything else the client sends stay in Extra exactly as
// stored.
type User struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email string             `json:"email" bson:"email" binding:"required"`
	Extra bson.M             `json:"-" bson:",inline"`
}

var userFields = []string{"_id", UserFieldEmail}

// Role returns userRole when it is a string.
func (u User) Role() string { return stringField(u.Extra, UserFieldRole) }

// SelectedClasses returns mySelectedClasses.
func (u User) SelectedClasses() []string { return stringList(u.Extra, UserFieldSelectedClasses) }

// EnrolledClasses returns myEnrolledClasses.
func (u User) EnrolledClasses() []string { return stringList(u.Extra, UserFieldEnrolledClasses) }

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalWithExtra(plain(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, userFields...)
	if err != nil {
		return err
	}
	*u = User(p)
	u.Extra = extra
	return nil
}
