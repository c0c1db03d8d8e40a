package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const InstructorFieldClasses = "classes"

// Instructor references the classes it teaches by class name.
type Instructor struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Classes []string           `json:"classes" bson:"classes"`
	Extra   bson.M             `json:"-" bson:",inline"`
}

var instructorFields = []string{"_id", InstructorFieldClasses}

func (i Instructor) MarshalJSON() ([]byte, error) {
	type plain Instructor
	return marshalWithExtra(plain(i), i.Extra)
}

func (i *Instructor) UnmarshalJSON(data []byte) error {
	type plain Instructor
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, instructorFields...)
	if err != nil {
		return err
	}
	*i = Instructor(p)
	i.Extra = extra
	return nil
}

// InstructorDetail is an instructor whose class names were resolved to class
// documents. A nil entry marks a name with no matching class.
type InstructorDetail struct {
	ID      primitive.ObjectID `json:"_id"`
	Classes []*Class           `json:"classes"`
	Extra   bson.M             `json:"-"`
}

func (d InstructorDetail) MarshalJSON() ([]byte, error) {
	type plain InstructorDetail
	return marshalWithExtra(plain(d), d.Extra)
}
