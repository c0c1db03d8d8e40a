package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ClassFieldName           = "name"
	ClassFieldStatus         = "status"
	ClassFieldAvailableSeats = "availableSeats"
)

// Class is a bookable class. Apart from _id the document is kept as posted:
// availableSeats may be any BSON value and status is free text.
type Class struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Fields bson.M             `json:"-" bson:",inline"`
}

var classFields = []string{"_id"}

// Name returns the class name when it is a string.
func (c Class) Name() string { return stringField(c.Fields, ClassFieldName) }

// Status returns the status when it is a string.
func (c Class) Status() string { return stringField(c.Fields, ClassFieldStatus) }

func (c Class) MarshalJSON() ([]byte, error) {
	type plain Class
	return marshalWithExtra(plain(c), c.Fields)
}

func (c *Class) UnmarshalJSON(data []byte) error {
	type plain Class
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	fields, err := splitExtra(data, classFields...)
	if err != nil {
		return err
	}
	*c = Class(p)
	c.Fields = fields
	return nil
}
