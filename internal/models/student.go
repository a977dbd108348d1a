package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/mi-attendance-api/internal/filter"
)

// StudentSchema maps student query parameters onto document keys.
var StudentSchema = filter.Schema{
	Name: "student",
	Fields: []filter.Field{
		{Param: "id", Key: "_id", Identifier: true, Immutable: true},
		{Param: "name", Key: "name"},
		{Param: "card_id", Key: "card_id"},
		{Param: "class_id", Key: "class_id", Identifier: true},
	},
}

// Student represents a learner document. Every field is optional so the same
// type serves as a full record, a partial filter and a partial update.
type Student struct {
	ID      *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name    *string             `bson:"name,omitempty" json:"name,omitempty"`
	CardID  *string             `bson:"card_id,omitempty" json:"card_id,omitempty"`
	ClassID *primitive.ObjectID `bson:"class_id,omitempty" json:"class_id,omitempty"`
}

func (Student) Kind() Kind { return KindStudent }

func (Student) Schema() filter.Schema { return StudentSchema }

func (s Student) Params() filter.Params {
	return filter.Params{
		"id":       hexOrNil(s.ID),
		"name":     s.Name,
		"card_id":  s.CardID,
		"class_id": hexOrNil(s.ClassID),
	}
}

func (Student) Columns() []string {
	return []string{"id", "name", "card_id", "class_id"}
}

func (s Student) Row() map[string]string {
	return map[string]string{
		"id":       valueOrEmpty(hexOrNil(s.ID)),
		"name":     valueOrEmpty(s.Name),
		"card_id":  valueOrEmpty(s.CardID),
		"class_id": valueOrEmpty(hexOrNil(s.ClassID)),
	}
}
