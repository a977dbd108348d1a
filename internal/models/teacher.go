package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/mi-attendance-api/internal/filter"
)

// TeacherSchema maps teacher query parameters onto document keys.
var TeacherSchema = filter.Schema{
	Name: "teacher",
	Fields: []filter.Field{
		{Param: "id", Key: "_id", Identifier: true, Immutable: true},
		{Param: "name", Key: "name"},
		{Param: "pass", Key: "pass"},
	},
}

// Teacher represents an instructor document.
//
// Pass is stored exactly as supplied by the client.
type Teacher struct {
	ID   *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name *string             `bson:"name,omitempty" json:"name,omitempty"`
	Pass *string             `bson:"pass,omitempty" json:"pass,omitempty"`
}

func (Teacher) Kind() Kind { return KindTeacher }

func (Teacher) Schema() filter.Schema { return TeacherSchema }

func (t Teacher) Params() filter.Params {
	return filter.Params{
		"id":   hexOrNil(t.ID),
		"name": t.Name,
		"pass": t.Pass,
	}
}

// Columns leaves out pass so exports never carry credentials.
func (Teacher) Columns() []string {
	return []string{"id", "name"}
}

func (t Teacher) Row() map[string]string {
	return map[string]string{
		"id":   valueOrEmpty(hexOrNil(t.ID)),
		"name": valueOrEmpty(t.Name),
	}
}
