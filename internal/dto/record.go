package dto

import "github.com/noah-isme/mi-attendance-api/internal/models"

// UpdateRecordRequest is the body of PUT /student and PUT /teacher.
type UpdateRecordRequest[T models.Entity] struct {
	// Params selects the documents to update. Values are plain strings.
	Params map[string]string `json:"params"`
	// NewData carries the fields to set; absent fields are left untouched.
	NewData T `json:"new_data"`
}
