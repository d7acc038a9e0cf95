// Package models defines the data types exchanged between the intake
// view-model and the backend transport.
package models

// InputType is the declared content kind sent to the intake endpoint as the
// multipart "input_type" field.
type InputType string

const (
	InputTypeFile  InputType = "file"
	InputTypeJSON  InputType = "json"
	InputTypeEmail InputType = "email"
)

// Valid reports whether t is one of the input types the backend accepts.
func (t InputType) Valid() bool {
	switch t {
	case InputTypeFile, InputTypeJSON, InputTypeEmail:
		return true
	}
	return false
}

// SelectedFile is the user-chosen file held by the view-model for the
// duration of one upload attempt.
type SelectedFile struct {
	Name     string
	MimeType string
	Content  []byte
}

// Profile is the user-identity record served by the profile endpoint. Role
// is read-only on the backend but travels with the record.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}

// UploadResult is the decoded success body of the intake endpoint.
type UploadResult struct {
	FileID         string         `json:"file_id"`
	Filename       string         `json:"filename"`
	Classification map[string]any `json:"classification,omitempty"`
	ExtractedData  map[string]any `json:"extracted_data,omitempty"`
}
