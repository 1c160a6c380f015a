package model

// Form is a questionnaire whose responses carry resume uploads.
type Form struct {
	ID                 string
	Title              string
	AcceptingResponses bool
	AcceptingUnknown   bool   // Legacy forms don't report their publish state
	NameQuestionID     string // Text question holding the full name
	FileQuestionID     string // File-upload question holding the resume
}

// Response is one submission, read once during ingestion.
type Response struct {
	Email    string // Respondent identifier
	FullName string // Raw text answer, not yet normalized
	FileID   string // Reference to exactly one uploaded file
}
