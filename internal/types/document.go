package types

// Document is the text extracted from an uploaded resume
type Document struct {
	RawText    string `json:"raw_text"`
	FileName   string `json:"file_name"`
	FileFormat string `json:"file_format"`
	// Checksum is the SHA-256 hex digest of the uploaded bytes
	Checksum string `json:"checksum"`
	// LowQuality is set when no reader produced text and RawText holds a placeholder
	LowQuality bool `json:"low_quality,omitempty"`
}

// ContactInfo holds contact details found in resume text
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// JobTemplate maps a template key to the skills a role requires
type JobTemplate struct {
	Key            string   `json:"key"`
	Title          string   `json:"title"`
	RequiredSkills []string `json:"required_skills"`
}
