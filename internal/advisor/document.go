package advisor

import (
	"log/slog"

	"github.com/jonathan/skill-gap-advisor/internal/ingestion"
	"github.com/jonathan/skill-gap-advisor/internal/types"
)

// Result is an analysis with the learning plan built for it, if any
type Result struct {
	*Analysis
	Plan *types.LearningPlan `json:"plan,omitempty"`
}

// Extraction is what one uploaded document yields
type Extraction struct {
	Document    *types.Document   `json:"document"`
	ContactInfo types.ContactInfo `json:"contact_info"`
	Skills      []string          `json:"skills"`
}

// ResumeText returns the text of doc to extract skills from. A low-quality
// document only carries placeholder text, so it contributes nothing.
func ResumeText(doc *types.Document) string {
	if doc == nil || doc.LowQuality {
		return ""
	}
	return doc.RawText
}

// ExtractDocument reads contact details and skills from doc and merges in
// the manually entered skills
func (a *Advisor) ExtractDocument(doc *types.Document, manual []string) *Extraction {
	text := ResumeText(doc)
	if doc != nil && doc.LowQuality {
		a.logger.Warn("document text could not be extracted, using manual skills only",
			slog.String("file", doc.FileName))
	}
	return &Extraction{
		Document:    doc,
		ContactInfo: ingestion.ExtractContactInfo(text),
		Skills:      a.ExtractSkills(text, manual),
	}
}
