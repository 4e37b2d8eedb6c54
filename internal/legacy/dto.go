package legacy

import (
	"time"

	casenotemodels "casenotes/internal/casenote/models"
	notetypemodels "casenotes/internal/notetype/models"
)

type caseNoteDTO struct {
	CaseNoteID         int64          `json:"caseNoteId"`
	OffenderIdentifier string         `json:"offenderIdentifier"`
	Type               string         `json:"type"`
	TypeDescription    string         `json:"typeDescription"`
	SubType            string         `json:"subType"`
	SubTypeDescription string         `json:"subTypeDescription"`
	Source             string         `json:"source"`
	CreationDateTime   time.Time      `json:"creationDateTime"`
	OccurrenceDateTime time.Time      `json:"occurrenceDateTime"`
	AuthorName         string         `json:"authorName"`
	AuthorUsername     string         `json:"authorUsername"`
	AuthorUserID       string         `json:"authorUserId"`
	Text               string         `json:"text"`
	LocationID         string         `json:"locationId"`
	AmendmentCaseNotes []amendmentDTO `json:"amendments"`
}

type amendmentDTO struct {
	CreationDateTime time.Time `json:"creationDateTime"`
	AuthorUsername   string    `json:"authorUsername"`
	AuthorName       string    `json:"authorName"`
	AuthorUserID     string    `json:"authorUserId"`
	AdditionalNote   string    `json:"additionalNoteText"`
}

type pageDTO struct {
	Content       []caseNoteDTO `json:"content"`
	TotalElements int           `json:"totalElements"`
	Number        int           `json:"number"`
	Size          int           `json:"size"`
}

type createDTO struct {
	LocationID         string    `json:"locationId,omitempty"`
	Type               string    `json:"type"`
	SubType            string    `json:"subType"`
	OccurrenceDateTime time.Time `json:"occurrenceDateTime"`
	Text               string    `json:"text"`
	AuthorUsername     string    `json:"authorUsername"`
}

type amendDTO struct {
	Text           string `json:"text"`
	AuthorUsername string `json:"authorUsername"`
}

type typeDTO struct {
	Code        string    `json:"code"`
	Description string    `json:"description"`
	ActiveFlag  string    `json:"activeFlag"`
	Sensitive   bool      `json:"sensitive"`
	SubCodes    []typeDTO `json:"subCodes"`
}

func (d caseNoteDTO) toModel() casenotemodels.LegacyCaseNote {
	n := casenotemodels.LegacyCaseNote{
		ID:                 d.CaseNoteID,
		PersonIdentifier:   d.OffenderIdentifier,
		Type:               d.Type,
		TypeDescription:    d.TypeDescription,
		SubType:            d.SubType,
		SubTypeDescription: d.SubTypeDescription,
		Source:             d.Source,
		Text:               d.Text,
		LocationID:         d.LocationID,
		AuthorUsername:     d.AuthorUsername,
		AuthorName:         d.AuthorName,
		AuthorUserID:       d.AuthorUserID,
		OccurredAt:         d.OccurrenceDateTime,
		CreatedAt:          d.CreationDateTime,
	}
	for _, a := range d.AmendmentCaseNotes {
		n.Amendments = append(n.Amendments, casenotemodels.LegacyAmendment{
			CreatedAt:      a.CreationDateTime,
			AuthorUsername: a.AuthorUsername,
			AuthorName:     a.AuthorName,
			AuthorUserID:   a.AuthorUserID,
			Text:           a.AdditionalNote,
		})
	}
	return n
}

// toModel maps a legacy type. The legacy system has no notion of sensitivity
// per sub-type beyond the flag it reports, and never restricts use. Notes of
// its types are written there.
func (d typeDTO) toModel() notetypemodels.NoteType {
	t := notetypemodels.NoteType{
		Code:        d.Code,
		Description: d.Description,
		Active:      d.ActiveFlag != "N",
		Sensitive:   d.Sensitive,
	}
	for _, s := range d.SubCodes {
		t.SubTypes = append(t.SubTypes, notetypemodels.NoteSubType{
			Code:         s.Code,
			Description:  s.Description,
			Active:       s.ActiveFlag != "N",
			Sensitive:    s.Sensitive,
			SyncToLegacy: true,
		})
	}
	return t
}
