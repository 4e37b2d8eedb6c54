package handler

import (
	"time"

	"casenotes/internal/casenote/models"
)

// CaseNoteResponse is the JSON shape of one case note.
type CaseNoteResponse struct {
	CaseNoteID         string              `json:"caseNoteId"`
	LegacyID           *int64              `json:"legacyId,omitempty"`
	PersonIdentifier   string              `json:"personIdentifier"`
	Type               string              `json:"type"`
	TypeDescription    string              `json:"typeDescription"`
	SubType            string              `json:"subType"`
	SubTypeDescription string              `json:"subTypeDescription"`
	Source             string              `json:"source"`
	CreationDateTime   time.Time           `json:"creationDateTime"`
	OccurrenceDateTime time.Time           `json:"occurrenceDateTime"`
	AuthorName         string              `json:"authorName"`
	AuthorUserID       string              `json:"authorUserId"`
	AuthorUsername     string              `json:"authorUsername"`
	Text               string              `json:"text"`
	LocationID         string              `json:"locationId,omitempty"`
	Sensitive          bool                `json:"sensitive"`
	SystemGenerated    bool                `json:"systemGenerated"`
	Amendments         []AmendmentResponse `json:"amendments"`
}

type AmendmentResponse struct {
	CreationDateTime   time.Time `json:"creationDateTime"`
	AuthorUsername     string    `json:"authorUserName"`
	AuthorName         string    `json:"authorName"`
	AuthorUserID       string    `json:"authorUserId"`
	AdditionalNoteText string    `json:"additionalNoteText"`
}

// PageResponse is one page of case notes in Spring's page layout.
type PageResponse struct {
	Content          []CaseNoteResponse `json:"content"`
	TotalElements    int                `json:"totalElements"`
	TotalPages       int                `json:"totalPages"`
	Number           int                `json:"number"`
	Size             int                `json:"size"`
	NumberOfElements int                `json:"numberOfElements"`
	First            bool               `json:"first"`
	Last             bool               `json:"last"`
}

func toResponse(n *models.CaseNote) CaseNoteResponse {
	resp := CaseNoteResponse{
		CaseNoteID:         n.ID.String(),
		LegacyID:           n.LegacyID,
		PersonIdentifier:   n.PersonIdentifier,
		Type:               n.Type,
		TypeDescription:    n.TypeDescription,
		SubType:            n.SubType,
		SubTypeDescription: n.SubTypeDescription,
		Source:             n.Source,
		CreationDateTime:   n.CreatedAt,
		OccurrenceDateTime: n.OccurredAt,
		AuthorName:         n.AuthorName,
		AuthorUserID:       n.AuthorUserID,
		AuthorUsername:     n.AuthorUsername,
		Text:               n.Text,
		LocationID:         n.LocationID,
		Sensitive:          n.Sensitive,
		SystemGenerated:    n.SystemGenerated,
		Amendments:         make([]AmendmentResponse, 0, len(n.Amendments)),
	}
	for _, a := range n.Amendments {
		resp.Amendments = append(resp.Amendments, AmendmentResponse{
			CreationDateTime:   a.CreatedAt,
			AuthorUsername:     a.AuthorUsername,
			AuthorName:         a.AuthorName,
			AuthorUserID:       a.AuthorUserID,
			AdditionalNoteText: a.Text,
		})
	}
	return resp
}

func toPageResponse(p *models.Page[models.CaseNote]) PageResponse {
	resp := PageResponse{
		Content:          make([]CaseNoteResponse, 0, len(p.Content)),
		TotalElements:    p.TotalElements,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: len(p.Content),
	}
	for i := range p.Content {
		resp.Content = append(resp.Content, toResponse(&p.Content[i]))
	}
	if p.Size > 0 {
		resp.TotalPages = (p.TotalElements + p.Size - 1) / p.Size
	}
	resp.First = p.Number == 0
	resp.Last = p.Number >= resp.TotalPages-1
	return resp
}
