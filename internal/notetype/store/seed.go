package store

import "casenotes/internal/notetype/models"

// DefaultTypes is the local catalog used when no database is configured. It
// mirrors the seed migration.
func DefaultTypes() []models.NoteType {
	return []models.NoteType{
		{
			Code: "OMIC", Description: "OMiC", Active: true, Sensitive: true,
			SubTypes: []models.NoteSubType{
				{Code: "GEN", Description: "General", Active: true, Sensitive: true, RestrictedUse: true},
				{Code: "OPEN", Description: "Open Case Note", Active: true, RestrictedUse: true},
			},
		},
		{
			Code: "POM", Description: "POM", Active: true,
			SubTypes: []models.NoteSubType{
				{Code: "GEN", Description: "General", Active: true, RestrictedUse: true},
			},
		},
		{
			Code: "ACP", Description: "Accredited Programme", Active: true,
			SubTypes: []models.NoteSubType{
				{Code: "POPEM", Description: "Pre Programme Engagement", Active: true},
				{Code: "ASSESS", Description: "Assessment"},
			},
		},
	}
}
