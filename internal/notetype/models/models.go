package models

// NoteType is a parent entry of the case note type catalog.
type NoteType struct {
	Code        string        `json:"code"`
	Description string        `json:"description"`
	Active      bool          `json:"active"`
	Sensitive   bool          `json:"sensitive"`
	SubTypes    []NoteSubType `json:"subTypes"`
}

// NoteSubType is the fine-grained classification of a case note. It carries the
// routing (SyncToLegacy) and access (Sensitive, RestrictedUse) metadata.
type NoteSubType struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	Active        bool   `json:"active"`
	Sensitive     bool   `json:"sensitive"`
	RestrictedUse bool   `json:"restrictedUse"`
	SyncToLegacy  bool   `json:"syncToLegacy"`
}

// SubTypeRef is a resolved sub-type together with its parent's identity and state.
type SubTypeRef struct {
	TypeCode        string
	TypeDescription string
	TypeActive      bool
	NoteSubType
}

// EffectiveActive reports whether notes may be written against this sub-type:
// both the sub-type and its parent must be active.
func (r SubTypeRef) EffectiveActive() bool {
	return r.Active && r.TypeActive
}

// Find resolves a sub-type within a catalog snapshot.
func Find(types []NoteType, typeCode, subTypeCode string) (SubTypeRef, bool) {
	for _, t := range types {
		if t.Code != typeCode {
			continue
		}
		for _, st := range t.SubTypes {
			if st.Code == subTypeCode {
				return SubTypeRef{
					TypeCode:        t.Code,
					TypeDescription: t.Description,
					TypeActive:      t.Active,
					NoteSubType:     st,
				}, true
			}
		}
	}
	return SubTypeRef{}, false
}

func (t NoteType) clone() NoteType {
	c := t
	c.SubTypes = append([]NoteSubType(nil), t.SubTypes...)
	return c
}
