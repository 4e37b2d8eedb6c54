// Package policy decides read/write permissions on case notes from a caller's
// granted roles. It is stateless and owns nothing beyond its role tables.
//
// Role strings are compared after stripping a leading "ROLE_" prefix and are
// otherwise case-sensitive, so "ROLE_POM" and "POM" are equivalent but "pom"
// is not.
package policy

import "strings"

const rolePrefix = "ROLE_"

// Role names understood by the policy.
const (
	RolePOM                = "POM"
	RoleViewSensitiveNotes = "VIEW_SENSITIVE_CASE_NOTES"
	RoleAddSensitiveNotes  = "ADD_SENSITIVE_CASE_NOTES"
	RoleSystemUser         = "SYSTEM_USER"
	RoleDeleteCaseNote     = "DELETE_CASE_NOTE"
)

var (
	viewSensitiveRoles   = []string{RolePOM, RoleViewSensitiveNotes, RoleAddSensitiveNotes}
	restrictedWriteRoles = []string{RolePOM, RoleAddSensitiveNotes}
	defaultOverrideRoles = []string{RoleSystemUser}
)

// CanViewSensitive reports whether the caller may read notes whose sub-type is sensitive.
func CanViewSensitive(roles []string) bool {
	return hasAny(roles, viewSensitiveRoles)
}

// CanCreateOrAmendRestricted reports whether the caller may create or amend
// notes whose sub-type is restricted-use.
func CanCreateOrAmendRestricted(roles []string) bool {
	return hasAny(roles, restrictedWriteRoles)
}

// IsSystemOverride reports whether the caller holds any of required, or
// SYSTEM_USER when required is empty.
func IsSystemOverride(roles []string, required ...string) bool {
	if len(required) == 0 {
		required = defaultOverrideRoles
	}
	return hasAny(roles, required)
}

// Normalize strips the conventional ROLE_ prefix.
func Normalize(role string) string {
	return strings.TrimPrefix(role, rolePrefix)
}

func hasAny(granted, wanted []string) bool {
	for _, g := range granted {
		g = Normalize(g)
		for _, w := range wanted {
			if g == Normalize(w) {
				return true
			}
		}
	}
	return false
}
