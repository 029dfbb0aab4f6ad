package render

import (
	"strings"

	"procdocs/internal/model"
)

// Which approval roles appear on a printed document depends on the
// department/destination pairing of the request. The role sets are business
// policy consumed as-is; they are kept in a single lookup table keyed by
// department, applied only when department and destination match.
var allowedRolesByDepartment = map[string][]string{
	"marine": {
		"requester",
		"vessel manager",
		"technical manager",
		"fleet manager",
		"procurement officer",
		"managing director",
	},
	"operations": {
		"requester",
		"operations manager",
		"procurement officer",
		"managing director",
	},
	"logistics": {
		"requester",
		"logistics coordinator",
		"procurement officer",
		"managing director",
	},
}

// FilterSignatures narrows the raw signature list to the roles allowed for
// the request's department/destination pairing. Requests whose department and
// destination differ, or whose department has no configured role set, keep
// every signature.
func FilterSignatures(department, destination string, sigs []model.Signature) []model.Signature {
	if !strings.EqualFold(strings.TrimSpace(department), strings.TrimSpace(destination)) {
		return sigs
	}
	roles, ok := allowedRolesByDepartment[strings.ToLower(strings.TrimSpace(department))]
	if !ok {
		return sigs
	}

	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	out := make([]model.Signature, 0, len(sigs))
	for _, s := range sigs {
		if allowed[strings.ToLower(strings.TrimSpace(s.Role))] {
			out = append(out, s)
		}
	}
	return out
}
