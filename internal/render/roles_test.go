package render

import (
	"testing"

	"procdocs/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marineSignatures() []model.Signature {
	return []model.Signature{
		{Name: "A. Bello", Role: "Requester"},
		{Name: "K. Eze", Role: "Vessel Manager"},
		{Name: "T. Okafor", Role: "Technical Manager"},
		{Name: "S. Ade", Role: "Fleet Manager"},
		{Name: "J. Musa", Role: "Procurement Officer"},
		{Name: "M. Obi", Role: "Managing Director"},
		{Name: "R. Chen", Role: "Accounts Clerk"},
		{Name: "D. Park", Role: "IT Support"},
	}
}

func TestFilterSignatures_MarinePairing(t *testing.T) {
	got := FilterSignatures("marine", "marine", marineSignatures())

	require.Len(t, got, 6)
	roles := make([]string, 0, len(got))
	for _, s := range got {
		roles = append(roles, s.Role)
	}
	assert.Equal(t, []string{
		"Requester", "Vessel Manager", "Technical Manager",
		"Fleet Manager", "Procurement Officer", "Managing Director",
	}, roles)
}

func TestFilterSignatures_CaseInsensitive(t *testing.T) {
	sigs := []model.Signature{
		{Name: "a", Role: "REQUESTER"},
		{Name: "b", Role: " vessel manager "},
		{Name: "c", Role: "Accounts Clerk"},
	}
	got := FilterSignatures("Marine", "MARINE", sigs)
	require.Len(t, got, 2)
}

func TestFilterSignatures_DifferentDestinationKeepsAll(t *testing.T) {
	sigs := marineSignatures()
	got := FilterSignatures("marine", "operations", sigs)
	assert.Len(t, got, len(sigs))
}

func TestFilterSignatures_UnknownDepartmentKeepsAll(t *testing.T) {
	sigs := marineSignatures()
	got := FilterSignatures("catering", "catering", sigs)
	assert.Len(t, got, len(sigs))
}
