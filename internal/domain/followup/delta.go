package followup

import (
	"sort"

	"github.com/akshansh/outreach-clinic/internal/domain/inventory"
)

// prescriptionDelta computes the net per-medicine change between two
// prescriptions: old quantities count negative, new quantities positive.
// A medicine prescribed 2 in the old string and 5 in the new nets +3.
// Duplicate mentions within one string accumulate.
func prescriptionDelta(oldStr, newStr string) map[string]int {
	delta := map[string]int{}
	for _, e := range inventory.ParsePrescription(oldStr) {
		delta[e.Name] -= e.Quantity
	}
	for _, e := range inventory.ParsePrescription(newStr) {
		delta[e.Name] += e.Quantity
	}
	return delta
}

// sortedNames returns the delta map's keys in lexicographic order so delta
// application touches medicine rows in a fixed order.
func sortedNames(delta map[string]int) []string {
	names := make([]string, 0, len(delta))
	for name := range delta {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
