package inventory

import (
	"regexp"
	"strconv"
	"strings"
)

// PrescriptionEntry is one parsed item of a prescription string. Entries are
// transient: prescriptions are persisted only as their formatted string form
// on the follow-up record.
type PrescriptionEntry struct {
	Name     string
	Quantity int
}

// Handles segments like "MedName (10)". The name capture is non-greedy so
// the quantity is taken from the trailing parenthesized group.
var prescriptionPattern = regexp.MustCompile(`(.+?)\s*\(\s*(\d+)\s*\)`)

// ParsePrescription turns a free-text "Name (qty), Name (qty)" string into
// an ordered list of entries. Segments that do not match the pattern are
// skipped, not rejected. An empty or blank string yields no entries.
//
// This is the single interpretation of prescription strings used anywhere in
// the system; issuance and delta computation both go through it.
func ParsePrescription(s string) []PrescriptionEntry {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var entries []PrescriptionEntry
	for _, segment := range strings.Split(s, ",") {
		m := prescriptionPattern.FindStringSubmatch(strings.TrimSpace(segment))
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		entries = append(entries, PrescriptionEntry{
			Name:     strings.TrimSpace(m[1]),
			Quantity: qty,
		})
	}
	return entries
}
