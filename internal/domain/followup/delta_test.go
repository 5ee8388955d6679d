package followup

import (
	"reflect"
	"testing"
)

func TestPrescriptionDelta(t *testing.T) {
	tests := []struct {
		name   string
		oldStr string
		newStr string
		want   map[string]int
	}{
		{
			name:   "quantity change and swap",
			oldStr: "Amlodipine (4), Metformin (2)",
			newStr: "Amlodipine (2), Paracetamol (4)",
			want:   map[string]int{"Amlodipine": -2, "Metformin": -2, "Paracetamol": 4},
		},
		{
			name:   "identical strings net to zero",
			oldStr: "Paracetamol (2), ORS (1)",
			newStr: "Paracetamol (2), ORS (1)",
			want:   map[string]int{"Paracetamol": 0, "ORS": 0},
		},
		{
			name:   "first prescription",
			oldStr: "",
			newStr: "Ibuprofen (3)",
			want:   map[string]int{"Ibuprofen": 3},
		},
		{
			name:   "cleared prescription",
			oldStr: "Ibuprofen (3)",
			newStr: "",
			want:   map[string]int{"Ibuprofen": -3},
		},
		{
			name:   "duplicate mentions accumulate",
			oldStr: "Paracetamol (1), Paracetamol (2)",
			newStr: "Paracetamol (5)",
			want:   map[string]int{"Paracetamol": 2},
		},
		{
			name:   "malformed segments ignored",
			oldStr: "Paracetamol (2), just a note",
			newStr: "Paracetamol (2)",
			want:   map[string]int{"Paracetamol": 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prescriptionDelta(tt.oldStr, tt.newStr)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("delta = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortedNames(t *testing.T) {
	got := sortedNames(map[string]int{"Zinc": 1, "Amlodipine": -2, "ORS": 3})
	want := []string{"Amlodipine", "ORS", "Zinc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}
}
