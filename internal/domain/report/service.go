package report

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LowStockCounter is the slice of the inventory store the dashboard needs.
type LowStockCounter interface {
	CountLowStock(ctx context.Context, threshold int) (int, error)
}

type Service struct {
	repo              Repository
	inventory         LowStockCounter
	lowStockThreshold int
	now               func() time.Time
}

func NewService(repo Repository, inventory LowStockCounter, lowStockThreshold int) *Service {
	return &Service{
		repo:              repo,
		inventory:         inventory,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// Dashboard assembles the headline numbers: total patients, visits since the
// first of the current month, and items at or under the low-stock threshold.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	total, err := s.repo.CountPatients(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	initial, err := s.repo.CountPatientsSince(ctx, firstOfMonth)
	if err != nil {
		return nil, err
	}
	followUps, err := s.repo.CountFollowUpsSince(ctx, firstOfMonth)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.inventory.CountLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalPatients:   total,
		VisitsThisMonth: initial + followUps,
		LowStockItems:   lowStock,
	}, nil
}

func (s *Service) PatientRecords(ctx context.Context, f RecordFilters) ([]*PatientRecord, error) {
	return s.repo.PatientRecords(ctx, f)
}

func (s *Service) Demographics(ctx context.Context) ([]*DemographicsRow, error) {
	return s.repo.Demographics(ctx)
}

// VisitorReport runs the filtered visit stream and derives its summary
// numbers.
func (s *Service) VisitorReport(ctx context.Context, f VisitFilters) (*VisitorReport, error) {
	visits, err := s.repo.Visits(ctx, f)
	if err != nil {
		return nil, err
	}
	if visits == nil {
		visits = []*Visit{}
	}

	unique := map[uuid.UUID]struct{}{}
	followUps := 0
	for _, v := range visits {
		unique[v.PatientID] = struct{}{}
		if v.VisitType == VisitFollowUp {
			followUps++
		}
	}
	return &VisitorReport{
		TotalVisits:    len(visits),
		UniquePatients: len(unique),
		FollowUpVisits: followUps,
		Data:           visits,
	}, nil
}

// parseBP splits a "120/80" reading. Anything that does not parse as two
// numbers around a slash is discarded.
func parseBP(s string) (systolic, diastolic float64, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	sys, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	dia, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return sys, dia, true
}

// VillageSummary aggregates follow-up activity per village: distinct patient
// counts, the distinct medicines handed out, and average vitals parsed from
// the free-text readings staff record.
func (s *Service) VillageSummary(ctx context.Context, start, end time.Time) ([]*VillageSummaryRow, error) {
	vitals, err := s.repo.FollowUpVitals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	type agg struct {
		patients  map[uuid.UUID]struct{}
		medicines map[string]struct{}
		medOrder  []string
		sysSum    float64
		diaSum    float64
		bpN       int
		hbSum     float64
		hbN       int
	}
	byVillage := map[string]*agg{}
	var order []string

	for _, v := range vitals {
		a, ok := byVillage[v.VillageName]
		if !ok {
			a = &agg{patients: map[uuid.UUID]struct{}{}, medicines: map[string]struct{}{}}
			byVillage[v.VillageName] = a
			order = append(order, v.VillageName)
		}
		a.patients[v.PatientID] = struct{}{}
		if med := strings.TrimSpace(v.MedicinePrescribed); med != "" {
			if _, seen := a.medicines[med]; !seen {
				a.medicines[med] = struct{}{}
				a.medOrder = append(a.medOrder, med)
			}
		}
		if v.BloodPressure != nil {
			if sys, dia, ok := parseBP(*v.BloodPressure); ok {
				a.sysSum += sys
				a.diaSum += dia
				a.bpN++
			}
		}
		if v.Heartbeat != nil {
			if hb, err := strconv.ParseFloat(strings.TrimSpace(*v.Heartbeat), 64); err == nil {
				a.hbSum += hb
				a.hbN++
			}
		}
	}

	sort.Strings(order)
	rows := make([]*VillageSummaryRow, 0, len(order))
	for _, name := range order {
		a := byVillage[name]
		row := &VillageSummaryRow{
			VillageName:    name,
			PatientCount:   len(a.patients),
			MedicinesGiven: strings.Join(a.medOrder, ", "),
		}
		if a.bpN > 0 {
			sys := a.sysSum / float64(a.bpN)
			dia := a.diaSum / float64(a.bpN)
			row.AvgSystolic = &sys
			row.AvgDiastolic = &dia
		}
		if a.hbN > 0 {
			hb := a.hbSum / float64(a.hbN)
			row.AvgHeartbeat = &hb
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// The cumulative report's 24 reporting parameters, in presentation order.
// The keys are kept verbatim from the yearly register the clinic submits.
var CumulativeParameters = []string{
	"VILLAGE VISITED",
	"NO OF PATIENTS REGISTERED",
	"NO OF FEMALE PATIENTS",
	"NO OF INFANTS <Below 5 year>",
	"GEN_COUNT",
	"SC_ST_COUNT",
	"OTHERS_COUNT",
	"DIAGNOSTIC_SERVICES_AVAILED",
	"ANC_SERVICES",
	"ANC_GEN",
	"ANC_SC_ST",
	"ANC_OTHERS",
	"ANC_DIAGNOSTIC_SERVICES",
	"PNC_SERVICES",
	"FEVER",
	"DIARRHEA",
	"UPPER_RESPIRATORY_INFECTION",
	"WORM_INFESTATION",
	"ANEMIA",
	"CATARACT",
	"EYE_INFECTION_INJURY",
	"EAR_DISCHARGE",
	"DENTAL_GUM_DISEASES",
	"SKIN_DISEASES",
}

var complaintKeywords = []struct {
	param    string
	keywords []string
}{
	{"FEVER", []string{"fever"}},
	{"DIARRHEA", []string{"diarrhea"}},
	{"UPPER_RESPIRATORY_INFECTION", []string{"respiratory"}},
	{"WORM_INFESTATION", []string{"worm"}},
	{"EYE_INFECTION_INJURY", []string{"eye"}},
	{"EAR_DISCHARGE", []string{"ear"}},
	{"DENTAL_GUM_DISEASES", []string{"dental", "gum"}},
	{"SKIN_DISEASES", []string{"skin"}},
}

func monthKey(m int) string { return fmt.Sprintf("%02d", m) }

// Cumulative computes the month-by-parameter yearly matrix from the year's
// registrations, follow-ups and lab tests. Every parameter carries keys
// "01".."12" plus "total".
func (s *Service) Cumulative(ctx context.Context, year int) (map[string]MonthCounts, error) {
	patients, err := s.repo.PatientFacts(ctx, year)
	if err != nil {
		return nil, err
	}
	followUps, err := s.repo.FollowUpFacts(ctx, year)
	if err != nil {
		return nil, err
	}
	labTests, err := s.repo.LabFacts(ctx, year)
	if err != nil {
		return nil, err
	}

	report := map[string]MonthCounts{}
	for _, p := range CumulativeParameters {
		counts := MonthCounts{}
		for m := 1; m <= 12; m++ {
			counts[monthKey(m)] = 0
		}
		report[p] = counts
	}
	bump := func(param string, month int) {
		report[param][monthKey(month)]++
	}

	for _, p := range patients {
		bump("NO OF PATIENTS REGISTERED", p.Month)
		if p.Sex == "Female" {
			bump("NO OF FEMALE PATIENTS", p.Month)
		}
		if p.Age < 5 {
			bump("NO OF INFANTS <Below 5 year>", p.Month)
		}
		switch p.Caste {
		case "General":
			bump("GEN_COUNT", p.Month)
		case "SC/ST":
			bump("SC_ST_COUNT", p.Month)
		case "Others":
			bump("OTHERS_COUNT", p.Month)
		}
		switch p.ProgramType {
		case "ANC":
			bump("ANC_SERVICES", p.Month)
			switch p.Caste {
			case "General":
				bump("ANC_GEN", p.Month)
			case "SC/ST":
				bump("ANC_SC_ST", p.Month)
			case "Others":
				bump("ANC_OTHERS", p.Month)
			}
		case "PNC":
			bump("PNC_SERVICES", p.Month)
		case "CATARACT":
			bump("CATARACT", p.Month)
		}
	}

	// diagnostic services count distinct patients per month
	diagnostic := map[int]map[uuid.UUID]struct{}{}
	ancDiagnostic := map[int]map[uuid.UUID]struct{}{}
	for _, t := range labTests {
		if diagnostic[t.Month] == nil {
			diagnostic[t.Month] = map[uuid.UUID]struct{}{}
		}
		diagnostic[t.Month][t.PatientID] = struct{}{}
		if t.ProgramType == "ANC" {
			if ancDiagnostic[t.Month] == nil {
				ancDiagnostic[t.Month] = map[uuid.UUID]struct{}{}
			}
			ancDiagnostic[t.Month][t.PatientID] = struct{}{}
		}
	}
	for m := 1; m <= 12; m++ {
		report["DIAGNOSTIC_SERVICES_AVAILED"][monthKey(m)] = len(diagnostic[m])
		report["ANC_DIAGNOSTIC_SERVICES"][monthKey(m)] = len(ancDiagnostic[m])
	}

	for _, fu := range followUps {
		complaint := strings.ToLower(fu.ComplaintOf)
		for _, ck := range complaintKeywords {
			for _, kw := range ck.keywords {
				if strings.Contains(complaint, kw) {
					bump(ck.param, fu.Month)
					break
				}
			}
		}
		if hb, err := strconv.ParseFloat(strings.TrimSpace(fu.Haemoglobin), 64); err == nil && hb < 11 {
			bump("ANEMIA", fu.Month)
		}
	}

	// villages visited: distinct villages with any visit in the month
	villages := map[int]map[uuid.UUID]struct{}{}
	seeVillage := func(month int, id uuid.UUID) {
		if id == uuid.Nil {
			return
		}
		if villages[month] == nil {
			villages[month] = map[uuid.UUID]struct{}{}
		}
		villages[month][id] = struct{}{}
	}
	for _, p := range patients {
		seeVillage(p.Month, p.VillageID)
	}
	for _, fu := range followUps {
		seeVillage(fu.Month, fu.VillageID)
	}
	for m := 1; m <= 12; m++ {
		report["VILLAGE VISITED"][monthKey(m)] = len(villages[m])
	}

	for _, counts := range report {
		total := 0
		for m := 1; m <= 12; m++ {
			total += counts[monthKey(m)]
		}
		counts["total"] = total
	}
	return report, nil
}
