package export

import "github.com/xuri/excelize/v2"

type MedicineRow struct {
	ID        string
	Name      string
	Stock     int
	Issued    int
	Remaining int
	Expiry    string
}

// MedicineInventory builds the stock position workbook.
func MedicineInventory(rows []MedicineRow) (*excelize.File, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.Name, r.Stock, r.Issued, r.Remaining, r.Expiry})
	}
	return single("Medicine Inventory",
		[]string{"Medicine Name", "Stock Count", "Issued Quantity", "Remaining", "Expiration Date"},
		data)
}

type VisitorRow struct {
	PatientName string
	Village     string
	Category    string
	Caste       string
	VisitDate   string
	VisitType   string
}

// VisitorReport builds the visit-level report workbook.
func VisitorReport(rows []VisitorRow) (*excelize.File, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.PatientName, r.Village, r.Category, r.Caste, r.VisitDate, r.VisitType})
	}
	return single("Visitor Report",
		[]string{"Patient Name", "Village", "Category", "Caste", "Visit Date", "Visit Type"},
		data)
}

type VillageSummaryRow struct {
	Village        string
	PatientCount   int
	MedicinesGiven string
	AvgSystolic    float64
	AvgDiastolic   float64
	AvgHeartbeat   float64
}

// VillageSummary builds the per-village summary workbook.
func VillageSummary(rows []VillageSummaryRow) (*excelize.File, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.Village, r.PatientCount, r.MedicinesGiven, r.AvgSystolic, r.AvgDiastolic, r.AvgHeartbeat})
	}
	return single("Village Summary",
		[]string{"Village", "Patient Count", "Medicines Given", "Avg Systolic BP", "Avg Diastolic BP", "Avg Heartbeat"},
		data)
}

type PatientRecordRow struct {
	Name             string
	Village          string
	RegistrationDate string
	LastFollowUp     string
}

// PatientRecords builds the patient listing workbook.
func PatientRecords(rows []PatientRecordRow) (*excelize.File, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.Name, r.Village, r.RegistrationDate, r.LastFollowUp})
	}
	return single("Patient Records",
		[]string{"Name", "Village", "Registration Date", "Last Follow-up"},
		data)
}

type PatientSheet struct {
	Headers []string
	Rows    [][]interface{}
}

// PatientDetails builds the multi-sheet full dump: one sheet each for
// patients, follow-ups, ANC details and PNC details.
func PatientDetails(patients, followUps, anc, pnc PatientSheet) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Patients"); err != nil {
		f.Close()
		return nil, err
	}
	sheets := []struct {
		name string
		s    PatientSheet
	}{
		{"Patients", patients},
		{"Follow-ups", followUps},
		{"ANC", anc},
		{"PNC", pnc},
	}
	for _, sh := range sheets {
		if err := sheet(f, sh.name, sh.s.Headers, sh.s.Rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

type DemographicsRow struct {
	Village string
	Caste   string
	Count   int
}

// Demographics builds the village-by-caste breakdown workbook.
func Demographics(rows []DemographicsRow) (*excelize.File, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.Village, r.Caste, r.Count})
	}
	return single("Demographics",
		[]string{"Village", "Caste", "Patient Count"},
		data)
}

type LabRecordRow struct {
	PatientName     string
	TestDate        string
	TestName        string
	PositiveReading string
	NegativeReading string
}

// LabRecords builds the lab test listing workbook.
func LabRecords(rows []LabRecordRow) (*excelize.File, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.PatientName, r.TestDate, r.TestName, r.PositiveReading, r.NegativeReading})
	}
	return single("Lab Records",
		[]string{"Patient Name", "Test Date", "Test Name", "Positive Reading", "Negative Reading"},
		data)
}

type LabCountRow struct {
	TestName string
	Total    int
	Positive int
	Negative int
}

// LabTestCounts builds the per-test tally workbook.
func LabTestCounts(rows []LabCountRow) (*excelize.File, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.TestName, r.Total, r.Positive, r.Negative})
	}
	return single("Lab Test Counts",
		[]string{"Test Name", "Total", "Positive", "Negative"},
		data)
}

type CumulativeRow struct {
	Parameter string
	Months    [12]int
	Total     int
}

// CumulativeReport builds the month-by-parameter yearly matrix workbook.
func CumulativeReport(rows []CumulativeRow) (*excelize.File, error) {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	headers := append([]string{"Parameter"}, months...)
	headers = append(headers, "Total")
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		row := make([]interface{}, 0, 14)
		row = append(row, r.Parameter)
		for _, v := range r.Months {
			row = append(row, v)
		}
		row = append(row, r.Total)
		data = append(data, row)
	}
	return single("Cumulative Report", headers, data)
}

type LogbookRow struct {
	EntryDate       string
	TimeOut         string
	TimeIn          string
	OpeningKms      float64
	ClosingKms      float64
	TotalKms        float64
	FuelQuantity    float64
	VillagesVisited string
}

// Logbook builds the ambulance logbook workbook.
func Logbook(rows []LogbookRow) (*excelize.File, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.EntryDate, r.TimeOut, r.TimeIn, r.OpeningKms, r.ClosingKms, r.TotalKms, r.FuelQuantity, r.VillagesVisited})
	}
	return single("Ambulance Logbook",
		[]string{"Entry Date", "Time Out", "Time In", "Opening Kms", "Closing Kms", "Total Kms", "Fuel Quantity", "Villages Visited"},
		data)
}
