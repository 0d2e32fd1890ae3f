package dataset

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `User_ID,Age,Salary,Brand_Preference,Preferred_OS,Tech_Savvy,Online_Activity_Score,Previous_Purchases,Loyalty_Score,Avg_Session_Time,Social_Media_Influence,Warranty_Interest,Purchased
U001,25,45000,Samsung,Android,1,85,3,9,3.5,75,1,1
U002,42,80000,Apple,iOS,0,40,1,4,1.2,30,0,0
U003,31,52000,Xiaomi,Android,1,90,4,8,2.8,85,1,1
`

func TestIngest(t *testing.T) {
	ds, warnings, err := Ingest(sampleCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if ds.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", ds.Len())
	}

	r := ds.Records()[0]
	if r.ID != "U001" {
		t.Errorf("expected ID U001, got %s", r.ID)
	}
	if r.Age != 25 {
		t.Errorf("expected age 25, got %d", r.Age)
	}
	if !r.Salary.Valid || r.Salary.Value != 45000 {
		t.Errorf("expected salary 45000, got %+v", r.Salary)
	}
	if r.Brand != "Samsung" || r.OS != "Android" {
		t.Errorf("unexpected brand/os: %s/%s", r.Brand, r.OS)
	}
	if !r.TechSavvy || !r.WarrantyInterest || !r.Purchased {
		t.Error("expected boolean flags set for U001")
	}
	if !r.SessionTime.Valid || r.SessionTime.Value != 3.5 {
		t.Errorf("expected session time 3.5, got %+v", r.SessionTime)
	}

	// Row two has the flags off.
	r2 := ds.Records()[1]
	if r2.TechSavvy || r2.WarrantyInterest || r2.Purchased {
		t.Error("expected boolean flags unset for U002")
	}
}

func TestIngest_CommentsAndBlankLines(t *testing.T) {
	raw := "# generated dataset\n\n" +
		"User_ID,Age,Purchased\n" +
		"# mid-file comment\n" +
		"U001,30,1\n" +
		"\n" +
		"U002,40,0\n"

	ds, warnings, err := Ingest(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if ds.Len() != 2 {
		t.Errorf("expected 2 records, got %d", ds.Len())
	}
}

func TestIngest_MissingRequiredColumns(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		missing []string
	}{
		{"no age", "User_ID,Purchased\nU001,1\n", []string{ColAge}},
		{"no purchased", "User_ID,Age\nU001,30\n", []string{ColPurchased}},
		{"neither", "User_ID,Salary\nU001,40000\n", []string{ColAge, ColPurchased}},
		{"only comments", "# nothing here\n\n", []string{ColAge, ColPurchased}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, _, err := Ingest(tt.raw)
			if ds != nil {
				t.Error("expected nil dataset on schema error")
			}
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if len(se.Missing) != len(tt.missing) {
				t.Fatalf("expected missing %v, got %v", tt.missing, se.Missing)
			}
			for i, col := range tt.missing {
				if se.Missing[i] != col {
					t.Errorf("expected missing %v, got %v", tt.missing, se.Missing)
				}
			}
		})
	}
}

func TestIngest_ShortRowPadded(t *testing.T) {
	raw := "User_ID,Age,Salary,Purchased\nU001,30\n"

	ds, warnings, err := Ingest(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Line != 2 {
		t.Errorf("expected warning on line 2, got %d", warnings[0].Line)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected the short row to be kept, got %d records", ds.Len())
	}

	r := ds.Records()[0]
	if r.Salary.Valid {
		t.Error("expected padded salary to stay missing")
	}
	if r.Purchased {
		t.Error("expected padded purchased to decode as false")
	}
}

func TestIngest_UnparseableAgeDropsRow(t *testing.T) {
	raw := "User_ID,Age,Purchased\nU001,notanumber,1\nU002,35,1\n"

	ds, warnings, err := Ingest(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0].Reason, "age") {
		t.Errorf("warning should mention age, got %q", warnings[0].Reason)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected 1 surviving record, got %d", ds.Len())
	}
	if ds.Records()[0].ID != "U002" {
		t.Errorf("wrong record survived: %s", ds.Records()[0].ID)
	}
}

func TestIngest_BooleanEncoding(t *testing.T) {
	// Only the literal "1" is true; "true", "yes", and junk are all false.
	raw := "User_ID,Age,Tech_Savvy,Purchased\n" +
		"U001,30,1,1\n" +
		"U002,30,true,yes\n" +
		"U003,30,0,0\n"

	ds, _, err := Ingest(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	recs := ds.Records()
	if !recs[0].TechSavvy || !recs[0].Purchased {
		t.Error("expected \"1\" to decode as true")
	}
	if recs[1].TechSavvy || recs[1].Purchased {
		t.Error("expected non-\"1\" truthy strings to decode as false")
	}
	if recs[2].TechSavvy || recs[2].Purchased {
		t.Error("expected \"0\" to decode as false")
	}
}

func TestDataset_Indices(t *testing.T) {
	raw := "User_ID,Age,Brand_Preference,Preferred_OS,Purchased\n" +
		"U001,25,Samsung,Android,1\n" +
		"U002,30,Apple,iOS,0\n" +
		"U003,35,Samsung,Android,1\n" +
		"U001,99,Xiaomi,Android,0\n" // duplicate id, first occurrence wins

	ds, _, err := Ingest(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	brands := ds.Brands()
	wantBrands := []string{"Samsung", "Apple", "Xiaomi"}
	if len(brands) != len(wantBrands) {
		t.Fatalf("expected brands %v, got %v", wantBrands, brands)
	}
	for i, b := range wantBrands {
		if brands[i] != b {
			t.Errorf("expected brands %v, got %v", wantBrands, brands)
		}
	}

	oses := ds.OSes()
	if len(oses) != 2 || oses[0] != "Android" || oses[1] != "iOS" {
		t.Errorf("unexpected OS list: %v", oses)
	}

	r, ok := ds.Find("U001")
	if !ok {
		t.Fatal("expected to find U001")
	}
	if r.Age != 25 {
		t.Errorf("duplicate id should resolve to first occurrence, got age %d", r.Age)
	}

	if _, ok := ds.Find("MISSING"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

type fakeTracker struct {
	records  int
	warnings int
	observed int
	size     int
}

func (f *fakeTracker) RecordsIngestedAdd(n int)          { f.records += n }
func (f *fakeTracker) RowWarningsAdd(n int)              { f.warnings += n }
func (f *fakeTracker) IngestDurationObserve(sec float64) { f.observed++ }
func (f *fakeTracker) DatasetSizeSet(n int)              { f.size = n }

func TestIngestWithMetrics(t *testing.T) {
	raw := "User_ID,Age,Purchased\nU001,30,1\nU002,bad,0\n"

	tracker := &fakeTracker{}
	ds, _, err := IngestWithMetrics(raw, tracker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tracker.records != ds.Len() {
		t.Errorf("expected %d records tracked, got %d", ds.Len(), tracker.records)
	}
	if tracker.warnings != 1 {
		t.Errorf("expected 1 warning tracked, got %d", tracker.warnings)
	}
	if tracker.observed != 1 {
		t.Errorf("expected 1 duration observation, got %d", tracker.observed)
	}
	if tracker.size != 1 {
		t.Errorf("expected dataset size 1 tracked, got %d", tracker.size)
	}
}
