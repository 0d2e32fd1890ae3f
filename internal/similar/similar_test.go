package similar

import (
	"testing"

	"purchase-insight/internal/dataset"
	"purchase-insight/internal/predict"
)

func mustIngest(t *testing.T, raw string) *dataset.Dataset {
	t.Helper()
	ds, _, err := dataset.Ingest(raw)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	return ds
}

const neighborCSV = "User_ID,Age,Salary,Brand_Preference,Preferred_OS,Tech_Savvy,Online_Activity_Score,Previous_Purchases,Loyalty_Score,Warranty_Interest,Purchased\n" +
	"U001,25,45000,Samsung,Android,1,80,3,8,1,1\n" +
	"U002,60,90000,Apple,iOS,0,10,0,2,0,0\n" +
	"U003,27,47000,Samsung,Android,1,75,2,7,1,1\n"

func exactInput() predict.Input {
	return predict.Input{
		Age:              25,
		Brand:            "Samsung",
		OS:               "Android",
		TechSavvy:        true,
		OnlineActivity:   80,
		PrevPurchases:    3,
		LoyaltyScore:     8,
		WarrantyInterest: true,
	}
}

func TestSimilarity_ExactMatch(t *testing.T) {
	ds := mustIngest(t, neighborCSV)
	// U001 matches the query on every criterion.
	if got := Similarity(exactInput(), ds.Records()[0]); got != MaxScore {
		t.Errorf("expected max score %d, got %d", MaxScore, got)
	}
}

func TestSimilarity_Criteria(t *testing.T) {
	base := dataset.Record{
		Age:   25,
		Brand: "Samsung",
		OS:    "Android",
	}
	in := predict.Input{Age: 25, Brand: "Samsung", OS: "Android"}

	// age +1, brand +2, os +2, tech-savvy both false +1, warranty both false +1.
	// Missing loyalty/activity/purchases fail their criteria.
	if got := Similarity(in, base); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}

	// Age beyond the window drops the age point.
	far := base
	far.Age = 31
	if got := Similarity(in, far); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}

	// A present loyalty within 2 earns its point.
	loyal := base
	loyal.LoyaltyScore = dataset.OptInt{Value: 6, Valid: true}
	in.LoyaltyScore = 8
	if got := Similarity(in, loyal); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}

	// Out of the tolerance window: no point.
	loyal.LoyaltyScore = dataset.OptInt{Value: 3, Valid: true}
	if got := Similarity(in, loyal); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestSimilarity_MissingFieldIsNotWildcard(t *testing.T) {
	in := exactInput()

	present := dataset.Record{Age: 25, Brand: "Samsung", OS: "Android", TechSavvy: true,
		WarrantyInterest: true,
		LoyaltyScore:     dataset.OptInt{Value: 8, Valid: true}}
	missing := present
	missing.LoyaltyScore = dataset.OptInt{}

	if Similarity(in, missing) >= Similarity(in, present) {
		t.Error("a missing loyalty score must not score as well as a matching one")
	}
}

func TestFindNearest(t *testing.T) {
	ds := mustIngest(t, neighborCSV)

	matches := FindNearest(exactInput(), ds, 2)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != "U001" {
		t.Errorf("expected U001 first, got %s", matches[0].ID)
	}
	if matches[1].ID != "U003" {
		t.Errorf("expected U003 second, got %s", matches[1].ID)
	}
	if matches[0].Similarity < matches[1].Similarity {
		t.Error("matches not in descending similarity")
	}
	if !matches[0].Purchased || matches[0].Age != 25 || matches[0].Brand != "Samsung" {
		t.Errorf("display fields not carried: %+v", matches[0])
	}
	if !matches[0].Salary.Valid || matches[0].Salary.Value != 45000 {
		t.Errorf("expected salary carried, got %+v", matches[0].Salary)
	}
}

func TestFindNearest_KClamping(t *testing.T) {
	ds := mustIngest(t, neighborCSV)
	in := exactInput()

	if got := FindNearest(in, ds, 50); len(got) != ds.Len() {
		t.Errorf("k beyond dataset should return all records, got %d", len(got))
	}
	if got := FindNearest(in, ds, 0); len(got) != 0 {
		t.Errorf("k=0 should return nothing, got %d", len(got))
	}
	if got := FindNearest(in, ds, -3); len(got) != 0 {
		t.Errorf("negative k should return nothing, got %d", len(got))
	}
}

func TestFindNearest_StableTies(t *testing.T) {
	// Two identical records tie; insertion order decides.
	raw := "User_ID,Age,Brand_Preference,Preferred_OS,Purchased\n" +
		"U001,30,Apple,iOS,1\n" +
		"U002,30,Apple,iOS,0\n"
	ds := mustIngest(t, raw)

	in := predict.Input{Age: 30, Brand: "Apple", OS: "iOS", LoyaltyScore: 5}
	matches := FindNearest(in, ds, 2)
	if matches[0].ID != "U001" || matches[1].ID != "U002" {
		t.Errorf("tied matches should keep insertion order, got %v", matches)
	}
}

type fakeSimilarTracker struct{ queries int }

func (f *fakeSimilarTracker) SimilarityQueriesInc() { f.queries++ }

func TestFindNearestWithMetrics(t *testing.T) {
	ds := mustIngest(t, neighborCSV)

	tracker := &fakeSimilarTracker{}
	FindNearestWithMetrics(exactInput(), ds, 2, tracker)
	if tracker.queries != 1 {
		t.Errorf("expected 1 query tracked, got %d", tracker.queries)
	}
}
