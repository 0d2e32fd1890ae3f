package stats

import (
	"testing"

	"purchase-insight/internal/dataset"
)

func mustIngest(t *testing.T, raw string) *dataset.Dataset {
	t.Helper()
	ds, _, err := dataset.Ingest(raw)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	return ds
}

func TestSummarize(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Salary,Purchased\n"+
		"U001,20,40000,1\n"+
		"U002,30,,0\n"+
		"U003,40,50000,1\n"+
		"U004,50,60000,0\n")

	s := Summarize(ds)
	if s.Total != 4 {
		t.Errorf("expected total 4, got %d", s.Total)
	}
	if !s.PurchaseRate.Valid || s.PurchaseRate.Value != 50.0 {
		t.Errorf("expected purchase rate 50.0, got %+v", s.PurchaseRate)
	}
	if !s.AvgAge.Valid || s.AvgAge.Value != 35.0 {
		t.Errorf("expected avg age 35.0, got %+v", s.AvgAge)
	}
	// Salary mean excludes the record with a missing salary.
	if !s.AvgSalary.Valid || s.AvgSalary.Value != 50000.0 {
		t.Errorf("expected avg salary 50000, got %+v", s.AvgSalary)
	}
}

func TestSummarize_RateRounding(t *testing.T) {
	// 1 of 3 purchased is 33.333...%, rounded to one decimal.
	ds := mustIngest(t, "User_ID,Age,Purchased\nU001,20,1\nU002,30,0\nU003,40,0\n")

	s := Summarize(ds)
	if s.PurchaseRate.Value != 33.3 {
		t.Errorf("expected purchase rate 33.3, got %v", s.PurchaseRate.Value)
	}
}

func TestSummarize_AllPurchased(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Purchased\nU001,20,1\nU002,30,1\n")

	s := Summarize(ds)
	if s.PurchaseRate.Value != 100.0 {
		t.Errorf("expected purchase rate 100.0, got %v", s.PurchaseRate.Value)
	}
}

func TestSummarize_Empty(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Purchased\n")

	s := Summarize(ds)
	if s.Total != 0 {
		t.Errorf("expected total 0, got %d", s.Total)
	}
	if s.PurchaseRate.Valid || s.AvgAge.Valid || s.AvgSalary.Valid {
		t.Error("expected all optional summary fields invalid for an empty dataset")
	}
}

func TestAgeGroupRates(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Purchased\n"+
		"U001,18,1\n"+ // 18-24
		"U002,24,0\n"+ // 18-24
		"U003,25,1\n"+ // 25-34
		"U004,44,1\n"+ // 35-44
		"U005,70,0\n") // 45+

	rates := AgeGroupRates(ds)
	if len(rates) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(rates))
	}

	want := []GroupRate{
		{Group: "18-24", Count: 2, Rate: 50.0},
		{Group: "25-34", Count: 1, Rate: 100.0},
		{Group: "35-44", Count: 1, Rate: 100.0},
		{Group: "45+", Count: 1, Rate: 0.0},
	}
	for i, g := range want {
		if rates[i] != g {
			t.Errorf("group %d: expected %+v, got %+v", i, g, rates[i])
		}
	}
}

func TestAgeGroupRates_EmptyBandsOmitted(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Purchased\nU001,50,1\n")

	rates := AgeGroupRates(ds)
	if len(rates) != 1 || rates[0].Group != "45+" {
		t.Errorf("expected only the 45+ band, got %+v", rates)
	}
}

func TestBrandDistribution(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Brand_Preference,Purchased\n"+
		"U001,20,Apple,1\n"+
		"U002,30,Samsung,0\n"+
		"U003,40,Samsung,1\n"+
		"U004,50,,0\n") // missing brand is skipped

	dist := BrandDistribution(ds)
	if len(dist) != 2 {
		t.Fatalf("expected 2 brands, got %d", len(dist))
	}
	if dist[0].Brand != "Samsung" || dist[0].Count != 2 {
		t.Errorf("expected Samsung first with 2, got %+v", dist[0])
	}
	if dist[1].Brand != "Apple" || dist[1].Count != 1 {
		t.Errorf("expected Apple second with 1, got %+v", dist[1])
	}
}

func TestBrandDistribution_TieKeepsFirstSeenOrder(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Brand_Preference,Purchased\n"+
		"U001,20,Xiaomi,1\n"+
		"U002,30,Apple,0\n")

	dist := BrandDistribution(ds)
	if dist[0].Brand != "Xiaomi" || dist[1].Brand != "Apple" {
		t.Errorf("tie should keep first-seen order, got %+v", dist)
	}
}

func TestFactorRates(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Tech_Savvy,Online_Activity_Score,Previous_Purchases,Loyalty_Score,Warranty_Interest,Purchased\n"+
		"U001,20,1,80,3,9,1,1\n"+
		"U002,30,1,50,1,5,0,0\n"+
		"U003,40,0,90,4,8,1,1\n")

	rates := FactorRates(ds)
	if len(rates) != 5 {
		t.Fatalf("expected 5 factors, got %d", len(rates))
	}

	byName := make(map[string]float64)
	for _, f := range rates {
		byName[f.Name] = f.Rate
	}
	if byName["Tech Savvy"] != 50.0 {
		t.Errorf("expected Tech Savvy 50.0, got %v", byName["Tech Savvy"])
	}
	if byName["High Online Activity"] != 100.0 {
		t.Errorf("expected High Online Activity 100.0, got %v", byName["High Online Activity"])
	}
	if byName["High Loyalty"] != 100.0 {
		t.Errorf("expected High Loyalty 100.0, got %v", byName["High Loyalty"])
	}
	if byName["Warranty Interest"] != 100.0 {
		t.Errorf("expected Warranty Interest 100.0, got %v", byName["Warranty Interest"])
	}
	if byName["Previous Purchases"] != 100.0 {
		t.Errorf("expected Previous Purchases 100.0, got %v", byName["Previous Purchases"])
	}
}

func TestFactorRates_NoMatches(t *testing.T) {
	ds := mustIngest(t, "User_ID,Age,Purchased\nU001,20,1\n")

	for _, f := range FactorRates(ds) {
		if f.Rate != 0 {
			t.Errorf("factor %s with no matching records should read 0, got %v", f.Name, f.Rate)
		}
	}
}
