package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
)

// Generates a synthetic customer dataset in the format the insight service
// ingests. Purchase outcomes are drawn so the known drivers (tech savviness,
// youth, loyalty, activity) actually correlate with buying, which keeps the
// importance ranking and the scorer interesting on generated data.

var (
	brands = []string{"Samsung", "Apple", "Xiaomi", "OnePlus", "Google"}
	oses   = []string{"Android", "iOS"}
)

func main() {
	var (
		out   = flag.String("out", "data/customers.csv", "Output CSV path")
		count = flag.Int("count", 200, "Number of records to generate")
		seed  = flag.Int64("seed", 42, "Random seed")
	)
	flag.Parse()

	fmt.Printf("Generating %d customer records...\n", *count)

	rng := rand.New(rand.NewSource(*seed))
	var sb strings.Builder
	sb.WriteString("# synthetic customer purchase dataset\n")
	sb.WriteString("User_ID,Age,Salary,Brand_Preference,Preferred_OS,Tech_Savvy,Online_Activity_Score,Previous_Purchases,Loyalty_Score,Avg_Session_Time,Social_Media_Influence,Warranty_Interest,Purchased\n")

	for i := 1; i <= *count; i++ {
		age := 18 + rng.Intn(53)
		salary := 25000 + rng.Intn(75001)
		brand := brands[rng.Intn(len(brands))]
		osName := oses[rng.Intn(len(oses))]
		techSavvy := rng.Float64() < 0.5
		activity := rng.Intn(101)
		purchases := rng.Intn(6)
		loyalty := 1 + rng.Intn(10)
		session := rng.Float64() * 5
		influence := rng.Intn(101)
		warranty := rng.Float64() < 0.4

		// Purchase probability leans on the attributes the scorer rewards.
		p := 0.2
		if techSavvy {
			p += 0.2
		}
		if age < 30 {
			p += 0.15
		}
		if activity > 70 {
			p += 0.15
		}
		if loyalty >= 7 {
			p += 0.1
		}
		if purchases >= 3 {
			p += 0.1
		}
		purchased := rng.Float64() < p

		sb.WriteString(fmt.Sprintf("U%03d,%d,%d,%s,%s,%s,%d,%d,%d,%.1f,%d,%s,%s\n",
			i, age, salary, brand, osName,
			boolField(techSavvy), activity, purchases, loyalty, session, influence,
			boolField(warranty), boolField(purchased)))
	}

	if err := os.WriteFile(*out, []byte(sb.String()), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("✓ Wrote %d records to %s\n", *count, *out)
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
