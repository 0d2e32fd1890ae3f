package dataset

// Dataset is the ordered, immutable collection of ingested records.
// Insertion order matches input order. Derived indices (distinct brands
// and operating systems, id lookup) are built once at construction and
// cached for the lifetime of the Dataset.
type Dataset struct {
	header  []string
	records []Record
	brands  []string
	oses    []string
	byID    map[string]int
}

func newDataset(header []string, records []Record) *Dataset {
	ds := &Dataset{
		header:  header,
		records: records,
		byID:    make(map[string]int, len(records)),
	}

	seenBrand := make(map[string]bool)
	seenOS := make(map[string]bool)
	for i, r := range records {
		if r.Brand != "" && !seenBrand[r.Brand] {
			seenBrand[r.Brand] = true
			ds.brands = append(ds.brands, r.Brand)
		}
		if r.OS != "" && !seenOS[r.OS] {
			seenOS[r.OS] = true
			ds.oses = append(ds.oses, r.OS)
		}
		if r.ID != "" {
			if _, dup := ds.byID[r.ID]; !dup {
				ds.byID[r.ID] = i
			}
		}
	}
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns the records in insertion order. Callers must treat the
// returned slice as read-only.
func (d *Dataset) Records() []Record { return d.records }

// Header returns the column names in input order.
func (d *Dataset) Header() []string { return d.header }

// Brands returns the distinct brand preferences in first-seen order.
func (d *Dataset) Brands() []string { return d.brands }

// OSes returns the distinct preferred operating systems in first-seen order.
func (d *Dataset) OSes() []string { return d.oses }

// Find looks up a record by its id.
func (d *Dataset) Find(id string) (Record, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}
