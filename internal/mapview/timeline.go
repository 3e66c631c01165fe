package mapview

import (
	"sort"
	"strconv"
	"time"

	"github.com/mkleiven/travel-log/internal/domain"
)

// NoDateGroup labels the timeline group for records without a date.
const NoDateGroup = "No date"

// YearGroup is one year's worth of records in the timeline view.
type YearGroup struct {
	Year    string
	Records []domain.Record
}

// GroupByYear arranges records for the timeline: grouped by the year of
// their date, years descending, records within a year by date descending.
// Records with no date (or an unparseable one) collect in a trailing
// NoDateGroup bucket in their original order.
func GroupByYear(records []domain.Record) []YearGroup {
	grouped := make(map[int][]domain.Record)
	var undated []domain.Record

	for _, rec := range records {
		t, ok := recordDate(rec)
		if !ok {
			undated = append(undated, rec)
			continue
		}
		grouped[t.Year()] = append(grouped[t.Year()], rec)
	}

	years := make([]int, 0, len(grouped))
	for y := range grouped {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := make([]YearGroup, 0, len(years)+1)
	for _, y := range years {
		recs := grouped[y]
		sort.SliceStable(recs, func(i, j int) bool {
			a, _ := recordDate(recs[i])
			b, _ := recordDate(recs[j])
			return a.After(b)
		})
		out = append(out, YearGroup{Year: strconv.Itoa(y), Records: recs})
	}
	if len(undated) > 0 {
		out = append(out, YearGroup{Year: NoDateGroup, Records: undated})
	}
	return out
}

// FormatDate renders an ISO date for display, e.g. "2024-01-15" → "15. Jan 2024".
// Unparseable input is returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("2. Jan 2006")
}

// recordDate parses the record's ISO date, reporting ok=false when the
// record has no date or the value does not parse.
func recordDate(rec domain.Record) (time.Time, bool) {
	if rec.Date == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", *rec.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
