package registration

import "sort"

// OrgCount is one entry in the organization frequency ranking.
type OrgCount struct {
	Organization string `json:"organization"`
	Count        int    `json:"count"`
}

// AgeSummary describes the age distribution of a record set.
type AgeSummary struct {
	Mean float64 `json:"mean"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
}

// Stats is the aggregate document served to the admin dashboard and written
// to the summary sheet of the workbook export.
type Stats struct {
	Total            int            `json:"total"`
	BySex            map[string]int `json:"by_sex"`
	ByLevel          map[string]int `json:"by_level"`
	ByAttendanceMode map[string]int `json:"by_attendance_mode"`
	TopOrganizations []OrgCount     `json:"top_organizations"`
	Ages             AgeSummary     `json:"ages"`
}

// UnspecifiedOrganization stands in for records whose organization field is
// empty when ranking organizations.
const UnspecifiedOrganization = "Unspecified"

// CountBy tallies records by an arbitrary category key.
func CountBy(records []Registrant, key func(Registrant) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// TopOrganizations ranks organizations by frequency, descending. Ties are
// broken by first-seen order in the scan, which for a store snapshot is
// insertion order, so the ranking is deterministic.
func TopOrganizations(records []Registrant, n int) []OrgCount {
	counts := make(map[string]int)
	var order []string
	firstSeen := make(map[string]int)
	for _, r := range records {
		org := r.Organization
		if org == "" {
			org = UnspecifiedOrganization
		}
		if _, ok := counts[org]; !ok {
			firstSeen[org] = len(order)
			order = append(order, org)
		}
		counts[org]++
	}

	ranked := make([]OrgCount, 0, len(order))
	for _, org := range order {
		ranked = append(ranked, OrgCount{Organization: org, Count: counts[org]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Organization] < firstSeen[ranked[j].Organization]
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SummarizeAges computes mean/min/max over all record ages. The zero summary
// is returned for an empty record set.
func SummarizeAges(records []Registrant) AgeSummary {
	if len(records) == 0 {
		return AgeSummary{}
	}
	sum := 0
	min, max := records[0].Age, records[0].Age
	for _, r := range records {
		sum += r.Age
		if r.Age < min {
			min = r.Age
		}
		if r.Age > max {
			max = r.Age
		}
	}
	return AgeSummary{
		Mean: float64(sum) / float64(len(records)),
		Min:  min,
		Max:  max,
	}
}

// ComputeStats builds the full aggregate document over a store snapshot.
func ComputeStats(records []Registrant) Stats {
	return Stats{
		Total:            len(records),
		BySex:            CountBy(records, func(r Registrant) string { return string(r.Sex) }),
		ByLevel:          CountBy(records, func(r Registrant) string { return string(r.Level) }),
		ByAttendanceMode: CountBy(records, func(r Registrant) string { return string(r.AttendanceMode) }),
		TopOrganizations: TopOrganizations(records, 5),
		Ages:             SummarizeAges(records),
	}
}
