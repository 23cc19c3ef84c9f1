package validate

// Summary holds report-wide counters for the dashboard header.
type Summary struct {
	TotalPersons        int `json:"total_persons"`
	WithIssues          int `json:"with_issues"`
	MultipleCostCenters int `json:"multiple_cost_centers"`
	MultipleActivities  int `json:"multiple_activities"`
	WithEmptyFields     int `json:"with_empty_fields"`
	FileDates           int `json:"file_dates"`
}

// Summarize reduces a report to counters. distinctDates is the file-wide output of
// DetectDistinctDates. An empty report summarizes to all zeros.
func Summarize(r *Report, distinctDates []string) Summary {
	if r == nil || len(r.Persons) == 0 {
		return Summary{}
	}
	s := Summary{
		TotalPersons: len(r.Persons),
		FileDates:    len(distinctDates),
	}
	for i := range r.Persons {
		p := &r.Persons[i]
		if p.HasIssues {
			s.WithIssues++
		}
		if p.MultipleCostCenters {
			s.MultipleCostCenters++
		}
		if p.MultipleActivities {
			s.MultipleActivities++
		}
		if p.HasEmptyCostCenter || p.HasEmptyActivity {
			s.WithEmptyFields++
		}
	}
	return s
}
