package diversity

// Strata holds the size-based cohort membership sets for one entity type.
// Strata are nested by construction: every member of the min_10 stratum is
// a member of min_5, min_5 of min_2, and every firm belongs to "all".
type Strata struct {
	thresholds []Threshold
	members    map[Threshold]map[string]struct{}
}

// NewStrata builds cohort membership from per-firm total game counts.
// Threshold 1 applies no filter, so no membership set is materialized for
// it. A firm absent from the count lookup belongs only to the unfiltered
// stratum; callers treat that as a missing join key for the filtered
// cohorts.
func NewStrata(counts map[string]int, thresholds []int) *Strata {
	s := &Strata{members: make(map[Threshold]map[string]struct{})}
	for _, t := range thresholds {
		threshold := Threshold(t)
		s.thresholds = append(s.thresholds, threshold)
		if threshold <= 1 {
			continue
		}
		set := make(map[string]struct{})
		for entityID, count := range counts {
			if count >= t {
				set[entityID] = struct{}{}
			}
		}
		s.members[threshold] = set
	}
	return s
}

// Thresholds returns the configured thresholds in their original order
func (s *Strata) Thresholds() []Threshold {
	return s.thresholds
}

// Contains reports whether an entity belongs to the stratum for a threshold
func (s *Strata) Contains(threshold Threshold, entityID string) bool {
	if threshold <= 1 {
		return true
	}
	set, ok := s.members[threshold]
	if !ok {
		return false
	}
	_, member := set[entityID]
	return member
}

// Size returns the number of firms in a materialized stratum
func (s *Strata) Size(threshold Threshold) int {
	if threshold <= 1 {
		return 0 // unfiltered stratum has no materialized set
	}
	return len(s.members[threshold])
}
