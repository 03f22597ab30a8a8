package scoring

import "fmt"

// SubjectPolicy decides how a new test percentage folds into a stored
// subject score.
type SubjectPolicy string

const (
	// PolicyAverage keeps a running mean across attempts.
	PolicyAverage SubjectPolicy = "average"
	// PolicyOverwrite keeps only the latest percentage.
	PolicyOverwrite SubjectPolicy = "overwrite"
)

// ParseSubjectPolicy accepts the config spelling of a policy. An empty value
// selects PolicyAverage.
func ParseSubjectPolicy(s string) (SubjectPolicy, error) {
	switch SubjectPolicy(s) {
	case "", PolicyAverage:
		return PolicyAverage, nil
	case PolicyOverwrite:
		return PolicyOverwrite, nil
	}
	return "", fmt.Errorf("unknown subject score policy %q", s)
}

// ApplySubjectScore folds latest into prev, where prev was built from count
// earlier attempts. It returns the new stored score and attempt count. The
// result stays within [0,100].
func ApplySubjectScore(policy SubjectPolicy, prev float64, count int, latest float64) (float64, int) {
	latest = clampPercent(latest)
	if policy == PolicyOverwrite || count <= 0 {
		return latest, count + 1
	}
	prev = clampPercent(prev)
	mean := (prev*float64(count) + latest) / float64(count+1)
	return round2(mean), count + 1
}
