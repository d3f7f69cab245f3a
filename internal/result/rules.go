package result

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
)

// GradeBand maps a minimum percentage to a grade token.
type GradeBand struct {
	Min   float64 `json:"min"`
	Grade string  `json:"grade"`
}

// Rules holds the school policy applied by the calculator.
type Rules struct {
	// PassPercentage is the overall percentage below which a term or year fails.
	PassPercentage float64
	// AbsentExcludedAt is the absence count at which a term fails outright
	// and a final result is reported as absent.
	AbsentExcludedAt int
	// AbsentFailAt is the absence count from which a result fails.
	AbsentFailAt int
	// MaxFailedSubjects is the largest failed-or-absent count still tolerated.
	MaxFailedSubjects int
	// GradeBands are evaluated top-down; a percentage below every band gets FallbackGrade.
	GradeBands    []GradeBand
	FallbackGrade string
}

// DefaultRules returns the stock report card policy.
func DefaultRules() Rules {
	return Rules{
		PassPercentage:    33,
		AbsentExcludedAt:  4,
		AbsentFailAt:      2,
		MaxFailedSubjects: 1,
		GradeBands: []GradeBand{
			{Min: 90, Grade: "A+"},
			{Min: 80, Grade: "A"},
			{Min: 70, Grade: "B"},
			{Min: 60, Grade: "C"},
			{Min: 50, Grade: "D"},
			{Min: 33, Grade: "E"},
		},
		FallbackGrade: "F",
	}
}

// Validate checks the rules are internally consistent.
func (r Rules) Validate() error {
	if r.PassPercentage < 0 || r.PassPercentage > 100 {
		return fmt.Errorf("pass percentage %v out of range", r.PassPercentage)
	}
	if r.AbsentFailAt <= 0 || r.AbsentExcludedAt < r.AbsentFailAt {
		return fmt.Errorf("absence thresholds invalid: fail at %d, excluded at %d", r.AbsentFailAt, r.AbsentExcludedAt)
	}
	if r.MaxFailedSubjects < 0 {
		return errors.New("max failed subjects must not be negative")
	}
	if len(r.GradeBands) == 0 {
		return errors.New("at least one grade band required")
	}
	for i := 1; i < len(r.GradeBands); i++ {
		if r.GradeBands[i].Min >= r.GradeBands[i-1].Min {
			return fmt.Errorf("grade band %q must have a lower minimum than %q", r.GradeBands[i].Grade, r.GradeBands[i-1].Grade)
		}
	}
	if r.FallbackGrade == "" {
		return errors.New("fallback grade required")
	}
	return nil
}

// WithSettings overlays stored school settings on r. Non-positive values
// keep the current rule.
func (r Rules) WithSettings(passPercentage float64, maxFailSubjects int) Rules {
	if passPercentage > 0 {
		r.PassPercentage = passPercentage
	}
	if maxFailSubjects > 0 {
		r.MaxFailedSubjects = maxFailSubjects
	}
	return r
}

// RulesFromSettings overlays stored school settings on the defaults.
func RulesFromSettings(passPercentage float64, maxFailSubjects int) Rules {
	return DefaultRules().WithSettings(passPercentage, maxFailSubjects)
}

// Fingerprint identifies the policy. Equal rules share a fingerprint.
func (r Rules) Fingerprint() string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%v|%d|%d|%d|%s", r.PassPercentage, r.AbsentExcludedAt, r.AbsentFailAt, r.MaxFailedSubjects, r.FallbackGrade)
	for _, band := range r.GradeBands {
		fmt.Fprintf(h, "|%v:%s", band.Min, band.Grade)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func (r Rules) grade(percentage float64) string {
	for _, band := range r.GradeBands {
		if percentage >= band.Min {
			return band.Grade
		}
	}
	return r.FallbackGrade
}

// failsWithAbsence reports whether an absence uses up the last tolerated
// failure. Callers check the absence thresholds and MaxFailedSubjects first.
func (r Rules) failsWithAbsence(absent, failed int) bool {
	return absent > 0 && failed == r.MaxFailedSubjects
}

func failAndAbsentRemark(failed, absent int) string {
	return fmt.Sprintf("Failed (%d fail and %d absent)", failed, absent)
}

func (r Rules) absentRemark() string {
	return fmt.Sprintf("Absent (%d or more subjects absent)", r.AbsentExcludedAt)
}

func (r Rules) absentFailedRemark() string {
	upper := r.AbsentExcludedAt - 1
	if upper <= r.AbsentFailAt {
		return fmt.Sprintf("Failed (%d subjects absent)", r.AbsentFailAt)
	}
	return fmt.Sprintf("Failed (%d-%d subjects absent)", r.AbsentFailAt, upper)
}

func (r Rules) subjectsFailedRemark() string {
	return fmt.Sprintf("Failed (%d or more subjects failed)", r.MaxFailedSubjects+1)
}

func (r Rules) lowPercentageRemark() string {
	return fmt.Sprintf("Failed (Overall percentage below %s%%)", strconv.FormatFloat(r.PassPercentage, 'f', -1, 64))
}
