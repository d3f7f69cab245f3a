// Package result turns per-subject marks into term results, final results
// and promotion decisions. Every function is pure; callers own all I/O.
package result

import "math"

// Calculator applies a fixed set of Rules.
type Calculator struct {
	rules Rules
}

// NewCalculator constructs a Calculator for the given rules.
func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules}
}

var defaultCalculator = NewCalculator(DefaultRules())

// Rules returns the policy the calculator applies.
func (c *Calculator) Rules() Rules {
	return c.rules
}

// SubjectResult scores a single subject. Absence short-circuits scoring.
func (c *Calculator) SubjectResult(obtainedMarks, totalMarks, passingMarks float64, isAbsent bool) SubjectOutcome {
	if isAbsent {
		return SubjectOutcome{Percentage: 0, Grade: GradeAbsent, IsPassed: false}
	}
	percentage := round2(obtainedMarks / totalMarks * 100)
	return SubjectOutcome{
		Percentage: percentage,
		Grade:      c.rules.grade(percentage),
		IsPassed:   obtainedMarks >= passingMarks,
	}
}

// TermResult folds one term's marks into a pass/fail outcome. TermName is left
// blank for the caller to fill in.
func (c *Calculator) TermResult(marks []SubjectMark) TermResult {
	var totalMarks, obtainedMarks float64
	var subjectsFailed, subjectsAbsent int

	for _, mark := range marks {
		totalMarks += mark.TotalMarks
		if mark.IsAbsent {
			subjectsAbsent++
		} else {
			obtainedMarks += mark.ObtainedMarks
		}
		if mark.failed() {
			subjectsFailed++
		}
	}

	percentage := percentOf(obtainedMarks, totalMarks)

	status := StatusPass
	if c.failsOnCounts(subjectsAbsent, subjectsFailed) || percentage < c.rules.PassPercentage {
		status = StatusFail
	}

	return TermResult{
		TermName:       "",
		Marks:          marks,
		TotalMarks:     totalMarks,
		ObtainedMarks:  obtainedMarks,
		Percentage:     percentage,
		SubjectsFailed: subjectsFailed,
		Status:         status,
	}
}

// FinalResult combines up to three terms. Nil terms are skipped; absence and
// failure counts are accumulated across every supplied term.
func (c *Calculator) FinalResult(term1, term2, term3 *TermResult) FinalResult {
	terms := make([]*TermResult, 0, 3)
	for _, term := range []*TermResult{term1, term2, term3} {
		if term != nil {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return FinalResult{
			FinalGrade: GradeNotAvailable,
			Status:     StatusFail,
			Remarks:    RemarkNoTerms,
		}
	}

	var totalMarks, obtainedMarks float64
	var totalAbsentSubjects, totalFailedSubjects int
	for _, term := range terms {
		totalMarks += term.TotalMarks
		obtainedMarks += term.ObtainedMarks
		for _, mark := range term.Marks {
			if mark.IsAbsent {
				totalAbsentSubjects++
			}
			if mark.failed() {
				totalFailedSubjects++
			}
		}
	}

	finalPercentage := percentOf(obtainedMarks, totalMarks)
	final := FinalResult{
		TotalMarks:      totalMarks,
		ObtainedMarks:   obtainedMarks,
		FinalPercentage: finalPercentage,
		FinalGrade:      c.rules.grade(finalPercentage),
	}

	switch {
	case totalAbsentSubjects >= c.rules.AbsentExcludedAt:
		final.Status, final.Remarks = StatusAbsent, c.rules.absentRemark()
	case totalAbsentSubjects >= c.rules.AbsentFailAt:
		final.Status, final.Remarks = StatusFail, c.rules.absentFailedRemark()
	case totalFailedSubjects > c.rules.MaxFailedSubjects:
		final.Status, final.Remarks = StatusFail, c.rules.subjectsFailedRemark()
	case c.rules.failsWithAbsence(totalAbsentSubjects, totalFailedSubjects):
		final.Status, final.Remarks = StatusFail, failAndAbsentRemark(totalFailedSubjects, totalAbsentSubjects)
	case finalPercentage < c.rules.PassPercentage:
		final.Status, final.Remarks = StatusFail, c.rules.lowPercentageRemark()
	default:
		final.Status, final.Remarks = StatusPromoted, RemarkPromoted
	}
	return final
}

// ShouldPromote requires both the promoted status and the pass percentage.
func (c *Calculator) ShouldPromote(final FinalResult) bool {
	return final.Status == StatusPromoted && final.FinalPercentage >= c.rules.PassPercentage
}

// failsOnCounts evaluates the absence and failure rules in priority order.
func (c *Calculator) failsOnCounts(absent, failed int) bool {
	switch {
	case absent >= c.rules.AbsentExcludedAt:
		return true
	case absent >= c.rules.AbsentFailAt:
		return true
	case failed > c.rules.MaxFailedSubjects:
		return true
	case c.rules.failsWithAbsence(absent, failed):
		return true
	}
	return false
}

// CalculateSubjectResult scores a subject with the default rules.
func CalculateSubjectResult(obtainedMarks, totalMarks, passingMarks float64, isAbsent bool) SubjectOutcome {
	return defaultCalculator.SubjectResult(obtainedMarks, totalMarks, passingMarks, isAbsent)
}

// CalculateTermResult evaluates a term with the default rules.
func CalculateTermResult(marks []SubjectMark) TermResult {
	return defaultCalculator.TermResult(marks)
}

// CalculateFinalResult evaluates the year with the default rules.
func CalculateFinalResult(term1, term2, term3 *TermResult) FinalResult {
	return defaultCalculator.FinalResult(term1, term2, term3)
}

// ShouldPromoteStudent applies the default promotion gate.
func ShouldPromoteStudent(final FinalResult) bool {
	return defaultCalculator.ShouldPromote(final)
}

// CalculateSecondTermAverage is the running average after two terms.
func CalculateSecondTermAverage(term1Total, term2Total float64) float64 {
	return (term1Total + term2Total) / 2
}

// CalculateThirdTermAverage is the running average after three terms.
func CalculateThirdTermAverage(term1Total, term2Total, term3Total float64) float64 {
	return (term1Total + term2Total + term3Total) / 3
}

// CalculateTermTotal sums obtained marks, skipping absent subjects.
func CalculateTermTotal(marks []SubjectMark) float64 {
	var total float64
	for _, mark := range marks {
		if !mark.IsAbsent {
			total += mark.ObtainedMarks
		}
	}
	return total
}

// GetClassSubjects returns the distinct subject names in marks. Order is not guaranteed.
func GetClassSubjects(marks []SubjectMark) []string {
	seen := make(map[string]struct{}, len(marks))
	subjects := make([]string, 0, len(marks))
	for _, mark := range marks {
		if _, ok := seen[mark.SubjectName]; ok {
			continue
		}
		seen[mark.SubjectName] = struct{}{}
		subjects = append(subjects, mark.SubjectName)
	}
	return subjects
}

func percentOf(obtained, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(obtained / total * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
