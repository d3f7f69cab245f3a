package result

// ReportCard assembles the presentation bundle from three raw mark lists.
// Every list is evaluated, including empty ones.
func (c *Calculator) ReportCard(studentName, rollNumber, className string, term1Marks, term2Marks, term3Marks []SubjectMark) ReportCardData {
	term1 := c.TermResult(term1Marks)
	term2 := c.TermResult(term2Marks)
	term3 := c.TermResult(term3Marks)
	final := c.FinalResult(&term1, &term2, &term3)

	term1Total := CalculateTermTotal(term1Marks)
	term2Total := CalculateTermTotal(term2Marks)
	term3Total := CalculateTermTotal(term3Marks)

	return ReportCardData{
		StudentInfo: StudentInfo{
			Name:       studentName,
			RollNumber: rollNumber,
			ClassName:  className,
		},
		TermResults: TermSummaries{
			Term1: TermSummary{
				Total:      term1Total,
				Percentage: term1.Percentage,
				Status:     term1.Status,
				Average:    term1Total,
			},
			Term2: TermSummary{
				Total:      term2Total,
				Percentage: term2.Percentage,
				Status:     term2.Status,
				Average:    CalculateSecondTermAverage(term1Total, term2Total),
			},
			Term3: TermSummary{
				Total:      term3Total,
				Percentage: term3.Percentage,
				Status:     term3.Status,
				Average:    CalculateThirdTermAverage(term1Total, term2Total, term3Total),
			},
		},
		FinalResult: ReportCardFinal{
			FinalResult:     final,
			PromotionStatus: c.ShouldPromote(final),
		},
		SubjectMarks: TermMarks{
			Term1: term1Marks,
			Term2: term2Marks,
			Term3: term3Marks,
		},
	}
}

// GenerateReportCardData assembles a report card with the default rules.
func GenerateReportCardData(studentName, rollNumber, className string, term1Marks, term2Marks, term3Marks []SubjectMark) ReportCardData {
	return defaultCalculator.ReportCard(studentName, rollNumber, className, term1Marks, term2Marks, term3Marks)
}
