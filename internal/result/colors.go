package result

var gradeColors = map[string]string{
	"A+":        "bg-green-100 text-green-800",
	"A":         "bg-green-100 text-green-700",
	"B":         "bg-blue-100 text-blue-800",
	"C":         "bg-yellow-100 text-yellow-800",
	"D":         "bg-orange-100 text-orange-800",
	"E":         "bg-orange-100 text-orange-900",
	"F":         "bg-red-100 text-red-800",
	GradeAbsent: "bg-gray-100 text-gray-800",
}

var statusColors = map[string]string{
	StatusPass:     "bg-green-100 text-green-800",
	StatusPromoted: "bg-green-100 text-green-800",
	StatusFail:     "bg-red-100 text-red-800",
	StatusAbsent:   "bg-gray-100 text-gray-800",
}

const neutralColor = "bg-gray-100 text-gray-600"

// GradeColor returns the badge style class for a grade token.
func GradeColor(grade string) string {
	if color, ok := gradeColors[grade]; ok {
		return color
	}
	return neutralColor
}

// StatusColor returns the badge style class for a status token.
func StatusColor(status string) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return neutralColor
}
