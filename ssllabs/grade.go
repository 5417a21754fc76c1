package ssllabs

import "fmt"

// Grade is an SSL Labs letter grade.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeT     Grade = "T" // no trust
	GradeM     Grade = "M" // certificate name mismatch
	GradeEmpty Grade = "EMPTY"
)

// Grades is the grade scale from best to worst. EMPTY is the worst value
// and stands for a cluster without any graded endpoint.
var Grades = []Grade{
	"A+", "A", "A-",
	"B+", "B", "B-",
	"C+", "C", "C-",
	"D+", "D", "D-",
	"E+", "E", "E-",
	"F+", "F", "F-",
	GradeT, GradeM, GradeEmpty,
}

var gradeRanks = func() map[Grade]int {
	m := make(map[Grade]int, len(Grades))
	for i, g := range Grades {
		m[g] = i
	}
	return m
}()

// ParseGrade returns the Grade for s, or an error when s is not on the
// scale.
func ParseGrade(s string) (Grade, error) {
	g := Grade(s)
	if _, ok := gradeRanks[g]; !ok {
		return "", fmt.Errorf("ssllabs: unknown grade %q", s)
	}
	return g, nil
}

// Rank is the position of g on the scale, 0 being the best. It is -1 for a
// grade that is not on the scale.
func (g Grade) Rank() int {
	if r, ok := gradeRanks[g]; ok {
		return r
	}
	return -1
}

// Worse reports whether g ranks strictly below o.
func (g Grade) Worse(o Grade) bool {
	return g.Rank() > o.Rank()
}

func (g Grade) String() string {
	return string(g)
}

// Status is the state of an assessment.
type Status string

const (
	StatusDNS        Status = "DNS"
	StatusError      Status = "ERROR"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReady      Status = "READY"
)

// Terminal reports whether polling should stop. Anything other than DNS
// and IN_PROGRESS is terminal.
func (s Status) Terminal() bool {
	return s != StatusDNS && s != StatusInProgress
}
