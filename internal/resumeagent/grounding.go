package resumeagent

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unfilledRe = regexp.MustCompile(`\[REQUIRED: ([^\]]+)\]`)

	// Numeric claims the model tends to invent.
	hallucinationPatterns = []struct {
		re   *regexp.Regexp
		desc string
	}{
		{regexp.MustCompile(`\d+%`), "percentage"},
		{regexp.MustCompile(`\$[\d,]+`), "dollar amount"},
		{regexp.MustCompile(`\d+x`), "multiplier"},
	}
)

// ValidateGrounding flags unfilled placeholders and numeric claims that
// do not appear anywhere in the source data.
func ValidateGrounding(latex string, data *UserData) []string {
	var warnings []string

	for _, m := range unfilledRe.FindAllStringSubmatch(latex, -1) {
		warnings = append(warnings, "missing required field: "+m[1])
	}

	source := userDataText(data)
	for _, p := range hallucinationPatterns {
		for _, match := range p.re.FindAllString(latex, -1) {
			if !strings.Contains(source, match) {
				warnings = append(warnings, fmt.Sprintf("potential ungrounded %s: %s", p.desc, match))
			}
		}
	}
	return warnings
}

func userDataText(data *UserData) string {
	if data == nil {
		return ""
	}
	var b strings.Builder
	for _, v := range data.Personal {
		b.WriteString(v)
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(data.Skills, " "))
	for _, p := range data.Projects {
		b.WriteString(" " + p.Title + " " + p.Description + " " + p.Dates)
		b.WriteString(" " + strings.Join(p.Technologies, " "))
		b.WriteString(" " + strings.Join(p.Highlights, " "))
	}
	for _, e := range data.Education {
		b.WriteString(" " + e.School + " " + e.Degree + " " + e.Field + " " + e.Dates)
	}
	return b.String()
}
