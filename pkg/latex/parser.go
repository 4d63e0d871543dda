package latex

import (
	"regexp"
	"strconv"
	"strings"
)

// errorPattern maps a TeX log line pattern to a short error category.
type errorPattern struct {
	re       *regexp.Regexp
	category string
	warning  bool
}

var errorPatterns = []errorPattern{
	{re: regexp.MustCompile(`! LaTeX Error: (.+)`), category: "LaTeX error"},
	{re: regexp.MustCompile(`! Undefined control sequence`), category: "Undefined command"},
	{re: regexp.MustCompile(`! Missing \$ inserted`), category: "Missing $"},
	{re: regexp.MustCompile(`! Missing \{ inserted`), category: "Missing opening brace"},
	{re: regexp.MustCompile(`! Missing \} inserted`), category: "Missing closing brace"},
	{re: regexp.MustCompile(`! Extra \}, or forgotten \$`), category: "Extra brace or missing $"},
	{re: regexp.MustCompile(`! Package (\S+) Error: (.+)`), category: "Package error"},
	{re: regexp.MustCompile(`Overfull \\hbox`), category: "Overfull box", warning: true},
	{re: regexp.MustCompile(`Underfull \\hbox`), category: "Underfull box", warning: true},
}

var lineNumberRe = regexp.MustCompile(`l\.(\d+)|line (\d+)`)

var suggestions = map[string]string{
	"Undefined command":        "check the command spelling or add the required package",
	"Missing $":                "wrap mathematical expressions in $ symbols",
	"Missing opening brace":    "add { before the content",
	"Missing closing brace":    "add } after the content",
	"Extra brace or missing $": "remove the extra } or add the missing $",
}

// ParseLog scans a TeX log for known error and warning patterns.
func ParseLog(log string) ([]CompilationError, []string) {
	var errs []CompilationError
	var warns []string

	for _, line := range strings.Split(log, "\n") {
		for _, p := range errorPatterns {
			if !p.re.MatchString(line) {
				continue
			}
			if p.warning {
				warns = append(warns, p.category+": "+strings.TrimSpace(line))
				continue
			}
			errs = append(errs, CompilationError{
				Line:       extractLineNumber(line),
				Message:    strings.TrimSpace(line),
				Severity:   "error",
				Suggestion: suggestions[p.category],
			})
		}
	}
	return errs, warns
}

func extractLineNumber(line string) int {
	m := lineNumberRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	for _, group := range m[1:] {
		if group != "" {
			n, _ := strconv.Atoi(group)
			return n
		}
	}
	return 0
}
