package latex

import (
	"regexp"
)

// dangerousPatterns are TeX commands that can escape the document sandbox.
var dangerousPatterns = []struct {
	re      *regexp.Regexp
	message string
}{
	{regexp.MustCompile(`(?i)\\write18`), "shell escape command detected"},
	{regexp.MustCompile(`(?i)\\input\|`), "shell pipe in input detected"},
	{regexp.MustCompile(`(?i)\\include\|`), "shell pipe in include detected"},
	{regexp.MustCompile(`(?i)\\openin`), "file input operation detected"},
	{regexp.MustCompile(`(?i)\\openout`), "file output operation detected"},
	{regexp.MustCompile(`(?i)\\catcode`), "category code manipulation detected"},
}

// ValidateSafety scans LaTeX source for commands that could execute
// arbitrary code or touch the filesystem. Returns false with the list
// of findings when the source should be rejected.
func ValidateSafety(source string) (bool, []string) {
	var issues []string
	for _, p := range dangerousPatterns {
		if p.re.MatchString(source) {
			issues = append(issues, p.message)
		}
	}
	return len(issues) == 0, issues
}
