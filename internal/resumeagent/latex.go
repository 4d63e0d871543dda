package resumeagent

import (
	"regexp"
	"strings"

	"resume-agent-backend/pkg/logger"
)

var (
	sectionStartRe = regexp.MustCompile(`\\section\{`)
	sectionNameRe  = regexp.MustCompile(`\\section\{([^}]+)\}`)
	docEndRe       = regexp.MustCompile(`\\end\{document\}`)
)

// ExtractLatex strips markdown code fences the model sometimes wraps
// its output in, then drops sections that still contain unfilled
// [REQUIRED:] placeholders. Returns the cleaned source and the names
// of any removed sections.
func ExtractLatex(response string) (string, []string) {
	content := strings.TrimSpace(response)

	if strings.HasPrefix(content, "```latex") {
		content = content[len("```latex"):]
	} else if strings.HasPrefix(content, "```") {
		content = content[3:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	content = strings.TrimSpace(content)

	if !ValidateBraces(content) {
		logger.Log.Warn("generated latex has unbalanced braces",
			"open", strings.Count(content, "{"),
			"close", strings.Count(content, "}"))
	}

	return removePlaceholderSections(content)
}

// ValidateBraces checks that unescaped braces pair up.
func ValidateBraces(latex string) bool {
	depth := 0
	escaped := false
	for _, r := range latex {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// removePlaceholderSections drops every \section block that still
// carries a [REQUIRED:] marker, keeping the preamble and \end{document}.
func removePlaceholderSections(latex string) (string, []string) {
	firstSection := sectionStartRe.FindStringIndex(latex)
	if firstSection == nil {
		return latex, nil
	}
	docEnd := docEndRe.FindStringIndex(latex)
	if docEnd == nil {
		return latex, nil
	}

	head := latex[:firstSection[0]]
	tail := latex[docEnd[0]:]
	body := latex[firstSection[0]:docEnd[0]]

	starts := sectionStartRe.FindAllStringIndex(body, -1)

	var kept strings.Builder
	var removed []string
	for i, start := range starts {
		end := len(body)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		section := body[start[0]:end]

		if strings.Contains(section, "[REQUIRED:") {
			name := "unknown"
			if m := sectionNameRe.FindStringSubmatch(section); m != nil {
				name = m[1]
			}
			removed = append(removed, name)
			logger.Log.Info("removed section with unfilled placeholders", "section", name)
			continue
		}
		kept.WriteString(section)
	}

	return head + kept.String() + tail, removed
}
