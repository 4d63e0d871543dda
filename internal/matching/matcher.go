package matching

import (
	"sort"
	"strings"

	"resume-agent-backend/internal/domain"
)

// TopProjects is how many projects make it into a generated resume.
const TopProjects = 3

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "you": {}, "are": {},
	"will": {}, "have": {}, "our": {}, "your": {}, "this": {}, "that": {},
	"from": {}, "work": {}, "team": {}, "role": {}, "job": {}, "about": {},
	"who": {}, "what": {}, "all": {}, "can": {}, "has": {}, "not": {},
}

// Tokenize lowercases the text and splits it into distinct tokens.
// Tokens keep letters, digits and the characters +#. so "c++", "c#"
// and "node.js" survive. Tokens shorter than 3 runes and stop words
// are dropped.
func Tokenize(text string) map[string]struct{} {
	tokens := map[string]struct{}{}

	var b strings.Builder
	flush := func() {
		word := strings.Trim(b.String(), ".")
		b.Reset()
		if len(word) < 3 {
			return
		}
		if _, stop := stopWords[word]; stop {
			return
		}
		tokens[word] = struct{}{}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#', r == '.':
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// Score counts how many job keywords appear in the project's text.
// The project text is its title, description, technologies and highlights.
func Score(project *domain.Project, keywords map[string]struct{}) int {
	if len(keywords) == 0 {
		return 0
	}

	var parts []string
	parts = append(parts, project.Title, project.Description)
	parts = append(parts, project.Technologies...)
	parts = append(parts, project.Highlights...)
	projectTokens := Tokenize(strings.Join(parts, " "))

	score := 0
	for kw := range keywords {
		if _, ok := projectTokens[kw]; ok {
			score++
		}
	}
	return score
}

// Ranked pairs a project with its relevance score.
type Ranked struct {
	Project domain.Project
	Score   int
}

// RankProjects orders projects by descending keyword overlap with the
// job description. The sort is stable: ties keep their input order, so
// with no keywords at all the original order is preserved.
func RankProjects(projects []domain.Project, jobText string) []Ranked {
	keywords := Tokenize(jobText)

	ranked := make([]Ranked, len(projects))
	for i, p := range projects {
		ranked[i] = Ranked{Project: p, Score: Score(&projects[i], keywords)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopK returns the first k ranked projects.
func TopK(ranked []Ranked, k int) []Ranked {
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
