package matching_test

import (
	"testing"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/internal/matching"

	"github.com/stretchr/testify/assert"
)

func project(title, description string, tech ...string) domain.Project {
	return domain.Project{Title: title, Description: description, Technologies: tech}
}

func TestTokenize(t *testing.T) {
	t.Run("lowercases and dedupes", func(t *testing.T) {
		tokens := matching.Tokenize("Redis REDIS redis caching")
		assert.Len(t, tokens, 2)
		assert.Contains(t, tokens, "redis")
		assert.Contains(t, tokens, "caching")
	})

	t.Run("keeps language-ish tokens", func(t *testing.T) {
		tokens := matching.Tokenize("C++ and C# plus node.js")
		assert.Contains(t, tokens, "c++")
		assert.Contains(t, tokens, "node.js")
	})

	t.Run("drops short tokens and stop words", func(t *testing.T) {
		tokens := matching.Tokenize("go is the best for the team")
		assert.NotContains(t, tokens, "go")
		assert.NotContains(t, tokens, "the")
		assert.Contains(t, tokens, "best")
	})
}

func TestScore(t *testing.T) {
	keywords := matching.Tokenize("Looking for Python developer with Django and PostgreSQL experience")

	t.Run("counts keyword overlap", func(t *testing.T) {
		p := project("Shop API", "REST API built with Django", "Python", "PostgreSQL")
		score := matching.Score(&p, keywords)
		assert.Equal(t, 3, score) // python, django, postgresql
	})

	t.Run("zero score for unrelated project", func(t *testing.T) {
		p := project("iOS Game", "Mobile puzzle game", "Swift")
		assert.Equal(t, 0, matching.Score(&p, keywords))
	})

	t.Run("zero score when no keywords", func(t *testing.T) {
		p := project("Shop API", "Django backend", "Python")
		assert.Equal(t, 0, matching.Score(&p, map[string]struct{}{}))
	})
}

func TestRankProjects(t *testing.T) {
	projects := []domain.Project{
		project("Blog", "Static site generator", "Hugo"),
		project("Pipeline", "Data pipeline with Kafka and PostgreSQL", "Python", "Kafka"),
		project("Dashboard", "Analytics dashboard", "React", "PostgreSQL"),
	}

	t.Run("orders by descending score", func(t *testing.T) {
		ranked := matching.RankProjects(projects, "Python engineer, Kafka and PostgreSQL required")
		assert.Equal(t, "Pipeline", ranked[0].Project.Title)
		assert.Equal(t, "Dashboard", ranked[1].Project.Title)
		assert.Equal(t, "Blog", ranked[2].Project.Title)
		assert.Greater(t, ranked[0].Score, ranked[1].Score)
	})

	t.Run("empty job text preserves input order", func(t *testing.T) {
		ranked := matching.RankProjects(projects, "")
		assert.Equal(t, "Blog", ranked[0].Project.Title)
		assert.Equal(t, "Pipeline", ranked[1].Project.Title)
		assert.Equal(t, "Dashboard", ranked[2].Project.Title)
		for _, r := range ranked {
			assert.Equal(t, 0, r.Score)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		tied := []domain.Project{
			project("First", "uses PostgreSQL"),
			project("Second", "uses PostgreSQL"),
		}
		ranked := matching.RankProjects(tied, "PostgreSQL")
		assert.Equal(t, "First", ranked[0].Project.Title)
		assert.Equal(t, "Second", ranked[1].Project.Title)
	})
}

func TestTopK(t *testing.T) {
	projects := []domain.Project{
		project("A", ""), project("B", ""), project("C", ""), project("D", ""),
	}
	ranked := matching.RankProjects(projects, "")

	assert.Len(t, matching.TopK(ranked, 3), 3)
	assert.Len(t, matching.TopK(ranked, 10), 4)
	assert.Empty(t, matching.TopK(ranked, 0))
}
