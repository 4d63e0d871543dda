package resumeagent_test

import (
	"context"
	"strings"
	"testing"

	"resume-agent-backend/internal/resumeagent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response string
	prompt   string
	system   string
}

func (f *fakeLLM) Generate(_ context.Context, system, prompt string) (string, error) {
	f.system = system
	f.prompt = prompt
	return f.response, nil
}

func (f *fakeLLM) Model() string { return "test-model" }

func sampleData() *resumeagent.UserData {
	return &resumeagent.UserData{
		Personal: map[string]string{"name": "Jane Doe", "email": "jane@example.com"},
		Skills:   []string{"Go", "PostgreSQL"},
		Projects: []resumeagent.ProjectData{{
			Title:        "Search Service",
			Description:  "Full-text search backend",
			Technologies: []string{"Go", "Elasticsearch"},
			Highlights:   []string{"Reduced query latency by 40%"},
		}},
	}
}

func TestExtractLatex(t *testing.T) {
	t.Run("strips latex code fences", func(t *testing.T) {
		latex, removed := resumeagent.ExtractLatex("```latex\n\\documentclass{article}\n```")
		assert.Equal(t, "\\documentclass{article}", latex)
		assert.Empty(t, removed)
	})

	t.Run("strips bare fences", func(t *testing.T) {
		latex, _ := resumeagent.ExtractLatex("```\n\\documentclass{article}\n```")
		assert.Equal(t, "\\documentclass{article}", latex)
	})

	t.Run("passes plain output through", func(t *testing.T) {
		latex, _ := resumeagent.ExtractLatex("\\documentclass{article}")
		assert.Equal(t, "\\documentclass{article}", latex)
	})

	t.Run("removes sections with unfilled placeholders", func(t *testing.T) {
		doc := `\documentclass{article}
\begin{document}
\section{Projects}
Built things.
\section{Experience}
[REQUIRED: work_experience]
\end{document}`
		latex, removed := resumeagent.ExtractLatex(doc)
		assert.NotContains(t, latex, "[REQUIRED:")
		assert.Contains(t, latex, `\section{Projects}`)
		assert.Contains(t, latex, `\end{document}`)
		require.Len(t, removed, 1)
		assert.Equal(t, "Experience", removed[0])
	})
}

func TestValidateBraces(t *testing.T) {
	assert.True(t, resumeagent.ValidateBraces(`\section{Intro} \textbf{hi}`))
	assert.True(t, resumeagent.ValidateBraces(`escaped \{ and \} do not count`))
	assert.False(t, resumeagent.ValidateBraces(`\section{Intro`))
	assert.False(t, resumeagent.ValidateBraces(`}{`))
}

func TestValidateGrounding(t *testing.T) {
	data := sampleData()

	t.Run("flags unfilled placeholders", func(t *testing.T) {
		warnings := resumeagent.ValidateGrounding(`\section{X} [REQUIRED: phone]`, data)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "phone")
	})

	t.Run("flags invented metrics", func(t *testing.T) {
		warnings := resumeagent.ValidateGrounding("Improved throughput by 90% and saved $10,000", data)
		assert.Len(t, warnings, 2)
	})

	t.Run("accepts metrics present in source data", func(t *testing.T) {
		warnings := resumeagent.ValidateGrounding("Reduced query latency by 40%", data)
		assert.Empty(t, warnings)
	})
}

func TestAgentGenerate(t *testing.T) {
	llm := &fakeLLM{response: "```latex\n\\documentclass{article}\n\\begin{document}\nJane Doe\n\\end{document}\n```"}
	agent := resumeagent.NewAgent(llm)

	result, err := agent.Generate(context.Background(), `\documentclass{article}`, sampleData(), &resumeagent.JDContext{
		Title:          "Backend Engineer",
		Company:        "Acme",
		RequiredSkills: []string{"Go"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.LatexContent, `\documentclass`))
	assert.Contains(t, llm.prompt, "<user_data>")
	assert.Contains(t, llm.prompt, "Jane Doe")
	assert.Contains(t, llm.prompt, "Backend Engineer")
	assert.Contains(t, llm.system, "GROUNDING REQUIREMENT")
}

func TestFormatUserData(t *testing.T) {
	out := resumeagent.FormatUserData(sampleData())

	assert.Contains(t, out, "PERSONAL INFORMATION:")
	assert.Contains(t, out, "name: Jane Doe")
	assert.Contains(t, out, "SKILLS: Go, PostgreSQL")
	assert.Contains(t, out, "Project 1:")
	assert.Contains(t, out, "Technologies: Go, Elasticsearch")
	assert.NotContains(t, out, "EDUCATION")
}
