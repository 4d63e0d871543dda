package resumeagent

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoGenerator is returned when no LLM backend is configured.
var ErrNoGenerator = errors.New("resumeagent: no generator configured")

// Generator is the LLM surface the agent needs.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
	Model() string
}

// Result is a generated resume plus its validation findings.
type Result struct {
	LatexContent    string
	Warnings        []string
	RemovedSections []string
}

// Agent fills LaTeX templates from user data with strict grounding.
type Agent struct {
	llm Generator
}

func NewAgent(llm Generator) *Agent {
	return &Agent{llm: llm}
}

// Generate fills the template with the user data, optionally tailored
// to a job description, and post-validates the output.
func (a *Agent) Generate(ctx context.Context, templateLatex string, data *UserData, jd *JDContext) (*Result, error) {
	if a.llm == nil {
		return nil, ErrNoGenerator
	}

	prompt := buildPrompt(templateLatex, data, jd)

	response, err := a.llm.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("resume generation: %w", err)
	}

	latex, removed := ExtractLatex(response)
	warnings := ValidateGrounding(latex, data)

	return &Result{
		LatexContent:    latex,
		Warnings:        warnings,
		RemovedSections: removed,
	}, nil
}

// Model reports the underlying model name for generation metadata.
func (a *Agent) Model() string {
	if a.llm == nil {
		return ""
	}
	return a.llm.Model()
}
