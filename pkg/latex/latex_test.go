package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	t.Run("extracts errors with line numbers and suggestions", func(t *testing.T) {
		log := `This is pdfTeX, Version 3.141592653
! Undefined control sequence.
l.12 \badcommand
! LaTeX Error: Environment itemize undefined.
Overfull \hbox (15.0pt too wide) in paragraph at lines 30--32`

		errs, warns := ParseLog(log)

		require.Len(t, errs, 2)
		assert.Equal(t, 0, errs[0].Line) // line number is on the next log line
		assert.Contains(t, errs[0].Message, "Undefined control sequence")
		assert.Equal(t, "check the command spelling or add the required package", errs[0].Suggestion)
		assert.Contains(t, errs[1].Message, "Environment itemize undefined")

		require.Len(t, warns, 1)
		assert.Contains(t, warns[0], "Overfull box")
	})

	t.Run("line number from l.N marker", func(t *testing.T) {
		errs, _ := ParseLog(`! Missing $ inserted. l.42 x^2`)
		require.Len(t, errs, 1)
		assert.Equal(t, 42, errs[0].Line)
	})

	t.Run("clean log yields nothing", func(t *testing.T) {
		errs, warns := ParseLog("Output written on resume.pdf (1 page, 32133 bytes).")
		assert.Empty(t, errs)
		assert.Empty(t, warns)
	})
}

func TestValidateSafety(t *testing.T) {
	t.Run("accepts a normal document", func(t *testing.T) {
		ok, issues := ValidateSafety(`\documentclass{article}\begin{document}Hi\end{document}`)
		assert.True(t, ok)
		assert.Empty(t, issues)
	})

	t.Run("rejects shell escape", func(t *testing.T) {
		ok, issues := ValidateSafety(`\immediate\write18{rm -rf /}`)
		assert.False(t, ok)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0], "shell escape")
	})

	t.Run("rejects file operations case-insensitively", func(t *testing.T) {
		ok, issues := ValidateSafety(`\OpenIn\myfile=secrets.txt \openout\log=out.txt`)
		assert.False(t, ok)
		assert.Len(t, issues, 2)
	})

	t.Run("rejects catcode manipulation", func(t *testing.T) {
		ok, _ := ValidateSafety(`\catcode`+"`"+`\%=12`)
		assert.False(t, ok)
	})
}
