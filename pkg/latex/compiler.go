package latex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"resume-agent-backend/pkg/logger"
	"resume-agent-backend/pkg/retry"
)

// CompilationError is a single parsed error from a TeX run.
type CompilationError struct {
	Line       int    `json:"line"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CompilationResult is the outcome of a compile attempt.
type CompilationResult struct {
	Success  bool               `json:"success"`
	PDF      []byte             `json:"-"`
	Log      string             `json:"log"`
	Errors   []CompilationError `json:"errors"`
	Warnings []string           `json:"warnings"`
}

// Compiler compiles LaTeX source to PDF through a remote build service.
type Compiler struct {
	url        string
	httpClient *http.Client
}

func NewCompiler(url string, timeoutSeconds int) *Compiler {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	return &Compiler{
		url: url,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// errorResponse is the JSON payload the build service returns on failure.
type errorResponse struct {
	Error    string            `json:"error"`
	LogFiles map[string]string `json:"log_files"`
}

// Compile sends the source to the build service and returns the result.
// The service replies with raw PDF bytes on success and a JSON error payload otherwise.
func (c *Compiler) Compile(ctx context.Context, source string) (*CompilationResult, error) {
	body, contentType, err := buildMultipart(source)
	if err != nil {
		return nil, fmt.Errorf("latex: build request: %w", err)
	}

	resp, err := retry.HTTP(ctx, retry.DefaultConfig, func() (*http.Response, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Content-Type", contentType)
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("latex: compile request failed: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("latex: read response: %w", err)
	}

	if bytes.HasPrefix(content, []byte("%PDF")) {
		return &CompilationResult{
			Success: true,
			PDF:     content,
			Log:     "compiled successfully",
		}, nil
	}

	// Not a PDF: the service returns a JSON error with the TeX log attached.
	result := &CompilationResult{Success: false}

	var errResp errorResponse
	if jsonErr := json.Unmarshal(content, &errResp); jsonErr == nil && errResp.Error != "" {
		texLog := errResp.LogFiles["output.log"]
		if texLog == "" {
			texLog = "no detailed log available"
		}
		result.Log = texLog
		result.Errors, result.Warnings = ParseLog(texLog)
		if len(result.Errors) == 0 {
			result.Errors = append(result.Errors, CompilationError{
				Message:    fmt.Sprintf("%s: check the document syntax", errResp.Error),
				Severity:   "error",
				Suggestion: "try a different template or fix the reported syntax errors",
			})
		}
		return result, nil
	}

	text := strings.TrimSpace(string(content))
	if len(text) > 500 {
		text = text[:500]
	}
	logger.Log.Warn("latex build service returned non-JSON error", "status", resp.StatusCode)

	result.Log = fmt.Sprintf("compilation failed: %s", text)
	result.Errors = []CompilationError{{
		Message:  fmt.Sprintf("compilation error (HTTP %d)", resp.StatusCode),
		Severity: "error",
	}}
	return result, nil
}

func buildMultipart(source string) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("compiler", "pdflatex"); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("target", "resume.tex"); err != nil {
		return nil, "", err
	}

	part, err := writer.CreateFormFile("resume.tex", "resume.tex")
	if err != nil {
		return nil, "", err
	}
	if _, err := io.WriteString(part, source); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
