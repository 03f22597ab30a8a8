// Package judge talks to a Judge0 CE compatible code-execution service.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lshigami/Placemate/config"
	"github.com/rs/zerolog/log"
)

// Judge0 language ids offered by the coding editor.
const (
	LanguageC          = 50
	LanguageCPP        = 54
	LanguageJava       = 62
	LanguageJavaScript = 63
	LanguagePython     = 71
)

// Judge0 status ids. Every id from StatusTimeLimitExceeded up is a failed
// run: time limit, compilation, runtime and internal errors.
const (
	StatusAccepted          = 3
	StatusTimeLimitExceeded = 5
	StatusCompilationError  = 6
)

var SupportedLanguages = map[int]string{
	LanguageC:          "c",
	LanguageCPP:        "cpp",
	LanguageJava:       "java",
	LanguageJavaScript: "javascript",
	LanguagePython:     "python",
}

type Submission struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin"`
}

type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output"`
	Message       string `json:"message"`
	Time          string `json:"time"`
	Memory        int    `json:"memory"`
	Status        Status `json:"status"`
}

// Failed reports whether the program did not run to completion, whatever it
// printed to stdout.
func (r *Result) Failed() bool {
	return r.Status.ID >= StatusTimeLimitExceeded || r.Stderr != "" || r.CompileOutput != ""
}

// CompileFailed reports whether the source did not compile.
func (r *Result) CompileFailed() bool {
	return r.Status.ID == StatusCompilationError || r.CompileOutput != ""
}

// Output picks what to show the user: stdout, then stderr, then compiler output.
func (r *Result) Output() string {
	switch {
	case r.Stdout != "":
		return r.Stdout
	case r.Stderr != "":
		return r.Stderr
	case r.CompileOutput != "":
		return r.CompileOutput
	}
	return "No output received."
}

type Client interface {
	Execute(ctx context.Context, sub Submission) (*Result, error)
}

type client struct {
	baseURL string
	apiKey  string
	apiHost string
	http    *http.Client
}

func NewClient(cfg *config.Config) Client {
	if cfg.Judge.ApiKey == "" {
		log.Warn().Msg("JUDGE_API_KEY is not set. Requests to the code judge may be rejected.")
	}
	timeout := cfg.Judge.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &client{
		baseURL: strings.TrimRight(cfg.Judge.BaseURL, "/"),
		apiKey:  cfg.Judge.ApiKey,
		apiHost: cfg.Judge.ApiHost,
		http:    &http.Client{Timeout: timeout},
	}
}

// Execute runs one submission synchronously (wait=true).
func (c *client) Execute(ctx context.Context, sub Submission) (*Result, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	url := c.baseURL + "/submissions?base64_encoded=false&wait=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build judge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read judge response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Warn().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("Judge returned non-success status")
		return nil, fmt.Errorf("judge returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode judge response: %w", err)
	}
	return &result, nil
}
