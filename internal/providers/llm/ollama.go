package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Ollama calls a local Ollama server over its HTTP API.
type Ollama struct {
	addr         string
	defaultModel string
	httpClient   *http.Client
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

func NewOllama(addr, defaultModel string) *Ollama {
	if addr == "" {
		addr = "http://127.0.0.1:11434"
	}
	return &Ollama{
		addr:         strings.TrimRight(addr, "/"),
		defaultModel: defaultModel,
		// no client timeout: generation latency is unbounded and
		// cancellation rides on the request context
		httpClient: &http.Client{},
	}
}

func (o *Ollama) Close() error { return nil }

func (o *Ollama) Generate(ctx context.Context, prompt, model string) (string, error) {
	resp, err := o.do(ctx, prompt, model, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama: %s", out.Error)
	}
	return strings.TrimSpace(out.Response), nil
}

func (o *Ollama) StreamAnswer(ctx context.Context, prompt, model string) (<-chan string, <-chan error) {
	out := make(chan string, 32)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		resp, err := o.do(ctx, prompt, model, true)
		if err != nil {
			errs <- err
			return
		}
		defer resp.Body.Close()

		// streaming responses are newline-delimited JSON objects
		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			var chunk ollamaGenerateResponse
			if err := json.Unmarshal(sc.Bytes(), &chunk); err != nil {
				errs <- fmt.Errorf("failed to decode ollama chunk: %w", err)
				return
			}
			if chunk.Error != "" {
				errs <- fmt.Errorf("ollama: %s", chunk.Error)
				return
			}
			if chunk.Response != "" {
				out <- chunk.Response
			}
			if chunk.Done {
				return
			}
		}
		if err := sc.Err(); err != nil {
			errs <- err
		}
	}()

	return out, errs
}

func (o *Ollama) do(ctx context.Context, prompt, model string, stream bool) (*http.Response, error) {
	if model == "" {
		model = o.defaultModel
	}
	body, err := json.Marshal(&ollamaGenerateRequest{Model: model, Prompt: prompt, Stream: stream})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.addr+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("ollama request failed: status=%d", resp.StatusCode)
	}
	return resp, nil
}
