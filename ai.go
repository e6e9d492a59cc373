package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// OllamaClient provides an interface to the Ollama API
type OllamaClient struct {
	BaseURL    string
	ModelName  string
	httpClient *resty.Client
}

// OllamaRequest represents a request to the Ollama API
type OllamaRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	System  string                 `json:"system,omitempty"`
	Options map[string]interface{} `json:"options,omitempty"`
	Stream  bool                   `json:"stream"`
}

// OllamaResponse represents a response from the Ollama API
type OllamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaClient creates a new Ollama client. The timeout bounds every
// call, including Generate; callers rely on it to degrade to canned
// responses instead of hanging.
func NewOllamaClient(baseURL string, modelName string, timeout time.Duration) *OllamaClient {
	client := resty.New()
	client.SetTimeout(timeout)

	return &OllamaClient{
		BaseURL:    baseURL,
		ModelName:  modelName,
		httpClient: client,
	}
}

// IsAvailable checks if the Ollama server is reachable
func (c *OllamaClient) IsAvailable() bool {
	resp, err := c.httpClient.R().Get(c.BaseURL + "/api/tags")
	return err == nil && !resp.IsError()
}

// Generate sends a prompt to Ollama and returns the response as a single
// trimmed line
func (c *OllamaClient) Generate(prompt string, systemPrompt string) (string, error) {
	reqBody := OllamaRequest{
		Model:  c.ModelName,
		Prompt: prompt,
		System: systemPrompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.1,
			"num_predict": 256,
		},
	}

	var result OllamaResponse
	resp, err := c.httpClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		SetResult(&result).
		Post(c.BaseURL + "/api/generate")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("ollama error: status code %d", resp.StatusCode())
	}

	response := strings.TrimSpace(result.Response)
	response = strings.ReplaceAll(response, "\n", " ")
	return response, nil
}

// CheckModelAvailability checks if the configured model is available
func (c *OllamaClient) CheckModelAvailability() (bool, error) {
	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}

	resp, err := c.httpClient.R().SetResult(&result).Get(c.BaseURL + "/api/tags")
	if err != nil {
		return false, err
	}
	if resp.IsError() {
		return false, fmt.Errorf("ollama error: status code %d", resp.StatusCode())
	}

	for _, model := range result.Models {
		if model.Name == c.ModelName {
			return true, nil
		}
	}
	return false, nil
}
