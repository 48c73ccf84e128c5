package vllm

import (
	"fmt"
	"net/url"
	"strings"
)

const defaultBaseURL = "http://localhost:8000"

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// ValidateBaseURL checks the summarization endpoint address. Plain http is
// allowed since vLLM commonly runs on localhost without TLS.
func ValidateBaseURL(baseURL string) error {
	baseURL = normalizeBaseURL(baseURL)

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid vLLM URL: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("invalid vLLM URL %q: absolute URL with host is required", baseURL)
	}
	if u.User != nil {
		return fmt.Errorf("invalid vLLM URL %q: userinfo is not allowed", baseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("invalid vLLM URL %q: query and fragment are not allowed", baseURL)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("invalid vLLM URL %q: http or https is required", baseURL)
	}
	return nil
}
