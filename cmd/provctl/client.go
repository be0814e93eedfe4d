package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// call issues an HTTP request against the provisioner API and returns the
// decoded response body, printed as-is by the caller.
func call(method, path string, body any) (map[string]any, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, apiAddr+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling provisioner api: %w", err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("provisioner api returned %s: %v", resp.Status, out["error"])
	}
	return out, nil
}

func printResult(out map[string]any) error {
	pretty, err := json.MarshalIndent(out["data"], "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting result: %w", err)
	}
	fmt.Println(string(pretty))
	return nil
}
