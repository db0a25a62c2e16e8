// Command smoke probes a running navycamp-api instance after deployment. It
// checks the liveness and readiness endpoints, optionally logs in and walks
// the authenticated read surface, and exits non-zero on any failure.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type check struct {
	Name     string
	Path     string
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base     string
		prefix   string
		email    string
		password string
		timeout  time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&prefix, "prefix", "/api", "API route prefix")
	flag.StringVar(&email, "email", "", "account email for authenticated checks")
	flag.StringVar(&password, "password", "", "account password for authenticated checks")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	base = strings.TrimRight(base, "/")

	var checks []check
	checks = append(checks, get(client, "health", base+"/health", ""))
	checks = append(checks, get(client, "ready", base+"/ready", ""))

	if email != "" && password != "" {
		token, err := login(client, base+prefix+"/auth/login", email, password)
		if err != nil {
			checks = append(checks, check{Name: "login", Path: prefix + "/auth/login", Err: err})
		} else {
			checks = append(checks, check{Name: "login", Path: prefix + "/auth/login", Status: http.StatusOK})
			for _, path := range []string{"/requests", "/venues", "/instructors", "/notices"} {
				checks = append(checks, get(client, strings.TrimPrefix(path, "/"), base+prefix+path, token))
			}
		}
	}

	failed := printReport(checks)
	if failed > 0 {
		os.Exit(1)
	}
}

func get(client *http.Client, name, url, token string) check {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return check{Name: name, Path: url, Err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return check{Name: name, Path: url, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c := check{Name: name, Path: url, Status: resp.StatusCode, Duration: time.Since(start)}
	if resp.StatusCode != http.StatusOK {
		c.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return c
}

func login(client *http.Client, url, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if envelope.Data.Token == "" {
		return "", fmt.Errorf("login response missing token")
	}
	return envelope.Data.Token, nil
}

func printReport(checks []check) int {
	failed := 0
	for _, c := range checks {
		if c.Err != nil {
			failed++
			log.Printf("FAIL %-12s %s: %v", c.Name, c.Path, c.Err)
			continue
		}
		log.Printf("OK   %-12s %s (%d, %s)", c.Name, c.Path, c.Status, c.Duration.Round(time.Millisecond))
	}
	return failed
}
