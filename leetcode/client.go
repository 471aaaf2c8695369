// ABOUTME: LeetCode stats client over the alfa-leetcode-api service
// ABOUTME: Fetches solved counts, profile data, and accepted submissions
package leetcode

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://alfa-leetcode-api.onrender.com"

// SolvedStats is a user's solved-problem breakdown.
type SolvedStats struct {
	Total  int `json:"total"`
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Submission is one accepted submission from the user's recent history.
type Submission struct {
	Title         string `json:"title"`
	TitleSlug     string `json:"titleSlug"`
	Timestamp     int64  `json:"timestamp"`
	StatusDisplay string `json:"statusDisplay"`
	Lang          string `json:"lang"`
}

// Client talks to the alfa-leetcode-api. BaseURL and HTTPClient are
// overridable for tests.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Solved fetches the solved-problem counts for a username.
func (c *Client) Solved(username string) (SolvedStats, error) {
	var payload struct {
		SolvedProblem int `json:"solvedProblem"`
		EasySolved    int `json:"easySolved"`
		MediumSolved  int `json:"mediumSolved"`
		HardSolved    int `json:"hardSolved"`
	}

	path := fmt.Sprintf("/%s/solved", url.PathEscape(username))
	if err := c.getJSON(path, &payload); err != nil {
		return SolvedStats{}, err
	}

	return SolvedStats{
		Total:  payload.SolvedProblem,
		Easy:   payload.EasySolved,
		Medium: payload.MediumSolved,
		Hard:   payload.HardSolved,
	}, nil
}

// Profile fetches the raw profile document for a username.
func (c *Client) Profile(username string) (map[string]any, error) {
	var payload map[string]any
	path := fmt.Sprintf("/userProfile/%s", url.PathEscape(username))
	if err := c.getJSON(path, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AcceptedSubmissions fetches the user's most recent accepted submissions.
func (c *Client) AcceptedSubmissions(username string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 5
	}

	var payload struct {
		Submission []Submission `json:"submission"`
	}

	path := fmt.Sprintf("/%s/acSubmission?limit=%d", url.PathEscape(username), limit)
	if err := c.getJSON(path, &payload); err != nil {
		return nil, err
	}

	return payload.Submission, nil
}

func (c *Client) getJSON(path string, out any) error {
	resp, err := c.HTTPClient.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Printf("[LeetCodeAPI] JSON parse error for %s: %v", path, err)
		return fmt.Errorf("invalid JSON response")
	}

	return nil
}
