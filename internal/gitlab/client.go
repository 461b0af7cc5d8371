package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gitlab-bots/pipeline-slack-notifier/internal/config"
)

// maxJobsPerPipeline bounds how many jobs are fetched for a single pipeline,
// to cap memory and latency on pathological pipelines.
const maxJobsPerPipeline = 300

// Client handles GitLab API operations
type Client struct {
	config config.GitLabConfig
	http   *http.Client
}

// NewClient creates a new GitLab API client
func NewClient(cfg config.GitLabConfig) *Client {
	tr := &http.Transport{
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		config: cfg,
		http:   &http.Client{Transport: tr, Timeout: cfg.Timeout},
	}
}

// baseURL builds the API base from the configured hostname. A hostname
// without a scheme is assumed to be HTTPS.
func (c *Client) baseURL() string {
	host := strings.TrimRight(c.config.Hostname, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

// FailedPipelineJobs fetches every job of the given pipeline and returns the
// subset whose status is not "success", in the order the API returned them.
func (c *Client) FailedPipelineJobs(ctx context.Context, projectID, pipelineID int) ([]Job, error) {
	jobs, err := c.listPipelineJobs(ctx, projectID, pipelineID)
	if err != nil {
		return nil, err
	}

	failed := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Status != StatusSuccess {
			failed = append(failed, job)
		}
	}
	return failed, nil
}

// listPipelineJobs walks the paginated jobs endpoint via X-Next-Page until the
// list is exhausted or maxJobsPerPipeline is reached.
func (c *Client) listPipelineJobs(ctx context.Context, projectID, pipelineID int) ([]Job, error) {
	perPage := c.config.JobsPerPage
	if perPage <= 0 || perPage > maxJobsPerPipeline {
		perPage = 100
	}

	var all []Job
	page := 1
	for {
		url := fmt.Sprintf("%s/api/v4/projects/%d/pipelines/%d/jobs?per_page=%d&page=%d",
			c.baseURL(), projectID, pipelineID, perPage, page)

		jobs, nextPage, err := c.fetchJobsPage(ctx, url)
		if err != nil {
			return nil, err
		}

		all = append(all, jobs...)
		if len(all) >= maxJobsPerPipeline {
			all = all[:maxJobsPerPipeline]
			break
		}
		if nextPage == 0 {
			break
		}
		page = nextPage
	}

	return all, nil
}

func (c *Client) fetchJobsPage(ctx context.Context, url string) ([]Job, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch pipeline jobs: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, 0, fmt.Errorf("GitLab API error %d: %s", resp.StatusCode, string(body))
	}

	var jobs []Job
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode pipeline jobs: %w", err)
	}

	nextPage := 0
	if next := resp.Header.Get("X-Next-Page"); next != "" {
		nextPage, _ = strconv.Atoi(next)
	}

	return jobs, nextPage, nil
}

// GetMergeRequest fetches merge request detail by project ID and MR IID
func (c *Client) GetMergeRequest(ctx context.Context, projectID, mrIID int) (*MergeRequest, error) {
	url := fmt.Sprintf("%s/api/v4/projects/%d/merge_requests/%d",
		c.baseURL(), projectID, mrIID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch merge request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitLab API error %d: %s", resp.StatusCode, string(body))
	}

	var mr MergeRequest
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("failed to decode merge request: %w", err)
	}

	return &mr, nil
}
