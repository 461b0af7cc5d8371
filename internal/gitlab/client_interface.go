package gitlab

import "context"

// GitLabClient is an interface for the GitLab API operations this service
// consumes. It allows for easy mocking in tests.
type GitLabClient interface {
	FailedPipelineJobs(ctx context.Context, projectID, pipelineID int) ([]Job, error)
	GetMergeRequest(ctx context.Context, projectID, mrIID int) (*MergeRequest, error)
}

// Verify that Client implements GitLabClient interface
var _ GitLabClient = (*Client)(nil)
