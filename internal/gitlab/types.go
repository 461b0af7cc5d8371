package gitlab

// Status is a pipeline or job status as reported by the GitLab API
type Status string

const (
	StatusCreated  Status = "created"
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
	StatusSkipped  Status = "skipped"
	StatusManual   Status = "manual"
)

// Job is one unit of work within a pipeline run
type Job struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	WebURL string `json:"web_url"`
}

// User identifies a GitLab account referenced by a merge request
type User struct {
	Username string `json:"username"`
}

// MergeRequest holds the merge request detail used for notifications.
// MergedBy is nil while the merge request has never been merged.
type MergeRequest struct {
	IID      int    `json:"iid"`
	Title    string `json:"title"`
	WebURL   string `json:"web_url"`
	Author   User   `json:"author"`
	MergedBy *User  `json:"merged_by"`
}
