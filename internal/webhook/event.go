package webhook

import (
	"github.com/gitlab-bots/pipeline-slack-notifier/internal/gitlab"
)

// EventKind discriminates inbound webhook payloads. GitLab tags every
// webhook body with object_kind; anything that is not a pipeline event is
// KindOther and gets acknowledged without action.
type EventKind string

const (
	KindPipeline EventKind = "pipeline"
	KindOther    EventKind = "other"
)

// MergeRequestRef is the merge request reference a pipeline event may carry
type MergeRequestRef struct {
	IID int `json:"iid"`
}

// PipelineEvent is the subset of the GitLab pipeline webhook payload this
// service reads. MergeRequest is nil for branch pipelines, which makes the
// event non-actionable.
type PipelineEvent struct {
	ObjectKind       string `json:"object_kind"`
	ObjectAttributes struct {
		ID     int           `json:"id"`
		Status gitlab.Status `json:"status"`
	} `json:"object_attributes"`
	Project struct {
		ID int `json:"id"`
	} `json:"project"`
	MergeRequest *MergeRequestRef `json:"merge_request"`
}

// Kind classifies the decoded payload
func (e *PipelineEvent) Kind() EventKind {
	if e.ObjectKind == "pipeline" {
		return KindPipeline
	}
	return KindOther
}
