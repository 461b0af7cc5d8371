package webhook

import (
	"fmt"
	"strings"

	"github.com/gitlab-bots/pipeline-slack-notifier/internal/gitlab"
)

// ComposeFailureMessage builds the channel notification for a failed
// pipeline. Pure and deterministic: identical inputs produce byte-identical
// text. Job lines keep the order the jobs API returned them in.
func ComposeFailureMessage(mr *gitlab.MergeRequest, authorMention, mergerMention string, failedJobs []gitlab.Job) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("Failed MR: <%s|%s>\n", mr.WebURL, mr.Title))
	msg.WriteString(fmt.Sprintf("Author: <@%s>\n", authorMention))
	if mergerMention != "" {
		msg.WriteString(fmt.Sprintf("Merged by: <@%s>\n", mergerMention))
	}
	msg.WriteString("Failed jobs\n")
	for _, job := range failedJobs {
		msg.WriteString(fmt.Sprintf("- <%s|%s> %s\n", job.WebURL, job.Name, job.Status))
	}

	return msg.String()
}
