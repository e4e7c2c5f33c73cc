package github

import (
	"context"
	"fmt"

	gogithub "github.com/google/go-github/v66/github"
)

// Notifier posts interaction responses to issues in the profile repository.
type Notifier struct {
	rest  *gogithub.Client
	owner string
	repo  string
}

func NewNotifier(rest *gogithub.Client, owner, repo string) *Notifier {
	return &Notifier{rest: rest, owner: owner, repo: repo}
}

// PostComment adds a comment to the issue an interaction originated from.
func (n *Notifier) PostComment(ctx context.Context, issueNumber int, body string) error {
	comment := &gogithub.IssueComment{Body: gogithub.String(body)}
	if _, _, err := n.rest.Issues.CreateComment(ctx, n.owner, n.repo, issueNumber, comment); err != nil {
		return fmt.Errorf("post comment on issue #%d: %w", issueNumber, err)
	}
	return nil
}

// CloseIssue closes a freshly opened interaction issue after responding.
func (n *Notifier) CloseIssue(ctx context.Context, issueNumber int) error {
	req := &gogithub.IssueRequest{State: gogithub.String("closed")}
	if _, _, err := n.rest.Issues.Edit(ctx, n.owner, n.repo, issueNumber, req); err != nil {
		return fmt.Errorf("close issue #%d: %w", issueNumber, err)
	}
	return nil
}
