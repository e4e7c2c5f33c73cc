// Package github adapts the GitHub REST and GraphQL APIs to the activity
// source and notifier interfaces. No retry or backoff here: a failed fetch
// is reported to the caller, which degrades to zero activity.
package github

import (
	"context"

	gogithub "github.com/google/go-github/v66/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Client bundles the REST client (issues, repository counts) and the
// GraphQL client (contribution calendar) on one token-bearing transport.
type Client struct {
	rest    *gogithub.Client
	graphql *githubv4.Client
}

// NewClient builds a client authenticated with the provided token.
func NewClient(ctx context.Context, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, src)

	return &Client{
		rest:    gogithub.NewClient(hc),
		graphql: githubv4.NewClient(hc),
	}
}

// REST exposes the underlying REST client for adapters that share the
// authenticated transport.
func (c *Client) REST() *gogithub.Client {
	return c.rest
}
