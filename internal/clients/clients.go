package clients

import (
	"errors"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// GitLabClient builds an authenticated API client for one GitLab instance.
// The migration always works with two of these: source and destination.
type GitLabClient interface {
	GitlabAuth() (*gitlab.Client, error)
}

type GitlabClientImpl struct {
	gitlabApiEndpoint string
	gitlabPAT         string
}

func NewGitLabClient(endpoint, pat string) GitLabClient {
	return &GitlabClientImpl{
		gitlabApiEndpoint: endpoint,
		gitlabPAT:         pat,
	}
}

func (g *GitlabClientImpl) GitlabAuth() (*gitlab.Client, error) {
	if g.gitlabApiEndpoint == "" {
		return nil, errors.New("GitLab API endpoint is required")
	}
	if g.gitlabPAT == "" {
		return nil, errors.New("GitLab PAT is required")
	}
	return gitlab.NewClient(g.gitlabPAT, gitlab.WithBaseURL(g.gitlabApiEndpoint))
}
