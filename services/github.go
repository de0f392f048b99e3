package services

import (
	"net/url"
	"strconv"
	"strings"
)

// PullRequestRef is the owner/repo/number triple parsed out of a PR link.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

const (
	unknownSegment = "unknown"
)

// ParsePullRequestURL extracts owner, repo and PR number from a GitHub-style
// pull request link (https://github.com/{owner}/{repo}/pull/{n}). Parsing is
// tolerant: anything that does not fit yields "unknown"/0 rather than an
// error, since the link is informational and must never block a submission.
func ParsePullRequestURL(link string) PullRequestRef {
	ref := PullRequestRef{Owner: unknownSegment, Repo: unknownSegment}

	link = strings.TrimSpace(link)
	if link == "" {
		return ref
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return ref
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) >= 2 && segments[0] != "" && segments[1] != "" {
		ref.Owner = segments[0]
		ref.Repo = segments[1]
	}
	if len(segments) >= 4 && (segments[2] == "pull" || segments[2] == "pulls") {
		if n, err := strconv.Atoi(segments[3]); err == nil && n > 0 {
			ref.Number = n
		}
	}
	return ref
}
