package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePullRequestURL(t *testing.T) {
	tests := []struct {
		name string
		link string
		want PullRequestRef
	}{
		{
			name: "standard pull request link",
			link: "https://github.com/acme/webapp/pull/42",
			want: PullRequestRef{Owner: "acme", Repo: "webapp", Number: 42},
		},
		{
			name: "pulls segment variant",
			link: "https://github.com/acme/webapp/pulls/7",
			want: PullRequestRef{Owner: "acme", Repo: "webapp", Number: 7},
		},
		{
			name: "trailing path after the number",
			link: "https://github.com/acme/webapp/pull/42/files",
			want: PullRequestRef{Owner: "acme", Repo: "webapp", Number: 42},
		},
		{
			name: "trailing slash",
			link: "https://github.com/acme/webapp/pull/42/",
			want: PullRequestRef{Owner: "acme", Repo: "webapp", Number: 42},
		},
		{
			name: "repo link without a pull request",
			link: "https://github.com/acme/webapp",
			want: PullRequestRef{Owner: "acme", Repo: "webapp", Number: 0},
		},
		{
			name: "non-numeric pull number",
			link: "https://github.com/acme/webapp/pull/abc",
			want: PullRequestRef{Owner: "acme", Repo: "webapp", Number: 0},
		},
		{
			name: "negative pull number",
			link: "https://github.com/acme/webapp/pull/-3",
			want: PullRequestRef{Owner: "acme", Repo: "webapp", Number: 0},
		},
		{
			name: "issues link keeps owner and repo only",
			link: "https://github.com/acme/webapp/issues/5",
			want: PullRequestRef{Owner: "acme", Repo: "webapp", Number: 0},
		},
		{
			name: "owner only",
			link: "https://github.com/acme",
			want: PullRequestRef{Owner: "unknown", Repo: "unknown", Number: 0},
		},
		{
			name: "empty link",
			link: "",
			want: PullRequestRef{Owner: "unknown", Repo: "unknown", Number: 0},
		},
		{
			name: "whitespace only",
			link: "   ",
			want: PullRequestRef{Owner: "unknown", Repo: "unknown", Number: 0},
		},
		{
			name: "not a url at all",
			link: "definitely not a link",
			want: PullRequestRef{Owner: "unknown", Repo: "unknown", Number: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePullRequestURL(tt.link))
		})
	}
}
