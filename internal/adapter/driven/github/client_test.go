package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/ericfisherdev/reviewsync/internal/adapter/driven/github"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *ghAdapter.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/")
	require.NoError(t, err)

	return client
}

type userJSON struct {
	Login string `json:"login"`
}

type refJSON struct {
	Ref string `json:"ref"`
}

type prJSON struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	HTMLURL string   `json:"html_url"`
	User    userJSON `json:"user"`
	Head    refJSON  `json:"head"`
	Base    refJSON  `json:"base"`
}

func TestFetchOpenPullRequests(t *testing.T) {
	var gotBase, gotState string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/org/upstream/pulls", r.URL.Path)
		gotBase = r.URL.Query().Get("base")
		gotState = r.URL.Query().Get("state")

		prs := []prJSON{
			{
				Number:  42,
				Title:   "Add feature X",
				HTMLURL: "https://github.com/org/upstream/pull/42",
				User:    userJSON{Login: "alice"},
				Head:    refJSON{Ref: "feature-a"},
				Base:    refJSON{Ref: "main"},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(prs))
	})

	client := newTestClient(t, handler)
	prs, err := client.FetchOpenPullRequests(context.Background(), "org/upstream", "main")

	require.NoError(t, err)
	assert.Equal(t, "main", gotBase)
	assert.Equal(t, "open", gotState)
	require.Len(t, prs, 1)
	assert.Equal(t, 42, prs[0].Number)
	assert.Equal(t, "alice", prs[0].Author)
	assert.Equal(t, "feature-a", prs[0].Branch)
	assert.Equal(t, "main", prs[0].BaseBranch)
}

func TestFetchReviewComments_MapsLineRange(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/org/upstream/pulls/42/comments", r.URL.Path)
		fmt.Fprint(w, `[
			{"id": 1, "path": "src/a.ts", "line": 10, "body": "single", "user": {"login": "review-bot"}, "created_at": "2026-08-26T10:00:00Z"},
			{"id": 2, "path": "src/b.ts", "start_line": 5, "line": 7, "body": "ranged", "user": {"login": "review-bot"}, "created_at": "2026-08-26T11:00:00Z"}
		]`)
	})

	client := newTestClient(t, handler)
	comments, err := client.FetchReviewComments(context.Background(), "org/upstream", 42)

	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "src/a.ts", comments[0].Path)
	assert.Zero(t, comments[0].StartLine)
	assert.Equal(t, 10, comments[0].EndLine)
	assert.False(t, comments[0].IsMultiLine())

	assert.Equal(t, 5, comments[1].StartLine)
	assert.Equal(t, 7, comments[1].EndLine)
	assert.True(t, comments[1].IsMultiLine())
	assert.Equal(t, time.Date(2026, 8, 26, 11, 0, 0, 0, time.UTC), comments[1].CreatedAt)
}

func TestFetchIssueComments(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/org/upstream/issues/42/comments", r.URL.Path)
		fmt.Fprint(w, `[
			{"id": 9, "body": "Additional Comments\n\nall good", "user": {"login": "review-bot"}, "created_at": "2026-08-26T10:00:00Z"}
		]`)
	})

	client := newTestClient(t, handler)
	comments, err := client.FetchIssueComments(context.Background(), "org/upstream", 42)

	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "review-bot", comments[0].Author)
	assert.Contains(t, comments[0].Body, "Additional Comments")
}

func TestSearchIssues_ScopesQueryToRepoTitles(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/issues", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"total_count": 1, "incomplete_results": false, "items": [
			{"number": 7, "title": "Code Review 2 - feature-a", "state": "open", "body": "<!-- REVIEW-SYNC"}
		]}`)
	})

	client := newTestClient(t, handler)
	issues, err := client.SearchIssues(context.Background(), "org/tracker", "feature-a")

	require.NoError(t, err)
	assert.Contains(t, gotQuery, "repo:org/tracker")
	assert.Contains(t, gotQuery, "in:title")
	assert.Contains(t, gotQuery, `"feature-a"`)
	require.Len(t, issues, 1)
	assert.Equal(t, 7, issues[0].Number)
	assert.Equal(t, "Code Review 2 - feature-a", issues[0].Title)
}

func TestGetIssue_ReturnsFullBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/org/tracker/issues/7", r.URL.Path)
		fmt.Fprint(w, `{"number": 7, "title": "Code Review 2 - feature-a", "state": "closed", "body": "full untruncated body"}`)
	})

	client := newTestClient(t, handler)
	issue, err := client.GetIssue(context.Background(), "org/tracker", 7)

	require.NoError(t, err)
	assert.Equal(t, "full untruncated body", issue.Body)
	assert.Equal(t, "closed", issue.State)
}

func TestCreateIssue_ReturnsNumber(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/org/tracker/issues", r.URL.Path)

		var req struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Code Review 1 - feature-a", req.Title)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number": 11}`)
	})

	client := newTestClient(t, handler)
	number, err := client.CreateIssue(context.Background(), "org/tracker", "Code Review 1 - feature-a", "body")

	require.NoError(t, err)
	assert.Equal(t, 11, number)
}

func TestCreateIssueComment(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/org/tracker/issues/11/comments", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 1}`)
	})

	client := newTestClient(t, handler)
	err := client.CreateIssueComment(context.Background(), "org/tracker", 11, "hello")

	require.NoError(t, err)
}

func TestSplitRepo_Invalid(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	_, err := client.FetchOpenPullRequests(context.Background(), "not-a-repo", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected owner/repo")
}
