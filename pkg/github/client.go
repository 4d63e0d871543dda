package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-agent-backend/pkg/retry"
)

const defaultBaseURL = "https://api.github.com"

var (
	ErrNotFound     = errors.New("github: resource not found")
	ErrUnauthorized = errors.New("github: bad credentials")
)

// Repo is the subset of GitHub repository metadata the ingestion flow uses.
type Repo struct {
	ID            int64          `json:"github_id"`
	FullName      string         `json:"full_name"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	URL           string         `json:"url"`
	Homepage      string         `json:"homepage,omitempty"`
	Languages     map[string]int `json:"languages,omitempty"`
	Topics        []string       `json:"topics"`
	Stars         int            `json:"stars"`
	Forks         int            `json:"forks"`
	OpenIssues    int            `json:"open_issues"`
	IsFork        bool           `json:"is_fork"`
	IsPrivate     bool           `json:"is_private"`
	IsArchived    bool           `json:"is_archived"`
	DefaultBranch string         `json:"default_branch"`
	PushedAt      *time.Time     `json:"pushed_at,omitempty"`
	CreatedAt     *time.Time     `json:"created_at,omitempty"`
}

// RepoDetails extends Repo with README content and the extracted tech stack.
type RepoDetails struct {
	Repo
	Readme        string   `json:"readme_content,omitempty"`
	ExtractedTech []string `json:"extracted_tech"`
}

// Client is a minimal GitHub REST v3 client for repository ingestion.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client authenticated with a personal access token.
// An empty token limits access to public repositories.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// apiRepo mirrors the GitHub API repository payload.
type apiRepo struct {
	ID              int64      `json:"id"`
	FullName        string     `json:"full_name"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	HTMLURL         string     `json:"html_url"`
	Homepage        string     `json:"homepage"`
	Topics          []string   `json:"topics"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	OpenIssuesCount int        `json:"open_issues_count"`
	Fork            bool       `json:"fork"`
	Private         bool       `json:"private"`
	Archived        bool       `json:"archived"`
	DefaultBranch   string     `json:"default_branch"`
	PushedAt        *time.Time `json:"pushed_at"`
	CreatedAt       *time.Time `json:"created_at"`
}

func (r apiRepo) toRepo() Repo {
	return Repo{
		ID:            r.ID,
		FullName:      r.FullName,
		Name:          r.Name,
		Description:   r.Description,
		URL:           r.HTMLURL,
		Homepage:      r.Homepage,
		Topics:        r.Topics,
		Stars:         r.StargazersCount,
		Forks:         r.ForksCount,
		OpenIssues:    r.OpenIssuesCount,
		IsFork:        r.Fork,
		IsPrivate:     r.Private,
		IsArchived:    r.Archived,
		DefaultBranch: r.DefaultBranch,
		PushedAt:      r.PushedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// AuthenticatedUser is the token owner's account info.
type AuthenticatedUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// GetAuthenticatedUser verifies the token by fetching its owner.
func (c *Client) GetAuthenticatedUser(ctx context.Context) (*AuthenticatedUser, error) {
	var user AuthenticatedUser
	if err := c.getJSON(ctx, "/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUserRepos fetches all repositories owned by the authenticated user.
func (c *Client) ListUserRepos(ctx context.Context, includeForks, includePrivate bool, minStars int) ([]Repo, error) {
	var repos []Repo
	page := 1

	for {
		path := fmt.Sprintf("/user/repos?affiliation=owner&per_page=100&page=%d", page)
		var batch []apiRepo
		if err := c.getJSON(ctx, path, &batch); err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		for _, r := range batch {
			if !includeForks && r.Fork {
				continue
			}
			if !includePrivate && r.Private {
				continue
			}
			if r.StargazersCount < minStars {
				continue
			}
			repos = append(repos, r.toRepo())
		}
		page++
	}
	return repos, nil
}

// GetRepo fetches a single repository by "owner/name".
func (c *Client) GetRepo(ctx context.Context, fullName string) (*Repo, error) {
	var r apiRepo
	if err := c.getJSON(ctx, "/repos/"+fullName, &r); err != nil {
		return nil, err
	}
	repo := r.toRepo()
	return &repo, nil
}

// GetRepoDetails fetches a repository along with its README, language
// breakdown, and the tech stack extracted from its manifest files.
func (c *Client) GetRepoDetails(ctx context.Context, fullName string) (*RepoDetails, error) {
	repo, err := c.GetRepo(ctx, fullName)
	if err != nil {
		return nil, err
	}

	details := &RepoDetails{Repo: *repo}

	if langs, err := c.getLanguages(ctx, fullName); err == nil {
		details.Languages = langs
	}
	if readme, err := c.getReadme(ctx, fullName); err == nil {
		details.Readme = readme
	}
	details.ExtractedTech = c.extractTechStack(ctx, fullName, details.Languages)

	return details, nil
}

func (c *Client) getLanguages(ctx context.Context, fullName string) (map[string]int, error) {
	langs := map[string]int{}
	if err := c.getJSON(ctx, "/repos/"+fullName+"/languages", &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

func (c *Client) getReadme(ctx context.Context, fullName string) (string, error) {
	return c.getFileContent(ctx, fullName, "readme")
}

// contentResponse is the GitHub contents API payload.
type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

func (c *Client) getFileContent(ctx context.Context, fullName, path string) (string, error) {
	var resp contentResponse
	var url string
	if path == "readme" {
		url = "/repos/" + fullName + "/readme"
	} else {
		url = "/repos/" + fullName + "/contents/" + path
	}
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return "", err
	}
	if resp.Encoding != "base64" {
		return resp.Content, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("github: decode content: %w", err)
	}
	return string(decoded), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := retry.HTTP(ctx, retry.DefaultConfig, func() (*http.Response, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		return c.httpClient.Do(req)
	})
	if err != nil {
		return fmt.Errorf("github: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("github: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ParseRepoURL extracts "owner/name" from a GitHub repository URL.
func ParseRepoURL(url string) (string, error) {
	url = strings.TrimRight(url, "/")
	idx := strings.Index(url, "github.com/")
	if idx == -1 {
		return "", fmt.Errorf("github: invalid repository URL: %s", url)
	}
	parts := strings.Split(url[idx+len("github.com/"):], "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("github: invalid repository URL: %s", url)
	}
	return parts[0] + "/" + strings.TrimSuffix(parts[1], ".git"), nil
}
