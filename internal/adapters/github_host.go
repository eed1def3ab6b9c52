package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqmerge/internal/shared"
	"reqmerge/internal/types"
)

const (
	defaultAPIBaseURL     = "https://api.github.com"
	defaultRawBaseURL     = "https://raw.githubusercontent.com"
	defaultFallbackBranch = "main"
	defaultManifestName   = "requirements.txt"
	defaultHTTPTimeout    = 30 * time.Second
)

// HostConfig configures the GitHub host adapter. Zero values fall back
// to the public GitHub endpoints; tests point the base URLs at httptest
// servers.
type HostConfig struct {
	APIBaseURL     string
	RawBaseURL     string
	Token          string
	FallbackBranch string
	ManifestName   string
	Timeout        time.Duration
}

// GitHubHostAdapter resolves default branches through the GitHub
// repository API and fetches manifests from the raw content mirror. Each
// request is a single attempt; failures are reported, never retried.
type GitHubHostAdapter struct {
	cfg    HostConfig
	client *http.Client
}

func NewGitHubHostAdapter(cfg HostConfig) GitHubHostAdapter {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if strings.TrimSpace(cfg.RawBaseURL) == "" {
		cfg.RawBaseURL = defaultRawBaseURL
	}
	if strings.TrimSpace(cfg.FallbackBranch) == "" {
		cfg.FallbackBranch = defaultFallbackBranch
	}
	if strings.TrimSpace(cfg.ManifestName) == "" {
		cfg.ManifestName = defaultManifestName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHTTPTimeout
	}
	return GitHubHostAdapter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// DefaultBranch queries the repository metadata API for the default
// branch. Lookup failures fall back to the configured branch name; only
// an unusable repository URL is an error.
func (a GitHubHostAdapter) DefaultBranch(ctx context.Context, repoURL string) (string, error) {
	owner, repo, err := shared.SplitRepoPath(repoURL)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cannot resolve default branch").
			WithCause(err)
	}
	endpoint := fmt.Sprintf("%s/repos/%s/%s", strings.TrimSuffix(a.cfg.APIBaseURL, "/"), owner, repo)
	body, status, err := a.get(ctx, endpoint)
	if err != nil {
		log.Warn().Str("url", repoURL).Err(err).
			Str("fallback", a.cfg.FallbackBranch).Msg("default branch lookup failed")
		return a.cfg.FallbackBranch, nil
	}
	if status != http.StatusOK {
		log.Warn().Str("url", repoURL).Int("status", status).
			Str("fallback", a.cfg.FallbackBranch).Msg("default branch lookup failed")
		return a.cfg.FallbackBranch, nil
	}
	var payload struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.DefaultBranch == "" {
		log.Warn().Str("url", repoURL).
			Str("fallback", a.cfg.FallbackBranch).Msg("repository metadata without default branch")
		return a.cfg.FallbackBranch, nil
	}
	return payload.DefaultBranch, nil
}

// FetchManifest downloads the manifest file for a repository at the
// given ref from the raw content mirror.
func (a GitHubHostAdapter) FetchManifest(ctx context.Context, ref types.RepositoryRef) ([]byte, error) {
	owner, repo, err := shared.SplitRepoPath(ref.URL)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cannot fetch manifest").
			WithCause(err)
	}
	endpoint := fmt.Sprintf("%s/%s/%s/%s/%s",
		strings.TrimSuffix(a.cfg.RawBaseURL, "/"), owner, repo, ref.Ref, a.cfg.ManifestName)
	body, status, err := a.get(ctx, endpoint)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("manifest request failed for %s", ref.URL)).
			WithCause(err)
	}
	if status != http.StatusOK {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no %s in %s at %s", a.cfg.ManifestName, ref.URL, ref.Ref)).
			WithCause(shared.HTTPStatusError(status, endpoint))
	}
	return body, nil
}

func (a GitHubHostAdapter) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	if a.cfg.Token != "" {
		req.Header.Set("Authorization", "token "+a.cfg.Token)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
