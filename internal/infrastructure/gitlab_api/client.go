package gitlab_api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/davarch/pipeline-status/internal/domain"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const maxPerPage = 100

// Client implements domain.CIClient on the GitLab REST API.
type Client struct {
	gl *gitlab.Client

	mu    sync.Mutex
	paths map[string]string // project identifier -> path with namespace
}

func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	tr := &http.Transport{
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
	}

	gl, err := gitlab.NewClient(token,
		gitlab.WithBaseURL(trimSlash(baseURL)+"/api/v4"),
		gitlab.WithHTTPClient(&http.Client{Transport: tr, Timeout: timeout}),
		// Backoff below owns the retry policy.
		gitlab.WithoutRetries(),
	)
	if err != nil {
		return nil, err
	}

	return &Client{gl: gl, paths: make(map[string]string)}, nil
}

func (c *Client) ListPipelines(ctx context.Context, q domain.PipelineQuery) ([]domain.Pipeline, error) {
	path, err := c.projectPath(ctx, q.Project)
	if err != nil {
		return nil, err
	}

	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}
	sortDir := "asc"
	if q.SortDesc {
		sortDir = "desc"
	}

	perPage := q.Limit
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}

	opts := &gitlab.ListProjectPipelinesOptions{
		OrderBy:     gitlab.Ptr(orderBy),
		Sort:        gitlab.Ptr(sortDir),
		ListOptions: gitlab.ListOptions{PerPage: perPage, Page: 1},
	}
	if q.Ref != "" {
		opts.Ref = gitlab.Ptr(q.Ref)
	}

	var out []domain.Pipeline
	for {
		var (
			page []*gitlab.PipelineInfo
			resp *gitlab.Response
		)
		err := c.call(ctx, func() (*gitlab.Response, error) {
			var e error
			page, resp, e = c.gl.Pipelines.ListProjectPipelines(q.Project, opts, gitlab.WithContext(ctx))
			return resp, e
		})
		if err != nil {
			return nil, err
		}

		for _, p := range page {
			out = append(out, domain.Pipeline{
				ID:          int64(p.ID),
				ProjectPath: path,
				Ref:         p.Ref,
				Status:      domain.Status(p.Status),
				WebURL:      p.WebURL,
				CreatedAt:   deref(p.CreatedAt),
			})
			if q.Limit > 0 && len(out) >= q.Limit {
				return out, nil
			}
		}

		if resp == nil || resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) ListJobs(ctx context.Context, project string, pipelineID int64) ([]domain.Job, error) {
	opts := &gitlab.ListJobsOptions{
		ListOptions: gitlab.ListOptions{PerPage: maxPerPage, Page: 1},
	}

	var out []domain.Job
	for {
		var (
			page []*gitlab.Job
			resp *gitlab.Response
		)
		err := c.call(ctx, func() (*gitlab.Response, error) {
			var e error
			page, resp, e = c.gl.Jobs.ListPipelineJobs(project, int(pipelineID), opts, gitlab.WithContext(ctx))
			return resp, e
		})
		if err != nil {
			return nil, err
		}

		for _, j := range page {
			out = append(out, domain.Job{
				Name:   j.Name,
				Stage:  j.Stage,
				Status: domain.Status(j.Status),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// projectPath resolves an identifier (numeric ID or path) to the
// canonical "group/project" path, cached per run.
func (c *Client) projectPath(ctx context.Context, project string) (string, error) {
	c.mu.Lock()
	if path, ok := c.paths[project]; ok {
		c.mu.Unlock()
		return path, nil
	}
	c.mu.Unlock()

	var prj *gitlab.Project
	err := c.call(ctx, func() (*gitlab.Response, error) {
		var (
			resp *gitlab.Response
			e    error
		)
		prj, resp, e = c.gl.Projects.GetProject(project, nil, gitlab.WithContext(ctx))
		return resp, e
	})
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.paths[project] = prj.PathWithNamespace
	c.mu.Unlock()
	return prj.PathWithNamespace, nil
}

// call retries transient failures (429, 5xx, network) with exponential
// backoff and gives up immediately on everything else.
func (c *Client) call(ctx context.Context, op func() (*gitlab.Response, error)) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 300 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 5 * time.Second

	return backoff.Retry(func() error {
		resp, err := op()
		if err == nil {
			return nil
		}
		if !retryable(resp) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx))
}

func retryable(resp *gitlab.Response) bool {
	if resp == nil || resp.Response == nil {
		return true // network-level failure
	}
	code := resp.StatusCode
	return code == http.StatusTooManyRequests || code >= 500
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
