package jobsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"resume-coach/internal/config"
	"resume-coach/internal/domain/job"
	"resume-coach/internal/search"
)

var ErrDisabled = errors.New("job search API not configured")

type Query struct {
	Keywords string
	Location string
	Page     int
}

// Client searches a third-party job board.
type Client interface {
	Search(ctx context.Context, q Query) (job.SearchResult, error)
}

type adzunaClient struct {
	baseURL  string
	appID    string
	appKey   string
	country  string
	pageSize int
	client   *http.Client
	logger   *log.Logger
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

type adzunaResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Company      adzunaCompany  `json:"company"`
	Location     adzunaLocation `json:"location"`
	SalaryMin    float64        `json:"salary_min"`
	SalaryMax    float64        `json:"salary_max"`
	RedirectURL  string         `json:"redirect_url"`
	Created      string         `json:"created"`
	ContractTime string         `json:"contract_time"`
	ContractType string         `json:"contract_type"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

// NewClient returns nil when no API credentials are configured.
func NewClient(cfg config.JobsConfig, logger *log.Logger) Client {
	if !cfg.Enabled() {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	return &adzunaClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		appID:    cfg.AppID,
		appKey:   cfg.AppKey,
		country:  strings.ToLower(cfg.Country),
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (c *adzunaClient) Search(ctx context.Context, q Query) (job.SearchResult, error) {
	if c == nil || c.client == nil {
		return job.SearchResult{}, ErrDisabled
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/%s/search/%d", c.baseURL, url.PathEscape(c.country), page)
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("results_per_page", strconv.Itoa(c.pageSize))
	if kw := strings.TrimSpace(q.Keywords); kw != "" {
		params.Set("what", kw)
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		params.Set("where", loc)
	}
	params.Set("sort_by", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return job.SearchResult{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return job.SearchResult{}, fmt.Errorf("job search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[Jobs] Search error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return job.SearchResult{}, fmt.Errorf("job search failed: status=%d", resp.StatusCode)
	}

	var out adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return job.SearchResult{}, fmt.Errorf("decode job search response: %w", err)
	}

	jobs := make([]job.Posting, 0, len(out.Results))
	for _, r := range out.Results {
		jobs = append(jobs, toPosting(r))
	}
	return job.SearchResult{Jobs: jobs, Page: page, Total: out.Count}, nil
}

func toPosting(r adzunaResult) job.Posting {
	title := strings.TrimSpace(r.Title)
	desc := strings.TrimSpace(r.Description)
	loc := strings.TrimSpace(r.Location.DisplayName)

	lower := strings.ToLower(title + " " + loc + " " + desc)
	remote := strings.Contains(lower, "remote") || strings.Contains(lower, "work from home")

	return job.Posting{
		ID:           r.ID,
		Title:        title,
		Company:      strings.TrimSpace(r.Company.DisplayName),
		Location:     loc,
		Description:  desc,
		Requirements: search.ExtractSkills(title, desc),
		Salary:       formatSalary(r.SalaryMin, r.SalaryMax),
		Type:         employmentType(r.ContractTime, r.ContractType),
		Remote:       remote,
		PostedDate:   strings.TrimSpace(r.Created),
		ApplyURL:     strings.TrimSpace(r.RedirectURL),
	}
}

func employmentType(contractTime, contractType string) string {
	if strings.EqualFold(contractType, "contract") {
		return "Contract"
	}
	if strings.EqualFold(contractTime, "part_time") {
		return "Part-time"
	}
	return "Full-time"
}

func formatSalary(minV, maxV float64) string {
	switch {
	case minV <= 0 && maxV <= 0:
		return ""
	case minV <= 0 || minV == maxV:
		return formatAmount(maxV)
	case maxV <= 0:
		return formatAmount(minV)
	default:
		return formatAmount(minV) + " - " + formatAmount(maxV)
	}
}

func formatAmount(v float64) string {
	s := strconv.FormatInt(int64(v+0.5), 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var _ Client = (*adzunaClient)(nil)
