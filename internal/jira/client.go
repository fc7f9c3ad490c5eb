package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jirav2 "github.com/ctreminiom/go-atlassian/v2/jira/v2"
	atlassian "github.com/ctreminiom/go-atlassian/v2/pkg/infra/models"

	log "github.com/tuannvm/ai-toolbox/internal/logging"
	"github.com/tuannvm/ai-toolbox/internal/models"
)

// DefaultPriority is used when a ticket is created without a priority
const DefaultPriority = "Medium"

// Issue is a ticket to be filed
type Issue struct {
	Summary     string
	Description string
	IssueType   string
	Priority    string
}

// CreatedIssue identifies a filed ticket
type CreatedIssue struct {
	ID  string
	Key string
	URL string
}

// IssueCreator files tickets in the Jira site named by the settings
type IssueCreator interface {
	CreateIssue(ctx context.Context, settings models.JiraSettings, issue Issue) (*CreatedIssue, error)
}

// Client creates Jira issues with per-call credentials. It holds no secrets.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new Jira client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}

// CreateIssue files the issue and returns its key and browse URL
func (c *Client) CreateIssue(ctx context.Context, settings models.JiraSettings, issue Issue) (*CreatedIssue, error) {
	site, err := normalizeSite(settings.JiraURL)
	if err != nil {
		return nil, err
	}

	instance, err := jirav2.New(c.httpClient, site)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}
	instance.Auth.SetBasicAuth(settings.Username, settings.APIToken)

	priority := issue.Priority
	if strings.TrimSpace(priority) == "" {
		priority = DefaultPriority
	}

	payload := &atlassian.IssueSchemeV2{
		Fields: &atlassian.IssueFieldsSchemeV2{
			Summary:     issue.Summary,
			Description: issue.Description,
			Project:     &atlassian.ProjectScheme{Key: settings.ProjectKey},
			IssueType:   &atlassian.IssueTypeScheme{Name: issue.IssueType},
			Priority:    &atlassian.PriorityScheme{Name: priority},
		},
	}

	log.Infof("Creating %s issue in project %s on %s", issue.IssueType, settings.ProjectKey, site)
	created, resp, err := instance.Issue.Create(ctx, payload, nil)
	if err != nil {
		if resp != nil {
			log.Errorf("Jira rejected issue creation: status %d", resp.Code)
		}
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	if created == nil || created.Key == "" {
		return nil, errors.New("failed to create issue: empty response")
	}

	return &CreatedIssue{
		ID:  created.ID,
		Key: created.Key,
		URL: BrowseURL(site, created.Key),
	}, nil
}

// BrowseURL returns the human-facing URL of an issue
func BrowseURL(site, key string) string {
	return strings.TrimRight(site, "/") + "/browse/" + key
}

func normalizeSite(raw string) (string, error) {
	site := strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(site)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return "", fmt.Errorf("invalid Jira URL %q", raw)
	}
	return site, nil
}
