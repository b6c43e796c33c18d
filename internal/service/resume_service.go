package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resumake/resumake-api/internal/domain"
	"github.com/resumake/resumake-api/internal/generation"
	"github.com/resumake/resumake-api/internal/workflow"
)

// Producer task identifiers. The consumer joins on exactly these names.
const (
	TaskRepoFetch      workflow.TaskID = "repo-fetch"
	TaskPageScrape     workflow.TaskID = "page-scrape"
	TaskKeywordExtract workflow.TaskID = "keyword-extract"
	TaskCompose        workflow.TaskID = "compose"
)

// ErrNoInputs is returned when a request carries nothing to build a resume
// from.
var ErrNoInputs = errors.New("at least one input must be provided")

// RepoFetcher summarizes a GitHub profile's public repositories.
type RepoFetcher interface {
	FetchProfile(ctx context.Context, profileURL string) (string, error)
}

// PageScraper extracts the visible text of a portfolio page.
type PageScraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// GenerateRequest carries the caller-supplied raw inputs for one resume
// generation run. Every field is optional, but at least one of the producer
// inputs or the old resume text must be present.
type GenerateRequest struct {
	GitHubURL      string
	PortfolioURL   string
	JobDescription string
	OldResumeText  string
	UserAdditions  string
	UserFeedback   string
}

// hasAnyInput reports whether the request carries anything to work from.
func (r GenerateRequest) hasAnyInput() bool {
	return strings.TrimSpace(r.GitHubURL) != "" ||
		strings.TrimSpace(r.PortfolioURL) != "" ||
		strings.TrimSpace(r.JobDescription) != "" ||
		strings.TrimSpace(r.OldResumeText) != ""
}

// ResumeService coordinates one resume generation run: it fans the available
// inputs out to the collection producers, joins their outcomes and hands them
// to the composer.
type ResumeService struct {
	driver   *workflow.Driver
	repos    RepoFetcher
	scraper  PageScraper
	keywords generation.KeywordExtractor
	composer generation.Composer
	logger   *slog.Logger
}

// NewResumeService creates a ResumeService.
func NewResumeService(
	driver *workflow.Driver,
	repos RepoFetcher,
	scraper PageScraper,
	keywords generation.KeywordExtractor,
	composer generation.Composer,
	logger *slog.Logger,
) *ResumeService {
	return &ResumeService{
		driver:   driver,
		repos:    repos,
		scraper:  scraper,
		keywords: keywords,
		composer: composer,
		logger:   logger,
	}
}

// Generate runs the full workflow for one request and returns the composed
// resume JSON document, validated against the resume schema. A failed or
// skipped producer degrades the composer's input for that identifier only;
// the composer's failure, a malformed composed document, an invariant
// violation, or a run timeout is the caller's terminal error.
func (s *ResumeService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if !req.hasAnyInput() {
		return "", ErrNoInputs
	}

	producers := s.buildProducers(req)
	consumer := workflow.ConsumerSpec{
		ID: TaskCompose,
		Op: func(ctx context.Context, inputs map[workflow.TaskID]workflow.Outcome) (string, error) {
			return s.composer.Compose(ctx, composeInput(req, inputs))
		},
	}

	outcome, err := s.driver.RunWorkflow(ctx, producers, consumer)
	if err != nil {
		return "", err
	}
	if !outcome.Succeeded() {
		return "", fmt.Errorf("resume composition failed: %s", outcome.Message)
	}
	if _, err := domain.ParseResume(outcome.Payload); err != nil {
		s.logger.Error("composer returned a malformed document", "error", err)
		return "", fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}
	return outcome.Payload, nil
}

// buildProducers maps each request input to a producer spec. An absent input
// yields a nil operation, which the workflow records as a distinguished
// "no input provided" failure without invoking anything.
func (s *ResumeService) buildProducers(req GenerateRequest) []workflow.ProducerSpec {
	producers := []workflow.ProducerSpec{
		{ID: TaskRepoFetch},
		{ID: TaskPageScrape},
		{ID: TaskKeywordExtract},
	}

	if url := strings.TrimSpace(req.GitHubURL); url != "" {
		producers[0].Op = func(ctx context.Context) (string, error) {
			return s.repos.FetchProfile(ctx, url)
		}
	}
	if url := strings.TrimSpace(req.PortfolioURL); url != "" {
		producers[1].Op = func(ctx context.Context) (string, error) {
			return s.scraper.Scrape(ctx, url)
		}
	}
	if jd := strings.TrimSpace(req.JobDescription); jd != "" {
		producers[2].Op = func(ctx context.Context) (string, error) {
			return s.keywords.ExtractKeywords(ctx, jd)
		}
	}

	return producers
}

// composeInput maps the joined producer outcomes onto the composer's input.
// Failed producers are surfaced as explicit unavailability markers rather
// than silently passed through as empty data.
func composeInput(req GenerateRequest, inputs map[workflow.TaskID]workflow.Outcome) generation.ComposeInput {
	return generation.ComposeInput{
		GitHubData:    payloadOrMarker(inputs[TaskRepoFetch]),
		PortfolioData: payloadOrMarker(inputs[TaskPageScrape]),
		JDKeywords:    payloadOrMarker(inputs[TaskKeywordExtract]),
		OldResumeText: req.OldResumeText,
		UserAdditions: req.UserAdditions,
		UserFeedback:  req.UserFeedback,
	}
}

func payloadOrMarker(outcome workflow.Outcome) string {
	if outcome.Succeeded() {
		return outcome.Payload
	}
	return fmt.Sprintf("[unavailable: %s]", outcome.Message)
}
