package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"jobboard/internal/models"
)

// AIService wraps the hosted LLM for search matching, resume summaries and
// application ranking. One client, reused across calls.
type AIService struct {
	Client llms.Model
}

// NewAIService initializes the Gemini client from GEMINI_API_KEY.
func NewAIService(ctx context.Context) (*AIService, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &AIService{Client: llm}, nil
}

const matchPrompt = `You are a job matching assistant for a job board.
Given a seeker's search request and the available listings, select the listings
that genuinely match what the seeker asked for.

### INSTRUCTIONS:
1. Consider title, description, location requirement, experience level and wage.
2. Return at most %d listings, best matches first.
3. Only include listings that actually fit; an empty list is a valid answer.
4. Output valid JSON only. No markdown fences, no commentary.

### OUTPUT SCHEMA:
{"jobIds": ["listing-id", "..."]}

### SEARCH REQUEST:
%s

### LISTINGS (JSON):
%s
`

// MatchJobListings asks the model to rank the given listings against a
// seeker query and returns at most maxJobs listing ids, best first. Ids the
// model invents are dropped.
func (s *AIService) MatchJobListings(ctx context.Context, query string, listings []models.JobListing, maxJobs int) ([]string, error) {
	if len(listings) == 0 {
		return nil, nil
	}

	type candidate struct {
		ID                  string `json:"id"`
		Title               string `json:"title"`
		Description         string `json:"description"`
		LocationRequirement string `json:"location_requirement"`
		ExperienceLevel     string `json:"experience_level"`
		Type                string `json:"type"`
		Wage                *int   `json:"wage,omitempty"`
	}

	known := make(map[string]bool, len(listings))
	candidates := make([]candidate, 0, len(listings))
	for _, l := range listings {
		known[l.ID] = true
		desc := l.Description
		if len(desc) > 2000 {
			desc = desc[:2000]
		}
		candidates = append(candidates, candidate{
			ID:                  l.ID,
			Title:               l.Title,
			Description:         desc,
			LocationRequirement: string(l.LocationRequirement),
			ExperienceLevel:     string(l.ExperienceLevel),
			Type:                string(l.Type),
			Wage:                l.Wage,
		})
	}

	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("marshal listings: %w", err)
	}

	prompt := fmt.Sprintf(matchPrompt, maxJobs, query, payload)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai matching: %w", err)
	}

	ids, err := parseMatchedIDs(resp)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, maxJobs)
	for _, id := range ids {
		if !known[id] {
			continue
		}
		out = append(out, id)
		if len(out) == maxJobs {
			break
		}
	}
	return out, nil
}

const summarizePrompt = `You are an expert resume reviewer for a job board.
Summarize the resume below for employers scanning applications.

### INSTRUCTIONS:
1. Write markdown: a short headline, then bullet points for skills,
   experience and notable achievements.
2. Stay factual; do not invent anything that is not in the resume.
3. Keep it under 200 words.

### RESUME:
%s
`

// SummarizeResume produces the markdown summary stored on the resume row.
func (s *AIService) SummarizeResume(ctx context.Context, resumeText string) (string, error) {
	if len(resumeText) > 20000 {
		resumeText = resumeText[:20000]
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(summarizePrompt, resumeText))
	if err != nil {
		return "", fmt.Errorf("ai summary: %w", err)
	}
	return strings.TrimSpace(resp), nil
}

const rankPrompt = `You are screening applications for a job listing.
Rate how well the applicant fits the listing on a 1-5 scale
(1 = poor fit, 5 = excellent fit).

### INSTRUCTIONS:
1. Judge only from the material below.
2. Output valid JSON only: {"rating": n}
3. If there is not enough information to judge, use {"rating": null}.

### LISTING:
Title: %s
Description: %s
Experience level: %s

### APPLICANT RESUME SUMMARY:
%s

### COVER LETTER:
%s
`

// RankApplication rates an application 1-5 against its listing. Returns 0
// when the model declines to rate.
func (s *AIService) RankApplication(ctx context.Context, listing *models.JobListing, resumeSummary, coverLetter string) (int, error) {
	prompt := fmt.Sprintf(rankPrompt,
		listing.Title, listing.Description, listing.ExperienceLevel,
		resumeSummary, coverLetter,
	)

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return 0, fmt.Errorf("ai ranking: %w", err)
	}

	var result struct {
		Rating *int `json:"rating"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &result); err != nil {
		log.Printf("[ai] unparseable rating response: %q", resp)
		return 0, fmt.Errorf("parse rating: %w", err)
	}
	if result.Rating == nil {
		return 0, nil
	}
	return *result.Rating, nil
}

func parseMatchedIDs(resp string) ([]string, error) {
	var result struct {
		JobIDs []string `json:"jobIds"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &result); err != nil {
		return nil, fmt.Errorf("parse match response: %w", err)
	}
	return result.JobIDs, nil
}

// stripCodeFence removes a ```json ... ``` wrapper the model sometimes adds
// despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
