package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	gmail "google.golang.org/api/gmail/v1"

	"jobboard/internal/formatters"
	"jobboard/internal/models"
	"jobboard/internal/store"
)

// DigestStore is the read surface for the notification loops.
type DigestStore interface {
	ListListingsPostedSince(ctx context.Context, since time.Time) ([]models.JobListing, error)
	ListDigestSubscribers(ctx context.Context) ([]store.DigestSubscriber, error)
	ListOrganizationIDs(ctx context.Context) ([]string, error)
	ListApplicationsCreatedSince(ctx context.Context, orgID string, since time.Time) ([]store.NewApplication, error)
	ListOrgDigestRecipients(ctx context.Context, orgID string) ([]store.OrgDigestRecipient, error)
}

// ListingMatcher narrows a digest to a subscriber's saved AI prompt.
// Implemented by AIService; nil sends everything.
type ListingMatcher interface {
	MatchJobListings(ctx context.Context, query string, listings []models.JobListing, maxJobs int) ([]string, error)
}

// DigestService runs the notification emails: new published listings to
// opted-in seekers, new applications to opted-in employer members.
type DigestService struct {
	Store       DigestStore
	GmailClient *gmail.Service
	Matcher     ListingMatcher

	lastRun time.Time
}

func NewDigestService(st DigestStore, gmailSvc *gmail.Service, matcher ListingMatcher) *DigestService {
	return &DigestService{
		Store:       st,
		GmailClient: gmailSvc,
		Matcher:     matcher,
	}
}

// StartWatcher starts the background digest loop. Runs once immediately,
// then on every tick until ctx is cancelled.
func (s *DigestService) StartWatcher(ctx context.Context, interval time.Duration) {
	if s.GmailClient == nil {
		log.Println("Digest watcher disabled (no Gmail client)")
		return
	}

	s.lastRun = time.Now().Add(-interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.runCycle(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runCycle(ctx)
			}
		}
	}()
}

func (s *DigestService) runCycle(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, 5*time.Minute)
	defer cancel()

	since := s.lastRun
	s.lastRun = time.Now()

	log.Println("📧 Digest: starting cycle...")

	if err := s.sendSeekerDigests(ctx, since); err != nil {
		log.Printf("❌ Seeker digest failed: %v", err)
	}
	if err := s.sendEmployerDigests(ctx, since); err != nil {
		log.Printf("❌ Employer digest failed: %v", err)
	}
}

func (s *DigestService) sendSeekerDigests(ctx context.Context, since time.Time) error {
	listings, err := s.Store.ListListingsPostedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("list new listings: %w", err)
	}
	if len(listings) == 0 {
		log.Println("✅ No new listings this cycle.")
		return nil
	}

	subscribers, err := s.Store.ListDigestSubscribers(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	for _, sub := range subscribers {
		selection := listings

		// An AI prompt on the settings row narrows the digest to what the
		// subscriber actually cares about.
		if s.Matcher != nil && sub.AIPrompt != nil && *sub.AIPrompt != "" {
			ids, err := s.Matcher.MatchJobListings(ctx, *sub.AIPrompt, listings, len(listings))
			if err != nil {
				log.Printf("⚠️ Digest AI filter failed for %s, sending unfiltered: %v", sub.UserID, err)
			} else {
				selection = filterListingsByID(listings, ids)
			}
		}

		if len(selection) == 0 {
			continue
		}

		body := renderSeekerDigest(sub.Name, selection)
		subject := fmt.Sprintf("%d new job listings for you", len(selection))
		if err := s.send(ctx, sub.Email, subject, body); err != nil {
			log.Printf("❌ Digest send to %s failed: %v", sub.Email, err)
			continue
		}
		log.Printf("✉️  Sent %d listings to %s", len(selection), sub.Email)
	}
	return nil
}

func (s *DigestService) sendEmployerDigests(ctx context.Context, since time.Time) error {
	orgIDs, err := s.Store.ListOrganizationIDs(ctx)
	if err != nil {
		return fmt.Errorf("list organizations: %w", err)
	}

	for _, orgID := range orgIDs {
		apps, err := s.Store.ListApplicationsCreatedSince(ctx, orgID, since)
		if err != nil {
			log.Printf("❌ New applications for org %s: %v", orgID, err)
			continue
		}
		if len(apps) == 0 {
			continue
		}

		recipients, err := s.Store.ListOrgDigestRecipients(ctx, orgID)
		if err != nil {
			log.Printf("❌ Recipients for org %s: %v", orgID, err)
			continue
		}

		for _, r := range recipients {
			counts := countNewApplications(apps, r.MinimumRating)
			if len(counts) == 0 {
				continue
			}
			body := renderEmployerDigest(counts)
			if err := s.send(ctx, r.Email, "New applications to your job listings", body); err != nil {
				log.Printf("❌ Digest send to %s failed: %v", r.Email, err)
			}
		}
	}
	return nil
}

// countNewApplications folds fresh applications into per-listing counts,
// dropping those below the recipient's rating floor. A nil floor keeps
// everything; with a floor set, unrated applications don't clear it.
func countNewApplications(apps []store.NewApplication, minRating *int) []store.NewApplicationCount {
	var counts []store.NewApplicationCount
	index := make(map[string]int)
	for _, a := range apps {
		if minRating != nil && (a.Rating == nil || *a.Rating < *minRating) {
			continue
		}
		i, ok := index[a.JobListingID]
		if !ok {
			i = len(counts)
			index[a.JobListingID] = i
			counts = append(counts, store.NewApplicationCount{JobListingID: a.JobListingID, Title: a.Title})
		}
		counts[i].Count++
	}
	return counts
}

// send delivers one email through Gmail with the usual retry.
func (s *DigestService) send(ctx context.Context, to, subject, body string) error {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s", to, subject, body)
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString([]byte(raw))}

	return retry(3, 1*time.Second, func() error {
		_, err := s.GmailClient.Users.Messages.Send("me", msg).Context(ctx).Do()
		return err
	})
}

func renderSeekerDigest(name string, listings []models.JobListing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nNew job listings since your last digest:\n\n", name)
	for _, l := range listings {
		details := []string{
			formatters.FormatJobType(l.Type),
			formatters.FormatLocationRequirement(l.LocationRequirement),
		}
		if l.Wage != nil && l.WageInterval != nil {
			details = append(details, formatters.FormatWage(*l.Wage, *l.WageInterval))
		}
		if loc := formatters.FormatJobListingLocation(l.StateAbbreviation, l.City); loc != "None" {
			details = append(details, loc)
		}
		fmt.Fprintf(&b, "- %s at %s (%s)\n", l.Title, l.Organization.Name, strings.Join(details, ", "))
	}
	b.WriteString("\nManage your notification settings any time from your account page.\n")
	return b.String()
}

func renderEmployerDigest(counts []store.NewApplicationCount) string {
	var b strings.Builder
	b.WriteString("New applications since your last digest:\n\n")
	for _, c := range counts {
		fmt.Fprintf(&b, "- %s: %d new\n", c.Title, c.Count)
	}
	b.WriteString("\nReview them from your employer dashboard.\n")
	return b.String()
}

func filterListingsByID(listings []models.JobListing, ids []string) []models.JobListing {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	var out []models.JobListing
	for _, l := range listings {
		if keep[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// retry executes a function with exponential backoff.
func retry(attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		log.Printf("⚠️ API error: %v. Retrying in %v...", err, sleep)
		time.Sleep(sleep)
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
