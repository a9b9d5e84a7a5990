// Package marketing composes supplier outreach messages. When the
// supplier lists a website, the page text is fetched and fed to the model
// so the message can reference something concrete about the supplier.
package marketing

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/haitham/binaa-planner/internal/fetch"
	"github.com/haitham/binaa-planner/internal/llm"
	"github.com/haitham/binaa-planner/internal/prompts"
	"github.com/haitham/binaa-planner/internal/types"
)

// MaxExcerptChars caps the website text sent to the model.
const MaxExcerptChars = 4000

// Fetcher retrieves supplier page text. Satisfied by fetch.CachedFetcher.
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string) (*fetch.CachedResult, error)
}

// Composer generates outreach messages for suppliers.
type Composer struct {
	client  llm.Client
	fetcher Fetcher
}

// NewComposer creates a composer. The fetcher may be nil, in which case
// supplier websites are never consulted.
func NewComposer(client llm.Client, fetcher Fetcher) *Composer {
	return &Composer{client: client, fetcher: fetcher}
}

// ComposeOutreach drafts an outreach message for the supplier about the
// project. A failing website fetch degrades to an ungrounded message
// rather than failing the whole call.
func (c *Composer) ComposeOutreach(ctx context.Context, supplier types.Supplier, project types.Project) (*types.OutreachMessage, error) {
	if supplier.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}

	excerpt, groundedOn := c.websiteExcerpt(ctx, supplier)

	prompt := buildOutreachPrompt(supplier, project, excerpt)

	responseText, err := c.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate outreach message: %w", err)
	}

	message, err := parseOutreach(responseText)
	if err != nil {
		return nil, err
	}
	message.GroundedOn = groundedOn

	return message, nil
}

func (c *Composer) websiteExcerpt(ctx context.Context, supplier types.Supplier) (excerpt, groundedOn string) {
	if c.fetcher == nil || supplier.WebsiteURL == "" {
		return "", ""
	}

	result, err := c.fetcher.Fetch(ctx, supplier.WebsiteURL)
	if err != nil || result.Text == "" {
		return "", ""
	}

	return truncateExcerpt(result.Text), supplier.WebsiteURL
}

// truncateExcerpt caps the text at MaxExcerptChars bytes without splitting
// a rune; supplier pages are frequently Arabic.
func truncateExcerpt(text string) string {
	if len(text) <= MaxExcerptChars {
		return text
	}
	cut := MaxExcerptChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func buildOutreachPrompt(supplier types.Supplier, project types.Project, excerpt string) string {
	template := prompts.MustGet("marketing.json", "compose-outreach")
	return prompts.Format(template, map[string]string{
		"SupplierName":     supplier.Name,
		"SupplierCategory": supplier.Category,
		"SupplierCity":     supplier.City,
		"ProjectName":      project.Name,
		"ProjectLocation":  project.Location,
		"ProjectType":      string(project.ProjectType),
		"WebsiteExcerpt":   excerpt,
	})
}

func parseOutreach(jsonText string) (*types.OutreachMessage, error) {
	jsonText = llm.CleanJSONBlock(jsonText)

	var message types.OutreachMessage
	if err := json.Unmarshal([]byte(jsonText), &message); err != nil {
		return nil, fmt.Errorf("failed to parse outreach JSON: %w", err)
	}

	if message.Subject == "" || message.Body == "" {
		return nil, fmt.Errorf("outreach message missing subject or body")
	}

	return &message, nil
}
