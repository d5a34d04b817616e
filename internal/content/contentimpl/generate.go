package contentimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/orgball2608/social-publisher/internal/content"
	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/pkg/formatter"
	"github.com/sony/gobreaker"
)

const promptTemplate = `You are a social media copywriter. Write a short engaging caption for each
of the following platforms about: %s

Platforms: %s

Respond with exactly one line per platform, in the form
PLATFORM: caption text
followed by a final line
HASHTAGS: #tag1 #tag2 #tag3 #tag4 #tag5

Do not include any other text.`

func (g *GeminiImpl) Generate(ctx context.Context, prompt string, platforms []domain.Platform) (*domain.GeneratedContent, error) {
	if !g.limiter.Allow() {
		return nil, content.ErrUnavailable
	}

	names := make([]string, 0, len(platforms))
	for _, platform := range platforms {
		names = append(names, strings.ToUpper(string(platform)))
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.Model.GenerateContent(ctx, genai.Text(fmt.Sprintf(promptTemplate, prompt, strings.Join(names, ", "))))
		if err != nil {
			return nil, err
		}
		return responseText(resp), nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, content.ErrUnavailable
		}
		g.Logger.Error("Content generation failed", "error", err)
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	generated := parseGenerated(result.(string), platforms)
	if len(generated.Captions) == 0 {
		return nil, fmt.Errorf("model returned no usable captions")
	}
	return generated, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

// parseGenerated reads the line-oriented model output. Lines that do not
// match a requested platform or the HASHTAGS marker are ignored, which keeps
// the parser tolerant of the model adding stray prose.
func parseGenerated(raw string, platforms []domain.Platform) *domain.GeneratedContent {
	generated := &domain.GeneratedContent{
		Captions: make(map[domain.Platform]string, len(platforms)),
	}

	byName := make(map[string]domain.Platform, len(platforms))
	for _, platform := range platforms {
		byName[strings.ToUpper(string(platform))] = platform
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if key == "HASHTAGS" {
			generated.Hashtags = formatter.NormalizeHashtags(strings.Fields(value))
			continue
		}
		if platform, ok := byName[key]; ok {
			generated.Captions[platform] = value
		}
	}
	return generated
}
