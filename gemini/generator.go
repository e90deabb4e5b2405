// Package gemini implements semantic candidate generation using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/offerscan"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxCandidates bounds how many entries a single response contributes.
// Anything past this is noise from a model that ignored the prompt.
const maxCandidates = 50

// Ensure Generator implements offerscan.CandidateGenerator at compile time.
var _ offerscan.CandidateGenerator = (*Generator)(nil)

// Generator implements offerscan.CandidateGenerator using Google Gemini.
type Generator struct {
	client *genai.Client
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client) *Generator {
	return &Generator{client: client}
}

// Generate identifies products and services in site content.
func (g *Generator) Generate(ctx context.Context, req offerscan.GenerateRequest) ([]offerscan.Candidate, error) {
	if req.Corpus == "" {
		return nil, offerscan.Errorf(offerscan.EINVALID, "corpus required")
	}

	prompt := BuildUserPrompt(req.BusinessName, req.Corpus)
	config := BuildConfig()

	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, offerscan.Errorf(offerscan.EINTERNAL, "gemini returned nil result")
	}

	return ParseCandidates(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an analyst cataloging a business's products and services from its website content. " +
					"Identify every distinct product, service, plan, or package the business sells or provides, " +
					"including offerings only implied by testimonials or case studies. " +
					"Respond with a JSON array only. Each element must have the fields " +
					`"name" (short offering name), "description" (one sentence), ` +
					`"category" (e.g. "core", "addon", "tier"), and "confidence" (integer 0-100). ` +
					"Do not include navigation labels, calls to action, job titles, or marketing slogans. " +
					"If no offerings are present, respond with an empty JSON array.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the site content.
func BuildUserPrompt(businessName, corpus string) string {
	var sb strings.Builder
	if businessName != "" {
		fmt.Fprintf(&sb, "Business: %s\n\n", businessName)
	}
	sb.WriteString("<website-content>\n")
	sb.WriteString(corpus)
	sb.WriteString("\n</website-content>\n\n")
	sb.WriteString("List the products and services this business offers as a JSON array.")
	return sb.String()
}

// candidatePayload mirrors the JSON shape the model is instructed to
// return. Confidence is a json.Number so both 85 and "85" parse.
type candidatePayload struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Confidence  json.Number `json:"confidence"`
}

// ParseCandidates extracts candidates from a model response. Models wrap
// JSON in fenced code blocks and prose despite instructions, so the
// payload is located inside the text rather than unmarshaled directly.
// A response with no parsable JSON array returns an EINTERNAL error;
// callers treat that as "no candidates."
func ParseCandidates(text string) ([]offerscan.Candidate, error) {
	payload := extractJSONArray(text)
	if payload == "" {
		return nil, offerscan.Errorf(offerscan.EINTERNAL, "no JSON array in model response")
	}

	var raw []candidatePayload
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, offerscan.Errorf(offerscan.EINTERNAL, "malformed model response: %v", err)
	}

	if len(raw) > maxCandidates {
		raw = raw[:maxCandidates]
	}

	candidates := make([]offerscan.Candidate, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		confidence, err := r.Confidence.Float64()
		if err != nil {
			confidence = 0
		}
		candidates = append(candidates, offerscan.Candidate{
			Name:        name,
			Description: strings.TrimSpace(r.Description),
			Category:    strings.ToLower(strings.TrimSpace(r.Category)),
			Source:      offerscan.StrategySemantic,
			Confidence:  confidence,
		})
	}

	return candidates, nil
}

// extractJSONArray returns the outermost JSON array in text, or "".
// Fenced code blocks are stripped first so a fence inside a string
// value cannot truncate the payload.
func extractJSONArray(text string) string {
	text = stripFences(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

// stripFences removes markdown code fences from text, keeping their
// contents.
func stripFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
