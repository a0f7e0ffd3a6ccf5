package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"portfolio-backend/internal/shared/telemetry"
)

const (
	maxAttempts    = 3
	retryBaseDelay = 2 * time.Second
)

// Credential authorizes a call to the generation service. UserSupplied
// marks keys the user entered themselves, so credential failures can be
// surfaced differently from a broken system default.
type Credential struct {
	Key          string
	UserSupplied bool
}

// TextGenerator abstracts the generative-text service. Implementations
// return the raw response text for a combined instruction+context prompt.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, credential, prompt string) (string, error)
}

// Generator turns raw resume text into a validated Record by delegating to
// a TextGenerator and repairing its output into strict JSON.
type Generator struct {
	Text TextGenerator

	// Sleep is swappable for deterministic retry tests.
	Sleep func(time.Duration)
}

// NewGenerator constructs a Generator over the given text service.
func NewGenerator(text TextGenerator) *Generator {
	return &Generator{Text: text, Sleep: time.Sleep}
}

// Generate produces a Record from resume text. Callers must reject empty
// text before calling; see Pipeline.Run.
//
// Rate-limit signals are retried up to 3 total attempts with exponential
// backoff (2s, 4s). Any other service failure propagates immediately.
func (g *Generator) Generate(ctx context.Context, text string, cred Credential) (Record, error) {
	if strings.TrimSpace(cred.Key) == "" {
		return Record{}, &CredentialError{UserSupplied: cred.UserSupplied}
	}

	prompt := buildPrompt(text)
	sleep := g.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var raw string
	var err error
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		raw, err = g.Text.GenerateJSON(ctx, cred.Key, prompt)
		if err == nil {
			break
		}
		if !isRateLimited(err) {
			if isCredentialRejected(err) {
				return Record{}, &CredentialError{UserSupplied: cred.UserSupplied, Err: err}
			}
			return Record{}, &UpstreamError{Err: err}
		}
		if attempt >= maxAttempts {
			return Record{}, &QuotaError{Attempts: attempt, Err: err}
		}
		telemetry.Warn("generate.rate_limited", map[string]any{
			"attempt": attempt,
			"delay_s": delay.Seconds(),
			"api_key": maskKey(cred.Key),
		})
		sleep(delay)
		delay *= 2
	}

	return parseRecord(raw)
}

// parseRecord trims the response, strips an optional markdown code fence,
// and decodes the remainder as strict, schema-checked JSON.
func parseRecord(raw string) (Record, error) {
	cleaned := cleanJSONBlock(raw)

	if err := validateRecordJSON(cleaned); err != nil {
		return Record{}, &ParseError{Raw: raw, Err: err}
	}

	var rec Record
	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return Record{}, &ParseError{Raw: raw, Err: err}
	}
	rec.Normalize()
	return rec, nil
}

// cleanJSONBlock removes markdown code fence wrappers, including an
// optional leading language tag, from a service response.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429
	}
	return strings.Contains(err.Error(), "429")
}

func isCredentialRejected(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 401 || apiErr.Code == 403 {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "api key not valid") || strings.Contains(msg, "api_key_invalid")
}

// maskKey renders a credential safe for diagnostics: first and last four
// characters only.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
