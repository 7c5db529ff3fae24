package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/vho0811/blogpost-backend/errs"
)

// DefaultDesignTimeout bounds a single generation attempt.
const DefaultDesignTimeout = 60 * time.Second

// retryBackoff is the pause before the single retry of a failed dispatch.
const retryBackoff = 2 * time.Second

const designSystemPrompt = `You are an expert web designer. You will receive a complete standalone HTML document that uses placeholder tokens such as {TITLE}, {SUBTITLE}, {CONTENT}, {AUTHOR_NAME}, {AUTHOR_AVATAR}, {PUBLISH_DATE}, {READ_TIME} and {CATEGORY}.

Redesign ONLY the visual presentation: restructure layout markup and rewrite the CSS in the embedded <style> block to match the requested style. You MUST keep every placeholder token exactly as written. NEVER replace a token with literal text, sample content or lorem ipsum, and never remove one. Re-emit a complete document from <!DOCTYPE html> to </html> with no commentary before or after it.`

// DesignStore persists an accepted design document.
type DesignStore interface {
	ApplyDesign(id uuid.UUID, html string, settings datatypes.JSON, at time.Time) error
}

// DesignResult reports an accepted redesign.
type DesignResult struct {
	Document     string        `json:"-"`
	Outcome      PromptOutcome `json:"promptOutcome"`
	DesignedAt   time.Time     `json:"designedAt"`
	AttemptsUsed int           `json:"attemptsUsed"`
}

// Designer orchestrates the AI redesign cycle: prompt enhancement, bounded
// dispatch to the generation service with a single retry, response
// sanitization and shape validation, and persistence. A failure at any stage
// leaves the stored document untouched.
type Designer struct {
	generator DesignGenerator
	store     DesignStore
	bus       *EventBus
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewDesigner(generator DesignGenerator, store DesignStore, bus *EventBus, timeout time.Duration) *Designer {
	if timeout <= 0 {
		timeout = DefaultDesignTimeout
	}
	return &Designer{
		generator: generator,
		store:     store,
		bus:       bus,
		timeout:   timeout,
		logger:    log.With().Str("serviceName", "designer").Logger(),
	}
}

// Redesign restyles the post's stored design document according to the
// user's style prompt and persists the accepted result. The stored template
// itself is dispatched, never a re-derivation from raw content.
func (d *Designer) Redesign(ctx context.Context, postID uuid.UUID, storedHTML, themePrompt string) (*DesignResult, error) {
	if strings.TrimSpace(storedHTML) == "" {
		return nil, errs.NewInternalError("post has no stored design document")
	}

	// A stored template with missing tokens is broken data; refuse to send
	// it out for restyling.
	if err := ValidateTokens(storedHTML); err != nil {
		return nil, errs.NewInternalErrorWithCause("stored design document is invalid", err)
	}

	enhanced, outcome := EnhancePrompt(themePrompt)
	d.logger.Info().
		Str("blogPostId", postID.String()).
		Str("promptOutcome", string(outcome)).
		Msg("Dispatching design generation")

	userPrompt := fmt.Sprintf("Requested style: %s\n\nCurrent document:\n\n%s", enhanced, storedHTML)

	raw, attempts, err := d.dispatch(ctx, userPrompt)
	if err != nil {
		d.publish(EventDesignFailed, postID, err.Error())
		return nil, err
	}

	document, ok := ExtractHTMLDocument(raw)
	if !ok {
		d.publish(EventDesignFailed, postID, "model output contained no HTML document")
		return nil, errs.NewUnusableGenerationError("no complete HTML document found in model output")
	}

	if missing := MissingTokens(document); len(missing) > 0 {
		d.publish(EventDesignFailed, postID, "model output dropped placeholder tokens")
		return nil, errs.NewUnusableGenerationError(
			fmt.Sprintf("generated document is missing placeholder tokens: %s", strings.Join(missing, ", ")))
	}

	designedAt := time.Now().UTC()
	settings, err := json.Marshal(map[string]string{
		"themePrompt":   strings.TrimSpace(themePrompt),
		"appliedPrompt": enhanced,
		"promptOutcome": string(outcome),
	})
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to encode design settings", err)
	}

	if err := d.store.ApplyDesign(postID, document, datatypes.JSON(settings), designedAt); err != nil {
		return nil, errs.NewDatabaseError("apply design to", "blog_post", err)
	}

	d.publish(EventDesignCompleted, postID, string(outcome))

	return &DesignResult{
		Document:     document,
		Outcome:      outcome,
		DesignedAt:   designedAt,
		AttemptsUsed: attempts,
	}, nil
}

// dispatch performs the blocking generation call with a per-attempt timeout
// and exactly one retry after a short backoff. The call is idempotent
// upstream, so retrying a timed-out or failed attempt is safe.
func (d *Designer) dispatch(ctx context.Context, userPrompt string) (string, int, error) {
	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
		raw, err := d.generator.GenerateDesign(attemptCtx, designSystemPrompt, userPrompt)
		cancel()

		if err == nil {
			return raw, attempt, nil
		}
		lastErr = err

		// The caller walked away; nothing to retry for.
		if ctx.Err() != nil {
			return "", attempt, errs.NewGenerationTimeoutError(d.timeout)
		}

		d.logger.Warn().Err(err).Int("attempt", attempt).Msg("Design generation attempt failed")

		if attempt == 1 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return "", attempt, errs.NewGenerationTimeoutError(d.timeout)
			}
		}
	}

	if errors.Is(lastErr, context.DeadlineExceeded) {
		return "", 2, errs.NewGenerationTimeoutError(d.timeout)
	}
	return "", 2, errs.NewServiceUnavailableError("design generation service", lastErr)
}

func (d *Designer) publish(eventType EventType, postID uuid.UUID, detail string) {
	if d.bus == nil {
		return
	}
	d.bus.Publish(Event{Type: eventType, BlogPostID: postID, Detail: detail, At: time.Now().UTC()})
}

// ExtractHTMLDocument extracts the substring bounded by the first
// "<!DOCTYPE html" and the last "</html>" (case-insensitive), discarding any
// conversational wrapper text the model may emit. The second return value is
// false when no well-formed document span exists.
func ExtractHTMLDocument(raw string) (string, bool) {
	lowered := strings.ToLower(raw)

	start := strings.Index(lowered, "<!doctype html")
	if start < 0 {
		return "", false
	}

	end := strings.LastIndex(lowered, "</html>")
	if end < 0 || end < start {
		return "", false
	}

	return raw[start : end+len("</html>")], true
}
