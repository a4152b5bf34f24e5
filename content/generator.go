package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/nutriwise/utils"
	"github.com/rs/zerolog/log"
)

// TextGenerator is the LLM behind generated content.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

var errNoGenerator = errors.New("text generator is not configured")

// Service serves generated nutrition content, degrading to canned responses
// whenever generation or parsing fails.
type Service struct {
	gen     TextGenerator
	timeout time.Duration
	plans   *PlanArchive
	now     func() time.Time
	pick    func(n int) int
}

// NewService builds the content service. gen may be nil, in which case every
// operation serves its canned fallback. plans may be nil to disable archiving.
func NewService(gen TextGenerator, timeout time.Duration, plans *PlanArchive) *Service {
	return &Service{
		gen:     gen,
		timeout: timeout,
		plans:   plans,
		now:     time.Now,
		pick:    randomIndex,
	}
}

func (s *Service) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	if s.gen == nil {
		return "", errNoGenerator
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	text, err := s.gen.GenerateText(ctx, prompt, temperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// CleanJSON strips markdown code fences around a model response and cuts a
// truncated response after its last closing brace.
func CleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.ReplaceAll(s, "```", "")
		s = strings.TrimSpace(s)
	}
	if strings.Count(s, "{") > strings.Count(s, "}") {
		if i := strings.LastIndex(s, "}"); i > 0 {
			s = s[:i+1]
		}
	}
	return s
}

// decodeObject parses a cleaned model response into a JSON object and checks
// that every required key is present.
func decodeObject(raw string, required ...string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if obj == nil {
		return nil, errors.New("response is not an object")
	}
	for _, key := range required {
		if _, ok := obj[key]; !ok {
			return nil, fmt.Errorf("missing required field %q", key)
		}
	}
	return obj, nil
}

func fallback(kind string, err error) {
	utils.ContentFallbacksTotal.WithLabelValues(kind).Inc()
	log.Warn().Err(err).Str("kind", kind).Msg("Serving fallback content")
}
