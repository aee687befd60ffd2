// Package recommend produces menu suggestions and marketing copy from a
// generative text backend. Every call degrades to a fixed fallback so callers
// never see an error.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const (
	restaurantName = "Shivam Handi Biryani"
	location       = "Janakpur, Nepal"
	restaurant     = restaurantName + " in " + location
)

// Fallbacks returned when the backend is unavailable.
var (
	FallbackRecommendations = []string{"Masala Chiya", "Kheer", "Sweet Lassi"}
	FallbackDescription     = "Authentic taste crafted with love and fresh ingredients."
	FallbackAssist          = "Our chef recommends trying our signature Chicken Handi Biryani!"
)

// Replies used when the backend answers with empty text.
const (
	emptyDescription = "Delicious freshly prepared dish with authentic Nepali spices."
	emptyAssist      = "Our Chicken Biryani is a great choice!"
)

var errNoBackend = errors.New("recommend: no backend configured")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service wraps a Generator with a timeout, a circuit breaker and fallbacks.
// It is safe for concurrent use.
type Service struct {
	gen     Generator
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  zerolog.Logger
}

// Options configures a Service.
type Options struct {
	// Timeout bounds a single backend call.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// Cooldown is how long the breaker stays open before probing again.
	Cooldown time.Duration
}

// New creates a Service. A nil gen yields a fallback-only service.
func New(gen Generator, opts Options, logger zerolog.Logger) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 3
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 30 * time.Second
	}

	log := logger.With().Str("component", "recommend").Logger()

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Timeout:     opts.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &Service{
		gen:     gen,
		breaker: breaker,
		timeout: opts.Timeout,
		logger:  log,
	}
}

// Enabled reports whether a backend is configured.
func (s *Service) Enabled() bool {
	return s.gen != nil
}

// Recommend suggests pairings for the items in the cart.
func (s *Service) Recommend(ctx context.Context, items []string) []string {
	prompt := recommendPrompt(items)

	text, err := s.generate(ctx, "recommend", prompt)
	if err != nil {
		return fallbackList()
	}

	suggestions := splitNames(text)
	if len(suggestions) == 0 {
		return fallbackList()
	}
	return suggestions
}

func recommendPrompt(items []string) string {
	return fmt.Sprintf("Based on a customer ordering %s from %s restaurant in %s, suggest 3 perfect beverage or dessert pairings "+
		"that complement the flavors. Consider Nepali drinks like Masala Chiya, Lassi, and traditional desserts. "+
		"Return only the item names separated by commas, no explanation.", strings.Join(items, ", "), restaurantName, location)
}

// Describe writes a one-sentence description for a menu item.
func (s *Service) Describe(ctx context.Context, name, category string) string {
	prompt := fmt.Sprintf("Write a short, appetizing, and poetic one-sentence description (15-20 words) for a %s item "+
		"named %q from %s. Highlight authentic Nepali spices, fresh ingredients, and local flavors. "+
		"Make it mouth-watering and evocative.", category, name, restaurant)

	text, err := s.generate(ctx, "describe", prompt)
	if err != nil {
		return FallbackDescription
	}
	if text == "" {
		return emptyDescription
	}
	return text
}

// Assist recommends a dish for the customer's taste, budget and occasion.
func (s *Service) Assist(ctx context.Context, preferences, budget, occasion string) string {
	prompt := fmt.Sprintf("As a helpful menu assistant for %s, recommend the best dish(es) for someone who likes %s. "+
		"Budget is around %s. Occasion: %s. Give a brief, friendly recommendation (1-2 sentences) with the dish name.",
		restaurant, preferences, budget, occasion)

	text, err := s.generate(ctx, "assist", prompt)
	if err != nil {
		return FallbackAssist
	}
	if text == "" {
		return emptyAssist
	}
	return text
}

func (s *Service) generate(ctx context.Context, op, prompt string) (string, error) {
	if s.gen == nil {
		return "", errNoBackend
	}

	start := time.Now()
	result, err := s.breaker.Execute(func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.gen.Generate(callCtx, prompt)
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("op", op).
			Dur("duration", time.Since(start)).
			Msg("generation failed, using fallback")
		return "", err
	}

	s.logger.Debug().Str("op", op).Dur("duration", time.Since(start)).Msg("generation succeeded")
	return strings.TrimSpace(result.(string)), nil
}

func splitNames(text string) []string {
	var names []string
	for _, part := range strings.Split(text, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func fallbackList() []string {
	out := make([]string, len(FallbackRecommendations))
	copy(out, FallbackRecommendations)
	return out
}
