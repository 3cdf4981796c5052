package routing

import (
	"context"
	"regexp"
	"strings"

	"github.com/nulzo/prompt-router/internal/store"
	"go.uber.org/zap"
)

// Redirect is the outcome of a matching policy. Provider is empty when the
// redirect model could not be found in the registry.
type Redirect struct {
	PolicyID int64
	Model    string
	Provider string
}

// Matcher evaluates prompts against the redirection policies of a source model.
type Matcher struct {
	policies store.PolicyRepository
	registry *Registry
	logger   *zap.Logger
}

func NewMatcher(policies store.PolicyRepository, registry *Registry, logger *zap.Logger) *Matcher {
	return &Matcher{
		policies: policies,
		registry: registry,
		logger:   logger,
	}
}

// Match returns the redirect of the first policy for sourceModel whose pattern
// occurs anywhere in prompt. Policies are tried in stored order, not by priority.
// A nil Redirect means nothing matched.
func (m *Matcher) Match(ctx context.Context, sourceModel, prompt string) (*Redirect, error) {
	policies, err := m.policies.ListForModel(ctx, sourceModel)
	if err != nil {
		return nil, Unavailable("list routing policies", err)
	}

	m.logger.Debug("Retrieved routing policies",
		zap.String("model", sourceModel),
		zap.Int("count", len(policies)),
	)

	for _, p := range policies {
		re, err := regexp.Compile(p.RegexPattern)
		if err != nil {
			m.logger.Warn("Skipping routing policy with invalid pattern",
				zap.Int64("policy_id", p.ID),
				zap.String("pattern", p.RegexPattern),
				zap.Error(err),
			)
			continue
		}

		if !re.MatchString(prompt) {
			continue
		}

		redirect, err := m.resolveRedirect(ctx, p.RedirectModel)
		if err != nil {
			return nil, err
		}
		redirect.PolicyID = p.ID

		m.logger.Debug("Prompt matched routing policy",
			zap.Int64("policy_id", p.ID),
			zap.String("pattern", p.RegexPattern),
			zap.String("redirect_model", redirect.Model),
			zap.String("redirect_provider", redirect.Provider),
		)
		return redirect, nil
	}

	return nil, nil
}

// resolveRedirect finds a provider for a policy's redirect target. Composite
// "provider/model" targets are looked up exactly first; bare names (and composites
// that are not registered) fall back to a substring scan over model segments.
func (m *Matcher) resolveRedirect(ctx context.Context, target string) (*Redirect, error) {
	segment := ModelSegment(target)

	if strings.Contains(target, "/") {
		if id, err := ParseIdentifier(target); err == nil {
			ok, err := m.registry.Contains(ctx, id)
			if err != nil {
				return nil, err
			}
			if ok {
				return &Redirect{Model: id.Model, Provider: id.Provider}, nil
			}
		}
	}

	id, ok, err := m.registry.FirstContaining(ctx, segment)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Redirect{Model: segment}, nil
	}
	return &Redirect{Model: segment, Provider: id.Provider}, nil
}
