package routing

import (
	"fmt"
	"strings"
)

// Identifier is a registry key: a provider and one of its models.
type Identifier struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// ParseIdentifier splits "provider/model". Anything else is ErrDataIntegrity.
func ParseIdentifier(name string) (Identifier, error) {
	provider, model, ok := strings.Cut(name, "/")
	if !ok || provider == "" || model == "" || strings.Contains(model, "/") {
		return Identifier{}, fmt.Errorf("%w: %q", ErrDataIntegrity, name)
	}
	return Identifier{Provider: provider, Model: model}, nil
}

func (id Identifier) String() string {
	return id.Provider + "/" + id.Model
}

// ModelSegment returns the part after the last "/", or name itself when it is a bare model.
func ModelSegment(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Route is a validated (provider, model) pair. Resolver only returns routes present in the registry.
type Route Identifier

func (r Route) String() string {
	return Identifier(r).String()
}
