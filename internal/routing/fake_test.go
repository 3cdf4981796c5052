package routing

import (
	"context"
	"errors"
	"strings"

	"github.com/nulzo/prompt-router/internal/store"
	"github.com/nulzo/prompt-router/internal/store/model"
)

var errStoreDown = errors.New("connection refused")

type fakeModels struct {
	names []string
	err   error
}

func (f *fakeModels) List(ctx context.Context) ([]model.Model, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Model, 0, len(f.names))
	for i, n := range f.names {
		out = append(out, model.Model{ID: int64(i + 1), Name: n})
	}
	return out, nil
}

func (f *fakeModels) Exists(ctx context.Context, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, n := range f.names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeModels) Sync(ctx context.Context, names []string) error {
	f.names = append(f.names, names...)
	return nil
}

type fakePolicies struct {
	rows []model.RoutingPolicy
	err  error
}

func (f *fakePolicies) add(source, pattern, redirect string) int64 {
	id := int64(len(f.rows) + 1)
	f.rows = append(f.rows, model.RoutingPolicy{ID: id, ModelName: source, RegexPattern: pattern, RedirectModel: redirect})
	return id
}

func (f *fakePolicies) List(ctx context.Context) ([]model.RoutingPolicy, error) {
	return f.rows, f.err
}

func (f *fakePolicies) ListForModel(ctx context.Context, name string) ([]model.RoutingPolicy, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.RoutingPolicy
	for _, p := range f.rows {
		if p.ModelName == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePolicies) Create(ctx context.Context, p *model.RoutingPolicy) (int64, error) {
	p.ID = f.add(p.ModelName, p.RegexPattern, p.RedirectModel)
	return p.ID, nil
}

func (f *fakePolicies) Delete(ctx context.Context, id int64) error {
	for i, p := range f.rows {
		if p.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNoRows
}

func (f *fakePolicies) RedirectModels(ctx context.Context) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, p := range f.rows {
		if !seen[p.RedirectModel] {
			seen[p.RedirectModel] = true
			out = append(out, p.RedirectModel)
		}
	}
	return out, nil
}

func defaultRegistry() *fakeModels {
	return &fakeModels{names: []string{
		"openai/gpt-3.5",
		"openai/gpt-4",
		"anthropic/claude-v1",
		"gemini/gemini-alpha",
	}}
}

func registered(m *fakeModels) []Identifier {
	var ids []Identifier
	for _, n := range m.names {
		p, md, _ := strings.Cut(n, "/")
		ids = append(ids, Identifier{Provider: p, Model: md})
	}
	return ids
}
