package testconfig

import (
	"context"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/werf/k8s-cloud-tests-go/api/v1alpha1"
)

// PlaceholderReplacements maps placeholder tokens to their replacers.
// Iteration follows the order in which placeholders were first declared.
// A later declaration of the same placeholder replaces the replacer but keeps its position.
type PlaceholderReplacements struct {
	m *linkedhashmap.Map
}

func newPlaceholderReplacements() *PlaceholderReplacements {
	return &PlaceholderReplacements{m: linkedhashmap.New()}
}

func (p *PlaceholderReplacements) put(placeholder string, r v1alpha1.ConfigPlaceholderReplacer) {
	p.m.Put(placeholder, r)
}

// Get returns the replacer registered for placeholder.
func (p *PlaceholderReplacements) Get(placeholder string) (v1alpha1.ConfigPlaceholderReplacer, bool) {
	v, found := p.m.Get(placeholder)
	if !found {
		return nil, false
	}
	return v.(v1alpha1.ConfigPlaceholderReplacer), true
}

// Len returns the number of placeholders.
func (p *PlaceholderReplacements) Len() int {
	return p.m.Size()
}

// Placeholders returns the placeholder tokens in iteration order.
func (p *PlaceholderReplacements) Placeholders() []string {
	keys := p.m.Keys()
	placeholders := make([]string, 0, len(keys))
	for _, k := range keys {
		placeholders = append(placeholders, k.(string))
	}
	return placeholders
}

// Each calls f for every placeholder in iteration order.
func (p *PlaceholderReplacements) Each(f func(placeholder string, r v1alpha1.ConfigPlaceholderReplacer)) {
	p.m.Each(func(k, v interface{}) {
		f(k.(string), v.(v1alpha1.ConfigPlaceholderReplacer))
	})
}

// Map returns a copy of the placeholders as a plain map. Order is lost.
func (p *PlaceholderReplacements) Map() map[string]v1alpha1.ConfigPlaceholderReplacer {
	out := make(map[string]v1alpha1.ConfigPlaceholderReplacer, p.Len())
	p.Each(func(placeholder string, r v1alpha1.ConfigPlaceholderReplacer) {
		out[placeholder] = r
	})
	return out
}

// ReplaceLine runs every replacer whose placeholder occurs in line, in iteration order,
// passing it the placeholder it was registered under.
// Each replacer sees the output of the previous one.
func (p *PlaceholderReplacements) ReplaceLine(ctx context.Context, line string) (string, error) {
	it := p.m.Iterator()
	for it.Next() {
		placeholder := it.Key().(string)
		if !strings.Contains(line, placeholder) {
			continue
		}

		replaced, err := it.Value().(v1alpha1.ConfigPlaceholderReplacer).Replace(ctx, placeholder, line)
		if err != nil {
			return "", fmt.Errorf("failed to replace placeholder %q: %w", placeholder, err)
		}
		line = replaced
	}
	return line, nil
}
