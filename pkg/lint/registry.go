package lint

import (
	"cmp"
	"maps"
	"slices"
	"sync"
)

// Registry holds the rules known to an engine. Rules resolve by ID first,
// then by name, then by alias.
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]Rule
	names   map[string]string
	aliases map[string]string
}

func NewRegistry() *Registry {
	return &Registry{rules: map[string]Rule{}, names: map[string]string{}, aliases: map[string]string{}}
}

// Register adds rule, replacing any rule with the same ID. Aliases of the
// replaced rule keep pointing at the ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.rules[rule.ID()]; ok {
		delete(r.names, old.Name())
	}
	r.rules[rule.ID()] = rule
	r.names[rule.Name()] = rule.ID()
}

// RegisterAlias makes alias resolve to ruleID. The rule need not be
// registered yet. Aliases that collide with a rule ID are ignored.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.rules[alias]; !taken {
		r.aliases[alias] = ruleID
	}
}

// Resolve returns the canonical ID and rule for an ID, name, or alias.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := key
	if _, ok := r.rules[id]; !ok {
		if byName, ok := r.names[key]; ok {
			id = byName
		} else {
			id = r.aliases[key]
		}
	}
	rule, ok := r.rules[id]
	if !ok {
		return "", nil, false
	}
	return id, rule, true
}

func (r *Registry) Lookup(key string) (Rule, bool) {
	_, rule, ok := r.Resolve(key)
	return rule, ok
}

// GetByID matches IDs only.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// Aliases returns the sorted aliases pointing at ruleID.
func (r *Registry) Aliases(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for alias, id := range r.aliases {
		if id == ruleID {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// Rules returns every registered rule ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.SortedFunc(maps.Values(r.rules), func(a, b Rule) int { return cmp.Compare(a.ID(), b.ID()) })
}

func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.rules))
}

// DefaultRegistry holds the built-in rules; the rules package fills it
// from init.
//
//nolint:gochecknoglobals // rules register themselves at init
var DefaultRegistry = NewRegistry()
