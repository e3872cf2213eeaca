// Package featureflags holds the operator switches that pause pipeline stages.
package featureflags

import (
	"sort"
	"strings"
)

// Pipeline stages that can be switched off.
const (
	Scrape  = "scrape"
	Analyze = "analyze"
	Compose = "compose"
	Publish = "publish"
)

// Stages lists every switchable stage.
var Stages = []string{Scrape, Analyze, Compose, Publish}

// Manager evaluates stage switches defined in a simple key=value list.
// Example: "publish=off,compose=on". Stages not named are on.
type Manager struct {
	flags map[string]bool
}

// NewManager creates a manager from a comma-separated config string.
// Malformed pairs and unrecognized values are ignored.
func NewManager(raw string) *Manager {
	out := make(map[string]bool)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalize(parts[0])
		if key == "" {
			continue
		}
		switch normalize(parts[1]) {
		case "on", "true", "1":
			out[key] = true
		case "off", "false", "0":
			out[key] = false
		}
	}

	return &Manager{flags: out}
}

// Enabled reports whether a stage may run. A nil manager enables everything.
func (m *Manager) Enabled(name string) bool {
	if m == nil {
		return true
	}
	on, ok := m.flags[normalize(name)]
	return !ok || on
}

// Disabled returns the sorted names of switched-off stages.
func (m *Manager) Disabled() []string {
	out := []string{}
	if m == nil {
		return out
	}
	for name, on := range m.flags {
		if !on {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot returns the evaluated switch for every known stage plus any
// extra names that were configured.
func (m *Manager) Snapshot() map[string]bool {
	out := make(map[string]bool, len(Stages))
	for _, s := range Stages {
		out[s] = m.Enabled(s)
	}
	if m != nil {
		for name := range m.flags {
			out[name] = m.Enabled(name)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
