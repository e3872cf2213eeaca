package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_DefaultsOn(t *testing.T) {
	t.Parallel()

	m := NewManager("")
	for _, s := range Stages {
		assert.True(t, m.Enabled(s), s)
	}

	var nilManager *Manager
	assert.True(t, nilManager.Enabled(Publish))
	assert.Empty(t, nilManager.Disabled())
}

func TestEnabled_BooleanValues(t *testing.T) {
	t.Parallel()

	m := NewManager("scrape=on,publish=off,compose=false,analyze=1")

	assert.True(t, m.Enabled(Scrape))
	assert.True(t, m.Enabled(Analyze))
	assert.False(t, m.Enabled(Publish))
	assert.False(t, m.Enabled(Compose))
	assert.False(t, m.Enabled(" PUBLISH "))
}

func TestParse_IgnoresMalformedPairs(t *testing.T) {
	t.Parallel()

	m := NewManager(" bad ,publish=maybe, =off, compose = OFF ")

	assert.True(t, m.Enabled(Publish))
	assert.False(t, m.Enabled(Compose))
	assert.Equal(t, []string{"compose"}, m.Disabled())
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	snap := NewManager("publish=off,digest=on").Snapshot()

	assert.Equal(t, map[string]bool{
		Scrape:   true,
		Analyze:  true,
		Compose:  true,
		Publish:  false,
		"digest": true,
	}, snap)
}
