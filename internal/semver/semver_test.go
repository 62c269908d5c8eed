package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{name: "major only", version: "19", want: "19.0.0"},
		{name: "major and minor", version: "19.5", want: "19.5.0"},
		{name: "full triple", version: "19.5.1", want: "19.5.1"},
		{name: "four components pass through", version: "19.5.1.4324", want: "19.5.1.4324"},
		{name: "empty string passes through", version: "", want: ""},
		{name: "non-numeric components are not validated", version: "19.x", want: "19.x.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.version))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, version := range []string{"", "2", "2.1", "2.1.0", "19.5.1.4324"} {
		once := Normalize(version)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", version)
	}
}

func TestNormalize_CacheKeyEquivalence(t *testing.T) {
	// "2.1" and "2.1.0" must map to the same cache entry.
	assert.Equal(t, Normalize("2.1"), Normalize("2.1.0"))
}
