package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/core/domain"
)

func TestParseVersion_Components(t *testing.T) {
	v, err := domain.ParseVersion("1!2.4.0rc1.post2.dev3+ubuntu.1")
	require.NoError(t, err)

	assert.Equal(t, 1, v.Epoch)
	assert.Equal(t, []int{2, 4, 0}, v.Release)
	require.NotNil(t, v.Pre)
	assert.Equal(t, 1, v.Pre.Number)
	require.NotNil(t, v.Post)
	assert.Equal(t, 2, *v.Post)
	require.NotNil(t, v.Dev)
	assert.Equal(t, 3, *v.Dev)
	assert.Equal(t, "ubuntu.1", v.Local)
	assert.Equal(t, "1!2.4.0rc1.post2.dev3+ubuntu.1", v.String())
}

func TestParseVersion_Normalization(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"7.4.0", "7.4.0"},
		{"v1.0", "1.0"},
		{"1.0.ALPHA2", "1.0a2"},
		{"1.0-beta-3", "1.0b3"},
		{"1.0.preview4", "1.0rc4"},
		{"1.0-2", "1.0.post2"},
		{"1.0.rev1", "1.0.post1"},
		{"1.0.dev", "1.0.dev0"},
		{"2.0+local_label", "2.0+local_label"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := domain.ParseVersion(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	for _, input := range []string{"", "not-a-version", "1.0!2", "1..0", "1.0+", "latest"} {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseVersion(input)
			require.ErrorIs(t, err, domain.ErrInvalidVersion)
		})
	}
}

func TestVersion_Compare_Ordering(t *testing.T) {
	// Ascending per pip's ordering rules.
	ordered := []string{
		"0.9",
		"1.0.dev1",
		"1.0a1",
		"1.0a2.dev1",
		"1.0a2",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0+abc",
		"1.0.post0.dev1",
		"1.0.post1",
		"1.1",
		"1!0.5",
	}

	for i := 1; i < len(ordered); i++ {
		prev := domain.MustParseVersion(ordered[i-1])
		curr := domain.MustParseVersion(ordered[i])
		assert.Negative(t, prev.Compare(curr), "%s should sort before %s", ordered[i-1], ordered[i])
		assert.Positive(t, curr.Compare(prev), "%s should sort after %s", ordered[i], ordered[i-1])
	}
}

func TestVersion_Compare_ReleasePadding(t *testing.T) {
	a := domain.MustParseVersion("1.0")
	b := domain.MustParseVersion("1.0.0")
	assert.Equal(t, 0, a.Compare(b))
}

func TestVersion_Equal_IgnoresLocal(t *testing.T) {
	a := domain.MustParseVersion("1.0+one")
	b := domain.MustParseVersion("1.0+two")
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, 0, a.Compare(b))
}

func TestVersion_IsPreRelease(t *testing.T) {
	assert.True(t, domain.MustParseVersion("1.0rc1").IsPreRelease())
	assert.True(t, domain.MustParseVersion("1.0.dev2").IsPreRelease())
	assert.False(t, domain.MustParseVersion("1.0.post1").IsPreRelease())
	assert.False(t, domain.MustParseVersion("1.0").IsPreRelease())
}
