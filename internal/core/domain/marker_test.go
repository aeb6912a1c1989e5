package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/core/domain"
)

func cpythonEnv() domain.Environment {
	return domain.Environment{
		"python_version":                 "3.11",
		"python_full_version":            "3.11.4",
		"os_name":                        "posix",
		"sys_platform":                   "linux",
		"platform_system":                "Linux",
		"platform_machine":               "x86_64",
		"platform_python_implementation": "CPython",
		"implementation_name":            "cpython",
	}
}

func TestParseMarker_Eval(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		want   bool
	}{
		{
			name:   "implementation exclusion",
			marker: `platform_python_implementation != 'PyPy'`,
			want:   true,
		},
		{
			name:   "implementation match",
			marker: `platform_python_implementation == "CPython"`,
			want:   true,
		},
		{
			name:   "version comparison is numeric not lexicographic",
			marker: `python_version >= '3.9'`,
			want:   true, // "3.11" < "3.9" as strings but not as versions
		},
		{
			name:   "and short picks both sides",
			marker: `sys_platform == 'linux' and python_version < '3.0'`,
			want:   false,
		},
		{
			name:   "or picks either side",
			marker: `sys_platform == 'win32' or os_name == 'posix'`,
			want:   true,
		},
		{
			name:   "parenthesized precedence",
			marker: `sys_platform == 'win32' and (os_name == 'posix' or python_version >= '3')`,
			want:   false,
		},
		{
			name:   "in operator",
			marker: `'linux' in sys_platform`,
			want:   true,
		},
		{
			name:   "not in operator",
			marker: `platform_machine not in 'aarch64 arm64'`,
			want:   true,
		},
		{
			name:   "missing variable evaluates empty",
			marker: `extra == 'histogram'`,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.ParseMarker(tt.marker)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Eval(cpythonEnv()))
		})
	}
}

func TestParseMarker_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		target error
	}{
		{"empty", "", domain.ErrInvalidMarker},
		{"unterminated string", `sys_platform == 'linux`, domain.ErrInvalidMarker},
		{"missing operator", `sys_platform 'linux'`, domain.ErrInvalidMarker},
		{"unbalanced paren", `(sys_platform == 'linux'`, domain.ErrInvalidMarker},
		{"trailing garbage", `sys_platform == 'linux' banana`, domain.ErrInvalidMarker},
		{"unknown variable", `machine_type == 'vax'`, domain.ErrUnknownMarkerVariable},
		{"not without in", `sys_platform not 'linux'`, domain.ErrInvalidMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseMarker(tt.marker)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestMarker_String_PreservesInput(t *testing.T) {
	raw := `python_version >= '3.8' and sys_platform != 'win32'`
	m, err := domain.ParseMarker(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, m.String())
}

func TestIsMarkerVariable(t *testing.T) {
	assert.True(t, domain.IsMarkerVariable("platform_python_implementation"))
	assert.False(t, domain.IsMarkerVariable("PLATFORM"))
}
