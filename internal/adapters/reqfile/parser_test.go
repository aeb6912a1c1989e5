package reqfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/reqfile"
	"go.trai.ch/pinset/internal/core/domain"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseLine_ExactPin(t *testing.T) {
	req, err := reqfile.ParseLine("pytest==7.4.0")
	require.NoError(t, err)

	assert.Equal(t, "pytest", req.Name.String())
	assert.Empty(t, req.Extras)
	assert.Nil(t, req.Marker)

	v, ok := req.Specifiers.ExactPin()
	require.True(t, ok)
	assert.Equal(t, "7.4.0", v.String())
}

func TestParseLine_Marker(t *testing.T) {
	req, err := reqfile.ParseLine("paramiko==3.4.0; platform_python_implementation != 'PyPy'")
	require.NoError(t, err)

	assert.Equal(t, "paramiko", req.Name.String())
	require.NotNil(t, req.Marker)

	cpython := domain.Environment{"platform_python_implementation": "CPython"}
	pypy := domain.Environment{"platform_python_implementation": "PyPy"}
	assert.True(t, req.AppliesTo(cpython))
	assert.False(t, req.AppliesTo(pypy))
}

func TestParseLine_Extras(t *testing.T) {
	req, err := reqfile.ParseLine("pytest-benchmark[histogram]==4.0.0")
	require.NoError(t, err)

	assert.Equal(t, "pytest-benchmark", req.Name.String())
	require.Len(t, req.Extras, 1)
	assert.Equal(t, "histogram", req.Extras[0].String())
}

func TestParseLine_Unconstrained(t *testing.T) {
	req, err := reqfile.ParseLine("fasteners")
	require.NoError(t, err)

	assert.Equal(t, "fasteners", req.Name.String())
	assert.True(t, req.Unconstrained())
}

func TestParseLine_ParenthesizedSpecifiers(t *testing.T) {
	// The form requires_dist metadata uses.
	req, err := reqfile.ParseLine("idna (<4,>=2.5)")
	require.NoError(t, err)
	assert.Equal(t, "idna", req.Name.String())
	assert.Equal(t, "<4, >=2.5", req.Specifiers.String())

	req, err = reqfile.ParseLine(`h2 (<5,>=3) ; extra == "http2"`)
	require.NoError(t, err)
	assert.Equal(t, "h2", req.Name.String())
	assert.Equal(t, "<5, >=3", req.Specifiers.String())
	require.NotNil(t, req.Marker)
}

func TestParseLine_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"empty name", "==7.4.0", domain.ErrEmptyRequirementName},
		{"bad specifier", "pytest=7.4.0", domain.ErrInvalidSpecifier},
		{"unterminated extras", "pytest[histogram==4.0", domain.ErrInvalidRequirement},
		{"empty extra", "pytest[,]==4.0", domain.ErrInvalidRequirement},
		{"bad marker", "pytest==1.0; flavor == 'test'", domain.ErrUnknownMarkerVariable},
		{"unsupported option", "--hash=sha256:abc", domain.ErrInvalidRequirement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reqfile.ParseLine(tt.input)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParser_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "requirements.txt", `
# test requirements
pytest==7.4.0
pytest-benchmark[histogram]==4.0.0  # trailing comment
paramiko==3.4.0; platform_python_implementation != 'PyPy'

requests>=2.31.0, \
    <3.0
fasteners
`)

	m, err := reqfile.NewParser().Load(path)
	require.NoError(t, err)
	require.Len(t, m.Requirements, 5)

	names := make([]string, len(m.Requirements))
	for i, r := range m.Requirements {
		names[i] = r.Name.String()
	}
	assert.Equal(t, []string{"pytest", "pytest-benchmark", "paramiko", "requests", "fasteners"}, names)

	// The continuation folds into one logical line starting at its first
	// physical line.
	requests, ok := m.Get("requests")
	require.True(t, ok)
	assert.Equal(t, 7, requests.Line)
	assert.Equal(t, ">=2.31.0, <3.0", requests.Specifiers.String())

	benchmark, ok := m.Get("pytest-benchmark")
	require.True(t, ok)
	assert.Equal(t, 4, benchmark.Line, "comments and blanks still count for line numbers")
}

func TestParser_Load_Includes(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "base.txt", "fasteners\n")
	path := writeManifest(t, dir, "requirements.txt", "-r base.txt\npytest==7.4.0\n")

	m, err := reqfile.NewParser().Load(path)
	require.NoError(t, err)
	require.Len(t, m.Requirements, 2)
	assert.Equal(t, "fasteners", m.Requirements[0].Name.String())
	assert.Equal(t, filepath.Join(dir, "base.txt"), m.Requirements[0].File.String())
	assert.Equal(t, "pytest", m.Requirements[1].Name.String())

	// Both files count as sources, top-level manifest first.
	require.Len(t, m.Sources, 2)
	assert.Equal(t, path, m.Sources[0].String())
	assert.Equal(t, filepath.Join(dir, "base.txt"), m.Sources[1].String())
}

func TestParser_Load_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.txt", "-r b.txt\n")
	path := writeManifest(t, dir, "b.txt", "-r a.txt\n")

	_, err := reqfile.NewParser().Load(path)
	require.ErrorIs(t, err, domain.ErrIncludeCycle)
}

func TestParser_Load_Missing(t *testing.T) {
	_, err := reqfile.NewParser().Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestParser_Load_SyntaxErrorCarriesLocation(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "requirements.txt", "pytest==7.4.0\npytest==broken\n")

	_, err := reqfile.NewParser().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestFormat_Canonical(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "requirements.txt",
		"pytest-benchmark[histogram]  ==4.0.0   # comment\nparamiko==3.4.0 ;  platform_python_implementation != 'PyPy'\n")

	m, err := reqfile.NewParser().Load(path)
	require.NoError(t, err)

	got := reqfile.NewWriter().Format(m)
	want := "pytest-benchmark[histogram]==4.0.0\n" +
		"paramiko==3.4.0; platform_python_implementation != 'PyPy'\n"
	assert.Equal(t, want, got)
}
