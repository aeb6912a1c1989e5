package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/core/domain"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pytest", "pytest"},
		{"pytest-benchmark", "pytest-benchmark"},
		{"Pytest_Benchmark", "pytest-benchmark"},
		{"zope.interface", "zope-interface"},
		{"a--b__c..d", "a-b-c-d"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.CanonicalName(tt.input), tt.input)
	}
}

func TestValidateName(t *testing.T) {
	require.ErrorIs(t, domain.ValidateName(""), domain.ErrEmptyRequirementName)
	require.ErrorIs(t, domain.ValidateName("-leading"), domain.ErrInvalidRequirement)
	require.ErrorIs(t, domain.ValidateName("trailing-"), domain.ErrInvalidRequirement)
	require.ErrorIs(t, domain.ValidateName("has space"), domain.ErrInvalidRequirement)
	require.NoError(t, domain.ValidateName("fasteners"))
	require.NoError(t, domain.ValidateName("libvirt-python"))
}

func TestRequirement_String(t *testing.T) {
	r, err := domain.NewRequirement("pytest-benchmark")
	require.NoError(t, err)

	r.Extras = domain.InternStrings([]string{"histogram"})
	r.Specifiers = mustSet(t, "==4.0.0")

	assert.Equal(t, "pytest-benchmark[histogram]==4.0.0", r.String())

	m, err := domain.ParseMarker(`platform_python_implementation != 'PyPy'`)
	require.NoError(t, err)
	r.Marker = m
	assert.Equal(t,
		"pytest-benchmark[histogram]==4.0.0; platform_python_implementation != 'PyPy'",
		r.String())
}

func TestRequirement_AppliesTo(t *testing.T) {
	r, err := domain.NewRequirement("paramiko")
	require.NoError(t, err)
	assert.True(t, r.AppliesTo(cpythonEnv()), "no marker always applies")

	m, err := domain.ParseMarker(`platform_python_implementation != 'PyPy'`)
	require.NoError(t, err)
	r.Marker = m
	assert.True(t, r.AppliesTo(cpythonEnv()))

	pypy := cpythonEnv()
	pypy["platform_python_implementation"] = "PyPy"
	assert.False(t, r.AppliesTo(pypy))
}

func addReq(t *testing.T, m *domain.Manifest, name, file string, line int) {
	t.Helper()
	r, err := domain.NewRequirement(name)
	require.NoError(t, err)
	r.File = domain.NewInternedString(file)
	r.Line = line
	m.Add(r)
}

func TestManifest_Validate_Duplicates(t *testing.T) {
	m := &domain.Manifest{Path: domain.NewInternedString("requirements.txt")}
	addReq(t, m, "pytest", "requirements.txt", 1)
	addReq(t, m, "paramiko", "requirements.txt", 2)
	// Same canonical identity as line 1 despite different spelling.
	addReq(t, m, "PyTest", "requirements.txt", 7)

	errs := m.Validate()
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], domain.ErrDuplicateRequirement)
}

func TestManifest_Validate_Clean(t *testing.T) {
	m := &domain.Manifest{}
	addReq(t, m, "pytest", "requirements.txt", 1)
	addReq(t, m, "paramiko", "requirements.txt", 2)
	assert.Empty(t, m.Validate())
}

func TestManifest_Applicable_PreservesOrder(t *testing.T) {
	m := &domain.Manifest{}
	addReq(t, m, "zeta", "r.txt", 1)
	addReq(t, m, "alpha", "r.txt", 2)

	marker, err := domain.ParseMarker(`sys_platform == 'win32'`)
	require.NoError(t, err)
	skipped, err := domain.NewRequirement("winonly")
	require.NoError(t, err)
	skipped.Marker = marker
	m.Add(skipped)

	got := m.Applicable(cpythonEnv())
	require.Len(t, got, 2)
	assert.Equal(t, "zeta", got[0].Name.String())
	assert.Equal(t, "alpha", got[1].Name.String())
}

func TestManifest_Get(t *testing.T) {
	m := &domain.Manifest{}
	addReq(t, m, "Zope.Interface", "r.txt", 1)

	r, ok := m.Get("zope-interface")
	require.True(t, ok)
	assert.Equal(t, "Zope.Interface", r.Name.String())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestInternedString_ZeroValue(t *testing.T) {
	var is domain.InternedString
	assert.Equal(t, "", is.String())
	assert.True(t, is.IsZero())
	assert.False(t, domain.NewInternedString("x").IsZero())
}
