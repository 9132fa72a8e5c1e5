package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jinja2", "jinja2"},
		{"  MarkupSafe ", "markupsafe"},
		{"typing extensions", "typingextensions"},
		{"zope.interface\t", "zope.interface"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeName(tt.input))
		})
	}
}

func TestParseNameList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"blank", "   ", []string{}},
		{"single", "Requests", []string{"requests"}},
		{"comma joined", "certifi, charset-normalizer, idna, urllib3", []string{"certifi", "charset-normalizer", "idna", "urllib3"}},
		{"stray commas", "a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParseNameList(tt.input))
		})
	}
}

func TestNewPackageRecord(t *testing.T) {
	rec, err := domain.NewPackageRecord(map[string]string{
		"Name":        "Flask",
		"Version":     " 3.0.0",
		"Location":    "/usr/lib/python3/site-packages",
		"Requires":    "blinker, click, itsdangerous, Jinja2, Werkzeug",
		"Required-by": "",
	})
	require.NoError(t, err)

	assert.Equal(t, "flask", rec.Name)
	assert.Equal(t, "3.0.0", rec.Version)
	assert.Equal(t, "/usr/lib/python3/site-packages", rec.Location)
	assert.Equal(t, []string{"blinker", "click", "itsdangerous", "jinja2", "werkzeug"}, rec.Requires)
	assert.Empty(t, rec.RequiredBy)
	assert.NotNil(t, rec.RequiredBy)
}

func TestNewPackageRecord_MissingField(t *testing.T) {
	_, err := domain.NewPackageRecord(map[string]string{
		"Name":     "flask",
		"Version":  "3.0.0",
		"Location": "/site-packages",
		"Requires": "click",
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrMalformedRecord)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	meta := zErr.Metadata()
	assert.Equal(t, "Required-by", meta["field"])
	assert.Equal(t, "flask", meta["package"])
}

func TestNewPackageRecord_EmptyName(t *testing.T) {
	_, err := domain.NewPackageRecord(map[string]string{
		"Name":        "  ",
		"Version":     "1",
		"Location":    "/x",
		"Requires":    "",
		"Required-by": "",
	})
	require.ErrorIs(t, err, domain.ErrMalformedRecord)
}

func TestPackageRecord_Equal(t *testing.T) {
	a := domain.PackageRecord{Name: "a", Requires: []string{"b", "c"}, RequiredBy: []string{}}
	b := domain.PackageRecord{Name: "a", Requires: []string{"b", "c"}}
	c := domain.PackageRecord{Name: "a", Requires: []string{"c", "b"}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
