package pip_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pipdeps/internal/adapters/pip"
	"go.trai.ch/pipdeps/internal/core/domain"
)

func TestParseList(t *testing.T) {
	data, err := os.ReadFile("testdata/list.json")
	require.NoError(t, err)

	names, err := pip.ParseList(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"certifi", "requests", "Jinja2"}, names)
}

func TestParseList_Empty(t *testing.T) {
	names, err := pip.ParseList([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestParseList_Invalid(t *testing.T) {
	_, err := pip.ParseList([]byte("Package    Version\n---------- -------\n"))
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestParseShow(t *testing.T) {
	data, err := os.ReadFile("testdata/show.txt")
	require.NoError(t, err)

	records := pip.ParseShow(data)
	require.Len(t, records, 2)

	assert.Equal(t, "requests", records[0][domain.FieldName])
	assert.Equal(t, "2.31.0", records[0][domain.FieldVersion])
	assert.Equal(t, "certifi, charset-normalizer, idna, urllib3", records[0][domain.FieldRequires])
	assert.Empty(t, records[0][domain.FieldRequiredBy])
	assert.Contains(t, records[0], domain.FieldRequiredBy)
	assert.Equal(t, "https://requests.readthedocs.io", records[0]["Home-page"])

	assert.Equal(t, "certifi", records[1][domain.FieldName])
	assert.Equal(t, "MPL-2.0", records[1]["License"])
	assert.Equal(t, "requests", records[1][domain.FieldRequiredBy])

	rec, err := domain.NewPackageRecord(records[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"certifi", "charset-normalizer", "idna", "urllib3"}, rec.Requires)
	assert.Equal(t, []string{}, rec.RequiredBy)
}

func TestParseShow_Empty(t *testing.T) {
	assert.Empty(t, pip.ParseShow(nil))
	assert.Empty(t, pip.ParseShow([]byte("---\n\n---\n")))
}

func TestParseShow_CRLF(t *testing.T) {
	records := pip.ParseShow([]byte("Name: six\r\nVersion: 1.16.0\r\n"))
	require.Len(t, records, 1)
	assert.Equal(t, "1.16.0", records[0][domain.FieldVersion])
}
