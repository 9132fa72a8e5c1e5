package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pipdeps/internal/core/domain"
)

func TestRegistry_NamesAndRecords(t *testing.T) {
	r := domain.NewRegistry(
		domain.PackageRecord{Name: "requests"},
		domain.PackageRecord{Name: "certifi"},
		domain.PackageRecord{Name: "idna"},
	)

	assert.Equal(t, []string{"certifi", "idna", "requests"}, r.Names())

	records := r.Records()
	assert.Len(t, records, 3)
	assert.Equal(t, "certifi", records[0].Name)

	_, ok := r.Get("ghost")
	assert.False(t, ok)
}

func TestRegistry_Subset(t *testing.T) {
	r := domain.NewRegistry(
		domain.PackageRecord{Name: "a"},
		domain.PackageRecord{Name: "b"},
		domain.PackageRecord{Name: "c"},
	)

	sub := r.Subset(domain.NewNameSet("a", "c", "ghost"))
	assert.Equal(t, []string{"a", "c"}, sub.Names())
}

func TestRegistry_Equal(t *testing.T) {
	a := domain.NewRegistry(domain.PackageRecord{Name: "a", Version: "1"})
	b := domain.NewRegistry(domain.PackageRecord{Name: "a", Version: "1"})
	c := domain.NewRegistry(domain.PackageRecord{Name: "a", Version: "2"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(domain.Registry{}))
}

func TestNameSet(t *testing.T) {
	s := domain.NewNameSet("b", "a")
	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("a"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())

	other := domain.NewNameSet("c", "d")
	assert.Equal(t, 1, s.Union(other))
	assert.Equal(t, 4, s.Len())

	diff := s.Difference(domain.NewNameSet("a", "d"))
	assert.Equal(t, []string{"b", "c"}, diff.Sorted())
	assert.True(t, diff.IsSubsetOf(s))
	assert.False(t, s.IsSubsetOf(diff))

	clone := s.Clone()
	clone.Add("z")
	assert.False(t, s.Contains("z"))
}
