package domain

import (
	"slices"
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// Field names of a package record as reported by the package source.
const (
	FieldName       = "Name"
	FieldVersion    = "Version"
	FieldLocation   = "Location"
	FieldRequires   = "Requires"
	FieldRequiredBy = "Required-by"
)

// PackageRecord represents one installed package and its direct dependency edges.
type PackageRecord struct {
	// Name is the normalized package name, unique within a Registry.
	Name string

	// Version is informational only and never used by graph logic.
	Version string

	// Location is the filesystem path the package is installed under.
	Location string

	// Requires lists the normalized names this package directly depends on.
	Requires []string

	// RequiredBy lists the normalized names that directly depend on this package.
	RequiredBy []string
}

// NormalizeName case-folds a package name and strips every whitespace rune from it.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name))
}

// ParseNameList splits a comma-joined list of package names and normalizes each entry.
// An empty or blank list yields no names.
func ParseNameList(list string) []string {
	list = NormalizeName(list)
	if list == "" {
		return []string{}
	}

	names := make([]string, 0, strings.Count(list, ",")+1)
	for name := range strings.SplitSeq(list, ",") {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// NewPackageRecord builds a PackageRecord from the raw fields reported by the package source.
// Every field must be present, although Requires and Required-by may be empty.
func NewPackageRecord(fields map[string]string) (PackageRecord, error) {
	for _, key := range []string{FieldName, FieldVersion, FieldLocation, FieldRequires, FieldRequiredBy} {
		if _, ok := fields[key]; !ok {
			err := zerr.Wrap(ErrMalformedRecord, "missing package field")
			err = zerr.With(err, "package", fields[FieldName])
			return PackageRecord{}, zerr.With(err, "field", key)
		}
	}

	name := NormalizeName(fields[FieldName])
	if name == "" {
		err := zerr.Wrap(ErrMalformedRecord, "empty package name")
		return PackageRecord{}, zerr.With(err, "field", FieldName)
	}

	return PackageRecord{
		Name:       name,
		Version:    strings.TrimSpace(fields[FieldVersion]),
		Location:   strings.TrimSpace(fields[FieldLocation]),
		Requires:   ParseNameList(fields[FieldRequires]),
		RequiredBy: ParseNameList(fields[FieldRequiredBy]),
	}, nil
}

// Equal reports whether two records hold the same data, including edge order.
func (p PackageRecord) Equal(other PackageRecord) bool {
	return p.Name == other.Name &&
		p.Version == other.Version &&
		p.Location == other.Location &&
		slices.Equal(p.Requires, other.Requires) &&
		slices.Equal(p.RequiredBy, other.RequiredBy)
}
