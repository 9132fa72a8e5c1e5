package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceUnavailable is returned when the external package source cannot be queried.
	ErrSourceUnavailable = zerr.New("package source unavailable")

	// ErrMalformedCache is returned when a cache file exists but cannot be parsed.
	ErrMalformedCache = zerr.New("malformed package cache")

	// ErrMalformedRecord is returned when a scanned package record is missing a required field.
	ErrMalformedRecord = zerr.New("malformed package record")

	// ErrUnknownPackage is returned when a queried package is not part of the registry.
	ErrUnknownPackage = zerr.New("unknown package")

	// ErrDanglingReference is returned when a dependency edge names a package absent from the registry.
	ErrDanglingReference = zerr.New("dangling package reference")

	// ErrCacheWriteFailed is returned when the registry snapshot cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write package cache")

	// ErrRendererUnavailable is returned when the graph renderer for a format is not installed.
	ErrRendererUnavailable = zerr.New("graph renderer unavailable")

	// ErrConfigInvalid is returned when the configuration file or environment holds invalid values.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrPackageNameRequired is returned when a query is issued without a package name.
	ErrPackageNameRequired = zerr.New("please input package name")
)
