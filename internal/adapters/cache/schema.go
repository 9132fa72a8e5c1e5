package cache

import "encoding/json"

// snapshotFile is the on-disk layout of the registry cache.
// Field names and casing are part of the file contract.
type snapshotFile struct {
	Count    int                     `json:"count"`
	Packages map[string]packageEntry `json:"packages"`
}

// packageEntry is one package of the snapshot file.
type packageEntry struct {
	Version    string   `json:"Version"`
	Location   string   `json:"Location"`
	Requires   []string `json:"Requires"`
	RequiredBy []string `json:"Required-by"`
}

// rawSnapshot is used for decoding, so that missing keys can be told apart from empty ones.
// The number/package keys are accepted for caches written by earlier releases.
type rawSnapshot struct {
	Count          *int                       `json:"count"`
	Packages       map[string]json.RawMessage `json:"packages"`
	LegacyCount    *int                       `json:"number"`
	LegacyPackages map[string]json.RawMessage `json:"package"`
}

// rawEntry mirrors packageEntry with optional fields.
type rawEntry struct {
	Version    *string  `json:"Version"`
	Location   *string  `json:"Location"`
	Requires   []string `json:"Requires"`
	RequiredBy []string `json:"Required-by"`
}
