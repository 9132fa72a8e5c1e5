package domain

import "runtime"

const (
	// DefaultCacheFile is the cache file name used when none is configured.
	DefaultCacheFile = "package.json"
	// DefaultBatchSize is the number of packages queried per source call.
	DefaultBatchSize = 16
	// DefaultMemoSize is the number of transitive closures memoized per query session.
	DefaultMemoSize = 256
)

// Settings holds the runtime configuration passed explicitly into the adapters and engines.
type Settings struct {
	// CacheFile is the path of the registry snapshot file.
	CacheFile string
	// PipCommand is the command prefix used to invoke pip, e.g. ["python3", "-m", "pip"].
	PipCommand []string
	// Concurrency bounds the number of concurrent source calls during a scan.
	Concurrency int
	// BatchSize is the number of packages queried per source call.
	BatchSize int
	// LogFile is an optional path receiving a rotating JSON log.
	LogFile string
	// Lenient downgrades dangling references from errors to warnings.
	Lenient bool
	// MemoSize is the capacity of the transitive closure memo.
	MemoSize int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		CacheFile:   DefaultCacheFile,
		PipCommand:  []string{"pip"},
		Concurrency: runtime.NumCPU(),
		BatchSize:   DefaultBatchSize,
		MemoSize:    DefaultMemoSize,
	}
}
