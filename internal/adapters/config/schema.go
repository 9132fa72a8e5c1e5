package config

// Configfile represents the structure of the pipdeps.yaml configuration file.
// Pointer fields distinguish an absent key from its zero value.
type Configfile struct {
	CacheFile   string   `yaml:"cache_file"`
	Pip         []string `yaml:"pip"`
	Concurrency *int     `yaml:"concurrency"`
	BatchSize   *int     `yaml:"batch_size"`
	LogFile     string   `yaml:"log_file"`
	Lenient     *bool    `yaml:"lenient"`
	MemoSize    *int     `yaml:"memo_size"`
}
