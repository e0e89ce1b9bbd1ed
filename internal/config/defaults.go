package config

const (
	IndexTypeBleve  = "bleve"
	IndexTypeMemory = "memory"

	OnFieldErrorReject = "reject"
	OnFieldErrorSkip   = "skip"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 9200
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/vecsearch/data/db/documents.db"
	}
	if cfg.Storage.IndexPath == "" {
		cfg.Storage.IndexPath = "/usr/local/var/vecsearch/data/indices/points"
	}
	if cfg.Index.Type == "" {
		cfg.Index.Type = IndexTypeBleve
	}
	if cfg.Index.OnFieldError == "" {
		cfg.Index.OnFieldError = OnFieldErrorReject
	}
	if cfg.Index.Concurrency == 0 {
		cfg.Index.Concurrency = 4
	}
	if cfg.Search.DefaultSize == 0 {
		cfg.Search.DefaultSize = 10
	}
	if cfg.Search.MaxSize == 0 {
		cfg.Search.MaxSize = 1000
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".ndjson", ".jsonl"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
