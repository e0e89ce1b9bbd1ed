// Package main is the vecsearch CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/vecsearch/internal/cli"
	"github.com/hyperjump/vecsearch/internal/config"
	"github.com/hyperjump/vecsearch/internal/indexer"
	"github.com/hyperjump/vecsearch/internal/metrics"
	"github.com/hyperjump/vecsearch/internal/models"
	"github.com/hyperjump/vecsearch/internal/pointindex"
	"github.com/hyperjump/vecsearch/internal/search"
	"github.com/hyperjump/vecsearch/internal/server"
	"github.com/hyperjump/vecsearch/internal/storage"
	"github.com/hyperjump/vecsearch/internal/watcher"
	"github.com/hyperjump/vecsearch/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/vecsearch/config.yaml"
	defaultServerURL  = "http://localhost:9200"
)

// loadConfig loads config from path. When path is the default, config.yaml in the
// current directory takes precedence if it exists, so running from a project directory
// picks up the project's config. Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "index":
		runIndex()
	case "delete":
		runDelete()
	case "mapping":
		runMapping()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("vecsearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (requests, indexed documents, watch events)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.String("index_type", cfg.Index.Type),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()

	serverOpts := []server.ServerOption{server.WithMetrics(components.Metrics)}
	if len(cfg.Watch.Directories) > 0 {
		watchSvc := watcher.NewWatcher(cfg.Watch, components.Indexer, watcher.WithLogger(logger))
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
		go watchSvc.SyncExistingFiles(watchCtx)
		serverOpts = append(serverOpts, server.WithWatch(watchSvc))
	}

	srv := server.NewServer(
		components.Engine,
		components.Indexer,
		components.Storage,
		components.Index,
		cfg,
		logger,
		serverOpts...,
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: vecsearch search [flags] <field>\n\n")
	fmt.Fprintf(fs.Output(), "Exactly one of a range (--gte/--gt/--lte/--lt), --term or --exists must be given.\n")
	fmt.Fprintf(fs.Output(), "Vector values are comma-separated numbers, one per dimension.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  vecsearch search location --gte 0,0 --lte 10,10     # box, inclusive
  vecsearch search location --gt 0,0                  # open upper bound
  vecsearch search location --lte 1,1 --gte -1,-1     # bounds may follow the field
  vecsearch search --exists location
  vecsearch search --output json --size 100 embedding --gte -1,-1,-1
`)
}

// searchFlags are the parsed query flags of the search subcommand.
type searchFlags struct {
	gte, gt, lte, lt string
	term             string
	exists           bool
	from, size       int
	noSource         bool
	// set records which flags were given explicitly.
	set map[string]bool
}

// buildSearchRequest turns the field name and query flags into a search request.
func buildSearchRequest(fieldName string, f searchFlags) (*models.SearchRequest, error) {
	fieldName = strings.TrimSpace(fieldName)
	if fieldName == "" {
		return nil, fmt.Errorf("a field name is required")
	}
	isRange := f.set["gte"] || f.set["gt"] || f.set["lte"] || f.set["lt"]
	kinds := 0
	for _, on := range []bool{isRange, f.set["term"], f.exists} {
		if on {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, fmt.Errorf("give exactly one of a range (--gte/--gt/--lte/--lt), --term or --exists")
	}

	req := &models.SearchRequest{From: f.from, Size: f.size}
	if f.noSource {
		includeSource := false
		req.IncludeSource = &includeSource
	}
	switch {
	case isRange:
		clause := &models.RangeClause{}
		bound := func(name, value string) *models.Text {
			if !f.set[name] {
				return nil
			}
			t := models.Text(value)
			return &t
		}
		clause.GTE = bound("gte", f.gte)
		clause.GT = bound("gt", f.gt)
		clause.LTE = bound("lte", f.lte)
		clause.LT = bound("lt", f.lt)
		req.Query.Range = map[string]*models.RangeClause{fieldName: clause}
	case f.set["term"]:
		req.Query.Term = map[string]models.Text{fieldName: models.Text(f.term)}
	default:
		req.Query.Exists = &models.ExistsClause{Field: fieldName}
	}
	return req, nil
}

// searchConfigPathFromArgs returns the value of -config/--config from args if present, else defaultPath.
func searchConfigPathFromArgs(args []string, defaultPath string) string {
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultPath
}

// searchSizeDefaultFromConfig loads config at path and returns its default page size.
// On load failure, returns 10.
func searchSizeDefaultFromConfig(path string) int {
	cfg, _, err := loadConfig(path)
	if err != nil || cfg == nil {
		return 10
	}
	return cfg.Search.DefaultSize
}

// searchArgsReorder moves any flags (and their values) that appear after the field
// name to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "vecsearch search location --gte 0,0"
// would otherwise leave --gte unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])
	configPath := searchConfigPathFromArgs(searchArgs, defaultConfigPath)

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = use direct storage when server is not running)")
	var f searchFlags
	fs.StringVar(&f.gte, "gte", "", "inclusive lower corner")
	fs.StringVar(&f.gt, "gt", "", "exclusive lower corner")
	fs.StringVar(&f.lte, "lte", "", "inclusive upper corner")
	fs.StringVar(&f.lt, "lt", "", "exclusive upper corner")
	fs.StringVar(&f.term, "term", "", "exact vector value (rejected for vector fields)")
	fs.BoolVar(&f.exists, "exists", false, "match documents that have a value for the field")
	fs.IntVar(&f.from, "from", 0, "number of hits to skip")
	fs.IntVar(&f.size, "size", searchSizeDefaultFromConfig(configPath), "number of hits to return")
	fs.BoolVar(&f.noSource, "no-source", false, "omit document sources from hits")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	f.set = map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	if fs.NArg() != 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	req, err := buildSearchRequest(fs.Arg(0), f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid search: %v\n", err)
		os.Exit(1)
	}

	var format cli.SearchOutputFormat
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		// HTTP keeps the CLI off the Bleve and SQLite locks held by a running server.
		response = &models.SearchResponse{}
		if err := callAPI(http.MethodPost, *serverURL+"/api/v1/search", req, response); err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		components := directComponents(*configPathFlag)
		defer components.Close()
		response, err = components.Engine.Search(context.Background(), req)
		if err != nil {
			components.Close()
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// apiError is the error body returned by the server.
type apiError struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// callAPI sends body (when non-nil) as JSON and decodes a 2xx response into out.
func callAPI(method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	return callAPIRaw(method, url, reader, out)
}

func callAPIRaw(method, url string, body io.Reader, out interface{}) error {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		if json.Unmarshal(b, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d (%s): %s", resp.StatusCode, apiErr.Type, apiErr.Error)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Documents        int64                  `json:"documents"`
	IndexedDocuments uint64                 `json:"indexed_documents"`
	Fields           int                    `json:"fields"`
	DiskUsageBytes   *int64                 `json:"disk_usage_bytes,omitempty"`
	Config           map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		if err := callAPI(http.MethodGet, *serverURL+"/api/v1/status", nil, &status); err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		components := directComponents(*configPath)
		defer components.Close()
		var err error
		status, err = directStatus(context.Background(), components)
		if err != nil {
			components.Close()
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeStatusText(os.Stdout, &status)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func directStatus(ctx context.Context, c *Components) (statusResponse, error) {
	docCount, err := c.Storage.CountDocuments(ctx)
	if err != nil {
		return statusResponse{}, fmt.Errorf("count documents: %w", err)
	}
	indexed, err := c.Index.DocCount()
	if err != nil {
		return statusResponse{}, fmt.Errorf("count indexed documents: %w", err)
	}
	status := statusResponse{
		Documents:        docCount,
		IndexedDocuments: indexed,
		Fields:           c.Indexer.Mapping().Len(),
		Config: map[string]interface{}{
			"index_type":     c.Index.Type(),
			"on_field_error": c.Config.Index.OnFieldError,
			"database_path":  c.Config.Storage.DatabasePath,
			"index_path":     c.Config.Storage.IndexPath,
		},
	}
	if diskBytes, err := storage.DiskUsageBytes(c.Config.Storage.DatabasePath, c.Config.Storage.IndexPath); err == nil {
		status.DiskUsageBytes = &diskBytes
	}
	return status, nil
}

func writeStatusText(w io.Writer, status *statusResponse) {
	fmt.Fprintf(w, "documents:          %d   # stored documents\n", status.Documents)
	fmt.Fprintf(w, "indexed_documents:  %d   # documents with at least one point\n", status.IndexedDocuments)
	fmt.Fprintf(w, "fields:             %d   # mapped vector fields\n", status.Fields)
	if status.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:   %d   # storage + index on disk\n", *status.DiskUsageBytes)
	}
	if len(status.Config) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "# configuration")
		for _, key := range []string{"index_type", "on_field_error", "database_path", "index_path", "watch_directories"} {
			if v, ok := status.Config[key]; ok {
				fmt.Fprintf(w, "%-19s %v\n", key+":", v)
			}
		}
	}
}

func runIndex() {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: vecsearch index [flags] <file-or-directory>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	components := directComponents(*configPath)
	defer components.Close()

	ctx := context.Background()
	info, err := os.Stat(path)
	if err != nil {
		components.Close()
		fmt.Printf("Failed to stat path: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		n, err := components.Indexer.IndexDirectory(ctx, path, components.Config.Watch.Extensions)
		if err != nil {
			components.Close()
			fmt.Printf("Indexing directory failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Indexed %d file(s) from %s\n", n, path)
		return
	}
	// Single file: no extension filter
	outcomes, err := components.Indexer.IndexFile(ctx, path, nil)
	if err != nil {
		components.Close()
		fmt.Printf("Indexing failed: %v\n", err)
		os.Exit(1)
	}
	if rejected := cli.WriteOutcomes(os.Stdout, outcomes); rejected > 0 {
		components.Close()
		os.Exit(2)
	}
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: vecsearch delete [flags] <document-id>")
		os.Exit(1)
	}
	docID := fs.Arg(0)

	components := directComponents(*configPath)
	defer components.Close()

	if err := components.Indexer.DeleteDocument(context.Background(), docID); err != nil {
		components.Close()
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Document deleted: %s\n", docID)
}

func runMapping() {
	fs := flag.NewFlagSet("mapping", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = use direct storage)")
	file := fs.String("file", "", "JSON mapping to merge into the current one; without it the mapping is printed")
	includeDefaults := fs.Bool("include-defaults", false, "print default parameters too")
	_ = fs.Parse(os.Args[2:])

	var update []byte
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read mapping: %v\n", err)
			os.Exit(1)
		}
		update = data
	}

	var rendered interface{}
	if *serverURL != "" {
		var err error
		if update != nil {
			err = callAPIRaw(http.MethodPut, *serverURL+"/api/v1/mapping", bytes.NewReader(update), &rendered)
		} else {
			url := *serverURL + "/api/v1/mapping"
			if *includeDefaults {
				url += "?include_defaults=true"
			}
			err = callAPI(http.MethodGet, url, nil, &rendered)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Mapping failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		components := directComponents(*configPath)
		defer components.Close()
		m := components.Indexer.Mapping()
		if update != nil {
			var err error
			m, err = components.Indexer.UpdateMapping(context.Background(), update)
			if err != nil {
				components.Close()
				fmt.Fprintf(os.Stderr, "Mapping failed: %v\n", err)
				os.Exit(1)
			}
		}
		rendered = m.Render(*includeDefaults)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rendered); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// directComponents loads config and opens storage and the index for commands that
// work without a server. Exits on failure.
func directComponents(configPath string) *Components {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return components
}

// Components holds initialized services.
type Components struct {
	Config  *config.Config
	Storage storage.Storage
	Index   pointindex.Index
	Metrics *metrics.Metrics
	Indexer *indexer.Indexer
	Engine  *search.Engine
	logger  *zap.Logger
	closed  bool
}

// Close saves the memory index snapshot, if any, and releases storage and the index.
// It is safe to call more than once.
func (c *Components) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if mem, ok := c.Index.(*pointindex.MemoryIndex); ok && c.Config.Storage.IndexPath != "" {
		if err := mem.Save(c.Config.Storage.IndexPath); err != nil {
			c.logger.Warn("memory index save failed", zap.String("path", c.Config.Storage.IndexPath), zap.Error(err))
		}
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	_ = c.logger.Sync()
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	index, err := pointindex.NewIndex(cfg.Index.Type, cfg.Storage.IndexPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize point index: %w", err)
	}
	if mem, ok := index.(*pointindex.MemoryIndex); ok && cfg.Storage.IndexPath != "" {
		if loadErr := mem.Load(cfg.Storage.IndexPath); loadErr != nil {
			logger.Warn("memory index load skipped", zap.String("path", cfg.Storage.IndexPath), zap.Error(loadErr))
		}
	}
	logger.Debug("point index initialized", zap.String("type", index.Type()))

	m := metrics.New()
	idx := indexer.NewIndexer(store, index, &cfg.Index, indexer.WithLogger(logger), indexer.WithMetrics(m))
	components := &Components{
		Config:  cfg,
		Storage: store,
		Index:   index,
		Metrics: m,
		Indexer: idx,
		logger:  logger,
	}

	ctx := context.Background()
	if err := idx.Restore(ctx); err != nil {
		components.Close()
		return nil, fmt.Errorf("failed to restore mapping: %w", err)
	}
	if cfg.Index.MappingFile != "" {
		data, err := os.ReadFile(cfg.Index.MappingFile)
		if err != nil {
			components.Close()
			return nil, fmt.Errorf("failed to read mapping file: %w", err)
		}
		if _, err := idx.UpdateMapping(ctx, data); err != nil {
			components.Close()
			return nil, fmt.Errorf("failed to apply mapping file %s: %w", cfg.Index.MappingFile, err)
		}
	}

	components.Engine = search.NewEngine(store, index, idx, &cfg.Search, search.WithLogger(logger), search.WithMetrics(m))
	return components, nil
}

func printUsage() {
	fmt.Println(`vecsearch - Local search engine for multi-dimensional vector fields

Usage:
  vecsearch server [flags]             Start the HTTP server
  vecsearch search [flags] <field>     Run a range, term or exists query on a vector field
  vecsearch index [flags] <path>       Index an NDJSON file or a directory of them
  vecsearch delete [flags] <id>        Delete a document
  vecsearch mapping [flags]            Show or update the field mapping
  vecsearch status [flags]             Show storage and index status
  vecsearch version                    Show version
  vecsearch help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/vecsearch/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path (for direct storage mode and the default size)
  --server string    Server URL (default: http://localhost:9200). Use --server "" for direct storage.
  --gte, --gt        Lower corner of the box, inclusive or exclusive
  --lte, --lt        Upper corner of the box, inclusive or exclusive
  --term string      Exact value (vector fields reject term queries)
  --exists           Match documents that have the field
  --from int         Hits to skip (default: 0)
  --size int         Hits to return (default from config, or 10)
  --no-source        Omit document sources
  --output string    Output format: text or json (default: text)

Index / Delete Flags:
  --config string    Config file path

Mapping Flags:
  --config string       Config file path (for direct storage mode)
  --server string       Server URL (default: http://localhost:9200). Use --server "" for direct storage.
  --file string         JSON mapping to merge, e.g. {"properties": {"location": {"type": "vector", "dimensions": 2}}}
  --include-defaults    Print default parameters too

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:9200). Use --server "" for direct storage.
  --output string    Output format: text or json (default: text)

Examples:
  vecsearch server
  vecsearch mapping --file mapping.json
  vecsearch index points.ndjson
  vecsearch search location --gte 0,0 --lte 10,10
  vecsearch search --output json --exists location
  vecsearch delete doc-123
  vecsearch status --output json`)
}
