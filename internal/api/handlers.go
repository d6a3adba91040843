package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dq-backend/internal/config"
	"dq-backend/internal/dataset"
	"dq-backend/internal/datasource"
	"dq-backend/internal/models"
	"dq-backend/internal/quality"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const version = "1.0.0"

// Handler wires the HTTP surface to the quality engine.
type Handler struct {
	Config  *config.Config
	Quality *quality.Service
	Rules   *config.RuleSet

	mu        sync.Mutex
	currentDB datasource.DataSource
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.Config, svc *quality.Service, rules *config.RuleSet) *Handler {
	return &Handler{Config: cfg, Quality: svc, Rules: rules}
}

// RegisterRoutes mounts every endpoint on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)

	r.Post("/analyze", h.Analyze)
	r.Post("/analyze/custom", h.AnalyzeCustom)

	r.Post("/db/connect", h.ConnectDB)
	r.Get("/db/tables", h.ListTables)
	r.Post("/db/analyze", h.AnalyzeTable)
}

// Root returns the service banner with an endpoint map.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.ServiceInfo{
		Message: "Welcome to the Data Quality API",
		Endpoints: map[string]string{
			"/analyze":        "Upload a CSV or XLSX file for data quality analysis",
			"/analyze/custom": "Upload a file with custom validation and consistency rules",
			"/db/analyze":     "Analyze a table from the connected database",
		},
		Version: version,
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// Analyze runs the default quality checks against an uploaded file.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ds, filename, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	opts := quality.Options{
		ValidationRules:  h.Rules.ValidationRules,
		ConsistencyRules: h.Rules.Consistency(),
	}
	h.runAnalysis(w, ds, opts, filename)
}

// AnalyzeCustom runs quality checks with caller-supplied rules. Rules
// arrive as JSON form fields next to the multipart file: validation_rules
// maps columns to patterns, consistency_rules maps rule names to
// {column, operator, value} specs.
func (h *Handler) AnalyzeCustom(w http.ResponseWriter, r *http.Request) {
	ds, filename, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	var opts quality.Options

	if raw := r.FormValue("validation_rules"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.ValidationRules); err != nil {
			http.Error(w, fmt.Sprintf("Invalid validation_rules: %v", err), http.StatusBadRequest)
			return
		}
	}

	if raw := r.FormValue("consistency_rules"); raw != "" {
		var specs map[string]quality.RuleSpec
		if err := json.Unmarshal([]byte(raw), &specs); err != nil {
			http.Error(w, fmt.Sprintf("Invalid consistency_rules: %v", err), http.StatusBadRequest)
			return
		}
		rules, err := quality.CompileRuleSpecs(specs)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid consistency_rules: %v", err), http.StatusBadRequest)
			return
		}
		opts.ConsistencyRules = rules
	}

	h.runAnalysis(w, ds, opts, filename)
}

// readUpload extracts the multipart file, stores a copy, and parses it
// into a dataset. On failure it writes the HTTP error and returns
// ok=false.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.Config.MaxUploadBytes); err != nil {
		http.Error(w, "File too large or malformed multipart body", http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading file", http.StatusInternalServerError)
		return nil, "", false
	}

	h.storeUpload(header.Filename, data)

	var ds *dataset.Dataset
	switch {
	case strings.HasSuffix(strings.ToLower(header.Filename), ".csv"):
		ds, err = dataset.ReadCSV(data)
	case strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx"):
		ds, err = dataset.ReadXLSX(data, r.FormValue("sheet"))
	default:
		http.Error(w, "File must be a CSV or XLSX", http.StatusBadRequest)
		return nil, "", false
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse %s: %v", header.Filename, err), http.StatusBadRequest)
		return nil, "", false
	}
	return ds, header.Filename, true
}

// storeUpload archives a copy of the upload. Best effort; analysis does
// not depend on the stored file.
func (h *Handler) storeUpload(name string, data []byte) {
	if err := os.MkdirAll(h.Config.UploadDir, 0o755); err != nil {
		slog.Warn("upload dir unavailable", "dir", h.Config.UploadDir, "error", err)
		return
	}
	stored := filepath.Join(h.Config.UploadDir,
		fmt.Sprintf("%s_%s", uuid.NewString()[:8], filepath.Base(name)))
	if err := os.WriteFile(stored, data, 0o644); err != nil {
		slog.Warn("failed to archive upload", "path", stored, "error", err)
	}
}

func (h *Handler) runAnalysis(w http.ResponseWriter, ds *dataset.Dataset, opts quality.Options, filename string) {
	info := quality.FileInfo{
		Filename:    filename,
		Rows:        ds.NumRows(),
		Columns:     ds.NumCols(),
		ColumnNames: ds.Columns,
	}

	report, err := h.Quality.Run(ds, opts, info)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error processing file: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

// ConnectDB establishes a database connection for table analysis.
func (h *Handler) ConnectDB(w http.ResponseWriter, r *http.Request) {
	var cfg datasource.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if cfg.Type != "postgres" {
		http.Error(w, "Only postgres is supported currently", http.StatusBadRequest)
		return
	}

	ds := &datasource.Postgres{}
	if err := ds.Connect(cfg); err != nil {
		http.Error(w, fmt.Sprintf("Failed to connect: %v", err), http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	if h.currentDB != nil {
		h.currentDB.Close()
	}
	h.currentDB = ds
	h.mu.Unlock()

	writeJSON(w, models.ConnectResponse{Status: "connected"})
}

// ListTables returns tables from the connected database.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	db := h.database()
	if db == nil {
		http.Error(w, "No database connection", http.StatusBadRequest)
		return
	}

	tables, err := db.ListTables()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error listing tables: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, models.TablesResponse{Tables: tables})
}

// AnalyzeTable loads a table from the connected database and runs the
// default quality checks against it.
func (h *Handler) AnalyzeTable(w http.ResponseWriter, r *http.Request) {
	db := h.database()
	if db == nil {
		http.Error(w, "No database connection", http.StatusBadRequest)
		return
	}

	var req models.AnalyzeTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.TableName == "" {
		http.Error(w, "table_name is required", http.StatusBadRequest)
		return
	}

	ds, err := db.LoadTable(req.TableName, h.Config.DBRowLimit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error fetching data: %v", err), http.StatusInternalServerError)
		return
	}
	if ds.NumRows() == 0 {
		http.Error(w, "Table is empty", http.StatusBadRequest)
		return
	}

	opts := quality.Options{
		ValidationRules:  h.Rules.ValidationRules,
		ConsistencyRules: h.Rules.Consistency(),
	}
	h.runAnalysis(w, ds, opts, req.TableName)
}

func (h *Handler) database() datasource.DataSource {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentDB
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
