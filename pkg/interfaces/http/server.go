package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jakesmtg/cardbox/pkg/application/services"
	"github.com/jakesmtg/cardbox/pkg/infrastructure/repositories/csv"
)

// Display columns served by the data endpoint. The full export row set
// stays in the cache for inventory generation.
var displayColumns = []string{
	"TCGplayer Id",
	"Set Name",
	"Product Name",
	"Number",
	"Condition",
	"TCG Market Price",
	"Rarity",
	"TCG Low Price",
}

// Config holds the viewer server settings.
type Config struct {
	Addr       string
	CatalogDir string
	ExportDir  string
	CacheTTL   time.Duration
}

// Server is the read-only catalog viewer: paginated browsing over the
// export CSV plus receiving-CSV generation. It never touches a ledger.
type Server struct {
	config  Config
	catalog *catalogCache
}

// NewServer creates a viewer server.
func NewServer(config Config) *Server {
	if config.CacheTTL <= 0 {
		config.CacheTTL = 5 * time.Minute
	}
	return &Server{
		config:  config,
		catalog: newCatalogCache(config.CatalogDir, config.CacheTTL),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/api/data", s.handleData)
	r.Get("/api/filters", s.handleFilters)
	r.Post("/api/generate-inventory", s.handleGenerateInventory)

	return r
}

// ListenAndServe runs the viewer until the listener fails.
func (s *Server) ListenAndServe() error {
	log.Printf("viewer listening on %s", s.config.Addr)
	return http.ListenAndServe(s.config.Addr, s.Router())
}

type pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type dataResponse struct {
	Data       []map[string]string `json:"data"`
	Pagination pagination          `json:"pagination"`
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalog.get()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	query := r.URL.Query()
	page := queryInt(query.Get("page"), 1)
	pageSize := queryInt(query.Get("pageSize"), 50)
	search := strings.ToLower(query.Get("search"))
	sortBy := query.Get("sortBy")
	sortOrder := query.Get("sortOrder")
	filterSet := query.Get("filterSet")
	filterCondition := query.Get("filterCondition")
	priceMin, hasPriceMin := queryPrice(query.Get("filterPriceMin"))
	priceMax, hasPriceMax := queryPrice(query.Get("filterPriceMax"))

	rows := make([]map[string]string, 0, len(catalog.Rows))
	for _, row := range catalog.Rows {
		if search != "" && !matchesSearch(row, search) {
			continue
		}
		if filterSet != "" && row["Set Name"] != filterSet {
			continue
		}
		if filterCondition != "" && row["Condition"] != filterCondition {
			continue
		}
		if hasPriceMin || hasPriceMax {
			price, err := decimal.NewFromString(strings.TrimSpace(row["TCG Market Price"]))
			if err != nil {
				continue
			}
			if hasPriceMin && price.LessThan(priceMin) {
				continue
			}
			if hasPriceMax && price.GreaterThan(priceMax) {
				continue
			}
		}
		rows = append(rows, displayRow(row))
	}

	if sortBy != "" {
		sortRows(rows, sortBy, sortOrder == "desc")
	}

	total := len(rows)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, dataResponse{
		Data: rows[start:end],
		Pagination: pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalog.get()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{
		"sets":       distinct(catalog.Rows, "Set Name"),
		"conditions": distinct(catalog.Rows, "Condition"),
	})
}

type generateRequest struct {
	Quantities map[string]int64 `json:"quantities"`
}

func (s *Server) handleGenerateInventory(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Quantities) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid quantities data"))
		return
	}

	catalog, err := s.catalog.get()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var rows []map[string]string
	for _, row := range catalog.Rows {
		quantity := req.Quantities[row["TCGplayer Id"]]
		if quantity <= 0 {
			continue
		}

		market, _ := decimal.NewFromString(strings.TrimSpace(row["TCG Market Price"]))
		low, _ := decimal.NewFromString(strings.TrimSpace(row["TCG Low Price"]))
		price := services.MarketplacePrice(market, low, row["Rarity"])

		out := make(map[string]string, len(row)+3)
		for name, value := range row {
			out[name] = value
		}
		out["Total Quantity"] = strconv.FormatInt(quantity, 10)
		out["Add to Quantity"] = strconv.FormatInt(quantity, 10)
		out["TCG Marketplace Price"] = price.StringFixed(2)
		rows = append(rows, out)
	}

	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("no rows with quantity > 0"))
		return
	}

	header := catalog.Header
	for _, required := range []string{"Total Quantity", "Add to Quantity", "TCG Marketplace Price"} {
		if !contains(header, required) {
			header = append(header, required)
		}
	}

	filename := fmt.Sprintf("inventory_%s_%s.csv",
		time.Now().Format("2006-01-02T15-04-05"), uuid.NewString()[:8])
	path := filepath.Join(s.config.ExportDir, filename)
	if err := csv.WriteCatalog(path, header, rows); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"filename":     filename,
		"rowsExported": len(rows),
		"message":      fmt.Sprintf("Inventory CSV generated successfully: %s", filename),
	})
}

func matchesSearch(row map[string]string, search string) bool {
	for _, column := range []string{"Set Name", "Product Name", "Number", "Condition"} {
		if strings.Contains(strings.ToLower(row[column]), search) {
			return true
		}
	}
	return false
}

func displayRow(row map[string]string) map[string]string {
	out := make(map[string]string, len(displayColumns))
	for _, column := range displayColumns {
		out[column] = row[column]
	}
	return out
}

func sortRows(rows []map[string]string, sortBy string, descending bool) {
	numeric := sortBy == "TCG Market Price"
	compare := func(i, j int) int {
		if numeric {
			a, errA := decimal.NewFromString(strings.TrimSpace(rows[i][sortBy]))
			b, errB := decimal.NewFromString(strings.TrimSpace(rows[j][sortBy]))
			if errA != nil {
				a = decimal.Zero
			}
			if errB != nil {
				b = decimal.Zero
			}
			return a.Cmp(b)
		}
		return strings.Compare(strings.ToLower(rows[i][sortBy]), strings.ToLower(rows[j][sortBy]))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return compare(i, j) > 0
		}
		return compare(i, j) < 0
	})
}

func distinct(rows []map[string]string, column string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, row := range rows {
		value := row[column]
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func queryInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func queryPrice(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("viewer: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
