// internal/services/product_service.go
package services

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-manager/internal/models"
	"github.com/javajoker/catalog-manager/internal/storage"
	"github.com/javajoker/catalog-manager/internal/utils"
)

// ExportFileName is the name offered for downloaded exports.
const ExportFileName = "produtos.json"

var (
	ErrCorruptData   = errors.New("persisted catalog data is corrupt")
	ErrInvalidImport = errors.New("invalid import document")
)

//go:embed demo_products.json
var demoProductsJSON []byte

// Clock returns the current time. Timestamps are stored with millisecond
// precision in UTC.
type Clock func() time.Time

func DefaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// AuditRecorder receives one entry per successful mutation.
type AuditRecorder interface {
	Record(ctx context.Context, action models.AuditAction, productIDs []string)
}

type StoreOptions struct {
	Clock Clock
	Audit AuditRecorder
	// StartEmptyOnCorrupt makes a corrupt slot start as an empty catalog
	// instead of failing construction.
	StartEmptyOnCorrupt bool
	// SeedDemoOnEmpty loads the demo set when the slot has never been
	// written.
	SeedDemoOnEmpty bool
}

// ProductService owns the product list and mirrors it to a storage slot
// after every mutation. Calls are serialised.
type ProductService struct {
	mu       sync.Mutex
	slot     storage.Slot
	products []models.Product
	now      Clock
	audit    AuditRecorder
}

type SaveProductRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" validate:"notblank"`
	Category *string  `json:"category"`
	Brand    *string  `json:"brand"`
	Details  *string  `json:"details"`
	Measure  *string  `json:"measure"`
	Price    *float64 `json:"price" validate:"required,finite"`
}

type ImportResult struct {
	Added  int `json:"added"`
	Merged int `json:"merged"`
}

// ValidationError is returned by Save when the input is rejected. No state
// is changed.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewProductService loads the catalog from slot. A corrupt slot yields an
// error wrapping ErrCorruptData unless opts.StartEmptyOnCorrupt is set.
func NewProductService(ctx context.Context, slot storage.Slot, opts StoreOptions) (*ProductService, error) {
	s := &ProductService{
		slot:  slot,
		now:   opts.Clock,
		audit: opts.Audit,
	}
	if s.now == nil {
		s.now = DefaultClock
	}

	empty, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptData) || !opts.StartEmptyOnCorrupt {
			return nil, err
		}
		logrus.WithError(err).Warn("Persisted catalog is corrupt, starting with an empty list")
		s.products = []models.Product{}
	}

	if empty && opts.SeedDemoOnEmpty {
		if err := s.LoadDemoData(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		logrus.WithField("count", len(s.products)).Info("Seeded catalog with demo data")
	}

	return s, nil
}

func (s *ProductService) load(ctx context.Context) (bool, error) {
	data, err := s.slot.Load(ctx)
	if errors.Is(err, storage.ErrSlotEmpty) {
		s.products = []models.Product{}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load products: %w", err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	now := s.now()
	s.products = make([]models.Product, 0, len(records))
	for _, record := range records {
		s.products = append(s.products, models.NewProduct(record, now))
	}

	logrus.WithField("count", len(s.products)).Debug("Loaded catalog")
	return false, nil
}

// Save creates or updates a product. The target is the product whose id
// equals req.ID, else the product whose name matches case-insensitively,
// else a new product is appended.
//
// The name fallback means two distinct products that happen to share a
// name collapse into one on save.
func (s *ProductService) Save(ctx context.Context, req *SaveProductRequest) (models.Product, error) {
	req.normalize()
	if err := utils.ValidateStruct(req); err != nil {
		return models.Product{}, &ValidationError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	idx := -1
	if req.ID != "" {
		idx = s.indexByID(req.ID)
	}
	if idx < 0 {
		idx = s.indexByName(req.Name)
	}

	var product models.Product
	if idx >= 0 {
		s.products[idx].Apply(req.changes(), now)
		product = s.products[idx]
	} else {
		product = models.NewProduct(models.ProductFields{
			ID:       req.ID,
			Name:     req.Name,
			Category: req.Category,
			Brand:    req.Brand,
			Details:  req.Details,
			Measure:  req.Measure,
			Price:    req.Price,
		}, now)
		s.products = append(s.products, product)
	}

	if err := s.persist(ctx); err != nil {
		return product.Clone(), err
	}
	s.record(ctx, models.AuditActionSave, product.ID)

	logrus.WithFields(logrus.Fields{
		"id":      product.ID,
		"created": idx < 0,
	}).Debug("Product saved")
	return product.Clone(), nil
}

// GetByID returns the product with the given id.
func (s *ProductService) GetByID(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexByID(id); idx >= 0 {
		return s.products[idx].Clone(), true
	}
	return models.Product{}, false
}

// Delete removes the product with the given id and persists. An unknown id
// is not an error; removed reports whether anything was deleted.
func (s *ProductService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(s.products)
	s.products = kept

	if err := s.persist(ctx); err != nil {
		return removed, err
	}
	if removed {
		s.record(ctx, models.AuditActionDelete, id)
	}
	return removed, nil
}

// Search returns the products whose field contains term, ignoring case,
// accents and cedillas. A blank term returns every product in stored
// order. An unsupported field returns nothing.
func (s *ProductService) Search(term string, field models.SearchField) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(term) == "" {
		return s.snapshot()
	}
	if !field.Valid() {
		return []models.Product{}
	}

	needle := utils.FoldText(term)
	results := []models.Product{}
	for _, p := range s.products {
		value := searchValue(p, field)
		if value == nil || *value == "" {
			continue
		}
		if utils.ContainsFolded(*value, needle) {
			results = append(results, p.Clone())
		}
	}
	return results
}

func searchValue(p models.Product, field models.SearchField) *string {
	switch field {
	case models.SearchFieldName:
		return &p.Name
	case models.SearchFieldCategory:
		return p.Category
	case models.SearchFieldDetails:
		return p.Details
	}
	return nil
}

// ImportMerge merges records into the catalog in input order. A record
// whose lowercase name matches an existing product overwrites that
// product's fields, keeping its id and createdAt; any other record is
// appended. The catalog is persisted once at the end.
func (s *ProductService) ImportMerge(ctx context.Context, records []models.ProductFields) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result ImportResult
	now := s.now()
	touched := make([]string, 0, len(records))

	for _, record := range records {
		price := 0.0
		if record.Price != nil {
			price = *record.Price
		}

		if idx := s.indexByName(record.Name); idx >= 0 {
			name := record.Name
			s.products[idx].Apply(models.ProductChanges{
				Name:     &name,
				Category: valueOrEmpty(record.Category),
				Brand:    valueOrEmpty(record.Brand),
				Details:  valueOrEmpty(record.Details),
				Measure:  valueOrEmpty(record.Measure),
				Price:    &price,
			}, now)
			touched = append(touched, s.products[idx].ID)
			result.Merged++
			continue
		}

		fields := record
		fields.Price = &price
		if fields.ID != "" && s.indexByID(fields.ID) >= 0 {
			// keep ids unique within the store
			fields.ID = ""
		}
		product := models.NewProduct(fields, now)
		s.products = append(s.products, product)
		touched = append(touched, product.ID)
		result.Added++
	}

	if err := s.persist(ctx); err != nil {
		return result, err
	}
	s.record(ctx, models.AuditActionImport, touched...)

	logrus.WithFields(logrus.Fields{
		"added":  result.Added,
		"merged": result.Merged,
	}).Info("Catalog import merged")
	return result, nil
}

// LoadDemoData replaces the whole catalog with the built-in demo set.
func (s *ProductService) LoadDemoData(ctx context.Context) error {
	records, err := DemoRecords()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.products = make([]models.Product, 0, len(records))
	ids := make([]string, 0, len(records))
	for _, record := range records {
		product := models.NewProduct(record, now)
		s.products = append(s.products, product)
		ids = append(ids, product.ID)
	}

	if err := s.persist(ctx); err != nil {
		return err
	}
	s.record(ctx, models.AuditActionDemo, ids...)
	return nil
}

// ClearAll discards every product and persists the empty list.
func (s *ProductService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.products)
	s.products = []models.Product{}

	if err := s.persist(ctx); err != nil {
		return err
	}
	s.record(ctx, models.AuditActionClearAll)

	logrus.WithField("count", count).Info("Catalog cleared")
	return nil
}

// Products returns a copy of the catalog in stored order.
func (s *ProductService) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

func (s *ProductService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.products)
}

// Now exposes the store clock so callers classify date status against the
// same reference time.
func (s *ProductService) Now() time.Time {
	return s.now()
}

// Export writes the catalog as JSON indented with four spaces.
func (s *ProductService) Export(w io.Writer) error {
	products := s.Products()

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// ParseImport decodes an import document. Anything other than a JSON array
// of product objects yields an error wrapping ErrInvalidImport.
func ParseImport(data []byte) ([]models.ProductFields, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	return records, nil
}

// DemoRecords returns the built-in demo set.
func DemoRecords() ([]models.ProductFields, error) {
	records, err := decodeRecords(demoProductsJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode demo data: %w", err)
	}
	return records, nil
}

// SortByName orders products by name, ignoring case and accents.
func SortByName(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return utils.FoldText(products[i].Name) < utils.FoldText(products[j].Name)
	})
}

func decodeRecords(data []byte) ([]models.ProductFields, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("top-level value is not an array")
	}

	var records []models.ProductFields
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *ProductService) persist(ctx context.Context) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.products); err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	if err := s.slot.Save(ctx, bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		return fmt.Errorf("failed to persist products: %w", err)
	}
	return nil
}

func (s *ProductService) record(ctx context.Context, action models.AuditAction, ids ...string) {
	if s.audit != nil {
		s.audit.Record(ctx, action, ids)
	}
}

func (s *ProductService) snapshot() []models.Product {
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

func (s *ProductService) indexByID(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *ProductService) indexByName(name string) int {
	key := strings.ToLower(name)
	for i, p := range s.products {
		if p.NameKey() == key {
			return i
		}
	}
	return -1
}

func (r *SaveProductRequest) normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Name = strings.TrimSpace(r.Name)
	for _, field := range []**string{&r.Category, &r.Brand, &r.Details, &r.Measure} {
		if *field != nil {
			v := strings.TrimSpace(**field)
			*field = &v
		}
	}
}

// changes lists every form field, so optional fields left empty are
// cleared on update.
func (r *SaveProductRequest) changes() models.ProductChanges {
	name := r.Name
	return models.ProductChanges{
		Name:     &name,
		Category: valueOrEmpty(r.Category),
		Brand:    valueOrEmpty(r.Brand),
		Details:  valueOrEmpty(r.Details),
		Measure:  valueOrEmpty(r.Measure),
		Price:    r.Price,
	}
}

func valueOrEmpty(s *string) *string {
	if s == nil {
		return models.StringPtr("")
	}
	v := *s
	return &v
}
