// internal/models/product.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a single catalog entry. Optional text fields are nil when
// absent and serialise as explicit JSON nulls.
type Product struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  *string    `json:"category"`
	Brand     *string    `json:"brand"`
	Details   *string    `json:"details"`
	Measure   *string    `json:"measure"`
	Price     float64    `json:"price"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// ProductFields is the partial field set a Product is constructed from.
// It doubles as the shape of persisted and imported records, where id,
// price and the timestamps may be missing.
type ProductFields struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  *string    `json:"category"`
	Brand     *string    `json:"brand"`
	Details   *string    `json:"details"`
	Measure   *string    `json:"measure"`
	Price     *float64   `json:"price"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// recordTimeLayouts are the timestamp forms accepted in records. Values
// without a zone, including date-only ones, are read as UTC.
var recordTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// UnmarshalJSON decodes a record, accepting date-only timestamps.
func (f *ProductFields) UnmarshalJSON(data []byte) error {
	type alias ProductFields
	aux := struct {
		*alias
		CreatedAt *string `json:"createdAt"`
		UpdatedAt *string `json:"updatedAt"`
	}{alias: (*alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if f.CreatedAt, err = parseRecordTime(aux.CreatedAt); err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	if f.UpdatedAt, err = parseRecordTime(aux.UpdatedAt); err != nil {
		return fmt.Errorf("updatedAt: %w", err)
	}
	return nil
}

func parseRecordTime(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	for _, layout := range recordTimeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(*value)); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", *value)
}

// ProductChanges names the fields an update overwrites. Nil fields are left
// untouched. An optional text field set to "" is cleared to null.
type ProductChanges struct {
	Name     *string
	Category *string
	Brand    *string
	Details  *string
	Measure  *string
	Price    *float64
}

// NewProduct builds a Product from a partial field set. It performs no
// validation.
func NewProduct(fields ProductFields, now time.Time) Product {
	p := Product{
		ID:       fields.ID,
		Name:     fields.Name,
		Category: nullable(fields.Category),
		Brand:    nullable(fields.Brand),
		Details:  nullable(fields.Details),
		Measure:  nullable(fields.Measure),
	}
	if p.ID == "" {
		p.ID = GenerateID()
	}
	if fields.Price != nil {
		p.Price = *fields.Price
	}
	if fields.CreatedAt != nil && !fields.CreatedAt.IsZero() {
		p.CreatedAt = *fields.CreatedAt
	} else {
		p.CreatedAt = now
	}
	if fields.UpdatedAt != nil && !fields.UpdatedAt.IsZero() {
		updatedAt := *fields.UpdatedAt
		p.UpdatedAt = &updatedAt
	}
	return p
}

// GenerateID returns a time-ordered identifier: a millisecond timestamp
// followed by random bits (UUIDv7).
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Apply overwrites the fields present in changes and stamps UpdatedAt.
// ID and CreatedAt are never modified.
func (p *Product) Apply(changes ProductChanges, now time.Time) {
	if changes.Name != nil {
		p.Name = *changes.Name
	}
	if changes.Category != nil {
		p.Category = nullable(changes.Category)
	}
	if changes.Brand != nil {
		p.Brand = nullable(changes.Brand)
	}
	if changes.Details != nil {
		p.Details = nullable(changes.Details)
	}
	if changes.Measure != nil {
		p.Measure = nullable(changes.Measure)
	}
	if changes.Price != nil {
		p.Price = *changes.Price
	}
	p.UpdatedAt = &now
}

// DateStatus classifies how fresh the product is relative to now, using
// UpdatedAt when set and CreatedAt otherwise.
func (p Product) DateStatus(now time.Time) DateStatus {
	ref := p.CreatedAt
	if p.UpdatedAt != nil {
		ref = *p.UpdatedAt
	}

	switch {
	case ref.Before(now.AddDate(0, -3, 0)):
		return DateStatusOld
	case ref.Before(now.AddDate(0, -1, 0)):
		return DateStatusAvg
	default:
		return DateStatusNew
	}
}

// NameKey is the case-insensitive merge key used when no id matches.
func (p Product) NameKey() string {
	return strings.ToLower(p.Name)
}

// Clone returns a copy that shares no pointers with p.
func (p Product) Clone() Product {
	c := p
	c.Category = cloneString(p.Category)
	c.Brand = cloneString(p.Brand)
	c.Details = cloneString(p.Details)
	c.Measure = cloneString(p.Measure)
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		c.UpdatedAt = &t
	}
	return c
}

// Fields returns the product as a full field set, e.g. for re-import.
func (p Product) Fields() ProductFields {
	c := p.Clone()
	price := c.Price
	createdAt := c.CreatedAt
	return ProductFields{
		ID:        c.ID,
		Name:      c.Name,
		Category:  c.Category,
		Brand:     c.Brand,
		Details:   c.Details,
		Measure:   c.Measure,
		Price:     &price,
		CreatedAt: &createdAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
