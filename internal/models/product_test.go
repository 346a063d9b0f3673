// internal/models/product_test.go
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestNewProduct_Defaults(t *testing.T) {
	p := NewProduct(ProductFields{
		Name:     "Arroz",
		Category: StringPtr(""),
		Brand:    StringPtr("Tio João"),
	}, refNow)

	require.NotEmpty(t, p.ID)
	parsed, err := uuid.Parse(p.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	assert.Equal(t, "Arroz", p.Name)
	assert.Nil(t, p.Category, "empty optional text is stored as null")
	require.NotNil(t, p.Brand)
	assert.Equal(t, "Tio João", *p.Brand)
	assert.Nil(t, p.Details)
	assert.Nil(t, p.Measure)
	assert.Zero(t, p.Price)
	assert.Equal(t, refNow, p.CreatedAt)
	assert.Nil(t, p.UpdatedAt)
}

func TestNewProduct_KeepsGivenValues(t *testing.T) {
	created := refNow.AddDate(0, -2, 0)
	updated := refNow.AddDate(0, 0, -1)

	p := NewProduct(ProductFields{
		ID:        "abc",
		Name:      "Feijão",
		Price:     Float64Ptr(8.5),
		CreatedAt: &created,
		UpdatedAt: &updated,
	}, refNow)

	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, 8.5, p.Price)
	assert.Equal(t, created, p.CreatedAt)
	require.NotNil(t, p.UpdatedAt)
	assert.Equal(t, updated, *p.UpdatedAt)
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestApply(t *testing.T) {
	p := NewProduct(ProductFields{
		ID:       "p1",
		Name:     "Leite",
		Category: StringPtr("Laticínios"),
		Brand:    StringPtr("Itambé"),
		Price:    Float64Ptr(5),
	}, refNow)

	later := refNow.Add(time.Hour)
	p.Apply(ProductChanges{
		Name:     StringPtr("Leite Integral"),
		Category: StringPtr(""),
		Price:    Float64Ptr(6.25),
	}, later)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, refNow, p.CreatedAt)
	assert.Equal(t, "Leite Integral", p.Name)
	assert.Nil(t, p.Category)
	require.NotNil(t, p.Brand, "nil changes leave the field untouched")
	assert.Equal(t, "Itambé", *p.Brand)
	assert.Equal(t, 6.25, p.Price)
	require.NotNil(t, p.UpdatedAt)
	assert.Equal(t, later, *p.UpdatedAt)
}

func TestDateStatus(t *testing.T) {
	tests := []struct {
		name    string
		created time.Time
		updated *time.Time
		want    DateStatus
	}{
		{"two weeks old", refNow.AddDate(0, 0, -14), nil, DateStatusNew},
		{"two months old", refNow.AddDate(0, -2, 0), nil, DateStatusAvg},
		{"four months old", refNow.AddDate(0, -4, 0), nil, DateStatusOld},
		{"exactly one month", refNow.AddDate(0, -1, 0), nil, DateStatusNew},
		{"exactly three months", refNow.AddDate(0, -3, 0), nil, DateStatusAvg},
		{"old but recently updated", refNow.AddDate(-1, 0, 0), timePtr(refNow.AddDate(0, 0, -3)), DateStatusNew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Name: "x", CreatedAt: tt.created, UpdatedAt: tt.updated}
			assert.Equal(t, tt.want, p.DateStatus(refNow))
		})
	}
}

func TestClone_SharesNoPointers(t *testing.T) {
	p := NewProduct(ProductFields{Name: "Café", Details: StringPtr("500g")}, refNow)
	p.Apply(ProductChanges{Price: Float64Ptr(1)}, refNow)

	c := p.Clone()
	*c.Details = "1kg"
	*c.UpdatedAt = refNow.Add(time.Hour)

	assert.Equal(t, "500g", *p.Details)
	assert.Equal(t, refNow, *p.UpdatedAt)
}

func TestNameKey(t *testing.T) {
	p := Product{Name: "AÇÚCAR Refinado"}
	assert.Equal(t, "açúcar refinado", p.NameKey())
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestProductFields_UnmarshalTimestamps(t *testing.T) {
	var f ProductFields
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Arroz", "createdAt": "2024-01-01", "updatedAt": null}`), &f))
	require.NotNil(t, f.CreatedAt)
	assert.True(t, f.CreatedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, f.UpdatedAt)
	assert.Equal(t, "Arroz", f.Name)

	f = ProductFields{}
	require.NoError(t, json.Unmarshal([]byte(`{"createdAt": "2024-01-01T10:30:00.123Z", "updatedAt": "2024-02-01T08:00:00"}`), &f))
	assert.True(t, f.CreatedAt.Equal(time.Date(2024, 1, 1, 10, 30, 0, 123e6, time.UTC)))
	require.NotNil(t, f.UpdatedAt)
	assert.True(t, f.UpdatedAt.Equal(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)))

	f = ProductFields{}
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Sal"}`), &f))
	assert.Nil(t, f.CreatedAt)
	assert.Nil(t, f.UpdatedAt)

	for _, raw := range []string{`{"createdAt": "ontem"}`, `{"updatedAt": "2024-13-01"}`, `{"createdAt": 5}`} {
		assert.Error(t, json.Unmarshal([]byte(raw), &ProductFields{}), raw)
	}
}
