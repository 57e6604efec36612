package models

import (
	"fmt"
	"math"
)

const (
	// CheeseTable is the name of the table backing the provider
	CheeseTable = "cheeses"

	// ColumnID is the rowid column of the cheeses table
	ColumnID = "_id"

	// ColumnName is the name column of the cheeses table
	ColumnName = "name"
)

// Cheese is the single record type exposed through the provider
type Cheese struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

// Values holds column values keyed by column name, the shape used by
// batch files and bulk payloads
type Values map[string]any

// CheeseFromValues builds a Cheese from column values.
// Columns that are absent are left at their zero value.
func CheeseFromValues(values Values) (Cheese, error) {
	var cheese Cheese

	if raw, ok := values[ColumnID]; ok {
		id, err := toInt64(raw)
		if err != nil {
			return Cheese{}, fmt.Errorf("column %s: %w", ColumnID, err)
		}
		cheese.ID = id
	}

	if raw, ok := values[ColumnName]; ok {
		name, ok := raw.(string)
		if !ok {
			return Cheese{}, fmt.Errorf("column %s: expected string, got %T", ColumnName, raw)
		}
		cheese.Name = name
	}

	return cheese, nil
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d out of range", v)
		}
		return int64(v), nil
	case float64:
		if v < math.MinInt64 || v >= math.MaxInt64 || v != math.Trunc(v) {
			return 0, fmt.Errorf("expected integer, got %v", v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}
