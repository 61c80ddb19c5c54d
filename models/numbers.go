package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var ErrNotNumeric = errors.New("value is not numeric")

// Quantity and Money are read from documents written by several clients,
// some of which send form values as strings. Both accept a number, a
// numeric string or null, from JSON and from stored BSON. They are always
// written back as numbers.
type Quantity int

type Money float64

func (q *Quantity) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	f, err := bsonNumber(t, data)
	if err != nil {
		return err
	}
	*q = Quantity(math.Round(f))
	return nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	f, err := jsonNumber(data)
	if err != nil {
		return err
	}
	*q = Quantity(math.Round(f))
	return nil
}

func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	f, err := bsonNumber(t, data)
	if err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	f, err := jsonNumber(data)
	if err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

func bsonNumber(t bsontype.Type, data []byte) (float64, error) {
	v := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		return float64(v.Int32()), nil
	case bsontype.Int64:
		return float64(v.Int64()), nil
	case bsontype.Double:
		return v.Double(), nil
	case bsontype.Decimal128:
		return parseNumber(v.Decimal128().String())
	case bsontype.String:
		return parseNumber(v.StringValue())
	case bsontype.Null, bsontype.Undefined:
		return 0, nil
	}
	return 0, fmt.Errorf("%w: bson %s", ErrNotNumeric, t)
}

func jsonNumber(data []byte) (float64, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case string:
		return parseNumber(n)
	}
	return 0, fmt.Errorf("%w: %s", ErrNotNumeric, data)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return f, nil
}
