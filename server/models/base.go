package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned whenever no record matches the given
// identifier - including identifiers that aren't well-formed hex.
var ErrNotFound = mongo.ErrNoDocuments

type BaseModel struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt"`
}

// ValidationError carries the complete list of violated field
// constraints for a record, not just the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// Date accepts both date-only ("2006-01-02") & RFC3339 values on the
// wire, while persisting as a plain BSON datetime.
type Date struct {
	time.Time
}

func ParseDate(value string) (Date, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return Date{Time: t}, nil
		}
	}

	return Date{}, fmt.Errorf("invalid date: %q", value)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(time.RFC3339))), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.Time)
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	return raw.Unmarshal(&d.Time)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func objectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never match a record
		return primitive.NilObjectID, ErrNotFound
	}

	return oid, nil
}

// ApplyPartial lays the fields in data over doc & decodes the merged
// document into out, leaving doc untouched.
func ApplyPartial(doc interface{}, data map[string]interface{}, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}

	merged := bson.M{}
	if err := bson.Unmarshal(raw, &merged); err != nil {
		return err
	}

	for key, value := range data {
		merged[key] = value
	}

	raw, err = bson.Marshal(merged)
	if err != nil {
		return err
	}

	return bson.Unmarshal(raw, out)
}

// removeImmutableFields strips system-managed fields from a partial
// update, so callers can never overwrite them.
func removeImmutableFields(data map[string]interface{}) {
	for _, field := range []string{"_id", "id", "createdAt", "updatedAt"} {
		delete(data, field)
	}
}
