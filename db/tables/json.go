package tables

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// MapStructure is a json serialized map stored in a text column
type MapStructure map[string]interface{}

func (m MapStructure) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *MapStructure) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("unsupported type for MapStructure")
}
