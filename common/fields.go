package common

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList list of strings stored as a JSON encoded DB column
type StringList []string

/*
Value implements driver.Valuer

	@return the JSON encoded list
*/
func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

/*
Scan implements sql.Scanner

	@param value interface{} - raw DB column value
*/
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unable to scan type %T into StringList", value)
}

// JSONColumn generic JSON encoded DB column
type JSONColumn[T any] struct {
	V *T
}

/*
Value implements driver.Valuer

	@return the JSON encoded payload
*/
func (c JSONColumn[T]) Value() (driver.Value, error) {
	if c.V == nil {
		return nil, nil
	}
	return json.Marshal(c.V)
}

/*
Scan implements sql.Scanner

	@param value interface{} - raw DB column value
*/
func (c *JSONColumn[T]) Scan(value interface{}) error {
	if value == nil {
		c.V = nil
		return nil
	}
	parsed := new(T)
	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, parsed); err != nil {
			return err
		}
	case string:
		if err := json.Unmarshal([]byte(v), parsed); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unable to scan type %T into JSONColumn", value)
	}
	c.V = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (c JSONColumn[T]) MarshalJSON() ([]byte, error) {
	if c.V == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.V)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *JSONColumn[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		c.V = nil
		return nil
	}
	parsed := new(T)
	if err := json.Unmarshal(data, parsed); err != nil {
		return err
	}
	c.V = parsed
	return nil
}
