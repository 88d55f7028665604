package query

import "fmt"

// ConfigurationError reports a property-mapping registry that cannot answer a
// lookup: the pair was never registered, or it was registered twice.
type ConfigurationError struct {
	Source Tag
	Target Tag
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("property mapping <%s,%s>: %s", e.Source, e.Target, e.Reason)
}

// InvalidFieldError is returned when an order-by clause names a field that has no
// mapping entry.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("key mapping for %s is missing", e.Field)
}

// FieldNotFoundError is returned when a requested projection field does not exist
// on the shape.
type FieldNotFoundError struct {
	Field string
	Shape string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("property %s was not found on %s", e.Field, e.Shape)
}
