package query

import "strings"

// OrderTerm is one storage column in an ordering clause.
type OrderTerm struct {
	Column     string
	Descending bool
}

// Order is a storage-native ordering clause. Stores translate it into their own
// query form; an empty Order leaves the store's default order in place.
type Order []OrderTerm

// IsEmpty reports whether no ordering was requested.
func (o Order) IsEmpty() bool {
	return len(o) == 0
}

// String renders the clause as "Title descending, Author ascending".
func (o Order) String() string {
	parts := make([]string, len(o))
	for i, t := range o {
		dir := " ascending"
		if t.Descending {
			dir = " descending"
		}
		parts[i] = t.Column + dir
	}
	return strings.Join(parts, ", ")
}

// BuildOrder turns a client order-by expression such as "title desc, author" into
// an Order using m. Each clause is descending only when it ends in the literal
// " desc"; the entry's Revert flag then flips that direction, and every destination
// column of the entry is appended in order. Unknown fields fail with
// InvalidFieldError before anything reaches the store.
func BuildOrder(expr string, m Mapping) (Order, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}

	var order Order
	for _, clause := range strings.Split(expr, ",") {
		clause = strings.TrimSpace(clause)
		descending := strings.HasSuffix(clause, " desc")
		field := clauseField(clause)

		v, ok := m.Lookup(field)
		if !ok {
			return nil, &InvalidFieldError{Field: field}
		}
		if v.Revert {
			descending = !descending
		}
		for _, col := range v.DestinationFields {
			order = append(order, OrderTerm{Column: col, Descending: descending})
		}
	}
	return order, nil
}
