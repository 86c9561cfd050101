package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Operator is a field filter comparison.
type Operator string

// Supported comparisons.
const (
	Equal              Operator = "EQUAL"
	NotEqual           Operator = "NOT_EQUAL"
	LessThan           Operator = "LESS_THAN"
	LessThanOrEqual    Operator = "LESS_THAN_OR_EQUAL"
	GreaterThan        Operator = "GREATER_THAN"
	GreaterThanOrEqual Operator = "GREATER_THAN_OR_EQUAL"
	ArrayContains      Operator = "ARRAY_CONTAINS"
	In                 Operator = "IN"
	NotIn              Operator = "NOT_IN"
	ArrayContainsAny   Operator = "ARRAY_CONTAINS_ANY"
)

// Valid reports whether the operator is known to the store.
func (o Operator) Valid() bool {
	switch o {
	case Equal, NotEqual, LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual,
		ArrayContains, In, NotIn, ArrayContainsAny:
		return true
	}
	return false
}

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "ASCENDING"
	Descending Direction = "DESCENDING"
)

// FieldRef names a field.
type FieldRef struct {
	FieldPath string `json:"fieldPath"`
}

type fieldFilter struct {
	Field FieldRef `json:"field"`
	Op    Operator `json:"op"`
	Value Value    `json:"value"`
}

type compositeFilter struct {
	Op      string   `json:"op"`
	Filters []Filter `json:"filters"`
}

// Filter is a single field comparison or an AND of several.
type Filter struct {
	Field     *fieldFilter     `json:"fieldFilter,omitempty"`
	Composite *compositeFilter `json:"compositeFilter,omitempty"`
}

// Order is one ordering clause.
type Order struct {
	Field     FieldRef  `json:"field"`
	Direction Direction `json:"direction"`
}

// CollectionSelector picks the collection a query reads.
type CollectionSelector struct {
	CollectionID string `json:"collectionId"`
}

// StructuredQuery is the body of a runQuery call.
type StructuredQuery struct {
	From    []CollectionSelector `json:"from"`
	Where   *Filter              `json:"where,omitempty"`
	OrderBy []Order              `json:"orderBy,omitempty"`
	Offset  int                  `json:"offset,omitempty"`
	Limit   int                  `json:"limit,omitempty"`
}

// QueryRequest wraps a structured query for the wire.
type QueryRequest struct {
	StructuredQuery StructuredQuery `json:"structuredQuery"`
}

// FieldFilter builds a comparison filter. The value goes through Encode.
func FieldFilter(field string, op Operator, value any) (Filter, error) {
	if field == "" {
		return Filter{}, fmt.Errorf("docstore: filter field is empty")
	}
	if !op.Valid() {
		return Filter{}, fmt.Errorf("docstore: unknown filter operator %q", op)
	}
	v, err := Encode(value)
	if err != nil {
		return Filter{}, fmt.Errorf("docstore: filter %s: %w", field, err)
	}
	return Filter{Field: &fieldFilter{Field: FieldRef{FieldPath: field}, Op: op, Value: v}}, nil
}

// OrderOf builds an ordering clause.
func OrderOf(field string, dir Direction) Order {
	return Order{Field: FieldRef{FieldPath: field}, Direction: dir}
}

// BuildQuery assembles a query. No filters means no where clause, one filter
// is sent bare and several are joined with AND. Ordering is kept as given.
// A limit of zero means unlimited.
func BuildQuery(collection string, filters []Filter, orderBy []Order, limit int) QueryRequest {
	sq := StructuredQuery{
		From:    []CollectionSelector{{CollectionID: collection}},
		OrderBy: orderBy,
		Limit:   limit,
	}
	switch len(filters) {
	case 0:
	case 1:
		f := filters[0]
		sq.Where = &f
	default:
		sq.Where = &Filter{Composite: &compositeFilter{Op: "AND", Filters: filters}}
	}
	return QueryRequest{StructuredQuery: sq}
}

// Query is a fluent builder over BuildQuery. The first error sticks and is
// returned by Build.
type Query struct {
	collection string
	filters    []Filter
	orders     []Order
	limit      int
	offset     int
	err        error
}

// NewQuery starts a query on a collection.
func NewQuery(collection string) *Query {
	q := &Query{collection: collection}
	if collection == "" {
		q.err = fmt.Errorf("docstore: query collection is empty")
	}
	return q
}

// Where adds a filter.
func (q *Query) Where(field string, op Operator, value any) *Query {
	if q.err != nil {
		return q
	}
	f, err := FieldFilter(field, op, value)
	if err != nil {
		q.err = err
		return q
	}
	q.filters = append(q.filters, f)
	return q
}

// OrderBy appends an ordering clause.
func (q *Query) OrderBy(field string, dir Direction) *Query {
	if q.err != nil {
		return q
	}
	if dir != Ascending && dir != Descending {
		q.err = fmt.Errorf("docstore: unknown sort direction %q", dir)
		return q
	}
	q.orders = append(q.orders, OrderOf(field, dir))
	return q
}

// Limit caps the result count.
func (q *Query) Limit(n int) *Query {
	if q.err == nil && n < 0 {
		q.err = fmt.Errorf("docstore: negative limit %d", n)
	}
	q.limit = n
	return q
}

// Offset skips the first n results.
func (q *Query) Offset(n int) *Query {
	if q.err == nil && n < 0 {
		q.err = fmt.Errorf("docstore: negative offset %d", n)
	}
	q.offset = n
	return q
}

// Build returns the wire request.
func (q *Query) Build() (QueryRequest, error) {
	if q.err != nil {
		return QueryRequest{}, q.err
	}
	req := BuildQuery(q.collection, q.filters, q.orders, q.limit)
	req.StructuredQuery.Offset = q.offset
	return req, nil
}

type runQueryResult struct {
	Document *Document `json:"document,omitempty"`
	ReadTime string    `json:"readTime,omitempty"`
}

// RunQuery executes a structured query. Result slots without a document
// (the store sends one carrying only a read time for empty results) are skipped.
func (c *Client) RunQuery(ctx context.Context, q QueryRequest) ([]Record, error) {
	status, body, err := c.do(ctx, OpRunQuery, http.MethodPost, ":runQuery", nil, q)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, newError(OpRunQuery, status, body)
	}

	var results []runQueryResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("docstore run_query: decode response: %w", err)
	}

	records := make([]Record, 0, len(results))
	for _, r := range results {
		if r.Document == nil {
			continue
		}
		if rec := ToRecord(r.Document); rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}
