package store

import (
	"context"
	"errors"
)

// Collection names. Every document carries a companyId foreign key and
// createdAt/updatedAt timestamps stamped by the store.
const (
	Companies       = "propertyCompanies"
	Residents       = "residents"
	Bookings        = "bookings"
	Packages        = "packages"
	Visitors        = "visitors"
	ParkingRequests = "parkingRequests"
	Messages        = "messages"
	CallLogs        = "callLogs"
	Issues          = "issues"
)

var ErrNotFound = errors.New("document not found")

// Op is a predicate operator for Query filters.
type Op string

const (
	OpEq       Op = "=="
	OpGt       Op = ">"
	OpGte      Op = ">="
	OpLt       Op = "<"
	OpLte      Op = "<="
	OpContains Op = "contains" // array field contains value
)

// Filter matches a single document field against a value. Range operators
// compare timestamps (RFC 3339) and strings lexically, which is all this
// system queries by.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Query narrows and orders the documents returned by Store.Query. The zero
// value returns every document in the collection for the company.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

func Where(field string, op Op, value interface{}) Query {
	return Query{Filters: []Filter{{Field: field, Op: op, Value: value}}}
}

func (q Query) AndWhere(field string, op Op, value interface{}) Query {
	q.Filters = append(q.Filters, Filter{Field: field, Op: op, Value: value})
	return q
}

// Store is the document store boundary. Writes are single-document; there
// is no transaction spanning multiple documents and no concurrency token,
// so concurrent staff sessions resolve conflicts last-write-wins.
type Store interface {
	// Create stamps id, companyId, createdAt and updatedAt onto v and
	// persists it, returning the generated id.
	Create(ctx context.Context, collection, companyID string, v interface{}) (string, error)

	// Get decodes the document with the given id into dest, or returns
	// ErrNotFound. A document owned by a different company is ErrNotFound,
	// not a permission error. An empty companyID skips the ownership check.
	Get(ctx context.Context, collection, companyID, id string, dest interface{}) error

	// Query decodes all matching documents for the company into dest,
	// which must be a pointer to a slice. No match yields an empty slice.
	Query(ctx context.Context, collection, companyID string, q Query, dest interface{}) error

	// Update merges patch into the company's document and stamps updatedAt.
	Update(ctx context.Context, collection, companyID, id string, patch map[string]interface{}) error

	// Delete removes the company's document. Deleting an absent id is not
	// an error.
	Delete(ctx context.Context, collection, companyID, id string) error
}
