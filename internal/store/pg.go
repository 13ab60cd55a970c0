package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists documents as JSONB rows in a single table. Field
// predicates run against the data column; collection and company scoping
// use dedicated indexed columns.
type PGStore struct {
	Pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{Pool: pool}
}

func (s *PGStore) Create(ctx context.Context, collection, companyID string, v interface{}) (string, error) {
	doc, err := toDocument(v)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	doc["id"] = id
	if companyID != "" {
		doc["companyId"] = companyID
	}
	doc["createdAt"] = now.Format(time.RFC3339Nano)
	doc["updatedAt"] = now.Format(time.RFC3339Nano)

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	_, err = s.Pool.Exec(ctx,
		`INSERT INTO documents(id, collection, company_id, data, created_at, updated_at)
         VALUES($1, $2, $3, $4, $5, $6)`,
		id, collection, companyID, raw, now, now)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *PGStore) Get(ctx context.Context, collection, companyID, id string, dest interface{}) error {
	var raw []byte
	err := s.Pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection=$1 AND id=$2
         AND ($3 = '' OR company_id=$3)`,
		collection, id, companyID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (s *PGStore) Query(ctx context.Context, collection, companyID string, q Query, dest interface{}) error {
	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(`SELECT data FROM documents WHERE collection=$1`)
	args = append(args, collection)

	if companyID != "" {
		args = append(args, companyID)
		fmt.Fprintf(&sb, ` AND company_id=$%d`, len(args))
	}

	for _, f := range q.Filters {
		clause, arg := filterClause(f, len(args)+1)
		args = append(args, arg)
		sb.WriteString(" AND ")
		sb.WriteString(clause)
	}

	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		switch q.OrderBy {
		case "createdAt":
			sb.WriteString("created_at")
		case "updatedAt":
			sb.WriteString("updated_at")
		default:
			fmt.Fprintf(&sb, "data->>'%s'", sanitizeField(q.OrderBy))
		}
		if q.Desc {
			sb.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	rows, err := s.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	raws := make([]json.RawMessage, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return err
		}
		raws = append(raws, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	combined, err := json.Marshal(raws)
	if err != nil {
		return err
	}
	return json.Unmarshal(combined, dest)
}

func (s *PGStore) Update(ctx context.Context, collection, companyID, id string, patch map[string]interface{}) error {
	now := time.Now().UTC()
	merged := make(map[string]interface{}, len(patch)+1)
	for k, v := range patch {
		merged[k] = v
	}
	merged["updatedAt"] = now.Format(time.RFC3339Nano)

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}

	tag, err := s.Pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at=$4
         WHERE collection=$1 AND id=$2 AND ($5 = '' OR company_id=$5)`,
		collection, id, raw, now, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, collection, companyID, id string) error {
	_, err := s.Pool.Exec(ctx,
		`DELETE FROM documents WHERE collection=$1 AND id=$2
         AND ($3 = '' OR company_id=$3)`,
		collection, id, companyID)
	return err
}

// filterClause renders a single predicate against the JSONB data column.
// Timestamp values are compared as timestamptz; everything else compares
// as text, which covers the string and boolean equality this system uses.
func filterClause(f Filter, argN int) (string, interface{}) {
	field := sanitizeField(f.Field)

	if f.Op == OpContains {
		return fmt.Sprintf(`data->'%s' ? $%d`, field, argN), fmt.Sprint(f.Value)
	}

	op := string(f.Op)
	if f.Op == OpEq {
		op = "="
	}

	if t, ok := f.Value.(time.Time); ok {
		return fmt.Sprintf(`(data->>'%s')::timestamptz %s $%d::timestamptz`, field, op, argN),
			t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf(`data->>'%s' %s $%d`, field, op, argN), fmt.Sprint(f.Value)
}

// sanitizeField keeps field interpolation to identifier-ish characters.
// Field names come from code, not user input, but the store is generic.
func sanitizeField(field string) string {
	var sb strings.Builder
	for _, r := range field {
		if r == '\'' || r == '\\' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func toDocument(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
