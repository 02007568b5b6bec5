package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"strings"

	"github.com/GGP1/pinpoint/internal/bufferpool"
	"github.com/GGP1/pinpoint/internal/params"

	"github.com/pkg/errors"
)

const (
	// Venues table name
	Venues table = "venues"

	venueDefaultFields = "id, title, address, provider, provider_id, type, latitude, longitude, horizontal_accuracy, access_hash"
)

type table string

// AddPagination takes a query and adds pagination/lookup conditions to it.
func AddPagination(query, paginationField string, params params.Query) string {
	buf := bufferpool.Get()
	buf.WriteString(query)
	addPagination(buf, paginationField, params)
	q := buf.String()
	bufferpool.Put(buf)

	return q
}

// IterRows iterates over the rows passed executing f() on each iteration.
func IterRows(rows *sql.Rows, f func(r *sql.Rows) error) error {
	for rows.Next() {
		if err := f(rows); err != nil {
			return err
		}
	}

	return rows.Err()
}

// QueryBool returns a boolean scanned from a single row.
func QueryBool(ctx context.Context, db *sql.DB, query string, args ...interface{}) (bool, error) {
	row := db.QueryRowContext(ctx, query, args...)
	var b bool
	if err := row.Scan(&b); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	return b, nil
}

// QueryString returns a string scanned from a single row.
func QueryString(ctx context.Context, db *sql.DB, query string, args ...interface{}) (string, error) {
	row := db.QueryRowContext(ctx, query, args...)
	var str string
	if err := row.Scan(&str); err != nil {
		if err == sql.ErrNoRows {
			return "", errors.Wrap(err, "value not found")
		}
		return "", errors.Wrap(err, "scanning value")
	}

	return str, nil
}

// FullTextSearch returns an SQL query implementing FTS.
//
//	SELECT [fields] FROM [table] WHERE search @@ to_tsquery($1) [pagination].
func FullTextSearch(table table, params params.Query) string {
	buf := bufferpool.Get()

	buf.WriteString("SELECT ")
	writeFields(buf, table, params.Fields)
	buf.WriteString(" FROM ")
	buf.WriteString(string(table))
	buf.WriteString(" WHERE search @@ to_tsquery($1)")
	addPagination(buf, "id", params)

	q := buf.String()
	bufferpool.Put(buf)

	return q
}

// ToTSQuery formats the string passed to a tsquery-like syntax.
func ToTSQuery(s string) string {
	// FTS operators: "&" (AND), "<->" (FOLLOWED BY)
	// See https://www.postgresql.org/docs/13/textsearch-controls.html
	// ":*" is used to match prefixes as well
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "&") + ":*"
}

// SelectWhere builds a select statement while receiving parameterized arguments.
//
// 	Format: "SELECT [fields] FROM [table] WHERE [whereCond] [pagination]"
//
// Pagination:
//	Standard: "ORDER BY paginationField DESC LIMIT params.Limit"
//	LookupID: "AND paginationField='params.LookupID'"
//	Cursor: "AND paginationField < 'params.Cursor' ORDER BY paginationField DESC LIMIT params.Limit"
func SelectWhere(table table, whereCond, paginationField string, params params.Query) string {
	buf := bufferpool.Get()

	buf.WriteString("SELECT ")
	writeFields(buf, table, params.Fields)
	buf.WriteString(" FROM ")
	buf.WriteString(string(table))
	buf.WriteString(" WHERE ")
	buf.WriteString(whereCond)
	addPagination(buf, paginationField, params)

	q := buf.String()
	bufferpool.Put(buf)

	return q
}

func addPagination(buf *bytes.Buffer, paginationField string, p params.Query) {
	if p.LookupID != "" {
		buf.WriteString(" AND ")
		buf.WriteString(paginationField)
		buf.WriteString("='")
		buf.WriteString(p.LookupID)
		buf.WriteByte('\'')
		return
	}
	if p.Cursor != params.DefaultCursor {
		buf.WriteString(" AND ")
		buf.WriteString(paginationField)
		buf.WriteString(" < '")
		buf.WriteString(p.Cursor)
		buf.WriteByte('\'')
	}
	buf.WriteString(" ORDER BY ")
	buf.WriteString(paginationField)
	buf.WriteString(" DESC LIMIT ")
	buf.WriteString(p.Limit)
}

func writeFields(buf *bytes.Buffer, table table, fields []string) {
	if fields == nil {
		// Write default fields
		switch table {
		case Venues:
			buf.WriteString(venueDefaultFields)
		}
	} else {
		for i, f := range fields {
			if i != 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(f)
		}
	}
}
