package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqltype"
)

// LoadSQLite builds a catalog from the user tables of the SQLite database
// at path. Each table becomes a fully qualified row whose fields follow
// the table's column order.
//
// Declared column types go through sqltype.Parse; anything it does not
// recognise is mapped by SQLite's type affinity rules.
func LoadSQLite(ctx context.Context, path string, matcher namematch.Matcher) (*Catalog, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(1)

	tables, err := listTables(ctx, db)
	if err != nil {
		return nil, err
	}

	cat := New(matcher)
	for _, name := range tables {
		row, err := tableRow(ctx, db, name)
		if err != nil {
			return nil, err
		}
		if err := cat.Add(name, row); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return cat, nil
}

// ApplyDDL runs statements against the SQLite database at path, creating
// the file if it does not exist. Statements run in one transaction.
func ApplyDDL(ctx context.Context, path string, statements []string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return tx.Commit()
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableRow(ctx context.Context, db *sql.DB, table string) (*sqltype.Row, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	builder := sqltype.NewBuilder().Kind(sqltype.StructKindFullyQualified)
	for rows.Next() {
		var (
			cid      int
			name     string
			declared string
			notNull  int
			dflt     sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		builder.Add(name, columnType(declared, notNull != 0))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	return builder.Build(), nil
}

// columnType maps a declared SQLite column type to a sqltype.Type.
func columnType(declared string, notNull bool) sqltype.Type {
	if t, err := sqltype.Parse(declared); err == nil {
		if s, ok := t.(*sqltype.Scalar); ok {
			return &sqltype.Scalar{Type: s.Type, Null: !notNull}
		}
		return t
	}
	return &sqltype.Scalar{Type: affinity(declared), Null: !notNull}
}

// affinity applies SQLite's column affinity rules (section 3.1 of the
// datatype docs) in order.
func affinity(declared string) sqltype.TypeName {
	d := strings.ToUpper(declared)
	switch {
	case strings.Contains(d, "INT"):
		return sqltype.TypeInteger
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return sqltype.TypeVarchar
	case d == "", strings.Contains(d, "BLOB"):
		return sqltype.TypeAny
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return sqltype.TypeDouble
	default:
		return sqltype.TypeDecimal
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
