package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/postgres"
	"github.com/go-openapi/inflect"

	"github.com/syssam/typeset/compiler/gen"
	"github.com/syssam/typeset/typegraph"
)

// Dialects supported by the database loader.
const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// FromDatabase introspects a live database and builds one class per
// table, with one root binding per class. Table names are singularized
// into type labels; nullable columns become nullable properties. No
// semantic validation happens here, the result is shapes only.
func FromDatabase(ctx context.Context, db *sql.DB, dialect string) (*gen.Graph, error) {
	g, err := fromDatabase(ctx, db, dialect)
	return g, failed(err)
}

func fromDatabase(ctx context.Context, db *sql.DB, dialect string) (*gen.Graph, error) {
	var (
		tables []table
		err    error
	)
	switch dialect {
	case DialectMySQL, DialectPostgres:
		tables, err = informationSchema(ctx, db, dialect)
	case DialectSQLite:
		tables, err = sqliteSchema(ctx, db)
	default:
		return nil, fmt.Errorf("load: unsupported dialect %q", dialect)
	}
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("load: database has no tables")
	}

	bindings := make([]gen.Binding, 0, len(tables))
	for _, tb := range tables {
		props := make([]typegraph.Property, 0, len(tb.columns))
		for _, col := range tb.columns {
			t := typegraph.Prim(columnKind(dialect, col.dataType))
			if col.nullable {
				t = typegraph.UnionOf("", t, typegraph.Prim(typegraph.KindNull))
			}
			props = append(props, typegraph.Property{Name: col.name, Type: t, Optional: col.nullable})
		}
		class := typegraph.ClassOf(inflect.Singularize(tb.name), props...)
		bindings = append(bindings, gen.Binding{Name: tb.name, Type: class})
	}
	return gen.NewGraph(bindings, fmt.Sprintf("introspected from %s", dialect))
}

type table struct {
	name    string
	columns []column
}

type column struct {
	name     string
	dataType string
	nullable bool
}

// informationSchema reads column metadata for MySQL and Postgres. Both
// expose the standard information_schema; only the current-schema
// predicate differs.
func informationSchema(ctx context.Context, db *sql.DB, dialect string) ([]table, error) {
	schemaExpr := "DATABASE()"
	if dialect == DialectPostgres {
		schemaExpr = "CURRENT_SCHEMA()"
	}
	query := fmt.Sprintf(`SELECT table_name, column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema = %s
ORDER BY table_name, ordinal_position`, schemaExpr)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load: querying information_schema: %w", err)
	}
	defer rows.Close()

	var (
		tables []table
		byName = make(map[string]int)
	)
	for rows.Next() {
		var tname, cname, dtype, nullable string
		if err := rows.Scan(&tname, &cname, &dtype, &nullable); err != nil {
			return nil, fmt.Errorf("load: scanning column row: %w", err)
		}
		i, ok := byName[tname]
		if !ok {
			i = len(tables)
			byName[tname] = i
			tables = append(tables, table{name: tname})
		}
		tables[i].columns = append(tables[i].columns, column{
			name:     cname,
			dataType: strings.ToLower(dtype),
			nullable: strings.EqualFold(nullable, "YES"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load: reading information_schema: %w", err)
	}
	return tables, nil
}

// sqliteSchema reads table metadata through sqlite_master and the
// table_info pragma.
func sqliteSchema(ctx context.Context, db *sql.DB) ([]table, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load: querying sqlite_master: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("load: scanning table name: %w", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load: reading sqlite_master: %w", err)
	}

	tables := make([]table, 0, len(names))
	for _, name := range names {
		crows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", name))
		if err != nil {
			return nil, fmt.Errorf("load: table_info(%s): %w", name, err)
		}
		tb := table{name: name}
		for crows.Next() {
			var (
				cid, notnull, pk int
				cname, ctype     string
				dflt             sql.NullString
			)
			if err := crows.Scan(&cid, &cname, &ctype, &notnull, &dflt, &pk); err != nil {
				crows.Close()
				return nil, fmt.Errorf("load: scanning table_info(%s): %w", name, err)
			}
			tb.columns = append(tb.columns, column{
				name:     cname,
				dataType: strings.ToLower(ctype),
				nullable: notnull == 0,
			})
		}
		crows.Close()
		if err := crows.Err(); err != nil {
			return nil, fmt.Errorf("load: reading table_info(%s): %w", name, err)
		}
		tables = append(tables, tb)
	}
	return tables, nil
}

// columnKind maps a lowercase SQL data type to a graph kind. Unknown
// types fall back to string, never to the sentinel.
func columnKind(dialect, dataType string) typegraph.Kind {
	if dialect == DialectPostgres {
		switch dataType {
		case postgres.TypeSerial, postgres.TypeBigSerial, postgres.TypeSmallSerial:
			return typegraph.KindInteger
		}
	}
	switch {
	case strings.Contains(dataType, "int"):
		return typegraph.KindInteger
	case strings.Contains(dataType, "double"), strings.Contains(dataType, "float"),
		strings.Contains(dataType, "real"), strings.Contains(dataType, "numeric"),
		strings.Contains(dataType, "decimal"):
		return typegraph.KindDouble
	case strings.Contains(dataType, "bool"):
		return typegraph.KindBool
	case dataType == "date":
		return typegraph.KindDate
	case dataType == "time", strings.HasPrefix(dataType, "time without"), strings.HasPrefix(dataType, "time with"):
		return typegraph.KindTime
	case strings.Contains(dataType, "timestamp"), dataType == "datetime":
		return typegraph.KindDateTime
	case strings.Contains(dataType, "json"):
		return typegraph.KindAny
	default:
		return typegraph.KindString
	}
}
