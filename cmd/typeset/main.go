// typeset renders a type graph into source code for one or more target
// languages.
//
// Generate Python and TypeScript units from a schema document:
//
//	typeset -schema ./schema.yaml -target python -target typescript -out ./gen
//
// Introspect a database instead of reading a schema file:
//
//	typeset -dialect postgres -dsn "postgres://..." -target go -out ./gen
//
// With -watch, the schema file is watched and the units are regenerated
// on every change.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/typeset/compiler/gen"
	_ "github.com/syssam/typeset/compiler/gen/golang"
	_ "github.com/syssam/typeset/compiler/gen/python"
	_ "github.com/syssam/typeset/compiler/gen/typescript"
	"github.com/syssam/typeset/compiler/load"
)

type targetsFlag []string

func (t *targetsFlag) String() string { return strings.Join(*t, ",") }

func (t *targetsFlag) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("typeset: ")

	var (
		targets       targetsFlag
		schemaPath    = flag.String("schema", "", "path to a schema document (.json, .yaml) or GraphQL SDL (.graphql)")
		dialect       = flag.String("dialect", "", "database dialect to introspect instead of a schema file (mysql, postgres, sqlite)")
		dsn           = flag.String("dsn", "", "database connection string, required with -dialect")
		out           = flag.String("out", "gen", "output directory")
		header        = flag.String("header", "", "extra comment line added at the top of each unit")
		declareUnions = flag.Bool("declare-unions", false, "emit standalone declarations for multi-member unions")
		workers       = flag.Int("workers", 0, "parallel target renders, 0 means GOMAXPROCS")
		features      = flag.String("features", "", "comma-separated feature flags (see -list-features)")
		listFeatures  = flag.Bool("list-features", false, "print the available feature flags and exit")
		watch         = flag.Bool("watch", false, "watch the schema file and regenerate on change")
	)
	flag.Var(&targets, "target", "render target, repeatable (registered: "+strings.Join(gen.Targets(), ", ")+")")
	flag.Parse()

	if *listFeatures {
		for _, f := range gen.AllFeatures {
			fmt.Printf("%-12s %s\n", f.Name, f.Description)
		}
		return
	}
	if err := run(*schemaPath, *dialect, *dsn, *out, *header, *features, targets, *declareUnions, *workers, *watch); err != nil {
		log.Fatal(err)
	}
}

func run(schemaPath, dialect, dsn, out, header, features string, targets []string, declareUnions bool, workers int, watch bool) error {
	if schemaPath == "" && dialect == "" {
		return fmt.Errorf("either -schema or -dialect is required")
	}
	if schemaPath != "" && dialect != "" {
		return fmt.Errorf("-schema and -dialect are mutually exclusive")
	}
	if len(targets) == 0 {
		return fmt.Errorf("at least one -target is required (registered: %s)", strings.Join(gen.Targets(), ", "))
	}

	opts := []gen.Option{
		gen.WithTarget(out),
		gen.WithTargets(targets...),
		gen.WithWorkers(workers),
	}
	if header != "" {
		opts = append(opts, gen.WithHeader(header))
	}
	if declareUnions {
		opts = append(opts, gen.WithDeclareUnions())
	}
	if features != "" {
		for _, name := range strings.Split(features, ",") {
			f, ok := gen.FeatureByName(strings.TrimSpace(name))
			if !ok {
				return fmt.Errorf("unknown feature %q", name)
			}
			opts = append(opts, gen.WithFeatures(f))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generate := func() error {
		g, err := loadGraph(ctx, schemaPath, dialect, dsn)
		if err != nil {
			return err
		}
		return gen.Generate(ctx, g, opts...)
	}

	if err := generate(); err != nil {
		return err
	}
	log.Printf("generated %s for %s", out, strings.Join(targets, ", "))

	if !watch {
		return nil
	}
	if schemaPath == "" {
		return fmt.Errorf("-watch requires -schema")
	}
	return watchSchema(ctx, schemaPath, generate)
}

func loadGraph(ctx context.Context, schemaPath, dialect, dsn string) (*gen.Graph, error) {
	if schemaPath != "" {
		return load.FromFile(schemaPath)
	}
	if dsn == "" {
		return nil, fmt.Errorf("-dialect requires -dsn")
	}
	// The linked drivers register under the dialect names: mysql,
	// postgres (lib/pq) and sqlite (modernc).
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dialect, err)
	}
	defer db.Close()
	return load.FromDatabase(ctx, db, dialect)
}

// watchSchema regenerates on every write to the schema file. Editors
// often replace files on save, so the parent directory is watched and
// events are filtered by name.
func watchSchema(ctx context.Context, schemaPath string, generate func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	log.Printf("watching %s", schemaPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := generate(); err != nil {
				// Keep watching; the author is mid-edit.
				log.Printf("regenerate failed: %v", err)
				continue
			}
			log.Printf("regenerated after change to %s", schemaPath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
