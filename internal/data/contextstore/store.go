// Package contextstore keeps Super-Context documents in SQLite and answers
// approximate lookups by interface or method name.
package contextstore

import (
	"context"
	"database/sql"
	"ejbctx/internal/core/ports"
	"ejbctx/internal/shared/observability"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	_ "modernc.org/sqlite"
)

const (
	driverName        = "sqlite"
	maxAttempts       = 5
	DefaultCollection = "ejb_interfaces"

	defaultNameLimit   = 1
	defaultMethodLimit = 5
)

// documentNamespace seeds the deterministic bundle ids.
var documentNamespace = uuid.MustParse("6f1c2b0e-5d4a-4c47-9a8e-0e7b3f9d2a61")

type Store struct {
	path       string
	collection string
	db         *sql.DB
	mu         sync.Mutex
}

var _ ports.ContextStore = (*Store)(nil)

func Open(path, collection string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("context store path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("context store path %q is a directory, expected file", cleanPath)
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = DefaultCollection
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create context store directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite context store %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite context store %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, collection: collection, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// DocumentID derives a stable id from the interface name and document text.
func DocumentID(interfaceName, document string) string {
	return uuid.NewSHA1(documentNamespace, []byte(interfaceName+"\x00"+document)).String()
}

// AddBundles inserts bundles in one transaction, replacing identical documents.
func (s *Store) AddBundles(ctx context.Context, bundles []ports.Bundle) error {
	if len(bundles) == 0 {
		slog.Warn("no super-contexts to add")
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	err := s.withRetry(ctx, "add bundles", func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
INSERT OR REPLACE INTO bundles (
  collection, id, run_id, interface_id, interface_name, package, interface_type, bean_class,
  has_bean, dto_count, entity_count, method_count, methods_json, document
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		defer stmt.Close()

		for _, b := range bundles {
			methods := b.Methods
			if methods == nil {
				methods = []string{}
			}
			methodsJSON, err := json.Marshal(methods)
			if err != nil {
				_ = tx.Rollback()
				return err
			}
			m := b.Metadata
			if _, err := stmt.ExecContext(ctx,
				s.collection,
				DocumentID(m.InterfaceName, b.Document),
				runID,
				m.InterfaceID,
				m.InterfaceName,
				m.Package,
				m.InterfaceType,
				m.BeanClass,
				m.HasBean,
				m.DTOCount,
				m.EntityCount,
				m.MethodCount,
				string(methodsJSON),
				b.Document,
			); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	})
	recordOp("add", err)
	if err != nil {
		return err
	}
	slog.Info("added super-contexts to store", "count", len(bundles), "collection", s.collection, "run_id", runID)
	return nil
}

// QueryByInterfaceName ranks stored bundles by how closely their interface name
// matches name. A case-insensitive exact match has distance 0.
func (s *Store) QueryByInterfaceName(ctx context.Context, name string, limit int) ([]ports.QueryResult, error) {
	if limit <= 0 {
		limit = defaultNameLimit
	}
	rows, err := s.loadRows(ctx, "")
	recordOp("query_interface", err)
	if err != nil {
		return nil, err
	}

	ranked := make([]rankedRow, 0, len(rows))
	for _, r := range rows {
		if d, ok := distance(name, []string{r.meta.InterfaceName}); ok {
			ranked = append(ranked, rankedRow{row: r, distance: d})
		}
	}
	if len(ranked) == 0 {
		slog.Warn("no results found for interface", "symbol", name)
	}
	return topResults(ranked, limit), nil
}

// GetByInterfaceName returns the bundle whose interface name equals name,
// ignoring case. found is false when no such bundle is stored.
func (s *Store) GetByInterfaceName(ctx context.Context, name string) (ports.QueryResult, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.QueryResult{}, false, nil
	}
	rows, err := s.loadRows(ctx, name)
	recordOp("get_interface", err)
	if err != nil || len(rows) == 0 {
		return ports.QueryResult{}, false, err
	}
	return ports.QueryResult{Document: rows[0].document, Metadata: rows[0].meta}, true, nil
}

// QueryByMethod ranks bundles by their closest method name.
func (s *Store) QueryByMethod(ctx context.Context, method string, limit int) ([]ports.QueryResult, error) {
	if limit <= 0 {
		limit = defaultMethodLimit
	}
	rows, err := s.loadRows(ctx, "")
	recordOp("query_method", err)
	if err != nil {
		return nil, err
	}

	ranked := make([]rankedRow, 0, len(rows))
	for _, r := range rows {
		if d, ok := distance(method, r.methods); ok {
			ranked = append(ranked, rankedRow{row: r, distance: d})
		}
	}
	return topResults(ranked, limit), nil
}

// InterfaceNames returns the distinct stored interface names, sorted.
func (s *Store) InterfaceNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows *sql.Rows
	err := s.withRetry(ctx, "list interface names", func() error {
		var qErr error
		rows, qErr = s.db.QueryContext(ctx, `SELECT DISTINCT interface_name FROM bundles WHERE collection = ? ORDER BY interface_name ASC`, s.collection)
		return qErr
	})
	recordOp("list", err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan interface name: %w", err)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interface names: %w", err)
	}
	return names, nil
}

// Clear removes every bundle in the collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.withRetry(ctx, "clear collection", func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM bundles WHERE collection = ?`, s.collection)
		return err
	})
	recordOp("clear", err)
	if err != nil {
		return err
	}
	slog.Info("cleared collection", "collection", s.collection)
	return nil
}

type storedRow struct {
	document string
	meta     ports.BundleMetadata
	methods  []string
}

type rankedRow struct {
	row      storedRow
	distance float64
}

// loadRows reads the collection's bundles. A non-empty name restricts the
// read to that interface, compared case-insensitively.
func (s *Store) loadRows(ctx context.Context, name string) ([]storedRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
SELECT interface_id, interface_name, package, interface_type, bean_class, has_bean,
  dto_count, entity_count, method_count, methods_json, document
FROM bundles
WHERE collection = ?`
	args := []any{s.collection}
	if name != "" {
		query += ` AND interface_name = ? COLLATE NOCASE`
		args = append(args, name)
	}
	query += `
ORDER BY interface_name ASC, id ASC`

	var rows *sql.Rows
	err := s.withRetry(ctx, "load bundles", func() error {
		var qErr error
		rows, qErr = s.db.QueryContext(ctx, query, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]storedRow, 0)
	for rows.Next() {
		var (
			r           storedRow
			methodsJSON string
		)
		if err := rows.Scan(
			&r.meta.InterfaceID,
			&r.meta.InterfaceName,
			&r.meta.Package,
			&r.meta.InterfaceType,
			&r.meta.BeanClass,
			&r.meta.HasBean,
			&r.meta.DTOCount,
			&r.meta.EntityCount,
			&r.meta.MethodCount,
			&methodsJSON,
			&r.document,
		); err != nil {
			return nil, fmt.Errorf("scan bundle row: %w", err)
		}
		if err := json.Unmarshal([]byte(methodsJSON), &r.methods); err != nil {
			return nil, fmt.Errorf("decode methods for %q: %w", r.meta.InterfaceName, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bundle rows: %w", err)
	}
	return out, nil
}

// distance scores query against the best of candidates: 0 for a
// case-insensitive exact match, otherwise 1 minus 0.99 times the share of the
// candidate covered by the fuzzy match. ok is false when nothing matches.
func distance(query string, candidates []string) (float64, bool) {
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return 0, false
	}
	for _, c := range candidates {
		if strings.EqualFold(c, query) {
			return 0, true
		}
	}

	matches := fuzzy.Find(query, candidates)
	if len(matches) == 0 {
		return 0, false
	}
	best := 1.0
	for _, m := range matches {
		if len(m.Str) == 0 {
			continue
		}
		coverage := float64(len(m.MatchedIndexes)) / float64(len(m.Str))
		if d := 1 - coverage*0.99; d < best {
			best = d
		}
	}
	return best, true
}

func topResults(ranked []rankedRow, limit int) []ports.QueryResult {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].row.meta.InterfaceName < ranked[j].row.meta.InterfaceName
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	results := make([]ports.QueryResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, ports.QueryResult{
			Document: r.row.document,
			Metadata: r.row.meta,
			Distance: r.distance,
		})
	}
	return results
}

func recordOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	observability.StoreOperationsTotal.WithLabelValues(op, result).Inc()
}

func (s *Store) withRetry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(time.Duration(attempt*25) * time.Millisecond):
		}
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
