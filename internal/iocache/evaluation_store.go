package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for evaluation storage.
const (
	evaluationsTable = "heatgate_evaluations"
	indicatorsTable  = "heatgate_indicator_results"
	migrationsTable  = "schema_migrations"
)

// sqliteTimeLayout is fixed width so that text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

const evaluationColumns = `id, eval_time, project, stage, service, score, result,
	compared_evaluations, slo_file_content, score_pass_threshold, score_warn_threshold`

const indicatorColumns = `position, metric, display_name, value, success, message,
	score, status, key_sli, pass_targets, warning_targets`

// EvaluationStoreImpl stores evaluations using various database backends.
type EvaluationStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.EvaluationStore = &EvaluationStoreImpl{} // Compile-time check

// NewEvaluationStore creates a new EvaluationStore with the specified backend.
func NewEvaluationStore(backend schema.DatabaseBackend, connStr string) (contract.EvaluationStore, error) {
	var db *sql.DB
	var err error
	driverName := driverFor(backend)

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname?parseTime=true", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=... user=... password=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &EvaluationStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create evaluation tables: %w", err)
	}

	return &EvaluationStoreImpl{db: db, backend: backend, driverName: driverName}, nil
}

// driverFor maps a backend to its database/sql driver name.
func driverFor(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite"
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return ""
	}
}

// quoteTableName quotes a table name for the backend.
func quoteTableName(table string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + table + "`"
	}
	return `"` + table + `"`
}

// bind rewrites ? placeholders to $n for PostgreSQL.
func bind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// createTables applies the embedded up migrations statement by statement.
// Every statement is idempotent, so this is safe on an existing database.
func createTables(db *sql.DB, backend schema.DatabaseBackend) error {
	dir, err := migrationDir(backend)
	if err != nil {
		return err
	}
	files, err := fs.Glob(migrationsFS, dir+"/*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, name := range files {
		content, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		for stmt := range strings.SplitSeq(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply %s: %w", name, err)
			}
		}
	}
	return nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(sqliteTimeLayout)
	default:
		return t.UTC()
	}
}

// scanTime reads a time column stored by formatTime.
func (s *EvaluationStoreImpl) scanTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		return time.Parse(sqliteTimeLayout, v)
	case []byte:
		return time.Parse(sqliteTimeLayout, string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", raw)
	}
}

func (s *EvaluationStoreImpl) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// SaveEvaluation inserts or replaces an evaluation and its indicator results.
func (s *EvaluationStoreImpl) SaveEvaluation(ctx context.Context, ev schema.EvaluationRecord) error {
	if s.disabled() {
		return nil
	}
	if ev.ID == "" {
		return errors.New("evaluation id is required")
	}

	compared, err := json.Marshal(nonNil(ev.ComparedEvaluations))
	if err != nil {
		return fmt.Errorf("failed to marshal compared evaluations: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	evTable := quoteTableName(evaluationsTable, s.backend)
	indTable := quoteTableName(indicatorsTable, s.backend)

	if _, err := tx.ExecContext(ctx, bind(fmt.Sprintf("DELETE FROM %s WHERE evaluation_id = ?", indTable), s.backend), ev.ID); err != nil {
		return fmt.Errorf("failed to delete indicator results: %w", err)
	}
	if _, err := tx.ExecContext(ctx, bind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", evTable), s.backend), ev.ID); err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}

	insertEval := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", evTable, evaluationColumns)
	if _, err := tx.ExecContext(ctx, bind(insertEval, s.backend),
		ev.ID, formatTime(ev.Time, s.backend), ev.Project, ev.Stage, ev.Service, ev.Score, string(ev.Result),
		string(compared), ev.SLOFileContent, nullFloat(ev.ScorePassThreshold), nullFloat(ev.ScoreWarnThreshold),
	); err != nil {
		return fmt.Errorf("failed to insert evaluation: %w", err)
	}

	insertInd := bind(fmt.Sprintf("INSERT INTO %s (evaluation_id, %s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", indTable, indicatorColumns), s.backend)
	for i, ind := range ev.IndicatorResults {
		passTargets, err := json.Marshal(nonNil(ind.PassTargets))
		if err != nil {
			return fmt.Errorf("failed to marshal pass targets: %w", err)
		}
		warningTargets, err := json.Marshal(nonNil(ind.WarningTargets))
		if err != nil {
			return fmt.Errorf("failed to marshal warning targets: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertInd,
			ev.ID, i, ind.Metric, ind.DisplayName, ind.Value.Value, ind.Value.Success, ind.Value.Message,
			ind.Score, string(ind.Status), ind.KeySLI, string(passTargets), string(warningTargets),
		); err != nil {
			return fmt.Errorf("failed to insert indicator result %q: %w", ind.Metric, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit evaluation %s: %w", ev.ID, err)
	}
	return nil
}

// GetEvaluation returns a single evaluation, or contract.ErrNotFound.
func (s *EvaluationStoreImpl) GetEvaluation(ctx context.Context, id string) (schema.EvaluationRecord, error) {
	if s.disabled() {
		return schema.EvaluationRecord{}, contract.ErrNotFound
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", evaluationColumns, quoteTableName(evaluationsTable, s.backend))
	rows, err := s.db.QueryContext(ctx, bind(query, s.backend), id)
	if err != nil {
		return schema.EvaluationRecord{}, fmt.Errorf("failed to query evaluation %s: %w", id, err)
	}
	evs, err := s.scanEvaluations(rows)
	if err != nil {
		return schema.EvaluationRecord{}, err
	}
	if len(evs) == 0 {
		return schema.EvaluationRecord{}, fmt.Errorf("%w: %s", contract.ErrNotFound, id)
	}
	if err := s.loadIndicators(ctx, &evs[0]); err != nil {
		return schema.EvaluationRecord{}, err
	}
	return evs[0], nil
}

// ListEvaluations returns matching evaluations, newest first.
func (s *EvaluationStoreImpl) ListEvaluations(ctx context.Context, filter schema.EvaluationFilter) ([]schema.EvaluationRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	var where []string
	var args []any
	if filter.Project != "" {
		where = append(where, "project = ?")
		args = append(args, filter.Project)
	}
	if filter.Stage != "" {
		where = append(where, "stage = ?")
		args = append(args, filter.Stage)
	}
	if filter.Service != "" {
		where = append(where, "service = ?")
		args = append(args, filter.Service)
	}
	if !filter.Before.IsZero() {
		where = append(where, "eval_time < ?")
		args = append(args, formatTime(filter.Before, s.backend))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", evaluationColumns, quoteTableName(evaluationsTable, s.backend))
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY eval_time DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, bind(query, s.backend), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	evs, err := s.scanEvaluations(rows)
	if err != nil {
		return nil, err
	}
	for i := range evs {
		if err := s.loadIndicators(ctx, &evs[i]); err != nil {
			return nil, err
		}
	}
	return evs, nil
}

// scanEvaluations reads evaluation rows and closes them.
func (s *EvaluationStoreImpl) scanEvaluations(rows *sql.Rows) ([]schema.EvaluationRecord, error) {
	defer func() { _ = rows.Close() }()

	var results []schema.EvaluationRecord
	for rows.Next() {
		var (
			ev            schema.EvaluationRecord
			rawTime       any
			result        string
			compared      string
			passThreshold sql.NullFloat64
			warnThreshold sql.NullFloat64
		)
		if err := rows.Scan(&ev.ID, &rawTime, &ev.Project, &ev.Stage, &ev.Service, &ev.Score, &result,
			&compared, &ev.SLOFileContent, &passThreshold, &warnThreshold); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		t, err := s.scanTime(rawTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse eval_time: %w", err)
		}
		ev.Time = t
		ev.Result = schema.Classification(result)
		if err := json.Unmarshal([]byte(compared), &ev.ComparedEvaluations); err != nil {
			return nil, fmt.Errorf("failed to parse compared evaluations: %w", err)
		}
		if len(ev.ComparedEvaluations) == 0 {
			ev.ComparedEvaluations = nil
		}
		ev.ScorePassThreshold = floatPtr(passThreshold)
		ev.ScoreWarnThreshold = floatPtr(warnThreshold)
		results = append(results, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluations: %w", err)
	}
	return results, nil
}

// loadIndicators fills the indicator results of an evaluation in their original order.
func (s *EvaluationStoreImpl) loadIndicators(ctx context.Context, ev *schema.EvaluationRecord) error {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE evaluation_id = ? ORDER BY position",
		indicatorColumns, quoteTableName(indicatorsTable, s.backend))
	rows, err := s.db.QueryContext(ctx, bind(query, s.backend), ev.ID)
	if err != nil {
		return fmt.Errorf("failed to query indicator results for %s: %w", ev.ID, err)
	}
	defer func() { _ = rows.Close() }()

	ev.IndicatorResults = nil
	for rows.Next() {
		var (
			ind            schema.IndicatorResult
			position       int
			status         string
			passTargets    string
			warningTargets string
		)
		if err := rows.Scan(&position, &ind.Metric, &ind.DisplayName, &ind.Value.Value, &ind.Value.Success,
			&ind.Value.Message, &ind.Score, &status, &ind.KeySLI, &passTargets, &warningTargets); err != nil {
			return fmt.Errorf("failed to scan indicator result: %w", err)
		}
		ind.Status = schema.Classification(status)
		if err := json.Unmarshal([]byte(passTargets), &ind.PassTargets); err != nil {
			return fmt.Errorf("failed to parse pass targets: %w", err)
		}
		if err := json.Unmarshal([]byte(warningTargets), &ind.WarningTargets); err != nil {
			return fmt.Errorf("failed to parse warning targets: %w", err)
		}
		if len(ind.PassTargets) == 0 {
			ind.PassTargets = nil
		}
		if len(ind.WarningTargets) == 0 {
			ind.WarningTargets = nil
		}
		ev.IndicatorResults = append(ev.IndicatorResults, ind)
	}
	return rows.Err()
}

// Close closes the underlying connection.
func (s *EvaluationStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus returns status information about the evaluation store.
func (s *EvaluationStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	evTable := quoteTableName(evaluationsTable, s.backend)
	for _, table := range []string{evaluationsTable, indicatorsTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		if err := s.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalEvaluations = int(status.TableSizes[evaluationsTable])
	status.TotalIndicators = int(status.TableSizes[indicatorsTable])

	if status.TotalEvaluations == 0 {
		return status, nil
	}

	var newest, oldest any
	if err := s.db.QueryRow(fmt.Sprintf("SELECT eval_time FROM %s ORDER BY eval_time DESC LIMIT 1", evTable)).Scan(&newest); err != nil {
		return status, fmt.Errorf("failed to get last evaluation time: %w", err)
	}
	if err := s.db.QueryRow(fmt.Sprintf("SELECT eval_time FROM %s ORDER BY eval_time ASC LIMIT 1", evTable)).Scan(&oldest); err != nil {
		return status, fmt.Errorf("failed to get oldest evaluation time: %w", err)
	}
	var err error
	if status.LastEvaluationTime, err = s.scanTime(newest); err != nil {
		return status, fmt.Errorf("failed to parse last evaluation time: %w", err)
	}
	if status.OldestEvaluationTime, err = s.scanTime(oldest); err != nil {
		return status, fmt.Errorf("failed to parse oldest evaluation time: %w", err)
	}
	return status, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
