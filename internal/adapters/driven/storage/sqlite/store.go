package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/provo-labs/provo-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/provo-labs/provo-cli/internal/core/domain"
	"github.com/provo-labs/provo-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all provenance store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.provo/data/provenance.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".provo", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "provenance.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Cascades and invalidated_by clears live in the schema; they only
	// fire with foreign keys on.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FragmentStore returns a FragmentStore interface backed by this store.
func (s *Store) FragmentStore() driven.FragmentStore {
	return &fragmentStore{store: s}
}

// LinkStore returns a LinkStore interface backed by this store.
func (s *Store) LinkStore() driven.LinkStore {
	return &linkStore{store: s}
}

// DecisionStore returns a DecisionStore interface backed by this store.
func (s *Store) DecisionStore() driven.DecisionStore {
	return &decisionStore{store: s}
}

// AssumptionStore returns an AssumptionStore interface backed by this store.
func (s *Store) AssumptionStore() driven.AssumptionStore {
	return &assumptionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "0001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Fragment Store ====================

// fragmentStore implements driven.FragmentStore.
type fragmentStore struct {
	store *Store
}

var _ driven.FragmentStore = (*fragmentStore)(nil)

// SaveFragment stores or updates a fragment.
func (s *fragmentStore) SaveFragment(ctx context.Context, fragment *domain.Fragment) error {
	participantsJSON, err := marshalStrings(fragment.Participants)
	if err != nil {
		return fmt.Errorf("marshalling participants: %w", err)
	}
	topicsJSON, err := marshalStrings(fragment.Topics)
	if err != nil {
		return fmt.Errorf("marshalling topics: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO fragments (id, raw_content, summary, source_type, source_ref, captured_at, participants, topics, project)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			raw_content = excluded.raw_content,
			summary = excluded.summary,
			source_type = excluded.source_type,
			source_ref = excluded.source_ref,
			captured_at = excluded.captured_at,
			participants = excluded.participants,
			topics = excluded.topics,
			project = excluded.project
	`, fragment.ID, fragment.Content, fragment.Summary, string(fragment.SourceType),
		fragment.SourceRef, fragment.CapturedAt.UTC(), participantsJSON, topicsJSON,
		fragment.Project)

	if err != nil {
		return fmt.Errorf("saving fragment: %w", err)
	}
	return nil
}

// GetFragment retrieves a fragment by ID with its decisions and
// assumptions hydrated, oldest first.
func (s *fragmentStore) GetFragment(ctx context.Context, id string) (*domain.Fragment, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, raw_content, summary, source_type, source_ref, captured_at, participants, topics, project
		FROM fragments WHERE id = ?
	`, id)

	fragment, err := scanFragment(row)
	if err != nil {
		return nil, err
	}

	decisions, err := s.decisionsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	fragment.Decisions = decisions

	assumptions, err := s.assumptionsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	fragment.Assumptions = assumptions

	return fragment, nil
}

// ListFragments returns fragments matching the filter, newest first.
func (s *fragmentStore) ListFragments(ctx context.Context, filter domain.Filter, limit, offset int) ([]domain.Fragment, error) {
	where, args := fragmentFilterClauses(filter)

	query := `
		SELECT id, raw_content, summary, source_type, source_ref, captured_at, participants, topics, project
		FROM fragments
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY captured_at DESC, id"

	// Token matching happens in Go, so limit/offset can only be pushed
	// into SQL when there is no free-text query.
	textual := filter.Query != ""
	if !textual {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying fragments: %w", err)
	}
	defer rows.Close()

	var fragments []domain.Fragment //nolint:prealloc // size unknown from query
	for rows.Next() {
		fragment, err := scanFragmentRows(rows)
		if err != nil {
			return nil, err
		}
		if textual && !filter.Matches(*fragment) {
			continue
		}
		fragments = append(fragments, *fragment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fragments: %w", err)
	}

	if textual {
		if offset >= len(fragments) {
			return []domain.Fragment{}, nil
		}
		fragments = fragments[offset:]
		if limit > 0 && len(fragments) > limit {
			fragments = fragments[:limit]
		}
	}

	return fragments, nil
}

// UpdateFragment applies a metadata update and returns the fresh row.
func (s *fragmentStore) UpdateFragment(ctx context.Context, id string, update domain.FragmentUpdate) (*domain.Fragment, error) {
	var sets []string
	var args []any

	if update.Project != nil {
		sets = append(sets, "project = ?")
		args = append(args, *update.Project)
	}
	if update.Topics != nil {
		topicsJSON, err := marshalStrings(update.Topics)
		if err != nil {
			return nil, fmt.Errorf("marshalling topics: %w", err)
		}
		sets = append(sets, "topics = ?")
		args = append(args, topicsJSON)
	}
	if update.Summary != nil {
		sets = append(sets, "summary = ?")
		args = append(args, *update.Summary)
	}

	if len(sets) > 0 {
		args = append(args, id)
		result, err := s.store.db.ExecContext(ctx,
			"UPDATE fragments SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("updating fragment: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("checking update result: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("fragment %s: %w", id, domain.ErrNotFound)
		}
	}

	return s.GetFragment(ctx, id)
}

// DeleteFragment removes a fragment. Dependent decisions, assumptions
// and links go with it through the schema's cascades.
func (s *fragmentStore) DeleteFragment(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM fragments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting fragment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("fragment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// decisionsFor returns a fragment's decisions, oldest first.
func (s *fragmentStore) decisionsFor(ctx context.Context, fragmentID string) ([]domain.Decision, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, fragment_id, what, why, confidence, created_at
		FROM decisions WHERE fragment_id = ?
		ORDER BY created_at, id
	`, fragmentID)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	return scanDecisions(rows)
}

// assumptionsFor returns a fragment's assumptions, oldest first.
func (s *fragmentStore) assumptionsFor(ctx context.Context, fragmentID string) ([]domain.Assumption, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, fragment_id, statement, explicit, still_valid, invalidated_by, created_at
		FROM assumptions WHERE fragment_id = ?
		ORDER BY created_at, id
	`, fragmentID)
	if err != nil {
		return nil, fmt.Errorf("querying assumptions: %w", err)
	}
	defer rows.Close()

	return scanAssumptions(rows)
}

// fragmentFilterClauses converts the structural filter fields into
// WHERE clauses. The free-text query is deliberately absent: LIKE
// treats % and _ as wildcards, matches topic tokens across the JSON
// separators, and lower() only folds ASCII, so token matching is done
// in Go against domain.Filter after scanning.
func fragmentFilterClauses(filter domain.Filter) ([]string, []any) {
	var where []string
	var args []any

	if filter.Project != nil {
		where = append(where, "project = ?")
		args = append(args, *filter.Project)
	}
	if filter.SourceType != nil {
		where = append(where, "source_type = ?")
		args = append(args, string(*filter.SourceType))
	}
	if filter.Since != nil {
		where = append(where, "captured_at >= ?")
		args = append(args, filter.Since.UTC())
	}
	if filter.Until != nil {
		where = append(where, "captured_at <= ?")
		args = append(args, filter.Until.UTC())
	}

	return where, args
}

// ==================== Link Store ====================

// linkStore implements driven.LinkStore.
type linkStore struct {
	store *Store
}

var _ driven.LinkStore = (*linkStore)(nil)

// SaveLink stores a link. Parallel edges between the same pair are
// distinct rows.
func (s *linkStore) SaveLink(ctx context.Context, link *domain.FragmentLink) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO fragment_links (id, source_id, target_id, link_type, strength, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, link.ID, link.SourceID, link.TargetID, string(link.LinkType), link.Strength, link.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving link: %w", err)
	}
	return nil
}

// LinksFor returns links touching the fragment, strongest first, then
// newest first.
func (s *linkStore) LinksFor(ctx context.Context, fragmentID string, linkType *domain.LinkType, limit int) ([]domain.FragmentLink, error) {
	query := `
		SELECT id, source_id, target_id, link_type, strength, created_at
		FROM fragment_links WHERE (source_id = ? OR target_id = ?)
	`
	args := []any{fragmentID, fragmentID}
	if linkType != nil {
		query += " AND link_type = ?"
		args = append(args, string(*linkType))
	}
	query += " ORDER BY strength DESC, created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

// ListLinks returns links up to limit, newest first.
func (s *linkStore) ListLinks(ctx context.Context, limit int) ([]domain.FragmentLink, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source_id, target_id, link_type, strength, created_at
		FROM fragment_links ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

// CountLinks returns the number of links touching the fragment.
func (s *linkStore) CountLinks(ctx context.Context, fragmentID string) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM fragment_links WHERE source_id = ? OR target_id = ?
	`, fragmentID, fragmentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting links: %w", err)
	}
	return count, nil
}

// ==================== Decision Store ====================

// decisionStore implements driven.DecisionStore.
type decisionStore struct {
	store *Store
}

var _ driven.DecisionStore = (*decisionStore)(nil)

// SaveDecision stores or updates a decision.
func (s *decisionStore) SaveDecision(ctx context.Context, decision *domain.Decision) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO decisions (id, fragment_id, what, why, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			what = excluded.what,
			why = excluded.why,
			confidence = excluded.confidence
	`, decision.ID, decision.FragmentID, decision.What, decision.Why,
		decision.Confidence, decision.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving decision: %w", err)
	}
	return nil
}

// ListDecisions returns decisions, newest first. The project filter
// goes through the owning fragment.
func (s *decisionStore) ListDecisions(ctx context.Context, project, fragmentID *string, since *time.Time, limit int) ([]domain.Decision, error) {
	query := `
		SELECT d.id, d.fragment_id, d.what, d.why, d.confidence, d.created_at
		FROM decisions d
		JOIN fragments f ON f.id = d.fragment_id
	`
	var where []string
	var args []any
	if project != nil {
		where = append(where, "f.project = ?")
		args = append(args, *project)
	}
	if fragmentID != nil {
		where = append(where, "d.fragment_id = ?")
		args = append(args, *fragmentID)
	}
	if since != nil {
		where = append(where, "d.created_at >= ?")
		args = append(args, since.UTC())
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY d.created_at DESC, d.id LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	return scanDecisions(rows)
}

// ==================== Assumption Store ====================

// assumptionStore implements driven.AssumptionStore.
type assumptionStore struct {
	store *Store
}

var _ driven.AssumptionStore = (*assumptionStore)(nil)

// SaveAssumption stores or updates an assumption.
func (s *assumptionStore) SaveAssumption(ctx context.Context, assumption *domain.Assumption) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO assumptions (id, fragment_id, statement, explicit, still_valid, invalidated_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			statement = excluded.statement,
			explicit = excluded.explicit,
			still_valid = excluded.still_valid,
			invalidated_by = excluded.invalidated_by
	`, assumption.ID, assumption.FragmentID, assumption.Statement, assumption.Explicit,
		assumption.StillValid, assumption.InvalidatedBy, assumption.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving assumption: %w", err)
	}
	return nil
}

// GetAssumption retrieves an assumption by ID.
func (s *assumptionStore) GetAssumption(ctx context.Context, id string) (*domain.Assumption, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, fragment_id, statement, explicit, still_valid, invalidated_by, created_at
		FROM assumptions WHERE id = ?
	`, id)

	return scanAssumption(row)
}

// ListAssumptions returns assumptions matching the filter, newest
// first.
func (s *assumptionStore) ListAssumptions(ctx context.Context, filter domain.AssumptionFilter, limit int) ([]domain.Assumption, error) {
	query := `
		SELECT a.id, a.fragment_id, a.statement, a.explicit, a.still_valid, a.invalidated_by, a.created_at
		FROM assumptions a
		JOIN fragments f ON f.id = a.fragment_id
	`
	var where []string
	var args []any
	if filter.Project != nil {
		where = append(where, "f.project = ?")
		args = append(args, *filter.Project)
	}
	if filter.FragmentID != nil {
		where = append(where, "a.fragment_id = ?")
		args = append(args, *filter.FragmentID)
	}
	if filter.Since != nil {
		where = append(where, "a.created_at >= ?")
		args = append(args, filter.Since.UTC())
	}
	if filter.Validity != nil {
		switch *filter.Validity {
		case domain.ValidityUnknown:
			where = append(where, "a.still_valid IS NULL")
		case domain.ValidityValid:
			where = append(where, "a.still_valid = 1")
		case domain.ValidityInvalid:
			where = append(where, "a.still_valid = 0")
		}
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY a.created_at DESC, a.id LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assumptions: %w", err)
	}
	defer rows.Close()

	return scanAssumptions(rows)
}

// UpdateValidity sets the tri-state validity of an assumption.
func (s *assumptionStore) UpdateValidity(ctx context.Context, id string, stillValid *bool, invalidatedBy *string) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE assumptions SET still_valid = ?, invalidated_by = ? WHERE id = ?
	`, stillValid, invalidatedBy, id)
	if err != nil {
		return fmt.Errorf("updating assumption validity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("assumption %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ==================== Helper Functions ====================

// marshalStrings encodes a string slice as a JSON array, never null.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFragmentFields(scanner rowScanner) (*domain.Fragment, error) {
	var fragment domain.Fragment
	var summary, sourceRef, project sql.NullString
	var sourceType, participantsJSON, topicsJSON string
	var capturedAt sql.NullTime

	if err := scanner.Scan(&fragment.ID, &fragment.Content, &summary, &sourceType,
		&sourceRef, &capturedAt, &participantsJSON, &topicsJSON, &project); err != nil {
		return nil, err
	}

	fragment.SourceType = domain.SourceType(sourceType)
	if summary.Valid {
		fragment.Summary = &summary.String
	}
	if sourceRef.Valid {
		fragment.SourceRef = &sourceRef.String
	}
	if project.Valid {
		fragment.Project = &project.String
	}
	if capturedAt.Valid {
		fragment.CapturedAt = capturedAt.Time
	}

	if err := json.Unmarshal([]byte(participantsJSON), &fragment.Participants); err != nil {
		return nil, fmt.Errorf("unmarshaling participants: %w", err)
	}
	if err := json.Unmarshal([]byte(topicsJSON), &fragment.Topics); err != nil {
		return nil, fmt.Errorf("unmarshaling topics: %w", err)
	}

	return &fragment, nil
}

// scanFragment scans a single fragment row.
func scanFragment(row *sql.Row) (*domain.Fragment, error) {
	fragment, err := scanFragmentFields(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning fragment: %w", err)
	}
	return fragment, nil
}

// scanFragmentRows scans a fragment from *sql.Rows.
func scanFragmentRows(rows *sql.Rows) (*domain.Fragment, error) {
	fragment, err := scanFragmentFields(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning fragment: %w", err)
	}
	return fragment, nil
}

// scanLinks scans multiple link rows.
func scanLinks(rows *sql.Rows) ([]domain.FragmentLink, error) {
	var links []domain.FragmentLink //nolint:prealloc // size unknown from query
	for rows.Next() {
		var link domain.FragmentLink
		var linkType string
		var createdAt sql.NullTime
		if err := rows.Scan(&link.ID, &link.SourceID, &link.TargetID,
			&linkType, &link.Strength, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		link.LinkType = domain.LinkType(linkType)
		if createdAt.Valid {
			link.CreatedAt = createdAt.Time
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating links: %w", err)
	}

	return links, nil
}

// scanDecisions scans multiple decision rows.
func scanDecisions(rows *sql.Rows) ([]domain.Decision, error) {
	var decisions []domain.Decision //nolint:prealloc // size unknown from query
	for rows.Next() {
		var decision domain.Decision
		var createdAt sql.NullTime
		if err := rows.Scan(&decision.ID, &decision.FragmentID, &decision.What,
			&decision.Why, &decision.Confidence, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		if createdAt.Valid {
			decision.CreatedAt = createdAt.Time
		}
		decisions = append(decisions, decision)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decisions: %w", err)
	}

	return decisions, nil
}

func scanAssumptionFields(scanner rowScanner) (*domain.Assumption, error) {
	var assumption domain.Assumption
	var stillValid sql.NullBool
	var invalidatedBy sql.NullString
	var createdAt sql.NullTime

	if err := scanner.Scan(&assumption.ID, &assumption.FragmentID, &assumption.Statement,
		&assumption.Explicit, &stillValid, &invalidatedBy, &createdAt); err != nil {
		return nil, err
	}

	if stillValid.Valid {
		assumption.StillValid = &stillValid.Bool
	}
	if invalidatedBy.Valid {
		assumption.InvalidatedBy = &invalidatedBy.String
	}
	if createdAt.Valid {
		assumption.CreatedAt = createdAt.Time
	}

	return &assumption, nil
}

// scanAssumption scans a single assumption row.
func scanAssumption(row *sql.Row) (*domain.Assumption, error) {
	assumption, err := scanAssumptionFields(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning assumption: %w", err)
	}
	return assumption, nil
}

// scanAssumptions scans multiple assumption rows.
func scanAssumptions(rows *sql.Rows) ([]domain.Assumption, error) {
	var assumptions []domain.Assumption //nolint:prealloc // size unknown from query
	for rows.Next() {
		assumption, err := scanAssumptionFields(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assumption: %w", err)
		}
		assumptions = append(assumptions, *assumption)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assumptions: %w", err)
	}

	return assumptions, nil
}
