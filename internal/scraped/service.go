// Package scraped persists knowledge-resolution results as the
// previously-scraped birthday table, one row per artist and member.
package scraped

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/toddlburns/yt-tracker/internal/record"
)

// OutcomeImported marks rows loaded from an existing table file.
const OutcomeImported = "imported"

// Entry is one row to store with the provenance of the resolution that
// produced it.
type Entry struct {
	record.ScrapedBirthday
	Note    string
	Outcome string
}

// Found reports whether the entry carries a birthday.
func (e Entry) Found() bool { return e.Birthday != "" }

// Run is one scrape invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Targets    int
	Found      int
}

// Service provides scraped-birthday data operations.
type Service struct {
	db *sql.DB
}

// NewService creates a scraped-birthday service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// StartRun records the start of a scrape run.
func (s *Service) StartRun(ctx context.Context) (*Run, error) {
	r := &Run{ID: uuid.New().String(), StartedAt: time.Now().UTC()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scrape_runs (id, started_at) VALUES (?, ?)`,
		r.ID, r.StartedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("starting scrape run: %w", err)
	}
	return r, nil
}

// FinishRun records the end of a run with its totals.
func (s *Service) FinishRun(ctx context.Context, r *Run, targets, found int) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE scrape_runs SET finished_at = ?, targets = ?, found = ? WHERE id = ?`,
		now.Format(time.RFC3339), targets, found, r.ID)
	if err != nil {
		return fmt.Errorf("finishing scrape run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("scrape run not found: %s", r.ID)
	}
	r.FinishedAt = &now
	r.Targets = targets
	r.Found = found
	return nil
}

// GetRun retrieves a run by id.
func (s *Service) GetRun(ctx context.Context, id string) (*Run, error) {
	var (
		r        Run
		started  string
		finished sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, targets, found FROM scrape_runs WHERE id = ?`, id,
	).Scan(&r.ID, &started, &finished, &r.Targets, &r.Found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scrape run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting scrape run: %w", err)
	}
	r.StartedAt = parseTime(started)
	if finished.Valid {
		t := parseTime(finished.String)
		r.FinishedAt = &t
	}
	return &r, nil
}

// Save stores entries in one transaction. A found entry replaces any earlier
// row for the same artist and member and clears the artist's not-found
// placeholder. A not-found entry is kept only while the artist has no found
// rows. runID may be empty for imports.
func (s *Service) Save(ctx context.Context, runID string, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	run := sql.NullString{String: runID, Valid: runID != ""}
	now := time.Now().UTC().Format(time.RFC3339)

	for _, e := range entries {
		if e.Found() {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO scraped_birthdays (
					artist_name, member_name, artist_page_url, birthday, note, outcome, run_id, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (artist_name, member_name) DO UPDATE SET
					artist_page_url = excluded.artist_page_url,
					birthday = excluded.birthday,
					note = excluded.note,
					outcome = excluded.outcome,
					run_id = excluded.run_id,
					updated_at = excluded.updated_at
			`,
				e.ArtistName, e.MemberName, e.ArtistPageURL, e.Birthday, e.Note, e.Outcome, run, now,
			); err != nil {
				return fmt.Errorf("saving %s: %w", e.ArtistName, err)
			}
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM scraped_birthdays WHERE artist_name = ? AND birthday = ''`,
				e.ArtistName); err != nil {
				return fmt.Errorf("clearing placeholder for %s: %w", e.ArtistName, err)
			}
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO scraped_birthdays (
				artist_name, member_name, artist_page_url, birthday, note, outcome, run_id, updated_at
			)
			SELECT ?, '', ?, '', ?, ?, ?, ?
			WHERE NOT EXISTS (
				SELECT 1 FROM scraped_birthdays WHERE artist_name = ? AND birthday <> ''
			)
			ON CONFLICT (artist_name, member_name) DO UPDATE SET
				artist_page_url = excluded.artist_page_url,
				note = excluded.note,
				outcome = excluded.outcome,
				run_id = excluded.run_id,
				updated_at = excluded.updated_at
		`,
			e.ArtistName, e.ArtistPageURL, e.Note, e.Outcome, run, now, e.ArtistName,
		); err != nil {
			return fmt.Errorf("saving placeholder for %s: %w", e.ArtistName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing scraped birthdays: %w", err)
	}
	return nil
}

// Import loads an existing table in the keyed row shape.
func (s *Service) Import(ctx context.Context, rows []map[string]string) (int, error) {
	scraped, missing := record.NormalizeScraped(rows)
	entries := make([]Entry, 0, len(scraped)+len(missing))
	for _, sb := range scraped {
		entries = append(entries, Entry{ScrapedBirthday: sb, Outcome: OutcomeImported})
	}
	for _, m := range missing {
		entries = append(entries, Entry{
			ScrapedBirthday: record.ScrapedBirthday{ArtistName: m.ArtistName, ArtistPageURL: m.ArtistPageURL},
			Outcome:         OutcomeImported,
		})
	}
	if err := s.Save(ctx, "", entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Entries returns every stored row in insertion order.
func (s *Service) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT artist_name, member_name, artist_page_url, birthday, note, outcome
		FROM scraped_birthdays ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing scraped birthdays: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ArtistName, &e.MemberName, &e.ArtistPageURL, &e.Birthday, &e.Note, &e.Outcome); err != nil {
			return nil, fmt.Errorf("scanning scraped birthday: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// List returns every stored row in the keyed table shape.
func (s *Service) List(ctx context.Context) ([]map[string]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, record.ScrapedRow(e.ScrapedBirthday))
	}
	return out, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
