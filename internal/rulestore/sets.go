package rulestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/casedocs/redline/internal/rules"
)

// ErrSetNotFound is returned when a named rule set does not exist.
var ErrSetNotFound = errors.New("rule set not found")

// SetInfo summarizes one stored rule set.
type SetInfo struct {
	Name      string `json:"name"`
	Rules     int    `json:"rules"`
	UpdatedAt string `json:"updated_at"`
}

// SaveSet stores a rule set under name, replacing any previous contents.
// Declaration order is preserved through row positions.
func (s *Store) SaveSet(ctx context.Context, name string, ruleSet []rules.Rule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO rule_sets (name, updated_at) VALUES (?, datetime('now'))
		 ON CONFLICT(name) DO UPDATE SET updated_at = datetime('now')`, name); err != nil {
		return fmt.Errorf("upserting rule set %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rules WHERE set_name = ?`, name); err != nil {
		return fmt.Errorf("clearing rule set %q: %w", name, err)
	}

	for i, r := range ruleSet {
		body, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding rule %q: %w", r.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rules (set_name, position, name, enabled, body) VALUES (?, ?, ?, ?, ?)`,
			name, i, r.Name, r.Enabled, string(body)); err != nil {
			return fmt.Errorf("storing rule %q: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// LoadSet returns the named rule set in stored order.
func (s *Store) LoadSet(ctx context.Context, name string) ([]rules.Rule, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rule_sets WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("looking up rule set %q: %w", name, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, name)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM rules WHERE set_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("reading rule set %q: %w", name, err)
	}
	defer rows.Close()

	var out []rules.Rule
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		var r rules.Rule
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return nil, fmt.Errorf("decoding stored rule: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteSet removes a rule set and its rules.
func (s *Store) DeleteSet(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rule_sets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting rule set %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSetNotFound, name)
	}
	return nil
}

// ListSets returns summaries of every stored set, alphabetically.
func (s *Store) ListSets(ctx context.Context) ([]SetInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rs.name, rs.updated_at, COUNT(r.set_name)
		 FROM rule_sets rs LEFT JOIN rules r ON r.set_name = rs.name
		 GROUP BY rs.name ORDER BY rs.name`)
	if err != nil {
		return nil, fmt.Errorf("listing rule sets: %w", err)
	}
	defer rows.Close()

	var out []SetInfo
	for rows.Next() {
		var info SetInfo
		if err := rows.Scan(&info.Name, &info.UpdatedAt, &info.Rules); err != nil {
			return nil, fmt.Errorf("scanning rule set summary: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// ImportFile validates and stores a JSON rule file as the named set.
// Returns the number of rules imported and the number skipped.
func (s *Store) ImportFile(ctx context.Context, name, path string) (imported, skipped int, err error) {
	loaded, err := rules.LoadFile(path)
	if err != nil {
		return 0, 0, err
	}
	if err := s.SaveSet(ctx, name, loaded.Rules); err != nil {
		return 0, 0, err
	}
	return len(loaded.Rules), len(loaded.Skipped), nil
}

// ExportFile writes the named set as an ordered JSON rule file the engine
// loads directly.
func (s *Store) ExportFile(ctx context.Context, name, path string) error {
	ruleSet, err := s.LoadSet(ctx, name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(ruleSet, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding rule set %q: %w", name, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
