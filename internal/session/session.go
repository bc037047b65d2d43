// Package session resolves how the engine may touch a target document:
// whether it opened the document itself (and so must persist via a
// temp-sibling atomic swap) or found it already open in a live editor
// session (and so must save in place and never close or rename anything
// the user is working in).
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/casedocs/redline/internal/docx"
)

// State describes how the target document was resolved.
type State int

const (
	// NotFound: the target does not exist.
	NotFound State = iota

	// OpenedByEngine: the engine opened the document itself and owns the
	// full save/close lifecycle.
	OpenedByEngine

	// AlreadyOpenElsewhere: a live editor session holds the document.
	// The engine binds to it, saves in place, and never closes it.
	AlreadyOpenElsewhere
)

func (s State) String() string {
	switch s {
	case NotFound:
		return "not_found"
	case OpenedByEngine:
		return "opened_by_engine"
	case AlreadyOpenElsewhere:
		return "already_open_elsewhere"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrNotFound is returned by Resolve when the target document is missing.
var ErrNotFound = errors.New("document not found")

// Session is a resolved handle on one target document. The ownership tag
// selects the persist code path; collapsing the two paths into one is how
// automation code ends up destroying a user's unrelated open work.
type Session struct {
	Doc   *docx.Document
	State State

	path string
	host Host
}

// Resolve opens the target document, binding to a live editor session when
// one holds it.
func Resolve(path string, host Host) (*Session, error) {
	if host == nil {
		host = FileHost{}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}

	state := OpenedByEngine
	if host.IsOpen(abs) {
		state = AlreadyOpenElsewhere
	}

	doc, err := docx.Open(abs)
	if err != nil {
		return nil, err
	}
	slog.Debug("session resolved", "path", abs, "state", state)
	return &Session{Doc: doc, State: state, path: abs, host: host}, nil
}

// Path returns the absolute path of the target document.
func (s *Session) Path() string { return s.path }

// Persist applies the save protocol keyed on the accumulated changed flag
// and the ownership tag:
//
//   - changed=false: no-op; the on-disk file is left byte-identical.
//   - changed, live session: save in place so the interactive user sees
//     the update without losing context.
//   - changed, engine-owned: write a complete temp sibling, then atomically
//     swap it over the original. The original is only ever replaced by a
//     fully written copy, so a crash at any point leaves it intact.
func (s *Session) Persist(changed bool) error {
	if !changed {
		slog.Debug("no changes, leaving document untouched", "path", s.path)
		return nil
	}

	if s.State == AlreadyOpenElsewhere {
		slog.Info("saving in place through live session", "path", s.path)
		return s.host.SaveInPlace(s.path, s.Doc)
	}

	data, err := s.Doc.Bytes()
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(s.path),
		fmt.Sprintf(".%s.tmp-%s", filepath.Base(s.path), uuid.NewString()))
	if err := writeFileSync(tmp, data); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing temp copy %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("swapping %s into place: %w", tmp, err)
	}
	slog.Info("document updated", "path", s.path)
	return nil
}

// writeFileSync writes data and fsyncs before closing, so the rename that
// follows never publishes a partially flushed file.
func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
