package session

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/casedocs/redline/internal/docx"
)

// ErrNoLiveSession is returned when an operation needs a live editor
// session (selection queries, in particular) and none exists.
var ErrNoLiveSession = errors.New("no live editor session")

// Selection is the formatting snapshot of whatever the user currently has
// selected in a live session. Field shapes follow the rule-file
// conventions: indents in inches, spacing in points.
type Selection struct {
	Style      string  `json:"style,omitempty"`
	LeftIndent float64 `json:"left_indent"`
	SpaceAfter float64 `json:"space_after"`
	Alignment  string  `json:"alignment"`
	FontName   string  `json:"font_name"`
	FontSize   float64 `json:"font_size"`
	FontBold   bool    `json:"font_bold"`
	FontItalic bool    `json:"font_italic"`
}

// Host is the bridge to the editing application that may hold the target
// document. The portable FileHost covers headless operation; an
// automation-backed host can implement richer live-session behavior
// without touching the engine.
type Host interface {
	// IsOpen reports whether a live editor session holds the document.
	IsOpen(path string) bool

	// SaveInPlace persists the document through the live session.
	SaveInPlace(path string, doc *docx.Document) error

	// SelectionFormatting reads the live selection's formatting.
	// Returns ErrNoLiveSession when there is nothing to read.
	SelectionFormatting() (*Selection, error)
}

// FileHost is the portable host: live sessions are detected through the
// lock files desktop editors drop next to open documents, in-place saves
// write the file directly (the editor detects the external change), and
// selection access is unavailable.
type FileHost struct{}

// IsOpen checks for editor lock files next to the document.
//
// Word drops an owner file named "~$" plus the file name with its first
// two characters removed; LibreOffice drops ".~lock.<name>#". Either one
// means a live session holds the document.
func (FileHost) IsOpen(path string) bool {
	dir, base := filepath.Dir(path), filepath.Base(path)

	candidates := []string{
		filepath.Join(dir, "~$"+base),
		filepath.Join(dir, ".~lock."+base+"#"),
	}
	if len(base) > 2 {
		candidates = append(candidates, filepath.Join(dir, "~$"+base[2:]))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return true
		}
	}
	return false
}

// SaveInPlace writes the document back to its original path without any
// rename, preserving whatever handle the live editor holds on the inode.
func (FileHost) SaveInPlace(path string, doc *docx.Document) error {
	return doc.WriteFile(path)
}

// SelectionFormatting always fails: a lock file proves a session exists
// but gives no channel to query it.
func (FileHost) SelectionFormatting() (*Selection, error) {
	return nil, ErrNoLiveSession
}
