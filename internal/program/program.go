// Package program describes the installer entries managed by a sequence.
package program

import (
	"autoinstall/internal/pathutil"
	"path/filepath"
	"strings"
)

// Kind classifies an entry by its file suffix.
type Kind int

const (
	KindUnsupported Kind = iota
	KindExecutable       // .exe
	KindPackage          // .msi
	KindDriverInfo       // .inf
)

// Extensions accepted when adding a program.
var Extensions = []string{".exe", ".msi", ".inf"}

func (k Kind) String() string {
	switch k {
	case KindExecutable:
		return "exe"
	case KindPackage:
		return "msi"
	case KindDriverInfo:
		return "inf"
	default:
		return "unsupported"
	}
}

// Entry is one program reference in the managed list.
// The kind is derived from the path every time it is asked for.
type Entry struct {
	Path string
}

// New returns an entry for path with surrounding whitespace removed.
func New(path string) Entry {
	return Entry{Path: strings.TrimSpace(path)}
}

// Ext returns the lower-cased suffix including the dot.
func (e Entry) Ext() string {
	return strings.ToLower(filepath.Ext(e.Path))
}

// Kind returns the classification of the entry's suffix.
func (e Entry) Kind() Kind {
	return KindOf(e.Path)
}

// Key is the identity used for duplicate detection.
func (e Entry) Key() string {
	return pathutil.Normalize(e.Path)
}

// Name returns the base file name for compact display.
func (e Entry) Name() string {
	p := strings.ReplaceAll(e.Path, `\`, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// KindOf classifies path by suffix, ignoring case.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ".exe":
		return KindExecutable
	case ".msi":
		return KindPackage
	case ".inf":
		return KindDriverInfo
	default:
		return KindUnsupported
	}
}

// Accepts reports whether path passes the add filter.
func Accepts(path string) bool {
	return KindOf(path) != KindUnsupported
}
