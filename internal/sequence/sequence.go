// Package sequence implements the ordered installer list and the cursor,
// skip and highlight rules that decide which program runs next.
//
// A Sequence is not safe for concurrent use. The owner serializes every
// call, which the TUI does by handling one message at a time.
package sequence

import (
	"autoinstall/internal/pathutil"
	"autoinstall/internal/program"
	"autoinstall/internal/store"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
)

// MaxEntries is the capacity of a sequence.
const MaxEntries = 10

var (
	ErrCapacityExceeded  = fmt.Errorf("cannot add more than %d programs", MaxEntries)
	ErrDuplicateEntry    = errors.New("this program is already in the list")
	ErrEmptyPath         = errors.New("program path is empty")
	ErrNoEligibleProgram = errors.New("the list is empty or selection is out of range")
	ErrEndOfList         = errors.New("there are no more programs to skip")
	ErrRunInProgress     = errors.New("a program is already running")
	ErrNoRunInProgress   = errors.New("no program is running")

	// ErrSave wraps store failures. The in-memory change has already been
	// applied when it is returned.
	ErrSave = errors.New("save programs")
)

// IsInformational reports whether err is a navigation state or notice
// rather than a failure.
func IsInformational(err error) bool {
	return errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, ErrNoEligibleProgram) ||
		errors.Is(err, ErrEndOfList)
}

// Selection is an optional list index chosen in the view.
type Selection struct {
	index int
	ok    bool
}

// NoSelection means the user has nothing selected.
var NoSelection = Selection{}

// Select returns a selection of index i.
func Select(i int) Selection {
	return Selection{index: i, ok: true}
}

// Index returns the selected index and whether there is one.
func (s Selection) Index() (int, bool) {
	return s.index, s.ok
}

// RunRequest asks the caller to execute Entry, which sits at Index.
type RunRequest struct {
	Index int
	Entry program.Entry
}

// Delta describes what the view must change after an operation.
type Delta struct {
	// Reselect is false when the view keeps its current selection.
	Reselect  bool
	Selection Selection
	// Highlight is the next-to-run index, -1 when there is none.
	Highlight int
	Run       *RunRequest
}

// Sequence owns the program list, the cursor and the skip markers.
type Sequence struct {
	entries   []program.Entry
	cursor    int
	skipped   map[int]struct{}
	highlight int
	running   bool

	store  store.Store
	logger zerolog.Logger
}

// Option configures a Sequence.
type Option func(*Sequence)

// WithLogger sets the logger used for mutation events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sequence) {
		s.logger = l
	}
}

// Load builds a sequence from the paths in st. Blank paths, duplicates
// and paths past capacity are dropped; the store is not rewritten.
func Load(st store.Store, opts ...Option) (*Sequence, error) {
	s := &Sequence{
		skipped:   make(map[int]struct{}),
		highlight: -1,
		store:     st,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	paths, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load programs: %w", err)
	}

	for _, p := range paths {
		e := program.New(p)
		switch {
		case e.Path == "":
			continue
		case s.indexOf(e) >= 0:
			s.logger.Warn().Str("path", e.Path).Msg("dropping duplicate stored program")
			continue
		case len(s.entries) >= MaxEntries:
			s.logger.Warn().Str("path", e.Path).Int("max", MaxEntries).Msg("dropping stored program past capacity")
			continue
		}
		s.entries = append(s.entries, e)
	}

	s.logger.Debug().Int("entries", len(s.entries)).Msg("sequence loaded")
	return s, nil
}

// Len returns the number of entries.
func (s *Sequence) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the ordered entries.
func (s *Sequence) Entries() []program.Entry {
	return slices.Clone(s.entries)
}

// Entry returns the entry at i.
func (s *Sequence) Entry(i int) (program.Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return program.Entry{}, false
	}
	return s.entries[i], true
}

// Paths returns the entry paths in order.
func (s *Sequence) Paths() []string {
	paths := make([]string, len(s.entries))
	for i, e := range s.entries {
		paths[i] = e.Path
	}
	return paths
}

// Cursor returns the current index, or -1 when the list is empty.
func (s *Sequence) Cursor() int {
	if len(s.entries) == 0 {
		return -1
	}
	return s.cursor
}

// Highlight returns the next-to-run index, or -1.
func (s *Sequence) Highlight() int {
	return s.highlight
}

// IsSkipped reports whether position i carries a skip marker.
func (s *Sequence) IsSkipped(i int) bool {
	_, ok := s.skipped[i]
	return ok
}

// Skipped returns the skip markers in ascending order.
func (s *Sequence) Skipped() []int {
	out := make([]int, 0, len(s.skipped))
	for i := range s.skipped {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Running reports whether a run request is outstanding.
func (s *Sequence) Running() bool {
	return s.running
}

// Add appends path to the list.
func (s *Sequence) Add(path string) (Delta, error) {
	if s.running {
		return Delta{}, ErrRunInProgress
	}

	e := program.New(path)
	if e.Path == "" {
		return Delta{}, ErrEmptyPath
	}
	if len(s.entries) >= MaxEntries {
		return Delta{}, ErrCapacityExceeded
	}
	if i := s.indexOf(e); i >= 0 {
		return Delta{Highlight: s.highlight}, fmt.Errorf("%w: %s", ErrDuplicateEntry, s.entries[i].Path)
	}

	s.entries = append(s.entries, e)
	s.logger.Info().Str("path", e.Path).Str("kind", e.Kind().String()).Msg("program added")

	return Delta{Highlight: s.highlight}, s.save()
}

// Remove deletes the selected entry.
func (s *Sequence) Remove(sel Selection) (Delta, error) {
	if s.running {
		return Delta{}, ErrRunInProgress
	}

	index, ok := sel.Index()
	if !ok || index < 0 || index >= len(s.entries) {
		return Delta{Highlight: s.highlight}, nil
	}

	removed := s.entries[index]
	s.entries = slices.Delete(s.entries, index, index+1)
	n := len(s.entries)

	if s.cursor > index {
		s.cursor--
	}
	s.cursor = clamp(s.cursor, 0, max(n-1, 0))

	shifted := make(map[int]struct{}, len(s.skipped))
	for i := range s.skipped {
		switch {
		case i < index:
			shifted[i] = struct{}{}
		case i > index:
			shifted[i-1] = struct{}{}
		}
	}
	s.skipped = shifted

	if s.highlight > index {
		s.highlight--
	}
	if n == 0 {
		s.highlight = -1
	} else {
		s.highlight = clamp(s.highlight, -1, n-1)
	}

	s.logger.Info().Str("path", removed.Path).Int("index", index).Msg("program removed")

	d := Delta{Reselect: true, Highlight: s.highlight}
	if n > 0 {
		d.Selection = Select(min(index, n-1))
	}
	return d, s.save()
}

// MoveUp swaps the selected entry with the one above it.
func (s *Sequence) MoveUp(sel Selection) (Delta, error) {
	index, ok := sel.Index()
	if !ok || index <= 0 || index >= len(s.entries) {
		return Delta{Highlight: s.highlight}, s.guardRun()
	}
	return s.swap(index, index-1)
}

// MoveDown swaps the selected entry with the one below it.
func (s *Sequence) MoveDown(sel Selection) (Delta, error) {
	index, ok := sel.Index()
	if !ok || index < 0 || index >= len(s.entries)-1 {
		return Delta{Highlight: s.highlight}, s.guardRun()
	}
	return s.swap(index, index+1)
}

// swap exchanges two entries. Cursor, highlight and skip markers are
// positions and stay where they are.
func (s *Sequence) swap(from, to int) (Delta, error) {
	if s.running {
		return Delta{}, ErrRunInProgress
	}

	s.entries[from], s.entries[to] = s.entries[to], s.entries[from]
	s.logger.Info().Str("path", s.entries[to].Path).Int("from", from).Int("to", to).Msg("program moved")

	return Delta{Reselect: true, Selection: Select(to), Highlight: s.highlight}, s.save()
}

// Start makes the selected entry, or the first one, current and requests
// its execution. Complete must be called once the run has finished.
func (s *Sequence) Start(sel Selection) (Delta, error) {
	if s.running {
		return Delta{}, ErrRunInProgress
	}

	target := 0
	if i, ok := sel.Index(); ok {
		target = i
	}
	if len(s.entries) == 0 || target < 0 || target >= len(s.entries) {
		return Delta{Highlight: s.highlight}, ErrNoEligibleProgram
	}

	s.cursor = target
	s.running = true
	e := s.entries[target]
	s.logger.Info().Str("path", e.Path).Int("index", target).Msg("run started")

	return Delta{
		Reselect:  true,
		Selection: Select(target),
		Highlight: s.highlight,
		Run:       &RunRequest{Index: target, Entry: e},
	}, nil
}

// Complete ends the outstanding run and advances the highlight.
// The outcome of the run does not matter.
func (s *Sequence) Complete() (Delta, error) {
	if !s.running {
		return Delta{Highlight: s.highlight}, ErrNoRunInProgress
	}
	s.running = false
	s.advanceHighlight()
	s.logger.Debug().Int("cursor", s.cursor).Int("highlight", s.highlight).Msg("run completed")

	return Delta{Reselect: true, Selection: Select(s.highlight), Highlight: s.highlight}, nil
}

// Skip moves the cursor one forward and marks the position it lands on.
func (s *Sequence) Skip() (Delta, error) {
	if s.running {
		return Delta{}, ErrRunInProgress
	}
	if s.cursor+1 >= len(s.entries) {
		return Delta{Highlight: s.highlight}, ErrEndOfList
	}

	s.cursor++
	s.skipped[s.cursor] = struct{}{}
	s.advanceHighlight()
	s.logger.Info().Int("cursor", s.cursor).Int("highlight", s.highlight).Msg("program skipped")

	return Delta{Reselect: true, Selection: Select(s.highlight), Highlight: s.highlight}, nil
}

// advanceHighlight points the highlight at cursor+1 when that position
// exists and is not skipped, and at the cursor otherwise.
func (s *Sequence) advanceHighlight() {
	next := s.cursor + 1
	if next < len(s.entries) && !s.IsSkipped(next) {
		s.highlight = next
		return
	}
	s.highlight = s.cursor
}

func (s *Sequence) guardRun() error {
	if s.running {
		return ErrRunInProgress
	}
	return nil
}

func (s *Sequence) indexOf(e program.Entry) int {
	return slices.IndexFunc(s.entries, func(x program.Entry) bool {
		return pathutil.Same(x.Path, e.Path)
	})
}

func (s *Sequence) save() error {
	if err := s.store.Save(s.Paths()); err != nil {
		s.logger.Error().Err(err).Msg("save programs")
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

func clamp[T constraints.Integer](v, low, high T) T {
	return max(low, min(v, high))
}
