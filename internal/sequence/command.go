package sequence

// Command is a user intent forwarded by the view.
type Command interface {
	apply(s *Sequence) (Delta, error)
	name() string
}

type (
	Add      struct{ Path string }
	Remove   struct{ Selection Selection }
	MoveUp   struct{ Selection Selection }
	MoveDown struct{ Selection Selection }
	Start    struct{ Selection Selection }
	Skip     struct{}
	// Complete reports that the requested run has returned.
	Complete struct{}
)

func (c Add) apply(s *Sequence) (Delta, error)      { return s.Add(c.Path) }
func (c Remove) apply(s *Sequence) (Delta, error)   { return s.Remove(c.Selection) }
func (c MoveUp) apply(s *Sequence) (Delta, error)   { return s.MoveUp(c.Selection) }
func (c MoveDown) apply(s *Sequence) (Delta, error) { return s.MoveDown(c.Selection) }
func (c Start) apply(s *Sequence) (Delta, error)    { return s.Start(c.Selection) }
func (Skip) apply(s *Sequence) (Delta, error)       { return s.Skip() }
func (Complete) apply(s *Sequence) (Delta, error)   { return s.Complete() }

func (Add) name() string      { return "add" }
func (Remove) name() string   { return "remove" }
func (MoveUp) name() string   { return "move-up" }
func (MoveDown) name() string { return "move-down" }
func (Start) name() string    { return "start" }
func (Skip) name() string     { return "skip" }
func (Complete) name() string { return "complete" }

// Dispatch applies cmd and returns the resulting view delta.
func (s *Sequence) Dispatch(cmd Command) (Delta, error) {
	d, err := cmd.apply(s)
	ev := s.logger.Debug().Str("command", cmd.name()).Int("cursor", s.Cursor()).Int("highlight", s.highlight)
	if err != nil {
		ev = ev.AnErr("result", err)
	}
	ev.Msg("dispatch")
	return d, err
}
