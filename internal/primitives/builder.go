package primitives

// TableBuilder builds a TableConfig fluently.
//
//	cfg, err := NewTableBuilder("light", "off").
//		State("off").On("toggle", "on").
//		State("on").On("toggle", "off").
//		Build()
type TableBuilder struct {
	config TableConfig
}

// NewTableBuilder creates a new TableBuilder.
func NewTableBuilder(id, initial string) *TableBuilder {
	return &TableBuilder{
		config: TableConfig{ID: id, Initial: initial, States: make(map[string]*StateConfig)},
	}
}

// State declares (or reopens) a state and returns a builder for it.
func (b *TableBuilder) State(id string) *StateBuilder {
	s, ok := b.config.States[id]
	if !ok {
		s = &StateConfig{}
		b.config.States[id] = s
	}
	return &StateBuilder{state: s, tb: b}
}

// Build finalizes and validates the config.
func (b *TableBuilder) Build() (TableConfig, error) {
	if err := b.config.Validate(); err != nil {
		return TableConfig{}, err
	}
	return b.config, nil
}

// StateBuilder adds transitions to one state.
type StateBuilder struct {
	state *StateConfig
	tb    *TableBuilder
}

// On adds a transition from this state on event to target.
func (sb *StateBuilder) On(event, target string) *StateBuilder {
	if sb.state.On == nil {
		sb.state.On = make(map[string]string)
	}
	sb.state.On[event] = target
	return sb
}

// State switches to another state of the same table.
func (sb *StateBuilder) State(id string) *StateBuilder {
	return sb.tb.State(id)
}

// Build finalizes the owning table.
func (sb *StateBuilder) Build() (TableConfig, error) {
	return sb.tb.Build()
}
