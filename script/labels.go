package script

// LabelID uniquely identifies a label within one script.
type LabelID int

// NoLabel is the zero LabelID's invalid counterpart.
const NoLabel LabelID = -1

// Label binds a source name to a block. Block is -1 while the declaration has
// not been seen yet (forward references).
type Label struct {
	Name  string
	Block int
}

// LabelMap stores the labels in a script and allows lookup by ID, name, or
// block. Names are unique.
type LabelMap struct {
	labels  []Label
	byName  map[string]LabelID
	byBlock map[int][]LabelID
}

// NewLabelMap creates an empty label map.
func NewLabelMap() LabelMap {
	return LabelMap{
		byName:  make(map[string]LabelID),
		byBlock: make(map[int][]LabelID),
	}
}

// Len returns the number of labels.
func (m *LabelMap) Len() int { return len(m.labels) }

// Get returns the label for an ID.
func (m *LabelMap) Get(id LabelID) (Label, bool) {
	if id < 0 || int(id) >= len(m.labels) {
		return Label{}, false
	}
	return m.labels[id], true
}

// FindName returns the ID of the label named name.
func (m *LabelMap) FindName(name string) (LabelID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// FindBlock returns the IDs of all labels bound to a block.
func (m *LabelMap) FindBlock(block int) []LabelID {
	return m.byBlock[block]
}

// Insert adds a label bound to block (or -1 for unbound) and returns its ID.
// Fails with a DuplicateLabel error if the name is taken.
func (m *LabelMap) Insert(name string, block int) (LabelID, error) {
	if _, ok := m.byName[name]; ok {
		return NoLabel, &ResolutionError{Kind: DuplicateLabel, Name: name}
	}
	id := LabelID(len(m.labels))
	m.labels = append(m.labels, Label{Name: name, Block: block})
	m.byName[name] = id
	if block >= 0 {
		m.byBlock[block] = append(m.byBlock[block], id)
	}
	return id, nil
}

// Bind attaches an unbound label to a block. Binding an already-bound label
// is a DuplicateLabel error since it means the declaration was repeated.
func (m *LabelMap) Bind(id LabelID, block int) error {
	l := &m.labels[id]
	if l.Block >= 0 {
		return &ResolutionError{Kind: DuplicateLabel, Name: l.Name}
	}
	l.Block = block
	m.byBlock[block] = append(m.byBlock[block], id)
	return nil
}

// Unresolved returns the name of any label that was referenced but never
// declared, or "" if all labels are bound.
func (m *LabelMap) Unresolved() string {
	for _, l := range m.labels {
		if l.Block < 0 {
			return l.Name
		}
	}
	return ""
}
