package editor

type positionKind int

const (
	posEnd positionKind = iota
	posStart
	posAfter
)

// Position says where Insert puts new sections
type Position struct {
	kind positionKind
	id   string
}

var (
	// AtStart inserts before the first section
	AtStart = Position{kind: posStart}
	// AtEnd appends after the last section
	AtEnd = Position{kind: posEnd}
)

// After inserts directly after the section with id
func After(id string) Position {
	return Position{kind: posAfter, id: id}
}

func (d *Document) resolve(pos Position) (int, bool) {
	switch pos.kind {
	case posStart:
		return 0, true
	case posAfter:
		i := d.index(pos.id)
		if i < 0 {
			return 0, false
		}
		return i + 1, true
	default:
		return len(d.sections), true
	}
}
