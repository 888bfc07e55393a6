package generator

// EventKind identifies what an Observer is being told about.
type EventKind int

const (
	EventNote EventKind = iota
	EventBar
	EventPartial
)

func (k EventKind) String() string {
	switch k {
	case EventNote:
		return "note"
	case EventBar:
		return "bar"
	case EventPartial:
		return "partial"
	default:
		return "unknown"
	}
}

// Event describes one step of generation. Bar is set for bar and partial
// events, Note for note events.
type Event struct {
	Kind      EventKind
	Voice     string
	BarIndex  int
	Note      Note
	Bar       *Bar
	Remaining float64
}

// Observer receives generation events. It is purely diagnostic: the
// generator never reads anything back from it.
type Observer func(Event)

func (o Observer) emit(e Event) {
	if o != nil {
		o(e)
	}
}
