package soilcard

// Stage names reported through Observer.
const (
	StageMatch      = "match"
	StageCandidate  = "candidate"
	StageReject     = "reject"
	StageAccept     = "accept"
	StageUnresolved = "unresolved"
	StageFallback   = "fallback"
	StageVision     = "vision"
)

// Event describes one decision taken while extracting a card.
type Event struct {
	Stage     string
	Parameter string
	Token     string
	Score     float64
	Reason    string
}

// Observer receives extraction diagnostics. Implementations must not block.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
