package gesture

import "github.com/vovakirdan/runes/internal/core"

// ResultKind tells what a finished stroke turned out to be.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultGesture
	ResultCircle
)

// String returns a human-readable name for the kind.
func (k ResultKind) String() string {
	switch k {
	case ResultGesture:
		return "gesture"
	case ResultCircle:
		return "circle"
	default:
		return "none"
	}
}

// Result is the classification of one stroke.
type Result struct {
	Kind   ResultKind
	Match  Match  // set for ResultGesture
	Circle Circle // set for ResultCircle
	Path   PathInfo
}

// Recognizer collects touch points of one stroke at a time.
// Circle detection runs before template matching and wins over it.
type Recognizer struct {
	matcher *Matcher
	circle  CircleParams
	points  []core.Vec2
	active  bool
}

// NewRecognizer creates a recognizer over the given matcher.
func NewRecognizer(m *Matcher, circle CircleParams) *Recognizer {
	return &Recognizer{matcher: m, circle: circle}
}

// Matcher returns the template matcher.
func (r *Recognizer) Matcher() *Matcher {
	return r.matcher
}

// Begin starts a new stroke, discarding any unfinished one.
func (r *Recognizer) Begin(p core.Vec2) {
	r.points = append(r.points[:0], p)
	r.active = true
}

// Move extends the current stroke. Points without a Begin are ignored.
func (r *Recognizer) Move(p core.Vec2) {
	if !r.active {
		return
	}
	r.points = append(r.points, p)
}

// Active reports whether a stroke is in progress.
func (r *Recognizer) Active() bool {
	return r.active
}

// Points returns the raw points of the stroke in progress.
func (r *Recognizer) Points() []core.Vec2 {
	return r.points
}

// Cancel drops the stroke in progress.
func (r *Recognizer) Cancel() {
	r.points = r.points[:0]
	r.active = false
}

// End finishes the stroke and classifies it.
func (r *Recognizer) End() Result {
	if !r.active {
		return Result{}
	}
	res := r.Recognize(r.points)
	r.Cancel()
	return res
}

// Recognize classifies a complete stroke without touching recognizer state.
func (r *Recognizer) Recognize(points []core.Vec2) Result {
	info := r.matcher.Describe(points)
	res := Result{Path: info}
	if c, ok := DetectCircle(info, r.circle); ok {
		res.Kind = ResultCircle
		res.Circle = c
		return res
	}
	if m, ok := r.matcher.MatchPath(info); ok {
		res.Kind = ResultGesture
		res.Match = m
	}
	return res
}
