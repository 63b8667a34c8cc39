package gesture

import "fmt"

// Definition is the configuration form of a template.
type Definition struct {
	ID         ID     `yaml:"id"`
	Directions []int  `yaml:"directions"`
	Filter     string `yaml:"filter,omitempty"`
}

// Template resolves the definition's filter name.
func (d Definition) Template() (Template, error) {
	f, err := FilterByName(d.Filter)
	if err != nil {
		return Template{}, fmt.Errorf("template %q: %w", d.ID, err)
	}
	return Template{ID: d.ID, Directions: append([]int(nil), d.Directions...), Filter: f}, nil
}

// Templates resolves a list of definitions, keeping their order.
func Templates(defs []Definition) ([]Template, error) {
	out := make([]Template, 0, len(defs))
	for _, d := range defs {
		t, err := d.Template()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Gesture ids of the default vocabulary.
const (
	HorizontalLine  ID = "horizontalLine"
	HorizontalLine2 ID = "horizontalLine2"
	VerticalLine    ID = "verticalLine"
	VerticalLine2   ID = "verticalLine2"
	ArrowUp         ID = "arrowUp"
	ArrowDown       ID = "arrowDown"
	ArrowLeft       ID = "arrowLeft"
	ArrowRight      ID = "arrowRight"
	EShape          ID = "eShape"
	WShape          ID = "wShape"
	DoubleWShape    ID = "doubleWShape"
	UShape          ID = "uShape"
	ZShape          ID = "zShape"
	BShape          ID = "bShape"
	MShape          ID = "mShape"
	CapitalFShape   ID = "capitalFShape"
	CapitalTShape   ID = "capitalTShape"
	ContortedCShape ID = "contortedCShape"
	PShape          ID = "pShape"
	RShape          ID = "rShape"
	Lightning       ID = "lightning"
	Diamond         ID = "diamond"
	Ribbon          ID = "ribbon"
)

// DefaultDefinitions returns the built-in vocabulary in registration order.
func DefaultDefinitions() []Definition {
	return []Definition{
		{ID: HorizontalLine, Directions: []int{0}, Filter: "horizontal"},
		{ID: HorizontalLine2, Directions: []int{4}, Filter: "horizontal"},
		{ID: VerticalLine, Directions: []int{2}, Filter: "vertical"},
		{ID: VerticalLine2, Directions: []int{6}, Filter: "vertical"},
		{ID: ArrowUp, Directions: []int{7, 1}},
		{ID: ArrowDown, Directions: []int{1, 7}},
		{ID: ArrowLeft, Directions: []int{3, 1}},
		{ID: ArrowRight, Directions: []int{1, 3}},
		{ID: EShape, Directions: []int{4, 3, 2, 1, 0, 4, 3, 2, 1, 0}},
		{ID: WShape, Directions: []int{2, 7, 1, 6}},
		{ID: DoubleWShape, Directions: []int{2, 7, 1, 6, 2, 7, 1, 6}},
		{ID: UShape, Directions: []int{2, 1, 0, 7, 6}},
		{ID: ZShape, Directions: []int{0, 3, 0}},
		{ID: BShape, Directions: []int{2, 6, 0, 1, 2, 3, 4, 0, 1, 2, 3, 4}},
		{ID: MShape, Directions: []int{6, 1, 7, 2}},
		{ID: CapitalFShape, Directions: []int{4, 3, 2, 1, 0, 4, 3, 2}},
		{ID: CapitalTShape, Directions: []int{0, 2}},
		{ID: ContortedCShape, Directions: []int{3, 5, 2, 7, 1}},
		{ID: PShape, Directions: []int{6, 1, 3}},
		{ID: RShape, Directions: []int{6, 1, 3, 1}},
		{ID: Lightning, Directions: []int{2, 7, 2}},
		{ID: Diamond, Directions: []int{1, 3, 5, 7}},
		{ID: Ribbon, Directions: []int{7, 5, 3, 1}},
	}
}

// DefaultTemplates returns the built-in vocabulary as templates.
func DefaultTemplates() []Template {
	t, err := Templates(DefaultDefinitions())
	if err != nil {
		panic(err) // built-in filter names are fixed
	}
	return t
}
