package gesture

import "fmt"

// Elongated rejects strokes whose bounding box is not stretched along the
// expected axis by at least ratio.
func Elongated(horizontal bool, ratio float64) Filter {
	return func(cost int, info PathInfo) int {
		long, short := info.Bounds.W, info.Bounds.H
		if !horizontal {
			long, short = short, long
		}
		if long < short*ratio {
			return Reject
		}
		return cost
	}
}

// FilterByName resolves the filter names used in configuration files.
// The empty name means no filter.
func FilterByName(name string) (Filter, error) {
	switch name {
	case "":
		return nil, nil
	case "horizontal":
		return Elongated(true, 2), nil
	case "vertical":
		return Elongated(false, 2), nil
	default:
		return nil, fmt.Errorf("gesture: unknown filter %q", name)
	}
}
