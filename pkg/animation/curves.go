package animation

import "math"

// A curve maps linear progress t in [0, 1] to eased progress. Assign one to
// [AnimationController.Curve]; nil means [LinearCurve].

// LinearCurve returns t unchanged.
func LinearCurve(t float64) float64 {
	return t
}

// EaseCubicOut decelerates along 1-(1-t)^3. Cells use it for every move
// and fade.
func EaseCubicOut(t float64) float64 {
	t = clampUnit(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// CubicBezier returns the curve of CSS cubic-bezier(x1, y1, x2, y2). The
// endpoints are fixed at (0,0) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	bx := bezier{x1, x2}
	by := bezier{y1, y2}
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return by.at(bx.solve(t))
	}
}

// bezier is one axis of a cubic bezier with control values p1 and p2.
type bezier struct{ p1, p2 float64 }

func (b bezier) at(u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*b.p1 + 3*inv*u*u*b.p2 + u*u*u
}

func (b bezier) slope(u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*b.p1 + 6*inv*u*(b.p2-b.p1) + 3*u*u*(1-b.p2)
}

// solve finds u with at(u) == x. Newton steps first, bisection when the
// slope flattens out.
func (b bezier) solve(x float64) float64 {
	const eps = 1e-7
	u := x
	for range 8 {
		d := b.at(u) - x
		if math.Abs(d) < eps {
			return clampUnit(u)
		}
		s := b.slope(u)
		if math.Abs(s) < eps {
			break
		}
		u -= d / s
	}
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for range 30 {
		d := b.at(u) - x
		if math.Abs(d) < eps {
			break
		}
		if d > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
