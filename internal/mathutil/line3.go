package mathutil

import "github.com/chewxy/math32"

// Line3 is a 3D line segment between two single-precision points.
// Start == End is allowed; such a line has zero magnitude.
// The zero value is a degenerate line at the origin.
type Line3 struct {
	Start Vec3f
	End   Vec3f
}

// NewLine3 creates a line from start to end.
func NewLine3(start, end Vec3f) Line3 {
	return Line3{Start: start, End: end}
}

// Line3FromValues creates a line from explicit coordinates.
func Line3FromValues(x1, y1, z1, x2, y2, z2 float32) Line3 {
	return Line3{Start: Vec3f{x1, y1, z1}, End: Vec3f{x2, y2, z2}}
}

func (l *Line3) Set(start, end Vec3f) {
	l.Start = start
	l.End = end
}

func (l *Line3) SetStart(x, y, z float32) {
	l.Start = Vec3f{x, y, z}
}

func (l *Line3) SetEnd(x, y, z float32) {
	l.End = Vec3f{x, y, z}
}

func (l *Line3) SetValues(x1, y1, z1, x2, y2, z2 float32) {
	l.SetStart(x1, y1, z1)
	l.SetEnd(x2, y2, z2)
}

// Copy overwrites l with src.
func (l *Line3) Copy(src Line3) {
	*l = src
}

// Clone returns an independent copy.
func (l Line3) Clone() Line3 {
	return l
}

// Delta returns End - Start.
func (l Line3) Delta() Vec3f {
	return l.End.Sub(l.Start)
}

func (l Line3) Center() Vec3f {
	return l.Start.Add(l.End).Scale(0.5)
}

// Magnitude returns the distance from Start to End.
func (l Line3) Magnitude() float32 {
	return l.Start.DistTo(l.End)
}

func (l Line3) MagnitudeSq() float32 {
	return l.Delta().LenSq()
}

// At returns the point Start + Delta*t. t outside [0, 1] extrapolates.
func (l Line3) At(t float32) Vec3f {
	return l.Start.Add(l.Delta().Scale(t))
}

// ClosestPointParameter returns t such that At(t) is the point on the
// line closest to p. With clamp, t is restricted to the segment.
// A degenerate line returns 0.
func (l Line3) ClosestPointParameter(p Vec3f, clamp bool) float32 {
	d := l.Delta()
	dd := d.LenSq()
	if dd == 0 {
		return 0
	}
	t := p.Sub(l.Start).Dot(d) / dd
	if clamp {
		t = math32.Max(0, math32.Min(1, t))
	}
	return t
}

func (l Line3) ClosestPoint(p Vec3f, clamp bool) Vec3f {
	return l.At(l.ClosestPointParameter(p, clamp))
}

// ApplyMat3 returns the line with both endpoints multiplied by m.
func (l Line3) ApplyMat3(m Mat3) Line3 {
	return Line3{
		Start: m.MulVec3(l.Start.Vec3()).Vec3f(),
		End:   m.MulVec3(l.End.Vec3()).Vec3f(),
	}
}

// ApplyMat4 returns the line with both endpoints transformed as points by m.
func (l Line3) ApplyMat4(m Mat4) Line3 {
	return Line3{
		Start: m.MulPoint(l.Start.Vec3()).Vec3f(),
		End:   m.MulPoint(l.End.Vec3()).Vec3f(),
	}
}

func (l Line3) ExactEquals(o Line3) bool {
	return l == o
}

func (l Line3) Equals(o Line3, eps float32) bool {
	return l.Start.ApproxEqual(o.Start, eps) && l.End.ApproxEqual(o.End, eps)
}
