package canvas

import "math"

type MeasureMode int

const (
	MeasureNone MeasureMode = iota
	MeasureLine
	MeasureCircle
	MeasureCone
)

func (m MeasureMode) String() string {
	switch m {
	case MeasureLine:
		return "line"
	case MeasureCircle:
		return "circle"
	case MeasureCone:
		return "cone"
	default:
		return "none"
	}
}

// ConeHalfAngle is half the aperture of the cone template.
const ConeHalfAngle = math.Pi / 6

// Measure is an active ruler in world space.
type Measure struct {
	Mode       MeasureMode
	Start, End Vec
}

func (m Measure) Length() float64 { return m.Start.Dist(m.End) }

// ConeEdges returns the two outer edge end points of a cone whose axis runs
// from Start to End. The edges are lengthened so the closing chord passes
// through End.
func (m Measure) ConeEdges() (a, b Vec) {
	angle := math.Atan2(m.End.Y-m.Start.Y, m.End.X-m.Start.X)
	length := m.Length() / math.Cos(ConeHalfAngle)
	a = m.Start.Add(Vec{length * math.Cos(angle-ConeHalfAngle), length * math.Sin(angle-ConeHalfAngle)})
	b = m.Start.Add(Vec{length * math.Cos(angle+ConeHalfAngle), length * math.Sin(angle+ConeHalfAngle)})
	return a, b
}
