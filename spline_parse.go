package curve

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"gonum.org/v1/gonum/spatial/r3"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, 0
	}
	return f, i + n
}

// ParseSpline parses a spline in the XY plane from a path notation similar to SVG: M x y starts the spline, L x y, H x and V y add straight segments, C x1 y1 x2 y2 x y adds a Bézier segment and a trailing z closes the spline. Lowercase commands are relative. Splines without Bézier segments are Poly splines.
func ParseSpline(sPath string) (*Spline, error) {
	path := []byte(sPath)
	s := NewSpline(Bezier, false)
	bezier := false

	var prevCmd byte
	i := 0
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		} else if s.Cyclic {
			return nil, fmt.Errorf("%w: data after close at %d", ErrParse, i)
		}

		cmd := prevCmd
		if 'A' <= path[i] {
			cmd = path[i]
			i++
		}
		if cmd == 0 {
			return nil, fmt.Errorf("%w: missing command at %d", ErrParse, i)
		} else if len(s.Points) == 0 && cmd != 'M' && cmd != 'm' {
			return nil, fmt.Errorf("%w: must start with M", ErrParse)
		}

		var nums []float64
		switch cmd {
		case 'M', 'm', 'L', 'l':
			nums = make([]float64, 2)
		case 'H', 'h', 'V', 'v':
			nums = make([]float64, 1)
		case 'C', 'c':
			nums = make([]float64, 6)
		case 'Z', 'z':
		default:
			return nil, fmt.Errorf("%w: unknown command '%c' at %d", ErrParse, cmd, i-1)
		}
		for k := range nums {
			f, n := parseNum(path[i:])
			if n == 0 {
				return nil, fmt.Errorf("%w: expected number at %d", ErrParse, i)
			}
			nums[k] = f
			i += n
		}

		var pos r3.Vec
		if 0 < len(s.Points) {
			pos = s.Points[len(s.Points)-1].Co
		}
		relative := 'a' <= cmd
		abs := func(x, y float64) r3.Vec {
			if relative {
				return r3.Vec{X: pos.X + x, Y: pos.Y + y}
			}
			return r3.Vec{X: x, Y: y}
		}

		switch cmd {
		case 'M', 'm':
			if 0 < len(s.Points) {
				return nil, fmt.Errorf("%w: spline must have one M command", ErrParse)
			}
			s.Add(Vertex(r3.Vec{X: nums[0], Y: nums[1]}))
		case 'L', 'l':
			s.lineTo(abs(nums[0], nums[1]))
		case 'H', 'h':
			p := abs(nums[0], 0.0)
			p.Y = pos.Y
			s.lineTo(p)
		case 'V', 'v':
			p := abs(0.0, nums[0])
			p.X = pos.X
			s.lineTo(p)
		case 'C', 'c':
			s.cubeTo(abs(nums[0], nums[1]), abs(nums[2], nums[3]), abs(nums[4], nums[5]))
			bezier = true
		case 'Z', 'z':
			s.close()
		}
		prevCmd = cmd
		if cmd == 'M' {
			prevCmd = 'L'
		} else if cmd == 'm' {
			prevCmd = 'l'
		}
	}

	if !bezier {
		s.Kind = Poly
		s.UpdateVectorHandles()
	}
	return s, nil
}

// MustParseSpline parses a spline and panics on error.
func MustParseSpline(path string) *Spline {
	s, err := ParseSpline(path)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Spline) lineTo(p r3.Vec) {
	last := &s.Points[len(s.Points)-1]
	last.HandleRight = lerp(last.Co, p, 1.0/3.0)
	last.HandleRightType = HandleVector
	cp := Vertex(p)
	cp.HandleLeft = lerp(p, last.Co, 1.0/3.0)
	s.Add(cp)
}

func (s *Spline) cubeTo(c1, c2, p r3.Vec) {
	last := &s.Points[len(s.Points)-1]
	last.HandleRight = c1
	last.HandleRightType = HandleFree
	cp := Vertex(p)
	cp.HandleLeft = c2
	cp.HandleLeftType = HandleFree
	s.Add(cp)
}

// close makes the spline cyclic. A last point that coincides with the first is merged into it.
func (s *Spline) close() {
	s.Cyclic = true
	n := len(s.Points)
	if n < 2 {
		return
	}
	first, last := &s.Points[0], &s.Points[n-1]
	if equalVec(first.Co, last.Co) {
		first.HandleLeft = last.HandleLeft
		first.HandleLeftType = last.HandleLeftType
		s.Remove(n - 1)
		return
	}
	last.HandleRight = lerp(last.Co, first.Co, 1.0/3.0)
	last.HandleRightType = HandleVector
	first.HandleLeft = lerp(first.Co, last.Co, 1.0/3.0)
	first.HandleLeftType = HandleVector
}

// String returns the spline in the notation of ParseSpline, projected on the XY plane.
func (s *Spline) String() string {
	if len(s.Points) == 0 {
		return ""
	}

	sb := strings.Builder{}
	p0 := s.Points[0].Co
	fmt.Fprintf(&sb, "M%v %v", ftos(p0.X), ftos(p0.Y))
	for i := 0; i < s.SegmentCount(); i++ {
		q := s.SegmentPoints(i)
		closing := s.Cyclic && i == len(s.Points)-1
		if s.Kind == Poly || IsSegmentLinear(q, linearTolerance) {
			if !closing {
				fmt.Fprintf(&sb, "L%v %v", ftos(q[3].X), ftos(q[3].Y))
			}
			continue
		}
		fmt.Fprintf(&sb, "C%v %v %v %v %v %v", ftos(q[1].X), ftos(q[1].Y), ftos(q[2].X), ftos(q[2].Y), ftos(q[3].X), ftos(q[3].Y))
	}
	if s.Cyclic {
		sb.WriteString("z")
	}
	return sb.String()
}
