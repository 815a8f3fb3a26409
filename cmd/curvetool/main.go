package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/curve"
	"github.com/tdewolff/curve/document"
)

type Tool struct{}

type Info struct {
	Tolerance float64 `short:"t" default:"1e-4" desc:"Tolerance for linear and circular segments"`
	Input     string  `index:"0" desc:"Input file or - for stdin"`
}

type Offset struct {
	Offset        float64 `short:"d" desc:"Offset distance, negative shrinks"`
	StepAngle     float64 `desc:"Angle between vertices of arcs in radians"`
	RoundLineJoin bool    `short:"r" desc:"Round joins at convex corners"`
	Replace       bool    `desc:"Replace the splines instead of adding the offsets"`
	Config        string  `short:"c" desc:"TOML configuration file"`
	Verbose       bool    `short:"v" desc:"Verbose"`
	Output        string  `short:"o" default:"-" desc:"Output file"`
	Input         string  `index:"0" desc:"Input file or - for stdin"`
}

type Fillet struct {
	Radius       float64 `short:"r" desc:"Distance from the corner where rounding starts"`
	Chamfer      bool    `desc:"Chamfer instead of round"`
	LimitHalfWay bool    `desc:"Limit the radius to half of the edges"`
	Config       string  `short:"c" desc:"TOML configuration file"`
	Verbose      bool    `short:"v" desc:"Verbose"`
	Output       string  `short:"o" default:"-" desc:"Output file"`
	Input        string  `index:"0" desc:"Input file or - for stdin"`
}

type Boolean struct {
	Operation string `short:"p" default:"UNION" desc:"UNION, INTERSECTION or DIFFERENCE"`
	Depth     int    `desc:"Recursion depth of the intersection search"`
	Config    string `short:"c" desc:"TOML configuration file"`
	Verbose   bool   `short:"v" desc:"Verbose"`
	Output    string `short:"o" default:"-" desc:"Output file"`
	Input     string `index:"0" desc:"Input file or - for stdin"`
}

type Intersect struct {
	Depth   int    `desc:"Recursion depth of the intersection search"`
	Config  string `short:"c" desc:"TOML configuration file"`
	Verbose bool   `short:"v" desc:"Verbose"`
	Output  string `short:"o" default:"-" desc:"Output file"`
	Input   string `index:"0" desc:"Input file or - for stdin"`
}

func main() {
	root := argp.NewCmd(&Tool{}, "Bézier curve geometry toolkit: offset, fillet, boolean and intersection of splines")
	root.AddCmd(&Info{}, "info", "Print spline information")
	parsers["offset"] = root.AddCmd(&Offset{}, "offset", "Offset closed splines")
	parsers["fillet"] = root.AddCmd(&Fillet{}, "fillet", "Round or chamfer selected corners")
	parsers["boolean"] = root.AddCmd(&Boolean{}, "boolean", "Combine the two selected closed splines")
	parsers["intersect"] = root.AddCmd(&Intersect{}, "intersect", "Subdivide splines at their intersections")
	root.Parse()
	root.PrintHelp()
}

// parsers are the subcommand parsers, used to tell options given on the command line apart from options left at their zero value.
var parsers = map[string]*argp.Argp{}

// optionSet returns a function reporting whether an option of the subcommand was given on the command line.
func optionSet(cmd string) func(string) bool {
	return func(name string) bool {
		p, ok := parsers[cmd]
		return ok && p.IsSet(name)
	}
}

func (cmd *Tool) Run() error {
	return argp.ShowUsage
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	c, err := readCurve(cmd.Input)
	if err != nil {
		return err
	}

	for i, s := range c.Splines {
		fmt.Printf("Spline %d: %v", i, s.Kind)
		if s.Cyclic {
			fmt.Printf(" cyclic")
		}
		fmt.Printf(", %d points, length %.6g", len(s.Points), s.Length())
		if s.Cyclic {
			fmt.Printf(", area %.6g", math.Abs(s.SignedArea()))
		}
		fmt.Println()
		for j := 0; j < s.SegmentCount(); j++ {
			p := s.SegmentPoints(j)
			if s.Kind == curve.Poly || curve.IsSegmentLinear(p, cmd.Tolerance) {
				fmt.Printf("  %d: line, length %.6g\n", j, curve.BezierLength(p, 0.0, 1.0, 0))
			} else if circle, ok := curve.CircleOfBezier(p, cmd.Tolerance, 0); ok {
				fmt.Printf("  %d: arc, length %.6g, %v\n", j, curve.BezierLength(p, 0.0, 1.0, 0), circle)
			} else {
				fmt.Printf("  %d: bezier, length %.6g\n", j, curve.BezierLength(p, 0.0, 1.0, 0))
			}
		}
	}
	return nil
}

func (cmd *Offset) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	cfg, err := LoadConfig(cmd.Config)
	if err != nil {
		return err
	} else if err := setupLogger(cfg, cmd.Verbose); err != nil {
		return err
	}
	opts := cmd.options(cfg.Offset, optionSet("offset"))

	c, err := readCurve(cmd.Input)
	if err != nil {
		return err
	}
	tx := &curve.Transaction{}
	for _, s := range targetSplines(c) {
		if !s.Cyclic {
			continue
		}
		results, err := curve.Offset(s, opts)
		if err != nil {
			return err
		}
		if cmd.Replace {
			tx.Delete = append(tx.Delete, s)
		}
		tx.Insert = append(tx.Insert, results...)
	}
	if err := tx.Apply(c); err != nil {
		return err
	}
	return writeCurve(cmd.Output, c)
}

func (cmd *Fillet) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	cfg, err := LoadConfig(cmd.Config)
	if err != nil {
		return err
	} else if err := setupLogger(cfg, cmd.Verbose); err != nil {
		return err
	}
	opts := cmd.options(cfg.Fillet, optionSet("fillet"))

	c, err := readCurve(cmd.Input)
	if err != nil {
		return err
	}
	tx, err := curve.FilletCurve(c, opts)
	if err != nil {
		return err
	} else if err := tx.Apply(c); err != nil {
		return err
	}
	return writeCurve(cmd.Output, c)
}

func (cmd *Boolean) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	cfg, err := LoadConfig(cmd.Config)
	if err != nil {
		return err
	} else if err := setupLogger(cfg, cmd.Verbose); err != nil {
		return err
	}
	op, err := curve.ParseBooleanOp(cmd.Operation)
	if err != nil {
		return err
	}
	opts := cfg.Intersect
	if cmd.Depth != 0 || optionSet("boolean")("depth") {
		opts.Depth = cmd.Depth
	}

	c, err := readCurve(cmd.Input)
	if err != nil {
		return err
	}
	tx, err := curve.BooleanSelection(c, op, opts)
	if err != nil {
		return err
	} else if err := tx.Apply(c); err != nil {
		return err
	}
	return writeCurve(cmd.Output, c)
}

func (cmd *Intersect) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	cfg, err := LoadConfig(cmd.Config)
	if err != nil {
		return err
	} else if err := setupLogger(cfg, cmd.Verbose); err != nil {
		return err
	}
	opts := cfg.Intersect
	if cmd.Depth != 0 || optionSet("intersect")("depth") {
		opts.Depth = cmd.Depth
	}

	c, err := readCurve(cmd.Input)
	if err != nil {
		return err
	}
	tx, err := curve.CutAtIntersections(c, targetSplines(c), opts)
	if err != nil {
		return err
	} else if err := tx.Apply(c); err != nil {
		return err
	}
	return writeCurve(cmd.Output, c)
}

// options returns the configured offset options overridden by the options given on the command line. Options with a non-zero value count as given, since argp only tracks long options.
func (cmd *Offset) options(opts curve.OffsetOptions, isSet func(string) bool) curve.OffsetOptions {
	if cmd.Offset != 0.0 || isSet("offset") {
		opts.Offset = cmd.Offset
	}
	if cmd.StepAngle != 0.0 || isSet("step-angle") {
		opts.StepAngle = cmd.StepAngle
	}
	if cmd.RoundLineJoin || isSet("round-line-join") {
		opts.RoundLineJoin = cmd.RoundLineJoin
	}
	return opts
}

// options returns the configured fillet options overridden by the options given on the command line.
func (cmd *Fillet) options(opts curve.FilletOptions, isSet func(string) bool) curve.FilletOptions {
	if cmd.Radius != 0.0 || isSet("radius") {
		opts.Radius = cmd.Radius
	}
	if cmd.Chamfer || isSet("chamfer") {
		opts.Chamfer = cmd.Chamfer
	}
	if cmd.LimitHalfWay || isSet("limit-half-way") {
		opts.LimitHalfWay = cmd.LimitHalfWay
	}
	return opts
}

// targetSplines returns the selected splines, or all splines if none is selected.
func targetSplines(c *curve.Curve) []*curve.Spline {
	if selected := c.Selected(); 0 < len(selected) {
		return selected
	}
	return c.Splines
}

func readCurve(filename string) (*curve.Curve, error) {
	var r io.Reader = os.Stdin
	if filename != "-" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return document.Read(r)
}

func writeCurve(filename string, c *curve.Curve) error {
	if filename == "" || filename == "-" {
		return document.Write(os.Stdout, c)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := document.Write(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
