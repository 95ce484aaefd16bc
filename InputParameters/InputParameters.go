package InputParameters

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/floats"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/tunnel"
)

// Parameters obtained from the YAML input file
type SolverParameters struct {
	Title  string            `json:"Title"`
	Gas    string            `json:"Gas"`
	P1     float64           `json:"p1"`
	T1     float64           `json:"T1"`
	Vs     float64           `json:"Vs"`
	Pe     float64           `json:"pe"`
	Ar     float64           `json:"ar"`
	M7     float64           `json:"M7"` // Used in place of ar when ar is absent
	Driver *DriverParameters `json:"Driver,omitempty"`
}

type DriverParameters struct {
	Gas string  `json:"Gas"`
	T4  float64 `json:"T4"`
}

func (ip *SolverParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *SolverParameters) Input() (in tunnel.Input) {
	in = tunnel.Input{
		Gas: ip.Gas,
		P1:  ip.P1,
		T1:  ip.T1,
		Vs:  ip.Vs,
		Pe:  ip.Pe,
		Ar:  ip.Ar,
		M7:  ip.M7,
	}
	if ip.Driver != nil {
		in.Driver = &tunnel.Driver{Gas: ip.Driver.Gas, T4: ip.Driver.T4}
	}
	return
}

func (ip *SolverParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t\t= Gas\n", ip.Gas)
	fmt.Fprintf(w, "%12.5g\t\t= p1 [Pa]\n", ip.P1)
	fmt.Fprintf(w, "%12.5g\t\t= T1 [K]\n", ip.T1)
	fmt.Fprintf(w, "%12.5g\t\t= Vs [m/s]\n", ip.Vs)
	fmt.Fprintf(w, "%12.5g\t\t= pe [Pa]\n", ip.Pe)
	if ip.M7 != 0 && ip.Ar == 0 {
		fmt.Fprintf(w, "%12.5g\t\t= M7\n", ip.M7)
	} else {
		fmt.Fprintf(w, "%12.5g\t\t= ar\n", ip.Ar)
	}
	if ip.Driver != nil {
		fmt.Fprintf(w, "[%s] %.1f K\t\t= Driver\n", ip.Driver.Gas, ip.Driver.T4)
	}
}

// SweepParameters vary one input of Base over an evenly spaced range
type SweepParameters struct {
	Base    SolverParameters `json:"Base"`
	Vary    string           `json:"Vary"` // One of Vs, ar, p1, pe, T1, M7
	From    float64          `json:"From"`
	To      float64          `json:"To"`
	Points  int              `json:"Points"`
	Threads int              `json:"Threads"`
	CSVFile string           `json:"CSVFile"`
	Plot    *PlotParameters  `json:"Plot,omitempty"`
}

// PlotParameters select the station quantities drawn against the varied input
type PlotParameters struct {
	File    string   `json:"File"`
	Station string   `json:"Station"`
	Fields  []string `json:"Fields"`
}

func (sp *SweepParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

var sweepFields = map[string]func(in *tunnel.Input, v float64){
	"vs": func(in *tunnel.Input, v float64) { in.Vs = v },
	"ar": func(in *tunnel.Input, v float64) { in.Ar, in.M7 = v, 0 },
	"p1": func(in *tunnel.Input, v float64) { in.P1 = v },
	"pe": func(in *tunnel.Input, v float64) { in.Pe = v },
	"t1": func(in *tunnel.Input, v float64) { in.T1 = v },
	"m7": func(in *tunnel.Input, v float64) { in.M7, in.Ar = v, 0 },
}

// Values are the sweep points from From to To inclusive
func (sp *SweepParameters) Values() (vals []float64, err error) {
	if sp.Points < 2 {
		return nil, fmt.Errorf("sweep needs at least two points, got %d", sp.Points)
	}
	if r := []float64{sp.From, sp.To}; floats.HasNaN(r) || math.IsInf(sp.From, 0) || math.IsInf(sp.To, 0) {
		return nil, fmt.Errorf("sweep range [%g, %g] is not finite", sp.From, sp.To)
	}
	vals = floats.Span(make([]float64, sp.Points), sp.From, sp.To)
	return
}

// Inputs builds one solver input per sweep point
func (sp *SweepParameters) Inputs() (inputs []tunnel.Input, err error) {
	var (
		vals []float64
	)
	set, ok := sweepFields[strings.ToLower(strings.TrimSpace(sp.Vary))]
	if !ok {
		return nil, fmt.Errorf("unknown sweep variable %q, use one of Vs, ar, p1, pe, T1, M7", sp.Vary)
	}
	if vals, err = sp.Values(); err != nil {
		return
	}
	inputs = make([]tunnel.Input, len(vals))
	for i, v := range vals {
		inputs[i] = sp.Base.Input()
		set(&inputs[i], v)
	}
	return
}

func (sp *SweepParameters) Print(w io.Writer) {
	sp.Base.Print(w)
	fmt.Fprintf(w, "[%s] %g to %g, %d points\t= Sweep\n", sp.Vary, sp.From, sp.To, sp.Points)
	if sp.CSVFile != "" {
		fmt.Fprintf(w, "[%s]\t\t= CSV output\n", sp.CSVFile)
	}
	if sp.Plot != nil {
		fmt.Fprintf(w, "[%s] station %s %v\t= Plot\n", sp.Plot.File, sp.Plot.Station, sp.Plot.Fields)
	}
}
