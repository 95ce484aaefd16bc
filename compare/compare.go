// Package compare checks a tunnel solution against published reference
// conditions and grades each field by its percentage difference.
package compare

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"

	"github.com/gocarina/gocsv"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/tunnel"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/types"
)

type Status uint8

const (
	Pass Status = iota // below 1 %
	Warn               // 1 to 5 %
	Fail               // above 5 %
)

var StatusNameMap = map[string]Status{
	"PASS": Pass,
	"WARN": Warn,
	"FAIL": Fail,
}

func (s Status) String() string {
	for name, st := range StatusNameMap {
		if st == s {
			return name
		}
	}
	return "unknown"
}

const (
	PassLimit = 1. // percent
	WarnLimit = 5.
)

// Classify grades a percentage difference
func Classify(diffPct float64) Status {
	d := math.Abs(diffPct)
	switch {
	case math.IsNaN(d):
		return Fail
	case d < PassLimit:
		return Pass
	case d <= WarnLimit:
		return Warn
	}
	return Fail
}

// Row is one reference value as stored in CSV
type Row struct {
	Station  string  `csv:"station"`
	Quantity string  `csv:"quantity"`
	Value    float64 `csv:"value"`
}

// Case is a reference input with its expected output
type Case struct {
	Name  string
	Input tunnel.Input
	Rows  []Row
}

//go:embed estcn.csv
var estcnCSV []byte

// ESTCN is the air condition p1 = 125 kPa, T1 = 300 K, Vs = 2414 m/s,
// pe = 34.37 MPa, ar = 27 with the values computed by ESTCN.
func ESTCN() (c Case, err error) {
	c = Case{
		Name:  "ESTCN air",
		Input: tunnel.Input{Gas: "air", P1: 125000, T1: 300, Vs: 2414, Pe: 34.37e6, Ar: 27},
	}
	c.Rows, err = LoadRows(bytes.NewReader(estcnCSV))
	return
}

// LoadRows reads station,quantity,value records
func LoadRows(r io.Reader) (rows []Row, err error) {
	if err = gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading reference rows: %w", err)
	}
	return
}

type Line struct {
	Station   types.Station
	Quantity  types.Quantity
	Reference float64
	Value     float64
	DiffPct   float64
	Status    Status
}

type Report struct {
	Case  string
	Lines []Line
}

// Run compares res with the reference rows of c. Enthalpies are compared as
// rises above the fill state since the two enthalpy datums differ.
func Run(c Case, res *tunnel.Result) (rep *Report, err error) {
	var (
		refH1, h1 float64
		haveH1    bool
	)
	for _, row := range c.Rows {
		if types.NewStation(row.Station) == types.ST_1 && row.Quantity == types.Enthalpy.String() {
			refH1, haveH1 = row.Value, true
		}
	}
	if s1, ok := res.Station(types.ST_1); ok {
		h1 = s1.Gas.H
	}
	rep = &Report{Case: c.Name}
	for i, row := range c.Rows {
		st := types.NewStation(row.Station)
		q, ok := types.NewQuantity(row.Quantity)
		if !ok {
			return nil, fmt.Errorf("row %d: unknown quantity %q", i+1, row.Quantity)
		}
		if st == types.ST_None && q != types.EnthalpyRise {
			return nil, fmt.Errorf("row %d: unknown station %q", i+1, row.Station)
		}
		ref := row.Value
		val, ok := res.Value(st, q)
		if !ok {
			return nil, fmt.Errorf("row %d: station %s missing from the result", i+1, st)
		}
		if q == types.Enthalpy {
			if st == types.ST_1 {
				continue
			}
			if !haveH1 {
				return nil, fmt.Errorf("row %d: enthalpy needs the station 1 reference", i+1)
			}
			ref -= refH1
			val -= h1
		}
		diff := 100 * (val - ref) / math.Abs(ref)
		if ref == 0 {
			diff = 0
			if val != 0 {
				diff = math.Inf(1)
			}
		}
		rep.Lines = append(rep.Lines, Line{
			Station:   st,
			Quantity:  q,
			Reference: ref,
			Value:     val,
			DiffPct:   diff,
			Status:    Classify(diff),
		})
	}
	return
}

// Worst is the most severe status in the report
func (rep *Report) Worst() (s Status) {
	for _, l := range rep.Lines {
		if l.Status > s {
			s = l.Status
		}
	}
	return
}

func (rep *Report) Count(s Status) (n int) {
	for _, l := range rep.Lines {
		if l.Status == s {
			n++
		}
	}
	return
}

func (rep *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "%s\n", rep.Case)
	fmt.Fprintf(w, "%-4s %-8s %14s %14s %9s  %s\n", "st", "field", "reference", "computed", "diff %", "status")
	for _, l := range rep.Lines {
		name := l.Quantity.String()
		if l.Quantity == types.Enthalpy {
			name = "h-h1"
		}
		fmt.Fprintf(w, "%-4s %-8s %14.6g %14.6g %+9.3f  %s\n",
			l.Station, name, l.Reference, l.Value, l.DiffPct, l.Status)
	}
	fmt.Fprintf(w, "pass %d, warn %d, fail %d\n", rep.Count(Pass), rep.Count(Warn), rep.Count(Fail))
}
