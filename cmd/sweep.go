/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gocarina/gocsv"
	perf "github.com/hodgesds/perf-utils"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/InputParameters"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/tunnel"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/types"
)

// SweepCmd represents the sweep command
var SweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Solve a range of tunnel conditions in parallel",
	Long: `
Varies one input of a base condition over an evenly spaced range and solves every point:

########################################
Base:
  Gas: air
  p1: 125.e3
  T1: 300
  Vs: 2414
  pe: 34.37e6
  ar: 27
Vary: Vs        # Vs, ar, p1, pe, T1 or M7
From: 1800
To: 2800
Points: 21
Threads: 0      # 0 uses every CPU
CSVFile: sweep.csv
Plot:
  File: sweep.png
  Station: "5s"
  Fields: [T]
########################################`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			file, profDir string
			countInstr    bool
			data          []byte
			sp            = &InputParameters.SweepParameters{}
		)
		if file, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		if len(file) == 0 {
			return fmt.Errorf("must supply a sweep parameters file (-I, --inputConditionsFile)")
		}
		if data, err = readInputFile(file); err != nil {
			return
		}
		if err = sp.Parse(data); err != nil {
			return fmt.Errorf("parsing %s: %w", file, err)
		}
		if profDir, err = cmd.Flags().GetString("cpuprofile"); err != nil {
			return
		}
		if countInstr, err = cmd.Flags().GetBool("perf"); err != nil {
			return
		}
		if len(profDir) != 0 {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(profDir)).Stop()
		}
		sp.Print(os.Stdout)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if !countInstr {
			return RunSweep(ctx, sp)
		}
		// The counter covers the calling thread only; one thread keeps every solve on it
		sp.Threads = 1
		pv, perr := perf.CPUInstructions(func() error { return RunSweep(ctx, sp) })
		if perr != nil {
			return perr
		}
		fmt.Printf("%d instructions\n", pv.Value)
		return
	},
}

func init() {
	rootCmd.AddCommand(SweepCmd)
	SweepCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file with the sweep parameters")
	SweepCmd.Flags().String("cpuprofile", "", "write a CPU profile into this directory")
	SweepCmd.Flags().Bool("perf", false, "count CPU instructions of the sweep (Linux perf events)")
}

// SweepRow is one CSV record of a sweep
type SweepRow struct {
	Case   int     `csv:"case"`
	Value  float64 `csv:"value"`
	P5     float64 `csv:"p5"`
	T5     float64 `csv:"T5"`
	Vr     float64 `csv:"Vr"`
	T5s    float64 `csv:"T5s"`
	H5sH1  float64 `csv:"H5s-H1"`
	P6     float64 `csv:"p6"`
	Ar     float64 `csv:"ar"`
	P7     float64 `csv:"p7"`
	T7     float64 `csv:"T7"`
	Rho7   float64 `csv:"rho7"`
	V7     float64 `csv:"V7"`
	M7     float64 `csv:"M7"`
	Pitot7 float64 `csv:"pitot7"`
	Error  string  `csv:"error"`
}

func newSweepRow(k int, v float64, o tunnel.Outcome) (row SweepRow) {
	row = SweepRow{Case: k, Value: v}
	if o.Err != nil {
		row.Error = o.Err.Error()
		return
	}
	r := o.Result
	get := func(st types.Station, q types.Quantity) float64 {
		val, _ := r.Value(st, q)
		return val
	}
	row.P5 = get(types.ST_5, types.Pressure)
	row.T5 = get(types.ST_5, types.Temperature)
	row.Vr = get(types.ST_5, types.ReflectedSpeed)
	row.T5s = get(types.ST_5s, types.Temperature)
	row.H5sH1 = r.H5sH1
	row.P6 = get(types.ST_6, types.Pressure)
	row.Ar = r.Ar
	row.P7 = get(types.ST_7, types.Pressure)
	row.T7 = get(types.ST_7, types.Temperature)
	row.Rho7 = get(types.ST_7, types.Density)
	row.V7 = get(types.ST_7, types.Velocity)
	row.M7 = get(types.ST_7, types.Mach)
	row.Pitot7 = get(types.ST_7, types.PitotPressure)
	return
}

// RunSweep solves every sweep point and writes the requested table and plot
func RunSweep(ctx context.Context, sp *InputParameters.SweepParameters) (err error) {
	var (
		inputs []tunnel.Input
		vals   []float64
		out    []tunnel.Outcome
		s      *tunnel.Solver
		failed int
	)
	if inputs, err = sp.Inputs(); err != nil {
		return
	}
	if vals, err = sp.Values(); err != nil {
		return
	}
	if s, err = tunnel.NewSolver(sp.Base.Gas); err != nil {
		return
	}
	start := time.Now()
	if out, err = tunnel.Sweep(ctx, s, inputs, sp.Threads); err != nil {
		return
	}
	rows := make([]SweepRow, len(out))
	for k, o := range out {
		rows[k] = newSweepRow(k, vals[k], o)
		if o.Err != nil {
			failed++
		}
	}
	log.WithFields(log.Fields{
		"cases":   len(out),
		"failed":  failed,
		"elapsed": time.Since(start),
	}).Info("sweep complete")

	if len(sp.CSVFile) != 0 {
		if err = writeSweepCSV(sp.CSVFile, rows); err != nil {
			return
		}
	} else {
		var csv string
		if csv, err = gocsv.MarshalString(&rows); err != nil {
			return
		}
		fmt.Print(csv)
	}
	if sp.Plot != nil {
		err = plotSweep(sp, vals, out)
	}
	return
}

func writeSweepCSV(name string, rows []SweepRow) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(name); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return
}

func plotSweep(sp *InputParameters.SweepParameters, vals []float64, out []tunnel.Outcome) (err error) {
	var (
		st    = types.NewStation(sp.Plot.Station)
		lines []interface{}
	)
	if st == types.ST_None {
		return fmt.Errorf("unknown plot station %q", sp.Plot.Station)
	}
	if len(sp.Plot.Fields) == 0 {
		return fmt.Errorf("plot needs at least one field")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s sweep of %s, station %s", sp.Base.Gas, sp.Vary, st)
	p.X.Label.Text = sp.Vary
	for _, field := range sp.Plot.Fields {
		q, ok := types.NewQuantity(field)
		if !ok {
			return fmt.Errorf("unknown plot field %q", field)
		}
		pts := make(plotter.XYs, 0, len(out))
		for k, o := range out {
			if o.Err != nil {
				continue
			}
			if v, ok := o.Result.Value(st, q); ok {
				pts = append(pts, plotter.XY{X: vals[k], Y: v})
			}
		}
		lines = append(lines, fmt.Sprintf("%s [%s]", q, q.Units()), pts)
	}
	if err = plotutil.AddLinePoints(p, lines...); err != nil {
		return
	}
	if err = p.Save(8*vg.Inch, 5*vg.Inch, sp.Plot.File); err != nil {
		return fmt.Errorf("saving plot %s: %w", sp.Plot.File, err)
	}
	log.WithField("file", sp.Plot.File).Info("plot written")
	return
}
