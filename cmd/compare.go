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
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/compare"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/tunnel"
)

// CompareCmd represents the compare command
var CompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Check the solver against the ESTCN reference condition",
	Long: `
Solves the ESTCN air condition (p1 = 125 kPa, T1 = 300 K, Vs = 2414 m/s, pe = 34.37 MPa,
ar = 27) and grades every field against the ESTCN values: PASS below 1 %, WARN up to 5 %,
FAIL above. Enthalpies are compared as rises above the fill state.
The command exits non-zero when any field fails.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			c   compare.Case
			r   *tunnel.Result
			rep *compare.Report
		)
		if c, err = compare.ESTCN(); err != nil {
			return
		}
		if r, err = tunnel.Solve(c.Input); err != nil {
			return
		}
		if rep, err = compare.Run(c, r); err != nil {
			return
		}
		rep.Print(os.Stdout)
		log.WithFields(log.Fields{
			"pass": rep.Count(compare.Pass),
			"warn": rep.Count(compare.Warn),
			"fail": rep.Count(compare.Fail),
		}).Debug("comparison complete")
		if rep.Worst() == compare.Fail {
			return fmt.Errorf("%d fields differ from %s by more than %g%%",
				rep.Count(compare.Fail), c.Name, compare.WarnLimit)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(CompareCmd)
}
