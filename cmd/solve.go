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
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/InputParameters"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/gas"
	"github.com/gjwjdansnu-del/SHyST-calculator-sub000/tunnel"
)

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve one tunnel condition",
	Long: `
Solves the tunnel stations for one fill condition given by flags, the config file,
SHYST_ environment variables or a YAML input file:

########################################
Title: "ESTCN reference"
Gas: air
p1: 125.e3
T1: 300
Vs: 2414
pe: 34.37e6
ar: 27          # or M7: 7
Driver:         # optional ideal driver pressure estimate
  Gas: he
  T4: 300
########################################`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.SolverParameters
			r  *tunnel.Result
		)
		if ip, err = solveParameters(cmd); err != nil {
			return
		}
		ip.Print(os.Stdout)
		in := ip.Input()
		log.WithFields(log.Fields{
			"gas": in.Gas,
			"Vs":  in.Vs,
			"pe":  in.Pe,
		}).Debug("solving")
		if r, err = tunnel.Solve(in); err != nil {
			return
		}
		fmt.Println()
		r.Print(os.Stdout)
		return
	},
}

var solveKeys = []string{"gas", "p1", "T1", "Vs", "pe", "ar", "M7", "driver", "T4"}

func init() {
	rootCmd.AddCommand(SolveCmd)
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file with the tunnel condition")
	SolveCmd.Flags().String("gas", "air", "test gas: "+strings.Join(gas.Names(), ", "))
	SolveCmd.Flags().Float64("p1", 125.e3, "fill pressure [Pa]")
	SolveCmd.Flags().Float64("T1", 300, "fill temperature [K]")
	SolveCmd.Flags().Float64("Vs", 2414, "incident shock speed [m/s]")
	SolveCmd.Flags().Float64("pe", 34.37e6, "nozzle supply pressure [Pa]")
	SolveCmd.Flags().Float64("ar", 27, "nozzle exit to throat area ratio")
	SolveCmd.Flags().Float64("M7", 0, "exit Mach number, replaces ar when given")
	SolveCmd.Flags().String("driver", "", "driver gas for the ideal diaphragm pressure estimate")
	SolveCmd.Flags().Float64("T4", 300, "driver gas temperature [K]")
	for _, key := range solveKeys {
		_ = viper.BindPFlag(key, SolveCmd.Flags().Lookup(key))
	}
}

func solveParameters(cmd *cobra.Command) (ip *InputParameters.SolverParameters, err error) {
	var (
		file string
		data []byte
	)
	ip = &InputParameters.SolverParameters{}
	if file, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if len(file) != 0 {
		if data, err = readInputFile(file); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		return
	}
	ip.Title = "command line"
	ip.Gas = viper.GetString("gas")
	ip.P1 = viper.GetFloat64("p1")
	ip.T1 = viper.GetFloat64("T1")
	ip.Vs = viper.GetFloat64("Vs")
	ip.Pe = viper.GetFloat64("pe")
	ip.Ar = viper.GetFloat64("ar")
	if m7 := viper.GetFloat64("M7"); m7 != 0 {
		ip.M7, ip.Ar = m7, 0
	}
	if d := viper.GetString("driver"); d != "" {
		ip.Driver = &InputParameters.DriverParameters{Gas: d, T4: viper.GetFloat64("T4")}
	}
	return
}
