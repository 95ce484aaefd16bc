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
	"io/ioutil"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shyst",
	Short: "Reflected shock tunnel condition calculator",
	Long: `
Computes the gas states of a reflected shock tunnel from the fill condition, the
incident shock speed, the nozzle supply pressure and the nozzle area ratio:

  1   driven gas fill
  2   behind the incident shock
  5   behind the reflected shock
  5s  nozzle supply after relaxation to pe
  6   nozzle throat
  7   nozzle exit

shyst solve --gas air --p1 125e3 --T1 300 --Vs 2414 --pe 34.37e6 --ar 27`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevel(log.InfoLevel)
		if viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.shyst.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every solver stage")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".shyst")
	}
	viper.SetEnvPrefix("SHYST")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

func readInputFile(name string) (data []byte, err error) {
	if data, err = ioutil.ReadFile(name); err != nil {
		return nil, fmt.Errorf("reading input parameters file: %w", err)
	}
	return
}
