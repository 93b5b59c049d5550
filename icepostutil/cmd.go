/*
Copyright © 2025 the IcePost authors.
This file is part of IcePost.

IcePost is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

IcePost is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with IcePost.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package icepostutil wires the icepost engine to its command-line
// interface: flag and configuration handling plus the path-in/path-out
// orchestration of the merge and convergence analyses.
package icepostutil

import (
	"fmt"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/icingtools/icepost"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	// Options are the configuration options available to IcePost.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path the merged Tecplot file is written to.`,
			shorthand:  "o",
			defaultVal: "merged.dat",
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "ZThreshold",
			usage: `
              ZThreshold is the z coordinate above which wall nodes are
              discarded. Icing cases are effectively 2D; nodes beyond the
              span plane are duplicates of the section of interest.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "Tolerance",
			usage: `
              Tolerance widens the z threshold to absorb export rounding.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "Augment",
			usage: `
              Augment lists auxiliary solution files (droplet, ice) whose
              variables are appended to the merged wall, matched through
              zone titles and node indices.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "AugmentPrefix",
			usage: `
              AugmentPrefix names the column prefix for each Augment file,
              in order. Defaults to each file's base name.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "Derive",
			usage: `
              Derive adds computed output columns in the form name=expression,
              where the expression references normalized column names, for
              example "pratio=pressure/101325".`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "Arc",
			usage: `
              Arc appends the merged polyline's arc-length parameter,
              scaled onto [-1, 1], as a column named "s".`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "Manifest",
			usage: `
              Manifest is the TOML file listing the runs of the
              grid-dependency study.`,
			shorthand:  "m",
			defaultVal: "runs.toml",
			flagsets:   []*pflag.FlagSet{gciCmd.Flags()},
		},
		{
			name: "OutDir",
			usage: `
              OutDir is the directory report tables and plots are written
              into.`,
			defaultVal: "grid_dependency_results",
			flagsets:   []*pflag.FlagSet{gciCmd.Flags()},
		},
		{
			name: "Plots",
			usage: `
              Plots controls whether convergence plots are generated
              alongside the report tables.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{gciCmd.Flags()},
		},
		{
			name: "TailRows",
			usage: `
              TailRows is how many trailing iterations of a convergence
              history are averaged for the reported coefficients.`,
			defaultVal: 15,
			flagsets:   []*pflag.FlagSet{gciCmd.Flags(), historyCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ICEPOST")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch def := option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, def, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, def, option.usage)
				}
			case []string:
				set.StringSlice(option.name, def, option.usage)
			case bool:
				set.Bool(option.name, def, option.usage)
			case int:
				set.Int(option.name, def, option.usage)
			case float64:
				set.Float64(option.name, def, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(mergeCmd)
	Root.AddCommand(gciCmd)
	Root.AddCommand(historyCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("icepost: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "icepost",
	Short: "Icing-simulation post-processing.",
	Long: `IcePost merges FENSAP-family Tecplot solver output into ordered wall
polylines and performs grid-convergence (GCI) analysis across mesh
refinement levels.

Configuration can be changed with a configuration file (--config), with
command-line arguments, or with environment variables named 'ICEPOST_var'
where 'var' is the configuration variable to set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of IcePost.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("IcePost v%s\n", icepost.Version)
	},
	DisableAutoGenTag: true,
}

var mergeCmd = &cobra.Command{
	Use:   "merge [base solution file]",
	Short: "Merge wall zones into one augmented polyline.",
	Long: `merge concatenates the wall zones of a base solution file into a single
ordered polyline, appends matching columns from auxiliary files, computes
the pressure coefficient, and writes the result back out in Tecplot ASCII
format.`,
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		derive, err := parseDerive(cast.ToStringSlice(Cfg.Get("Derive")))
		if err != nil {
			return err
		}
		return MergeFiles(args[0], out,
			expandStringSlice(Cfg.GetStringSlice("Augment")),
			Cfg.GetStringSlice("AugmentPrefix"),
			derive, Cfg.GetBool("Arc"),
			Cfg.GetFloat64("ZThreshold"), Cfg.GetFloat64("Tolerance"))
	},
}

var gciCmd = &cobra.Command{
	Use:   "gci",
	Short: "Run the grid-convergence analysis.",
	Long: `gci reads the run manifest of a grid-dependency study, performs the
sliding three-grid Richardson analysis, and writes report tables and plots
with the recommended grid.`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return GCIStudy(
			Cfg.GetString("Manifest"),
			Cfg.GetString("OutDir"),
			Cfg.GetBool("Plots"))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [directory]",
	Short: "Summarize solver convergence histories.",
	Long: `history averages the lift and drag coefficients over the trailing
iterations of every convergence history file in a directory.`,
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return HistorySummary(cmd, args[0], Cfg.GetInt("TailRows"))
	},
}
