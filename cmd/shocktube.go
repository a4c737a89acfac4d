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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/goblast/InputParameters"
	"github.com/notargets/goblast/dragODE"
	"github.com/notargets/goblast/model_problems/ShockTube1D"
	"github.com/notargets/goblast/ode"
	"github.com/notargets/goblast/phaseSystem"
	"github.com/notargets/goblast/sod_shock_tube"
	"github.com/notargets/goblast/thermo"
	"github.com/notargets/goblast/utils"
)

const exampleFile = `
########################################
Title: "Sod shock tube"
FluxScheme: HLLC
CFL: 0.5
FinalTime: 0.2
NCells: 200
LeftState: {Rho: 1, U: 0, P: 1}
RightState: {Rho: 0.125, U: 0, P: 0.1}
########################################
`

// ShockTubeCmd represents the shocktube command
var ShockTubeCmd = &cobra.Command{
	Use:   "shocktube",
	Short: "First order finite volume shock tube, optionally multiphase and particle laden",
	Long: `
Runs a Riemann problem on a line with any of the flux schemes, reporting the
L1 density error against the exact solution for a single ideal gas,

goblast shocktube -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := processInput(cmd)
		if flux, _ := cmd.Flags().GetString("flux"); flux != "" {
			ip.FluxScheme = flux
		}
		if n, _ := cmd.Flags().GetInt("nCells"); n > 0 {
			ip.NCells = n
		}
		ip.Print()
		if err := RunShockTube(ip); err != nil {
			logrus.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(ShockTubeCmd)
	ShockTubeCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or TOML file for input parameters")
	ShockTubeCmd.Flags().StringP("flux", "f", "", "flux scheme, overrides the input file: HLL, HLLC, Rusanov")
	ShockTubeCmd.Flags().IntP("nCells", "n", 0, "number of cells, overrides the input file")
}

// processInput reads the input file named by -I, or returns the Sod
// defaults when there is none.
func processInput(cmd *cobra.Command) (ip *InputParameters.InputParameters) {
	ip = InputParameters.NewInputParameters()
	fileName, _ := cmd.Flags().GetString("inputConditionsFile")
	if len(fileName) == 0 {
		fmt.Printf("no input parameters file (-I, --inputConditionsFile), using defaults like:%s\n", exampleFile)
		return
	}
	if err := ip.ReadFile(fileName); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func newDragDict(ip *InputParameters.InputParameters) dragODE.Dict {
	return dragODE.Dict{
		SolveODE:       ip.SolveODE,
		ODESolver:      ip.ODESolver,
		ODE:            ode.Dict{AbsTol: ip.AbsTol, RelTol: ip.RelTol},
		MaxSubSteps:    ip.MaxSubSteps,
		ParallelDegree: ip.ParallelDegree,
	}
}

func newShockTubeConfig(ip *InputParameters.InputParameters) (cfg ShockTube1D.Config, err error) {
	var eos thermo.EquationOfState
	if eos, err = thermo.NewEquationOfState(ip.EOS, ip.EOSParameters()); err != nil {
		return
	}
	cfg = ShockTube1D.Config{
		Title:            ip.Title,
		CFL:              ip.CFL,
		FinalTime:        ip.FinalTime,
		NCells:           ip.NCells,
		XMin:             ip.XMin,
		XMax:             ip.XMax,
		Periodic:         ip.Periodic,
		Left:             sod_shock_tube.State{Rho: ip.LeftState.Rho, U: ip.LeftState.U, P: ip.LeftState.P},
		Right:            sod_shock_tube.State{Rho: ip.RightState.Rho, U: ip.RightState.U, P: ip.RightState.P},
		FluxScheme:       ip.FluxScheme,
		EOS:              eos,
		Drag:             newDragDict(ip),
		ParallelDegree:   ip.ParallelDegree,
		LogFrequency:     ip.LogFrequency,
		AlphaCompression: ip.AlphaCompression,
	}
	for _, p := range ip.Phases {
		cfg.Fluids = append(cfg.Fluids, ShockTube1D.Fluid{
			Name:       p.Name,
			AlphaLeft:  p.AlphaLeft,
			AlphaRight: p.AlphaRight,
			RhoLeft:    p.RhoLeft,
			RhoRight:   p.RhoRight,
		})
	}
	if pc := ip.Particles; pc != nil {
		cfg.Particles = &ShockTube1D.Particles{
			Name:       pc.Name,
			Rho:        pc.Rho,
			Diameters:  pc.Diameters,
			AlphaLeft:  pc.AlphaLeft,
			AlphaRight: pc.AlphaRight,
			DragModel:  ip.Drag.Model,
			DragDict:   phaseSystem.DragDict{K: ip.Drag.K, Mu: ip.Drag.Mu},
		}
	}
	return
}

func RunShockTube(ip *InputParameters.InputParameters) (err error) {
	var (
		cfg ShockTube1D.Config
		st  *ShockTube1D.ShockTube
	)
	if cfg, err = newShockTubeConfig(ip); err != nil {
		return
	}
	if st, err = ShockTube1D.NewShockTube(cfg); err != nil {
		return
	}
	if err = st.Run(); err != nil {
		return
	}
	mass, momentum, energy := st.Totals()
	fields := logrus.Fields{
		"steps":    st.Steps,
		"time":     st.Time,
		"mass":     mass,
		"momentum": momentum,
		"energy":   energy,
		"memory":   utils.GetMemUsage(),
	}
	if l1, l1Err := st.DensityL1Error(); l1Err == nil {
		fields["L1(rho)"] = l1
	}
	logrus.WithFields(fields).Info("shock tube complete")
	return
}
