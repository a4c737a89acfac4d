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

	"github.com/spf13/cobra"

	"github.com/notargets/goblast/fluxSchemes"
	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/sod_shock_tube"
	"github.com/notargets/goblast/thermo"
	"github.com/notargets/goblast/types"
)

// FluxCmd represents the flux command
var FluxCmd = &cobra.Command{
	Use:   "flux",
	Short: "Print the flux through a single face",
	Long: `
Evaluates one flux scheme for an ideal gas owner (left) and neighbour (right)
state across a face with unit area normal along x,

goblast flux --scheme HLLC --rhoL 1 --pL 1 --rhoR 0.125 --pR 0.1`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			left, right sod_shock_tube.State
			flags       = cmd.Flags()
		)
		scheme, _ := flags.GetString("scheme")
		gamma, _ := flags.GetFloat64("gamma")
		left.Rho, _ = flags.GetFloat64("rhoL")
		left.U, _ = flags.GetFloat64("uL")
		left.P, _ = flags.GetFloat64("pL")
		right.Rho, _ = flags.GetFloat64("rhoR")
		right.U, _ = flags.GetFloat64("uR")
		right.P, _ = flags.GetFloat64("pR")
		ff, err := FaceFlux(scheme, gamma, left, right)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			return
		}
		fmt.Printf("%12.8f\t= phi\n", ff.Phi)
		fmt.Printf("%12.8f\t= rhoPhi\n", ff.RhoPhi)
		fmt.Printf("%12.8f\t= rhoUPhi\n", ff.RhoUPhi[0])
		fmt.Printf("%12.8f\t= rhoEPhi\n", ff.RhoEPhi)
	},
}

func init() {
	rootCmd.AddCommand(FluxCmd)
	FluxCmd.Flags().StringP("scheme", "s", "HLLC", "flux scheme: HLL, HLLC, Rusanov")
	FluxCmd.Flags().Float64("gamma", 1.4, "ratio of specific heats")
	FluxCmd.Flags().Float64("rhoL", 1, "owner density")
	FluxCmd.Flags().Float64("uL", 0, "owner velocity")
	FluxCmd.Flags().Float64("pL", 1, "owner pressure")
	FluxCmd.Flags().Float64("rhoR", 0.125, "neighbour density")
	FluxCmd.Flags().Float64("uR", 0, "neighbour velocity")
	FluxCmd.Flags().Float64("pR", 0.1, "neighbour pressure")
}

func faceState(eos thermo.EquationOfState, s sod_shock_tube.State) fluxSchemes.FaceState {
	e := eos.InternalEnergy(s.Rho, s.P)
	return fluxSchemes.FaceState{
		Rho: s.Rho,
		U:   types.Vector{s.U, 0, 0},
		E:   e,
		P:   s.P,
		C:   eos.SoundSpeed(s.Rho, e),
	}
}

// FaceFlux evaluates the named scheme on the internal face of a two cell line.
func FaceFlux(scheme string, gamma float64, left, right sod_shock_tube.State) (ff fluxSchemes.FaceFluxes, err error) {
	var (
		m   = mesh.NewLine1D(2, 0, 2, types.Patch_Outflow, types.Patch_Outflow)
		fs  fluxSchemes.FluxScheme
		eos thermo.EquationOfState
	)
	if eos, err = thermo.NewEquationOfState("idealGas", map[string]float64{"gamma": gamma}); err != nil {
		return
	}
	if fs, err = fluxSchemes.NewFluxScheme(scheme, m); err != nil {
		return
	}
	fs.Clear()
	fs.Allocate()
	ff = fs.CalculateFluxes(faceState(eos, left), faceState(eos, right),
		m.Sf(0, types.InternalPatch), 0, types.InternalPatch)
	return
}
