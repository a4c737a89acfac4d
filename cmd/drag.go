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
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/goblast/InputParameters"
	"github.com/notargets/goblast/dragODE"
	"github.com/notargets/goblast/mesh"
	"github.com/notargets/goblast/phaseSystem"
	"github.com/notargets/goblast/types"
)

// DragCmd represents the drag command
var DragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Relax a uniform gas and particle cloud under drag",
	Long: `
Integrates the drag between the gas of LeftState and the particle cloud, at
rest initially, over FinalTime in a single cell,

goblast drag -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := processInput(cmd)
		if err := RunDrag(ip, os.Stdout); err != nil {
			logrus.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(DragCmd)
	DragCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or TOML file for input parameters")
}

func RunDrag(ip *InputParameters.InputParameters, w io.Writer) (err error) {
	pc := ip.Particles
	if pc == nil {
		return fmt.Errorf("the drag problem needs a Particles section")
	}
	if len(pc.AlphaLeft) != len(pc.Diameters) {
		return fmt.Errorf("particle cloud %s has %d diameters and %d volume fractions",
			pc.Name, len(pc.Diameters), len(pc.AlphaLeft))
	}
	var (
		m     = mesh.NewLine1D(1, ip.XMin, ip.XMax, types.Patch_Outflow, types.Patch_Outflow)
		ps    = phaseSystem.NewPhaseSystem()
		gas   = phaseSystem.NewPhase("gas", 1, 1)
		cloud = phaseSystem.NewPhase(pc.Name, len(pc.Diameters), 1)
		pp    phaseSystem.PhasePair
		dm    phaseSystem.DragModel
		d     *dragODE.DragODE
	)
	gas.SetUniform(0, 1, ip.LeftState.Rho, types.Vector{ip.LeftState.U, 0, 0})
	copy(cloud.D, pc.Diameters)
	for n := range pc.Diameters {
		cloud.SetUniform(n, pc.AlphaLeft[n], pc.Rho, types.Vector{})
	}
	for _, p := range []phaseSystem.PhaseModel{gas, cloud} {
		if err = ps.AddPhase(p); err != nil {
			return
		}
	}
	if pp, err = ps.NewPhasePair(gas.Name(), cloud.Name()); err != nil {
		return
	}
	dd := phaseSystem.DragDict{K: ip.Drag.K, Mu: ip.Drag.Mu, Dispersed: cloud.Name()}
	if dm, err = phaseSystem.NewDragModel(ip.Drag.Model, pp, dd); err != nil {
		return
	}
	if err = ps.AddDrag(pp, dm); err != nil {
		return
	}
	dict := newDragDict(ip)
	dict.SolveODE = true
	if d, err = dragODE.New(ps, m, dict); err != nil {
		return
	}
	var dtDrag float64
	if dtDrag, err = d.Solve(ip.FinalTime); err != nil {
		return
	}
	fmt.Fprintf(w, "%s\n", d)
	var mom, mass float64
	for _, p := range ps.Phases() {
		for n := 0; n < p.NNodes(); n++ {
			fmt.Fprintf(w, "%-12s node %d U = %12.6f\n", p.Name(), n, p.U(n)[0][0])
			mass += p.AlphaRho(n)[0]
			mom += p.AlphaRho(n)[0] * p.U(n)[0][0]
		}
	}
	fmt.Fprintf(w, "%-12s        U = %12.6f\n", "equilibrium", mom/mass)
	fmt.Fprintf(w, "dtDrag = %g\n", dtDrag)
	return
}
