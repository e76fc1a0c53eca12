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
	"math"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/gkdas2/jax-am/InputParameters"
	"github.com/gkdas2/jax-am/fem"
	"github.com/gkdas2/jax-am/mesh"
	"github.com/gkdas2/jax-am/utils"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate residuals for a box-mesh demo problem",
	Long: `
Builds a structured box mesh and a material model from a YAML parameter file,
prescribes a uniaxial elongation field over the requested load steps and
reports residual norms (and, for plasticity, the volume-averaged stress).

jax-am run -I problem.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			mr  = &ModelRun{}
		)
		if mr.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			panic(err)
		}
		mr.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processInput(mr)
		Run(mr, ip)
	},
}

type ModelRun struct {
	InputFile string
	Profile   bool
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("inputFile", "I", "", "YAML file with problem parameters")
	RunCmd.Flags().Bool("profile", false, "write a CPU profile while running")
}

func processInput(mr *ModelRun) (ip *InputParameters.InputParameters) {
	if len(mr.InputFile) == 0 {
		err := fmt.Errorf("must supply a parameter file (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Plastic bar"
Physics: Plasticity
YoungsModulus: 70.e3
PoissonRatio: 0.3
YieldStress: 250.
Cells: [4, 2, 2]
Extents: [2., 1., 1.]
LoadSteps: 5
MaxStrain: 0.01
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(mr.InputFile)
	if err != nil {
		panic(err)
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func Run(mr *ModelRun, ip *InputParameters.InputParameters) {
	if mr.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	ip.Print()
	msh, err := mesh.Box(ip.Cells[0], ip.Cells[1], ip.Cells[2],
		ip.Extents[0], ip.Extents[1], ip.Extents[2])
	if err != nil {
		panic(err)
	}
	fmt.Printf("mesh: %d cells, %d nodes\n", msh.NumCells(), msh.NumNodes())

	var model fem.MaterialModel
	switch ip.Physics {
	case "Poisson":
		model = fem.LinearPoisson{}
	case "NonlinearPoisson":
		model = fem.NonlinearPoisson{}
	case "LinearElasticity":
		model = fem.NewLinearElasticity(ip.YoungsModulus, ip.PoissonRatio)
	case "HyperElasticity":
		model = fem.NewHyperElasticity(ip.YoungsModulus, ip.PoissonRatio)
	case "Plasticity":
		model = fem.NewPlasticity(ip.YoungsModulus, ip.PoissonRatio, ip.YieldStress, msh)
	default:
		fmt.Printf("unknown Physics %q\n", ip.Physics)
		os.Exit(1)
	}

	var (
		vec       = model.Vec()
		nu        = ip.PoissonRatio
		fixedEnd  = onPlane(0, 0)
		pulledEnd = onPlane(0, ip.Extents[0])
	)
	dirichlet := &fem.DirichletSpec{}
	for c := 0; c < vec; c++ {
		dirichlet.Locations = append(dirichlet.Locations, fixedEnd)
		dirichlet.Components = append(dirichlet.Components, c)
		dirichlet.Values = append(dirichlet.Values, func(x utils.Vec3) float64 { return 0 })
	}
	dirichlet.Locations = append(dirichlet.Locations, pulledEnd)
	dirichlet.Components = append(dirichlet.Components, 0)
	dirichlet.Values = append(dirichlet.Values, func(x utils.Vec3) float64 {
		return ip.MaxStrain * ip.Extents[0]
	})

	fe, err := fem.NewLaplace(msh, model, dirichlet, nil, nil)
	if err != nil {
		panic(err)
	}
	fmt.Printf("dirichlet constraints: %d\n", fe.Dirichlet.NumConstraints())

	for step := 1; step <= ip.LoadSteps; step++ {
		strain := ip.MaxStrain * float64(step) / float64(ip.LoadSteps)
		// prescribed uniaxial elongation with lateral contraction, standing
		// in for the converged solution an external solver would supply
		sol := utils.NewMatrix(msh.NumNodes(), vec)
		for n := 0; n < msh.NumNodes(); n++ {
			x := msh.Point(n)
			sol.Set(n, 0, strain*x[0])
			if vec == 3 {
				sol.Set(n, 1, -nu*strain*x[1])
				sol.Set(n, 2, -nu*strain*x[2])
			}
		}
		res, err := fe.ComputeResidual(sol)
		if err != nil {
			panic(err)
		}
		fmt.Printf("step %d: strain = %8.5f, |R| = %12.6e\n", step, strain, res.FrobNorm())
		if err = fe.UpdateState(sol); err != nil {
			panic(err)
		}
		if avg, err := fe.ComputeAvgStress(); err == nil {
			fmt.Printf("        avg stress diag = [%10.4f %10.4f %10.4f]\n",
				avg[0][0], avg[1][1], avg[2][2])
		}
	}
}

func onPlane(d int, val float64) fem.LocationFunc {
	return func(x utils.Vec3) bool { return math.Abs(x[d]-val) < utils.NODETOL }
}
