package InputParameters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
)

// State is the primitive gas state on one side of the initial discontinuity.
type State struct {
	Rho float64 `yaml:"Rho" toml:"Rho"`
	U   float64 `yaml:"U" toml:"U"`
	P   float64 `yaml:"P" toml:"P"`
}

// Phase is one fluid of a mixture sharing velocity and pressure.
type Phase struct {
	Name       string  `yaml:"Name" toml:"Name"`
	AlphaLeft  float64 `yaml:"AlphaLeft" toml:"AlphaLeft"`
	AlphaRight float64 `yaml:"AlphaRight" toml:"AlphaRight"`
	RhoLeft    float64 `yaml:"RhoLeft" toml:"RhoLeft"`
	RhoRight   float64 `yaml:"RhoRight" toml:"RhoRight"`
}

// Particles is a dispersed cloud with one velocity node per diameter.
type Particles struct {
	Name       string    `yaml:"Name" toml:"Name"`
	Rho        float64   `yaml:"Rho" toml:"Rho"`
	Diameters  []float64 `yaml:"Diameters" toml:"Diameters"`
	AlphaLeft  []float64 `yaml:"AlphaLeft" toml:"AlphaLeft"`
	AlphaRight []float64 `yaml:"AlphaRight" toml:"AlphaRight"`
}

type Drag struct {
	Model string  `yaml:"Model" toml:"Model"`
	K     float64 `yaml:"K" toml:"K"`
	Mu    float64 `yaml:"Mu" toml:"Mu"`
}

// Parameters obtained from the YAML or TOML input file
type InputParameters struct {
	Title            string     `yaml:"Title" toml:"Title"`
	FluxScheme       string     `yaml:"FluxScheme" toml:"FluxScheme"`
	ODESolver        string     `yaml:"ODESolver" toml:"ODESolver"`
	SolveODE         bool       `yaml:"SolveODE" toml:"SolveODE"`
	CFL              float64    `yaml:"CFL" toml:"CFL"`
	FinalTime        float64    `yaml:"FinalTime" toml:"FinalTime"`
	NCells           int        `yaml:"NCells" toml:"NCells"`
	XMin             float64    `yaml:"XMin" toml:"XMin"`
	XMax             float64    `yaml:"XMax" toml:"XMax"`
	Periodic         bool       `yaml:"Periodic" toml:"Periodic"`
	Gamma            float64    `yaml:"Gamma" toml:"Gamma"`
	EOS              string     `yaml:"EOS" toml:"EOS"`
	PInf             float64    `yaml:"PInf" toml:"PInf"`
	LeftState        State      `yaml:"LeftState" toml:"LeftState"`
	RightState       State      `yaml:"RightState" toml:"RightState"`
	Phases           []Phase    `yaml:"Phases" toml:"Phases"`
	AlphaCompression float64    `yaml:"AlphaCompression" toml:"AlphaCompression"`
	Particles        *Particles `yaml:"Particles" toml:"Particles"`
	Drag             Drag       `yaml:"Drag" toml:"Drag"`
	AbsTol           float64    `yaml:"AbsTol" toml:"AbsTol"`
	RelTol           float64    `yaml:"RelTol" toml:"RelTol"`
	MaxSubSteps      int        `yaml:"MaxSubSteps" toml:"MaxSubSteps"`
	ParallelDegree   int        `yaml:"ParallelDegree" toml:"ParallelDegree"`
	LogFrequency     int        `yaml:"LogFrequency" toml:"LogFrequency"`
}

// NewInputParameters returns the Sod problem defaults that a file overrides.
func NewInputParameters() *InputParameters {
	return &InputParameters{
		Title:      "Sod shock tube",
		FluxScheme: "HLLC",
		ODESolver:  "Rosenbrock12",
		CFL:        0.5,
		FinalTime:  0.2,
		NCells:     200,
		XMin:       0,
		XMax:       1,
		Gamma:      1.4,
		EOS:        "idealGas",
		LeftState:  State{Rho: 1, U: 0, P: 1},
		RightState: State{Rho: 0.125, U: 0, P: 0.1},
	}
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) ParseTOML(data []byte) (err error) {
	_, err = toml.Decode(string(data), ip)
	return
}

// ReadFile parses a file as TOML when it has a .toml extension, YAML
// otherwise.
func (ip *InputParameters) ReadFile(fileName string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	if strings.ToLower(filepath.Ext(fileName)) == ".toml" {
		err = ip.ParseTOML(data)
	} else {
		err = ip.Parse(data)
	}
	if err != nil {
		err = fmt.Errorf("reading %s: %w", fileName, err)
	}
	return
}

// EOSParameters are the parameters handed to the equation of state registry.
func (ip *InputParameters) EOSParameters() map[string]float64 {
	return map[string]float64{"gamma": ip.Gamma, "pInf": ip.PInf}
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%d]\t\t\t= NCells\n", ip.NCells)
	fmt.Printf("[%8.5f,%8.5f]\t= Domain\n", ip.XMin, ip.XMax)
	fmt.Printf("[%s]\t\t\t= Flux Scheme\n", ip.FluxScheme)
	fmt.Printf("[%s]\t\t= EOS, Gamma = %5.3f\n", ip.EOS, ip.Gamma)
	fmt.Printf("%v\t\t= Left State\n", ip.LeftState)
	fmt.Printf("%v\t\t= Right State\n", ip.RightState)
	for _, p := range ip.Phases {
		fmt.Printf("Phases[%s] = %v\n", p.Name, p)
	}
	if ip.AlphaCompression > 0 {
		fmt.Printf("%8.5f\t\t= Alpha Compression\n", ip.AlphaCompression)
	}
	if ip.Particles != nil {
		fmt.Printf("Particles[%s] = %v\n", ip.Particles.Name, *ip.Particles)
		fmt.Printf("[%s]\t\t= Drag Model\n", ip.Drag.Model)
	}
	fmt.Printf("[%s]\t\t= ODE Solver, Solve = %v\n", ip.ODESolver, ip.SolveODE)
}
