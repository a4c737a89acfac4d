package InputParameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParameters(t *testing.T) {
	{ // YAML
		data := []byte(`
Title: "Dusty tube"
FluxScheme: HLL
CFL: 0.4
NCells: 100
LeftState:
  Rho: 2
  P: 3
Phases:
  - Name: air
    AlphaLeft: 1
    RhoLeft: 1
AlphaCompression: 0.25
Particles:
  Name: dust
  Rho: 2500
  Diameters: [1.e-4, 2.e-4]
Drag:
  Model: SchillerNaumann
  Mu: 1.8e-5
SolveODE: true
`)
		ip := NewInputParameters()
		require.NoError(t, ip.Parse(data))
		assert.Equal(t, "Dusty tube", ip.Title)
		assert.Equal(t, "HLL", ip.FluxScheme)
		assert.Equal(t, 0.4, ip.CFL)
		assert.Equal(t, 100, ip.NCells)
		assert.Equal(t, State{Rho: 2, P: 3}, ip.LeftState)
		// Defaults survive when a key is absent
		assert.Equal(t, 0.2, ip.FinalTime)
		assert.Equal(t, State{Rho: 0.125, P: 0.1}, ip.RightState)
		require.Len(t, ip.Phases, 1)
		assert.Equal(t, "air", ip.Phases[0].Name)
		assert.Equal(t, 0.25, ip.AlphaCompression)
		require.NotNil(t, ip.Particles)
		assert.Equal(t, []float64{1.e-4, 2.e-4}, ip.Particles.Diameters)
		assert.Equal(t, "SchillerNaumann", ip.Drag.Model)
		assert.True(t, ip.SolveODE)
		assert.Equal(t, 1.4, ip.EOSParameters()["gamma"])
		ip.Print()
	}
	{ // TOML by extension
		dir := t.TempDir()
		fileName := filepath.Join(dir, "case.toml")
		data := []byte(`
Title = "Stiffened"
EOS = "stiffenedGas"
Gamma = 4.4
PInf = 6.0e8
NCells = 50

[LeftState]
Rho = 1000.0
P = 1.0e9

[Drag]
Model = "constant"
K = 5.0
`)
		require.NoError(t, os.WriteFile(fileName, data, 0644))
		ip := NewInputParameters()
		require.NoError(t, ip.ReadFile(fileName))
		assert.Equal(t, "Stiffened", ip.Title)
		assert.Equal(t, "stiffenedGas", ip.EOS)
		assert.Equal(t, 50, ip.NCells)
		assert.Equal(t, 1000., ip.LeftState.Rho)
		assert.Equal(t, 6.e8, ip.EOSParameters()["pInf"])
		assert.Equal(t, 5., ip.Drag.K)
		assert.Nil(t, ip.Particles)
	}
	{ // Errors
		ip := NewInputParameters()
		assert.Error(t, ip.ReadFile(filepath.Join(t.TempDir(), "missing.yaml")))
		assert.Error(t, ip.Parse([]byte("CFL: [1, 2")))
		assert.Error(t, ip.ParseTOML([]byte("CFL = ")))
	}
}
