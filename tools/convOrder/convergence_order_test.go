package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvergenceOrder(t *testing.T) {
	{ // Observed order of a synthetic first order study
		cs := NewConvergenceStudy("first", 0.5)
		cs.Add(50, 0.04)
		cs.Add(100, 0.02)
		cs.Add(200, 0.01)
		orders := cs.Orders()
		require.Len(t, orders, 2)
		assert.InDelta(t, 1., orders[0], 1.e-12)
		assert.InDelta(t, 1., orders[1], 1.e-12)
	}
	{ // CSV round trip keeps the studies apart
		a := NewConvergenceStudy("HLL", 0.5)
		a.Add(50, 0.04)
		a.Add(100, 0.025)
		b := NewConvergenceStudy("HLLC", 0.4)
		b.Add(50, 0.03)
		var buf bytes.Buffer
		require.NoError(t, writeCSV(&buf, map[string]*ConvergenceStudy{"HLL": a, "HLLC": b}))
		studies, err := readCSV(&buf)
		require.NoError(t, err)
		require.Len(t, studies, 2)
		assert.Equal(t, []int{50, 100}, studies["HLL"].nCells)
		assert.InDelta(t, 0.025, studies["HLL"].rhoL1[1], 1.e-12)
		assert.Equal(t, 0.4, studies["HLLC"].CFL)
		_, err = readCSV(strings.NewReader("title,nCells,CFL,rhoL1\nHLL,fifty,0.5,0.1\n"))
		assert.Error(t, err)
	}
	{ // Sod errors fall as the mesh is refined
		studies, err := RunSod([]string{"HLLC"}, []int{50, 100}, 0.5)
		require.NoError(t, err)
		cs := studies["HLLC"]
		require.Len(t, cs.rhoL1, 2)
		assert.Less(t, cs.rhoL1[1], cs.rhoL1[0])
		// Discontinuities limit first order schemes to below unit order
		assert.True(t, cs.Orders()[0] > 0.3 && cs.Orders()[0] < 1.2)
		_, err = RunSod([]string{"Roe"}, []int{50}, 0.5)
		assert.Error(t, err)
	}
}
