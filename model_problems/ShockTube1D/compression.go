package ShockTube1D

import (
	"math"

	"github.com/notargets/goblast/types"
)

/*
compressInterface removes AlphaCompression of the numerical diffusion the
flux scheme put into the volume fractions of a two fluid mixture. Each face
moves the first fluid toward the side holding more of it at the rate given
by the scheme's AD coefficient, and the second fluid the other way. The
exchange is limited so that no cell gives up more than half of a fraction
or fills past one through a single face. Partial densities move with the
donor phase density, the mixture carries the net mass with the upwind
velocity and specific energy.
*/
func (st *ShockTube) compressInterface(dt float64) {
	var (
		m         = st.Mesh
		nCells    = m.NCells()
		a1, a2    = st.fluids[0].Alpha, st.fluids[1].Alpha
		dAlpha    = make([]float64, nCells)
		dAlphaRho = [2][]float64{make([]float64, nCells), make([]float64, nCells)}
		dRho      = make([]float64, nCells)
		dRhoE     = make([]float64, nCells)
		dRhoU     = make([]types.Vector, nCells)
	)
	a1.CorrectBoundaryConditions()
	ad := st.Flux.AD(a1)

	// exchange accumulates the outward first fluid volume flux F of cell c
	// through a face shared with nbr.
	exchange := func(c, nbr int, adf, magSf float64) {
		var (
			dtV    = dt / math.Min(m.CellVolume(c), m.CellVolume(nbr))
			F      = st.AlphaCompression * adf * magSf
			d1, d2 = c, nbr // donors of fluid 1 and fluid 2
		)
		if a1.Internal[c] == a1.Internal[nbr] || F == 0 {
			return
		}
		if a1.Internal[c] > a1.Internal[nbr] {
			F = -F
			d1, d2 = nbr, c
		}
		lim := 0.5 * math.Min(
			math.Min(a1.Internal[d1], 1-a1.Internal[d2]),
			math.Min(a2.Internal[d2], 1-a2.Internal[d1])) / dtV
		lim = math.Max(lim, 0)
		if math.Abs(F) > lim {
			F = math.Copysign(lim, F)
		}
		var (
			m1 = st.fluids[0].Rho.Internal[d1] * F
			m2 = -st.fluids[1].Rho.Internal[d2] * F
			dm = m1 + m2
			up = c
		)
		if dm < 0 {
			up = nbr
		}
		rhoUp := st.flow.Rho.Internal[up]
		dAlpha[c] += F
		dAlphaRho[0][c] += m1
		dAlphaRho[1][c] += m2
		dRho[c] += dm
		dRhoU[c] = dRhoU[c].Add(st.RhoU[up].Scale(dm / rhoUp))
		dRhoE[c] += st.RhoE[up] / rhoUp * dm
	}
	for f := 0; f < m.NInternalFaces(); f++ {
		var (
			own, nei = m.Owner()[f], m.Neighbour()[f]
			magSf    = m.Sf(f, types.InternalPatch).Mag()
			adf      = ad.Internal[f]
		)
		// Owner side outward, neighbour side the mirror image
		exchange(own, nei, adf, magSf)
		exchange(nei, own, adf, magSf)
	}
	for p, patch := range m.Patches() {
		if !patch.Coupled() {
			continue
		}
		for f, c := range patch.FaceCells {
			nbr, _ := st.neighbourCell(patch, f, c)
			exchange(c, nbr, ad.Boundary[p][f], m.Sf(f, p).Mag())
		}
	}
	for c := 0; c < nCells; c++ {
		dtV := dt / m.CellVolume(c)
		st.flow.Rho.Internal[c] -= dtV * dRho[c]
		st.RhoE[c] -= dtV * dRhoE[c]
		st.RhoU[c] = st.RhoU[c].Sub(dRhoU[c].Scale(dtV))
		for i, fl := range st.fluids {
			sign := 1.
			if i == 1 {
				sign = -1
			}
			fl.Alpha.Internal[c] = math.Max(fl.Alpha.Internal[c]-sign*dtV*dAlpha[c], 0)
			fl.AlphaRho[c] -= dtV * dAlphaRho[i][c]
			if fl.Alpha.Internal[c] > alphaSmall {
				fl.Rho.Internal[c] = fl.AlphaRho[c] / fl.Alpha.Internal[c]
			}
		}
	}
}
