package fluxSchemes

import (
	"math"

	"github.com/notargets/goblast/types"
	"github.com/notargets/goblast/utils"
)

// NormalVelocity is the face normal velocity relative to the moving mesh.
func NormalVelocity(U, normal types.Vector, vMesh float64) float64 {
	return U.Dot(normal) - vMesh
}

// HLLWaveSpeeds returns the Davis estimates bounding the Riemann fan.
func HLLWaveSpeeds(UvOwn, UvNei, cOwn, cNei float64) (SOwn, SNei float64) {
	SOwn = math.Min(UvOwn-cOwn, UvNei-cNei)
	SNei = math.Max(UvOwn+cOwn, UvNei+cNei)
	return
}

// RoeWaveSpeeds bounds the fan with the owner/neighbour characteristics and
// the square root density weighted average state.
func RoeWaveSpeeds(rhoOwn, rhoNei, UvOwn, UvNei, cOwn, cNei float64) (SOwn, SNei float64) {
	var (
		rhoOwns, rhoNeis = math.Sqrt(rhoOwn), math.Sqrt(rhoNei)
		wOwn             = rhoOwns / (rhoOwns + rhoNeis)
		wNei             = 1. - wOwn
		UvTilde          = wOwn*UvOwn + wNei*UvNei
		cTilde           = wOwn*cOwn + wNei*cNei
	)
	SOwn = math.Min(UvOwn-cOwn, UvTilde-cTilde)
	SNei = math.Max(UvNei+cNei, UvTilde+cTilde)
	return
}

// RusanovWaveSpeeds returns a symmetric fan bounded by the largest local
// characteristic speed.
func RusanovWaveSpeeds(UvOwn, UvNei, cOwn, cNei float64) (SOwn, SNei float64) {
	S := math.Max(math.Abs(UvOwn)+cOwn, math.Abs(UvNei)+cNei)
	SOwn, SNei = -S, S
	return
}

/*
StarSpeed is the contact wave speed between the two star states. The result
is limited to [SOwn, SNei]; the two bounds can only be crossed when the
pressure jump overwhelms the momentum weighted velocities.
*/
func StarSpeed(rhoOwn, rhoNei, UvOwn, UvNei, pOwn, pNei, SOwn, SNei float64) (SStar float64) {
	var (
		num = pNei - pOwn + rhoOwn*UvOwn*(SOwn-UvOwn) - rhoNei*UvNei*(SNei-UvNei)
		den = rhoOwn*(SOwn-UvOwn) - rhoNei*(SNei-UvNei)
	)
	if math.Abs(den) < utils.VSmall {
		// Both fans collapse onto the particle paths
		SStar = 0.5 * (UvOwn + UvNei)
	} else {
		SStar = num / den
	}
	SStar = math.Max(SOwn, math.Min(SNei, SStar))
	return
}

// StarPressure is the pressure in the star region adjacent to a state.
func StarPressure(p, rho, S, Uv, SStar float64) float64 {
	return p + rho*(S-Uv)*(SStar-Uv)
}
