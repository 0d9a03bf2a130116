package core

// basisBand is the open interval (-basisBand, basisBand) a normal component must fall in
// to be used as the helper axis
const basisBand = 0.6

// Basis is a right-handed orthonormal frame with Z along a surface normal
type Basis struct {
	X, Y, Z Vec3
}

// NewOrthoBasis builds a frame around the unit normal n.
// The helper axis is chosen by testing n.X, n.Y and n.Z in that order; the first
// component inside (-0.6, 0.6) selects its axis, otherwise the X axis is used.
// The order is fixed so sampled directions are reproducible.
func NewOrthoBasis(n Vec3) Basis {
	var helper Vec3
	switch {
	case n.X < basisBand && n.X > -basisBand:
		helper.X = 1.0
	case n.Y < basisBand && n.Y > -basisBand:
		helper.Y = 1.0
	case n.Z < basisBand && n.Z > -basisBand:
		helper.Z = 1.0
	default:
		helper.X = 1.0
	}

	x := helper.Cross(n).Normalize()
	y := n.Cross(x).Normalize()

	return Basis{X: x, Y: y, Z: n}
}

// ToWorld transforms a direction expressed in the basis into world space
func (b Basis) ToWorld(local Vec3) Vec3 {
	return b.X.Multiply(local.X).Add(b.Y.Multiply(local.Y)).Add(b.Z.Multiply(local.Z))
}
