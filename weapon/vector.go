package weapon

import "math"

// Vec3 は左手系 (X: 右, Y: 上, Z: 前) の3次元ベクトルです。
type Vec3 struct {
	X, Y, Z float64
}

var (
	Right   = Vec3{X: 1}
	Up      = Vec3{Y: 1}
	Forward = Vec3{Z: 1}
)

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Normalize は単位ベクトルを返します。長さ0のベクトルはそのまま返します。
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	inv := 1.0 / l
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// IsFinite はすべての成分が NaN でも無限大でもないかを返します。
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// IsFinite は f が NaN でも無限大でもないかを返します。
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Quat は回転を表す単位クォータニオンです。
type Quat struct {
	X, Y, Z, W float64
}

// Identity は無回転のクォータニオンです。
var Identity = Quat{W: 1}

const epsilon = 1e-9

// LookRotation は Z 軸を forward に、Y 軸をできるだけ up に揃える回転を返します。
// forward が長さ0の場合は Identity を返します。
func LookRotation(forward, up Vec3) Quat {
	z := forward.Normalize()
	if z.LengthSq() < epsilon {
		return Identity
	}
	x := up.Cross(z)
	if x.LengthSq() < epsilon {
		// forward と up が平行な場合は別の基準軸を使う
		x = Forward.Cross(z)
		if x.LengthSq() < epsilon {
			x = Right
		}
	}
	x = x.Normalize()
	y := z.Cross(x)
	return quatFromBasis(x, y, z)
}

// quatFromBasis は列ベクトル x, y, z からなる回転行列をクォータニオンに変換します。
func quatFromBasis(x, y, z Vec3) Quat {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quat{W: 0.25 * s, X: (m21 - m12) / s, Y: (m02 - m20) / s, Z: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = Quat{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}
	return q.Normalize()
}

// AxisAngle は axis 周りに angle ラジアン回転するクォータニオンを返します。
func AxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	if a.LengthSq() < epsilon {
		return Identity
	}
	s := math.Sin(angle / 2)
	return Quat{X: a.X * s, Y: a.Y * s, Z: a.Z * s, W: math.Cos(angle / 2)}
}

func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l == 0 {
		return Identity
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Rotate はベクトル v を q で回転させます。
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Forward は回転後の Z 軸を返します。
func (q Quat) Forward() Vec3 {
	return q.Rotate(Forward)
}

// Ray は始点と方向を持つ半直線です。
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Transform は位置と姿勢です。
type Transform struct {
	Position Vec3
	Rotation Quat
}

func (t Transform) Forward() Vec3 {
	return t.Rotation.Forward()
}

// TransformDirection はローカル空間の方向をワールド空間に変換します。
func (t Transform) TransformDirection(v Vec3) Vec3 {
	return t.Rotation.Rotate(v)
}
