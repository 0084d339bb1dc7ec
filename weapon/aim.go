package weapon

import (
	"context"
	"fmt"
)

// AimFallbackDistance は命中がない場合にカメラ前方へ置く照準点までの距離です。
const AimFallbackDistance = 1000.0

// AimRequest は照準計算の入力です。
type AimRequest struct {
	Fire         Transform
	Camera       Ray
	MaxDistance  float64
	SpreadRadius float64
	Mask         LayerMask
}

// Aim は照準計算の結果です。
type Aim struct {
	Orientation Quat
	Direction   Vec3 // 発射位置から照準点への単位ベクトル
	Spread      Vec3 // ワールド空間の拡散オフセット
	Target      Vec3
	Hit         bool
}

// AimResolver はカメラ視線のレイキャストと拡散から発射方向を求めます。
// 状態を持たないため複数の武器で共有できます。
type AimResolver struct {
	raycaster Raycaster
	spread    SpreadSource
}

// NewAimResolver は AimResolver を生成します。raycaster が nil の場合は常に前方の照準点を使います。
func NewAimResolver(raycaster Raycaster, spread SpreadSource) AimResolver {
	if spread == nil {
		spread = RandomSpread{}
	}
	return AimResolver{raycaster: raycaster, spread: spread}
}

// Resolve は発射方向を計算します。
// レイキャストが命中しない場合や MaxDistance <= 0 の場合はカメラ前方の照準点を使い、失敗しません。
// エラーになるのはレイキャストサービス自体が失敗した場合のみです。
func (r AimResolver) Resolve(ctx context.Context, req AimRequest) (Aim, error) {
	offset := r.spreadOffset(req.Fire, req.SpreadRadius)

	camDir := req.Camera.Direction.Normalize()
	if camDir.LengthSq() == 0 {
		camDir = req.Fire.Forward()
	}
	target := req.Camera.Origin.Add(camDir.Scale(AimFallbackDistance)).Add(offset)

	hit := false
	if req.MaxDistance > 0 && r.raycaster != nil {
		result, ok, err := r.raycaster.Raycast(ctx, Ray{Origin: req.Camera.Origin, Direction: camDir}, req.MaxDistance, req.Mask)
		if err != nil {
			return Aim{}, fmt.Errorf("%w: %w", ErrRaycastFailed, err)
		}
		if ok {
			target = result.Point.Add(offset)
			hit = true
		}
	}

	dir := target.Sub(req.Fire.Position).Normalize()
	if dir.LengthSq() == 0 {
		dir = req.Fire.Forward()
	}

	return Aim{
		Orientation: LookRotation(dir, Up),
		Direction:   dir,
		Spread:      offset,
		Target:      target,
		Hit:         hit,
	}, nil
}

// spreadOffset は武器ローカルの XY 平面上の拡散をワールド空間に変換します。
func (r AimResolver) spreadOffset(fire Transform, radius float64) Vec3 {
	local := r.spread.UniformInUnitSphere().Scale(radius)
	local.Z = 0
	return fire.TransformDirection(local)
}
