package weapon

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"
)

//go:generate go tool mockgen -destination=./mocks/ports_mock.go -package=mocks . Raycaster,ProjectileSpawner,EffectPlayer,Clock,SpreadSource,Rig

var (
	// ErrRaycastFailed はレイキャストサービスがエラーを返した場合のエラーです。
	ErrRaycastFailed = errors.New("raycast failed")
	// ErrSpawnFailed は弾の生成に失敗した場合のエラーです。
	ErrSpawnFailed = errors.New("projectile spawn failed")
	// ErrMissingDependency は必須の協調オブジェクトが渡されなかった場合のエラーです。
	ErrMissingDependency = errors.New("missing weapon dependency")
)

// OwnerID は武器の所有者を識別します。武器は所有者のライフタイムを管理しません。
type OwnerID uuid.UUID

func (o OwnerID) String() string { return uuid.UUID(o).String() }

func (o OwnerID) IsZero() bool { return o == OwnerID{} }

// ProjectileID は生成された弾のハンドルです。
type ProjectileID uuid.UUID

func NewProjectileID() ProjectileID { return ProjectileID(uuid.New()) }

func (p ProjectileID) String() string { return uuid.UUID(p).String() }

// RaycastHit はレイキャストの命中情報です。
type RaycastHit struct {
	Point    Vec3
	Distance float64
}

// Raycaster はワールドへのレイキャストを提供します。
type Raycaster interface {
	// Raycast は ray に沿って maxDistance 以内で mask に含まれる最も近い命中を返します。
	Raycast(ctx context.Context, ray Ray, maxDistance float64, mask LayerMask) (RaycastHit, bool, error)
}

// SpawnRequest は弾の生成要求です。
type SpawnRequest struct {
	Origin      Vec3
	Orientation Quat
	Owner       OwnerID
	Impulse     float64
	Velocity    Vec3 // 初速 = (発射方向 + 拡散) * Impulse
}

// ProjectileSpawner は弾を生成して発射します。弾の飛行は扱いません。
type ProjectileSpawner interface {
	SpawnProjectile(ctx context.Context, req SpawnRequest) (ProjectileID, error)
}

// EffectPlayer はマズルエフェクトを再生します。
type EffectPlayer interface {
	PlayEffect(ctx context.Context, effect EffectHandle)
}

// Clock は単調増加するシミュレーション時刻 (秒) を返します。
type Clock interface {
	Now() float64
}

// ClockFunc は関数を Clock として扱うアダプタです。
type ClockFunc func() float64

func (f ClockFunc) Now() float64 { return f() }

// SpreadSource は単位球内の一様乱数ベクトルを返します。
type SpreadSource interface {
	UniformInUnitSphere() Vec3
}

// RandomSpread は math/rand/v2 を使った SpreadSource です。
type RandomSpread struct{}

func (RandomSpread) UniformInUnitSphere() Vec3 {
	for {
		v := Vec3{
			X: rand.Float64()*2 - 1,
			Y: rand.Float64()*2 - 1,
			Z: rand.Float64()*2 - 1,
		}
		if v.LengthSq() <= 1 {
			return v
		}
	}
}

// Rig は武器を保持するエンティティが提供する発射位置とカメラ視線です。
type Rig interface {
	FireTransform() Transform
	CameraRay() Ray
}
