package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"firearm/server/domain"
	"firearm/utils"
	"firearm/weapon"
)

var (
	ErrProjectileLimit = errors.New("projectile limit reached")
	ErrInvalidSpawn    = errors.New("invalid spawn request")
)

// レイヤー番号
const (
	LayerDefault uint8 = 0
	LayerTarget  uint8 = 1
	LayerIgnore  uint8 = 2 // レイキャスト対象外
)

// アクターの寸法
var (
	EyeOffset    = weapon.Vec3{Y: 1.6}
	MuzzleOffset = weapon.Vec3{X: 0.25, Y: 1.4, Z: 0.5}
)

const (
	ActorSpacing = 2.0
	ArenaHalfX   = 50.0
	// SlotsPerRow は射撃列1列あたりの射手数です。溢れた射手は後列 (-Z) に並びます。
	SlotsPerRow = int(ArenaHalfX/ActorSpacing) + 1
)

// ActorState はアクターの種別をビットマスクで表現します。
type ActorState uint8

const (
	KindPlayer ActorState = 0x00
	KindBot    ActorState = 0x10
)

// Actor は武器を持つフィールド上の射手です。weapon.Rig を満たします。
type Actor struct {
	SessionID domain.SessionID
	Position  weapon.Vec3
	Yaw       float64 // Y軸回り, 0 で +Z を向く
	State     ActorState
	Weapon    *weapon.ProjectileWeapon
}

var _ weapon.Rig = (*Actor)(nil)

func (a *Actor) IsBot() bool {
	return a.State&KindBot != 0
}

func (a *Actor) rotation() weapon.Quat {
	return weapon.AxisAngle(weapon.Up, a.Yaw)
}

func (a *Actor) FireTransform() weapon.Transform {
	rot := a.rotation()
	return weapon.Transform{
		Position: a.Position.Add(rot.Rotate(MuzzleOffset)),
		Rotation: rot,
	}
}

func (a *Actor) CameraRay() weapon.Ray {
	return weapon.Ray{
		Origin:    a.Position.Add(EyeOffset),
		Direction: a.rotation().Forward(),
	}
}

// Target はレイキャストの対象となる球です。
type Target struct {
	Name   string
	Center weapon.Vec3
	Radius float64
	Layer  uint8
}

// Field はアクター、標的、発射済みの弾を管理する構造体です。
// weapon.Raycaster と weapon.ProjectileSpawner を満たします。
type Field struct {
	Actors  map[domain.SessionID]*Actor
	Targets []*Target

	order       []domain.SessionID // 参加順
	slots       map[domain.SessionID]int
	projectiles map[weapon.ProjectileID]*Projectile
	pending     []domain.ShotEvent
	clock       weapon.Clock
}

var (
	_ weapon.Raycaster         = (*Field)(nil)
	_ weapon.ProjectileSpawner = (*Field)(nil)
)

func NewField(clock weapon.Clock) *Field {
	return &Field{
		Actors:      make(map[domain.SessionID]*Actor),
		slots:       make(map[domain.SessionID]int),
		projectiles: make(map[weapon.ProjectileID]*Projectile),
		clock:       clock,
	}
}

// Spawn は空いている最小の射撃位置にアクターを生成します。離脱で空いた位置は再利用されます。
func (f *Field) Spawn(sessionID domain.SessionID, kind ActorState) *Actor {
	slot := f.freeSlot()
	actor := &Actor{
		SessionID: sessionID,
		Position:  SlotPosition(slot),
		State:     kind,
	}
	f.Actors[sessionID] = actor
	f.slots[sessionID] = slot
	f.order = append(f.order, sessionID)
	return actor
}

// SlotPosition は射撃位置 slot の座標を返します。
func SlotPosition(slot int) weapon.Vec3 {
	return weapon.Vec3{
		X: float64(slot%SlotsPerRow) * ActorSpacing,
		Z: -float64(slot/SlotsPerRow) * ActorSpacing,
	}
}

func (f *Field) freeSlot() int {
	used := make(map[int]bool, len(f.slots))
	for _, s := range f.slots {
		used[s] = true
	}
	slot := 0
	for used[slot] {
		slot++
	}
	return slot
}

// Remove はアクターをフィールドから削除します。
func (f *Field) Remove(sessionID domain.SessionID) {
	delete(f.Actors, sessionID)
	delete(f.slots, sessionID)
	f.order = slices.DeleteFunc(f.order, func(id domain.SessionID) bool { return id == sessionID })
}

// GetActor は指定されたセッションIDのアクターを取得します。
func (f *Field) GetActor(sessionID domain.SessionID) (*Actor, bool) {
	actor, ok := f.Actors[sessionID]
	return actor, ok
}

// GetAllActors は参加順に全アクターを返します。
func (f *Field) GetAllActors() []*Actor {
	actors := make([]*Actor, 0, len(f.order))
	for _, id := range f.order {
		actors = append(actors, f.Actors[id])
	}
	return actors
}

func (f *Field) AddTarget(t *Target) {
	f.Targets = append(f.Targets, t)
}

// Raycast は mask に含まれる標的のうち maxDistance 以内で最も近い交点を返します。
func (f *Field) Raycast(_ context.Context, ray weapon.Ray, maxDistance float64, mask weapon.LayerMask) (weapon.RaycastHit, bool, error) {
	if !utils.FiniteRay(ray) || !weapon.IsFinite(maxDistance) {
		return weapon.RaycastHit{}, false, nil
	}
	dir := ray.Direction.Normalize()
	if dir.LengthSq() == 0 {
		return weapon.RaycastHit{}, false, nil
	}

	var (
		best  weapon.RaycastHit
		found bool
	)
	for _, t := range f.Targets {
		if !mask.Includes(t.Layer) {
			continue
		}
		d, ok := intersectSphere(ray.Origin, dir, t.Center, t.Radius)
		if !ok || d > maxDistance {
			continue
		}
		if !found || d < best.Distance {
			best = weapon.RaycastHit{Point: ray.Origin.Add(dir.Scale(d)), Distance: d}
			found = true
		}
	}
	return best, found, nil
}

// intersectSphere は正規化済みの dir に沿った球との最初の交点までの距離を返します。
// 始点が球の内側にある場合は出口までの距離です。
func intersectSphere(origin, dir, center weapon.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LengthSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// SpawnProjectile は弾を記録し、この tick の発射イベントに追加します。
func (f *Field) SpawnProjectile(ctx context.Context, req weapon.SpawnRequest) (weapon.ProjectileID, error) {
	if !req.Origin.IsFinite() || !req.Velocity.IsFinite() {
		return weapon.ProjectileID{}, fmt.Errorf("%w: origin=%v velocity=%v", ErrInvalidSpawn, req.Origin, req.Velocity)
	}
	if len(f.projectiles) >= MaxProjectiles {
		return weapon.ProjectileID{}, ErrProjectileLimit
	}

	now := f.clock.Now()
	p := &Projectile{
		ID:          weapon.NewProjectileID(),
		OwnerID:     req.Owner,
		Origin:      req.Origin,
		Orientation: req.Orientation,
		Velocity:    req.Velocity,
		SpawnedAt:   now,
		ExpiresAt:   now + ProjectileTTL,
	}
	f.projectiles[p.ID] = p
	f.pending = append(f.pending, p.ShotEvent())

	slog.DebugContext(ctx, "field: projectile recorded", "projectileID", p.ID, "owner", p.OwnerID)
	return p.ID, nil
}

// ExpireProjectiles は寿命が尽きた弾を削除し、削除した数を返します。
func (f *Field) ExpireProjectiles(now float64) int {
	expired := 0
	for id, p := range f.projectiles {
		if now >= p.ExpiresAt {
			delete(f.projectiles, id)
			expired++
		}
	}
	return expired
}

func (f *Field) ProjectileCount() int {
	return len(f.projectiles)
}

func (f *Field) GetProjectile(id weapon.ProjectileID) (*Projectile, bool) {
	p, ok := f.projectiles[id]
	return p, ok
}

// DrainShots は前回の呼び出し以降に生成された弾の発射イベントを返します。
func (f *Field) DrainShots() []domain.ShotEvent {
	if len(f.pending) == 0 {
		return nil
	}
	shots := f.pending
	f.pending = nil
	return shots
}
