package weapon

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Weapon はホストのシミュレーションから毎tick駆動される武器の振る舞いです。
type Weapon interface {
	// Tick は now 時点の発射試行とリロード進行を評価します。
	// 協調オブジェクトの失敗はそのtickのエラーとして返し、武器の状態は壊しません。
	Tick(ctx context.Context, now float64) error
	StartFire()
	StopFire()
	Reload(ctx context.Context)

	Owner() OwnerID
	SetOwner(owner OwnerID)
	CurrentAmmo() int
	MagazineSize() int
	Name() string
	IsFiring() bool
	IsReloading() bool
	FireTransform() Transform
}

// Dependencies は武器が利用する外部の協調オブジェクトです。
// Rig, Spawner, Clock は必須です。Raycaster が nil なら照準は常に前方、
// Effects が nil ならエフェクトを再生せず、Spread が nil なら RandomSpread を使います。
type Dependencies struct {
	Rig       Rig
	Raycaster Raycaster
	Spawner   ProjectileSpawner
	Effects   EffectPlayer
	Clock     Clock
	Spread    SpreadSource
}

// ProjectileWeapon は弾を生成して射撃する Weapon の実装です。
type ProjectileWeapon struct {
	cfg Config

	rig     Rig
	spawner ProjectileSpawner
	effects EffectPlayer
	clock   Clock

	aim       AimResolver
	scheduler FireScheduler
	magazine  *Magazine

	owner    OwnerID
	firing   bool
	lastFire float64
	attached bool
}

var _ Weapon = (*ProjectileWeapon)(nil)

// NewProjectileWeapon は設定を検証し、装着済みの武器を生成します。弾倉は満タンです。
func NewProjectileWeapon(cfg Config, deps Dependencies) (*ProjectileWeapon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Rig == nil {
		return nil, fmt.Errorf("%w: rig", ErrMissingDependency)
	}
	if deps.Spawner == nil {
		return nil, fmt.Errorf("%w: spawner", ErrMissingDependency)
	}
	if deps.Clock == nil {
		return nil, fmt.Errorf("%w: clock", ErrMissingDependency)
	}
	cfg = cfg.clone()
	w := &ProjectileWeapon{
		cfg:       cfg,
		rig:       deps.Rig,
		spawner:   deps.Spawner,
		effects:   deps.Effects,
		clock:     deps.Clock,
		aim:       NewAimResolver(deps.Raycaster, deps.Spread),
		scheduler: NewFireScheduler(cfg.FireRate),
		magazine:  NewMagazine(cfg.MagazineSize, cfg.ReloadDuration, cfg.InfiniteAmmo),
	}
	w.Attach()
	return w, nil
}

// Attach はランタイム状態を初期化します。弾倉は満タン、射撃意図はクリアされます。
func (w *ProjectileWeapon) Attach() {
	w.magazine.Refill()
	w.firing = false
	w.lastFire = math.Inf(-1)
	w.attached = true
}

// Detach は保留中のリロードを破棄し、以降の Tick と Reload を無効にします。
func (w *ProjectileWeapon) Detach() {
	w.magazine.Cancel()
	w.firing = false
	w.attached = false
}

func (w *ProjectileWeapon) IsAttached() bool { return w.attached }

func (w *ProjectileWeapon) StartFire() { w.firing = true }

func (w *ProjectileWeapon) StopFire() { w.firing = false }

// Reload はリロードを開始します。リロード中なら何もしません。
func (w *ProjectileWeapon) Reload(ctx context.Context) {
	if !w.attached {
		return
	}
	w.magazine.TriggerReload(ctx, w.clock.Now())
}

func (w *ProjectileWeapon) Tick(ctx context.Context, now float64) error {
	if !w.attached {
		return nil
	}
	w.magazine.Advance(now)

	if !w.firing || !w.magazine.CanFire() {
		return nil
	}
	if !w.scheduler.ShouldAttemptShot(now, w.lastFire) {
		return nil
	}
	// 弾切れでリロードに回る場合も発射間隔のタイマーは進める
	w.lastFire = now

	if w.magazine.Ammo() == 0 {
		if w.cfg.AutoReload {
			w.magazine.TriggerReload(ctx, now)
		}
		return nil
	}
	return w.fire(ctx)
}

func (w *ProjectileWeapon) fire(ctx context.Context) error {
	w.magazine.ConsumeShot(ctx)
	w.playMuzzleEffects(ctx)

	fire := w.rig.FireTransform()
	camera := w.rig.CameraRay()
	for i := 0; i < w.cfg.ShotCount; i++ {
		aim, err := w.aim.Resolve(ctx, AimRequest{
			Fire:         fire,
			Camera:       camera,
			MaxDistance:  w.cfg.FireDistance,
			SpreadRadius: w.cfg.Spread,
			Mask:         w.cfg.RayLayerMask,
		})
		if err != nil {
			return fmt.Errorf("weapon %q: %w", w.cfg.Name, err)
		}

		id, err := w.spawner.SpawnProjectile(ctx, SpawnRequest{
			Origin:      fire.Position,
			Orientation: aim.Orientation,
			Owner:       w.owner,
			Impulse:     w.cfg.ShotImpulse,
			Velocity:    fire.Forward().Add(aim.Spread).Scale(w.cfg.ShotImpulse),
		})
		if err != nil {
			return fmt.Errorf("weapon %q: %w: %w", w.cfg.Name, ErrSpawnFailed, err)
		}
		slog.DebugContext(ctx, "weapon: projectile spawned",
			"weapon", w.cfg.Name,
			"projectileID", id,
			"owner", w.owner,
			"hit", aim.Hit,
		)
	}
	return nil
}

func (w *ProjectileWeapon) playMuzzleEffects(ctx context.Context) {
	if w.effects == nil {
		return
	}
	for _, effect := range w.cfg.MuzzleEffects {
		w.effects.PlayEffect(ctx, effect)
	}
}

func (w *ProjectileWeapon) Owner() OwnerID { return w.owner }

// SetOwner は所有者を差し替えます。次の発射から新しい所有者の弾として扱われます。
func (w *ProjectileWeapon) SetOwner(owner OwnerID) { w.owner = owner }

func (w *ProjectileWeapon) CurrentAmmo() int { return w.magazine.Ammo() }

func (w *ProjectileWeapon) MagazineSize() int { return w.cfg.MagazineSize }

func (w *ProjectileWeapon) Name() string { return w.cfg.Name }

func (w *ProjectileWeapon) IsFiring() bool { return w.firing }

func (w *ProjectileWeapon) IsReloading() bool { return w.magazine.IsReloading() }

// CanFire はリロード中でないかを返します。
func (w *ProjectileWeapon) CanFire() bool { return w.magazine.CanFire() }

func (w *ProjectileWeapon) State() MagazineState { return w.magazine.State() }

func (w *ProjectileWeapon) FireTransform() Transform { return w.rig.FireTransform() }

// Config は設定のコピーを返します。
func (w *ProjectileWeapon) Config() Config { return w.cfg.clone() }
