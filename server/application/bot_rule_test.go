package application

import (
	"context"
	"math"
	"testing"

	"firearm/server/domain"
	"firearm/weapon"
)

func newBotActor(t *testing.T, cfg weapon.Config) (*Actor, *Field, *domain.SimClock) {
	t.Helper()
	clock := &domain.SimClock{}
	f := NewField(clock)
	actor := f.Spawn(domain.NewSessionID(), KindBot)
	w, err := weapon.NewProjectileWeapon(cfg, weapon.Dependencies{
		Rig:     actor,
		Spawner: f,
		Clock:   clock,
		Spread:  zeroSpread{},
	})
	if err != nil {
		t.Fatalf("NewProjectileWeapon failed: %v", err)
	}
	actor.Weapon = w
	return actor, f, clock
}

func TestRuleBotController_FiresInsideCone(t *testing.T) {
	actor, _, _ := newBotActor(t, weapon.DefaultConfig())
	bot := &RuleBotController{ConeAngle: 0.1, TurnSpeed: 0.05}

	ahead := []*Target{{Center: weapon.Vec3{Y: 1.6, Z: 30}, Radius: 1, Layer: LayerTarget}}
	action := bot.Decide(actor, ahead)
	if !action.Fire {
		t.Error("bot should fire at target straight ahead")
	}
	if action.Turn != 0 {
		t.Errorf("turn = %v, want 0", action.Turn)
	}
}

func TestRuleBotController_TurnsTowardsTarget(t *testing.T) {
	actor, _, _ := newBotActor(t, weapon.DefaultConfig())
	bot := &RuleBotController{ConeAngle: 0.1, TurnSpeed: 0.05}

	// 右真横の標的: 旋回のみで射撃しない
	right := []*Target{{Center: weapon.Vec3{X: 30, Y: 1.6}, Radius: 1, Layer: LayerTarget}}
	action := bot.Decide(actor, right)
	if action.Fire {
		t.Error("bot should not fire outside the cone")
	}
	if action.Turn != 0.05 {
		t.Errorf("turn = %v, want 0.05", action.Turn)
	}

	// 旋回を続けると正面に捉えて撃ち始める
	fired := false
	for range 100 {
		action = bot.Decide(actor, right)
		actor.Yaw = wrapAngle(actor.Yaw + action.Turn)
		if action.Fire {
			fired = true
			break
		}
	}
	if !fired {
		t.Error("bot never lined up with the target")
	}
	if math.Abs(actor.Yaw-math.Pi/2) > 0.1 {
		t.Errorf("yaw = %v, want about π/2", actor.Yaw)
	}
}

func TestRuleBotController_IgnoresOutOfRangeAndIgnoredLayer(t *testing.T) {
	cfg := weapon.DefaultConfig()
	cfg.FireDistance = 10
	actor, _, _ := newBotActor(t, cfg)
	bot := &RuleBotController{ConeAngle: 0.1, TurnSpeed: 0.05}

	targets := []*Target{
		{Center: weapon.Vec3{Y: 1.6, Z: 50}, Radius: 1, Layer: LayerTarget},
		{Center: weapon.Vec3{Y: 1.6, Z: 5}, Radius: 1, Layer: LayerIgnore},
	}
	if action := bot.Decide(actor, targets); action.Fire {
		t.Error("bot should not fire at out of range or ignored targets")
	}
}

func TestRuleBotController_ReloadsWhenIdleAndLow(t *testing.T) {
	cfg := weapon.DefaultConfig()
	cfg.MagazineSize = 8
	cfg.ReloadDuration = 1
	cfg.AutoReload = false
	actor, _, clock := newBotActor(t, cfg)
	bot := &RuleBotController{ConeAngle: 0.1, TurnSpeed: 0.05}
	ctx := context.Background()

	if action := bot.Decide(actor, nil); action.Reload {
		t.Error("full magazine should not request reload")
	}

	// 7発撃って残り1発 (< 8/4)
	actor.Weapon.StartFire()
	for range 7 {
		if err := actor.Weapon.Tick(ctx, clock.Advance(0.2)); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	actor.Weapon.StopFire()
	if actor.Weapon.CurrentAmmo() != 1 {
		t.Fatalf("ammo = %d, want 1", actor.Weapon.CurrentAmmo())
	}

	if action := bot.Decide(actor, nil); !action.Reload {
		t.Error("bot should reload when idle with a low magazine")
	}

	actor.Weapon.Reload(ctx)
	if action := bot.Decide(actor, nil); action.Reload {
		t.Error("bot should not request reload while reloading")
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
