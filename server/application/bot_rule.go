package application

import (
	"math"
	"math/rand/v2"

	"firearm/utils"
	"firearm/weapon"
)

const (
	botNoiseAngle float64 = 0.02 // 照準の揺れ (ラジアン)
	reloadRatio   float64 = 0.25
)

// RuleBotController はルールベースのボットAIです。
// ボットごとに異なる個性パラメータを持ちます。
type RuleBotController struct {
	ConeAngle float64 // 射撃を始める正面からの角度
	TurnSpeed float64 // 1tickあたりの最大旋回量
	Noise     float64
}

// NewRuleBotController はランダムな個性を持つボットAIを生成します。
func NewRuleBotController() *RuleBotController {
	return &RuleBotController{
		ConeAngle: 0.05 + rand.Float64()*0.1,  // 約3〜8度
		TurnSpeed: 0.03 + rand.Float64()*0.05, // 約2〜5度
		Noise:     botNoiseAngle,
	}
}

func (r *RuleBotController) Decide(self *Actor, targets []*Target) BotAction {
	w := self.Weapon
	if w == nil {
		return BotAction{}
	}
	cfg := w.Config()

	target, dist := r.findNearestTarget(self, targets)
	if target == nil || dist > cfg.FireDistance {
		// 狙う相手がいない間に弾倉を補充する
		low := float64(w.CurrentAmmo()) < float64(w.MagazineSize())*reloadRatio
		return BotAction{Reload: low && !w.IsReloading()}
	}

	diff := wrapAngle(yawTowards(self.CameraRay().Origin, target.Center) - self.Yaw)
	turn := utils.Clamp(diff, -r.TurnSpeed, r.TurnSpeed)
	if r.Noise > 0 {
		turn += (rand.Float64()*2 - 1) * r.Noise
	}

	return BotAction{
		Turn: turn,
		Fire: math.Abs(diff) <= r.ConeAngle,
	}
}

// findNearestTarget はレイキャスト可能な標的のうち最も近いものを探します。
func (r *RuleBotController) findNearestTarget(self *Actor, targets []*Target) (*Target, float64) {
	eye := self.CameraRay().Origin
	var nearest *Target
	nearestDist := math.MaxFloat64
	for _, t := range targets {
		if t.Layer == LayerIgnore {
			continue
		}
		d := t.Center.Sub(eye).Length()
		if d < nearestDist {
			nearestDist = d
			nearest = t
		}
	}
	return nearest, nearestDist
}

// yawTowards は from から to を向く Yaw を返します。
func yawTowards(from, to weapon.Vec3) float64 {
	d := to.Sub(from)
	return math.Atan2(d.X, d.Z)
}

// wrapAngle は角度を [-π, π] に収めます。
func wrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
