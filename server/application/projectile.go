package application

import (
	"firearm/server/domain"
	"firearm/weapon"
)

const (
	ProjectileTTL  = 2.0 // 秒
	MaxProjectiles = 4096
)

// Projectile はフィールドに記録された弾です。飛行や命中判定は行わず、寿命だけを管理します。
type Projectile struct {
	ID          weapon.ProjectileID
	OwnerID     weapon.OwnerID
	Origin      weapon.Vec3
	Orientation weapon.Quat
	Velocity    weapon.Vec3
	SpawnedAt   float64
	ExpiresAt   float64
}

// ShotEvent は弾の生成を配信用のイベントに変換します。
func (p *Projectile) ShotEvent() domain.ShotEvent {
	return domain.ShotEvent{
		ProjectileID: [16]byte(p.ID),
		OwnerID:      [16]byte(p.OwnerID),
		Position: domain.Position{
			X:  float32(p.Origin.X),
			Y:  float32(p.Origin.Y),
			Z:  float32(p.Origin.Z),
			QX: float32(p.Orientation.X),
			QY: float32(p.Orientation.Y),
			QZ: float32(p.Orientation.Z),
			QW: float32(p.Orientation.W),
		},
	}
}
