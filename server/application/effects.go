package application

import (
	"context"
	"log/slog"

	"firearm/weapon"
)

// EffectLog はマズルエフェクトの再生を記録する weapon.EffectPlayer です。
type EffectLog struct {
	plays map[weapon.EffectHandle]int
}

var _ weapon.EffectPlayer = (*EffectLog)(nil)

func NewEffectLog() *EffectLog {
	return &EffectLog{plays: make(map[weapon.EffectHandle]int)}
}

func (e *EffectLog) PlayEffect(ctx context.Context, effect weapon.EffectHandle) {
	e.plays[effect]++
	slog.DebugContext(ctx, "effect played", "effect", effect)
}

// Count は effect が再生された回数を返します。
func (e *EffectLog) Count(effect weapon.EffectHandle) int {
	return e.plays[effect]
}
