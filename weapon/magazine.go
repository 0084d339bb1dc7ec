package weapon

import (
	"context"
	"log/slog"
)

// MagazineState は弾倉の状態です。
type MagazineState uint8

const (
	StateReady     MagazineState = iota // 残弾あり
	StateEmpty                          // 残弾なし、リロード待ち
	StateReloading                      // リロード中
)

func (s MagazineState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateReloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// Magazine は残弾とリロードの状態遷移を管理します。
// ammo, canFire, reloading を変更するのはこの型のメソッドだけです。
// 不変条件: 0 <= ammo <= capacity、reloading なら !canFire。
type Magazine struct {
	capacity       int
	infinite       bool
	reloadDuration float64

	ammo      int
	canFire   bool
	reloading bool

	reloadStartedAt float64
}

// NewMagazine は満タンの弾倉を生成します。capacity は正であることを前提とします。
func NewMagazine(capacity int, reloadDuration float64, infinite bool) *Magazine {
	return &Magazine{
		capacity:       capacity,
		infinite:       infinite,
		reloadDuration: reloadDuration,
		ammo:           capacity,
		canFire:        true,
	}
}

func (m *Magazine) Ammo() int { return m.ammo }

func (m *Magazine) Capacity() int { return m.capacity }

// CanFire はリロード中でないかを返します。
func (m *Magazine) CanFire() bool { return m.canFire }

func (m *Magazine) IsReloading() bool { return m.reloading }

func (m *Magazine) State() MagazineState {
	switch {
	case m.reloading:
		return StateReloading
	case m.ammo == 0:
		return StateEmpty
	default:
		return StateReady
	}
}

// ConsumeShot は1発分の弾を消費します。
// 無限弾薬の場合は消費せず満タンに戻します。
// 残弾0またはリロード中の呼び出しは何もせず false を返します。
func (m *Magazine) ConsumeShot(ctx context.Context) bool {
	if m.ammo <= 0 || !m.canFire {
		slog.DebugContext(ctx, "magazine: consume ignored", "ammo", m.ammo, "state", m.State())
		return false
	}
	if m.infinite {
		m.ammo = m.capacity
	} else {
		m.ammo--
	}
	return true
}

// TriggerReload はリロードを開始し、now から reloadDuration 秒後に完了させます。
// 完了判定は Advance で行うため、所要時間0でも最低1回の Advance まではリロード中になります。
// 既にリロード中の場合は何もせず false を返します。
func (m *Magazine) TriggerReload(ctx context.Context, now float64) bool {
	if m.reloading {
		slog.DebugContext(ctx, "magazine: reload ignored, already reloading")
		return false
	}
	m.canFire = false
	m.reloading = true
	m.reloadStartedAt = now
	return true
}

// Advance はリロードの経過時間を確認し、完了していれば弾倉を満たします。
// リロードが完了した場合に true を返します。
func (m *Magazine) Advance(now float64) bool {
	if !m.reloading {
		return false
	}
	if now-m.reloadStartedAt < m.reloadDuration {
		return false
	}
	m.completeReload()
	return true
}

// Remaining はリロード完了までの残り時間を返します。リロード中でなければ0です。
func (m *Magazine) Remaining(now float64) float64 {
	if !m.reloading {
		return 0
	}
	return max(m.reloadDuration-(now-m.reloadStartedAt), 0)
}

func (m *Magazine) completeReload() {
	m.ammo = m.capacity
	m.reloading = false
	m.canFire = true
}

// Cancel は保留中のリロードを破棄します。残弾は変わりません。
func (m *Magazine) Cancel() {
	m.reloading = false
	m.canFire = true
	m.reloadStartedAt = 0
}

// Refill はリロードを破棄して弾倉を満たします。
func (m *Magazine) Refill() {
	m.Cancel()
	m.ammo = m.capacity
}
