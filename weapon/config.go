package weapon

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig は武器設定が不正な場合に返されるエラーです。
// Validate が返すエラーはすべてこれをラップします。
var ErrInvalidConfig = errors.New("invalid weapon config")

// LayerMask はレイキャスト対象のレイヤーをビットで表します。
type LayerMask uint32

// AllLayers はすべてのレイヤーを対象にするマスクです。
const AllLayers LayerMask = 0xFFFFFFFF

// Includes は layer (0-31) がマスクに含まれるかを返します。
func (m LayerMask) Includes(layer uint8) bool {
	if layer >= 32 {
		return false
	}
	return m&(1<<layer) != 0
}

// EffectHandle はマズルエフェクトの識別子です。再生は EffectPlayer に委譲します。
type EffectHandle string

// Config は武器の設定です。生成後は変更されません。
type Config struct {
	Name           string
	MagazineSize   int
	ShotCount      int     // 1回の発射で生成する弾数
	FireRate       float64 // 毎分の発射数
	Spread         float64 // 拡散半径
	FireDistance   float64 // 照準レイキャストの最大距離
	ReloadDuration float64 // 秒
	ShotImpulse    float64
	InfiniteAmmo   bool
	AutoReload     bool
	RayLayerMask   LayerMask
	MuzzleEffects  []EffectHandle
}

// DefaultConfig は標準的なアサルトライフルの設定を返します。
func DefaultConfig() Config {
	return Config{
		Name:           "rifle",
		MagazineSize:   30,
		ShotCount:      1,
		FireRate:       600,
		Spread:         0.1,
		FireDistance:   500,
		ReloadDuration: 0,
		ShotImpulse:    400,
		AutoReload:     true,
		RayLayerMask:   AllLayers,
	}
}

// Validate は設定値を検証します。
func (c Config) Validate() error {
	if c.MagazineSize <= 0 {
		return fmt.Errorf("%w: magazine size must be positive, got %d", ErrInvalidConfig, c.MagazineSize)
	}
	if c.ShotCount <= 0 {
		return fmt.Errorf("%w: shot count must be positive, got %d", ErrInvalidConfig, c.ShotCount)
	}
	if !IsFinite(c.FireRate) || c.FireRate <= 0 {
		return fmt.Errorf("%w: fire rate must be positive, got %v", ErrInvalidConfig, c.FireRate)
	}
	if err := nonNegative("spread", c.Spread); err != nil {
		return err
	}
	if err := nonNegative("fire distance", c.FireDistance); err != nil {
		return err
	}
	if err := nonNegative("reload duration", c.ReloadDuration); err != nil {
		return err
	}
	if err := nonNegative("shot impulse", c.ShotImpulse); err != nil {
		return err
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if !IsFinite(v) || v < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidConfig, field, v)
	}
	return nil
}

// clone は呼び出し側のスライスと共有しないコピーを返します。
func (c Config) clone() Config {
	c.MuzzleEffects = append([]EffectHandle(nil), c.MuzzleEffects...)
	return c
}
