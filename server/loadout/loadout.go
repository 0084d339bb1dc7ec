// Package loadout は YAML で書かれた武器プリセットを weapon.Config に変換します。
package loadout

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"firearm/weapon"
)

var (
	ErrInvalidLoadout = errors.New("invalid loadout")
	ErrUnknownLoadout = errors.New("unknown loadout")
)

//go:embed presets/*.yaml
var presets embed.FS

// file は1ファイル分の武器定義です。省略したキーは weapon.DefaultConfig の値になります。
type file struct {
	Name           string   `yaml:"name"`
	MagazineSize   int      `yaml:"magazine_size"`
	ShotCount      int      `yaml:"shot_count"`
	FireRate       float64  `yaml:"fire_rate"`
	Spread         float64  `yaml:"spread"`
	FireDistance   float64  `yaml:"fire_distance"`
	ReloadDuration float64  `yaml:"reload_duration"`
	ShotImpulse    float64  `yaml:"shot_impulse"`
	InfiniteAmmo   bool     `yaml:"infinite_ammo"`
	AutoReload     bool     `yaml:"auto_reload"`
	RayLayers      []uint8  `yaml:"ray_layers"` // 省略時は全レイヤー
	MuzzleEffects  []string `yaml:"muzzle_effects"`
}

// Set は名前で引ける武器設定の集合です。
type Set map[string]weapon.Config

// Names は名前を昇順で返します。
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s Set) Get(name string) (weapon.Config, error) {
	cfg, ok := s[name]
	if !ok {
		return weapon.Config{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownLoadout, name, s.Names())
	}
	return cfg, nil
}

// Parse は1つの武器定義をパースして検証します。未知のキーはエラーです。
func Parse(data []byte) (weapon.Config, error) {
	def := defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return weapon.Config{}, fmt.Errorf("%w: %w", ErrInvalidLoadout, err)
	}

	cfg, err := def.config()
	if err != nil {
		return weapon.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return weapon.Config{}, fmt.Errorf("%w: %q: %w", ErrInvalidLoadout, cfg.Name, err)
	}
	return cfg, nil
}

// LoadDir は dir 直下の *.yaml をすべて読み込みます。
func LoadDir(dir string) (Set, error) {
	return LoadFS(os.DirFS(dir), ".")
}

// Builtin は同梱のプリセットを返します。
func Builtin() (Set, error) {
	return LoadFS(presets, "presets")
}

// LoadFS は fsys の dir 直下の *.yaml をすべて読み込みます。名前の重複はエラーです。
func LoadFS(fsys fs.FS, dir string) (Set, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("loadout: cannot read directory %q: %w", dir, err)
	}

	set := make(Set)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("loadout: cannot read file %q: %w", p, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("loadout: %q: %w", p, err)
		}
		if _, dup := set[cfg.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q in %q", ErrInvalidLoadout, cfg.Name, p)
		}
		set[cfg.Name] = cfg
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no loadouts in %q", ErrInvalidLoadout, dir)
	}
	return set, nil
}

func defaults() file {
	d := weapon.DefaultConfig()
	return file{
		Name:           d.Name,
		MagazineSize:   d.MagazineSize,
		ShotCount:      d.ShotCount,
		FireRate:       d.FireRate,
		Spread:         d.Spread,
		FireDistance:   d.FireDistance,
		ReloadDuration: d.ReloadDuration,
		ShotImpulse:    d.ShotImpulse,
		InfiniteAmmo:   d.InfiniteAmmo,
		AutoReload:     d.AutoReload,
	}
}

func (f file) config() (weapon.Config, error) {
	mask := weapon.AllLayers
	if f.RayLayers != nil {
		mask = 0
		for _, layer := range f.RayLayers {
			if layer >= 32 {
				return weapon.Config{}, fmt.Errorf("%w: ray layer %d out of range", ErrInvalidLoadout, layer)
			}
			mask |= 1 << layer
		}
	}

	effects := make([]weapon.EffectHandle, 0, len(f.MuzzleEffects))
	for _, e := range f.MuzzleEffects {
		effects = append(effects, weapon.EffectHandle(e))
	}

	return weapon.Config{
		Name:           f.Name,
		MagazineSize:   f.MagazineSize,
		ShotCount:      f.ShotCount,
		FireRate:       f.FireRate,
		Spread:         f.Spread,
		FireDistance:   f.FireDistance,
		ReloadDuration: f.ReloadDuration,
		ShotImpulse:    f.ShotImpulse,
		InfiniteAmmo:   f.InfiniteAmmo,
		AutoReload:     f.AutoReload,
		RayLayerMask:   mask,
		MuzzleEffects:  effects,
	}, nil
}
