package loadout_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"firearm/server/loadout"
	"firearm/weapon"
)

func TestParse_DefaultsForMissingKeys(t *testing.T) {
	cfg, err := loadout.Parse([]byte("name: carbine\nmagazine_size: 20\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := weapon.DefaultConfig()
	if cfg.Name != "carbine" || cfg.MagazineSize != 20 {
		t.Errorf("name/magazine = %q/%d", cfg.Name, cfg.MagazineSize)
	}
	if cfg.FireRate != want.FireRate || cfg.ShotImpulse != want.ShotImpulse || cfg.AutoReload != want.AutoReload {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.RayLayerMask != weapon.AllLayers {
		t.Errorf("RayLayerMask = %x, want all layers", cfg.RayLayerMask)
	}
}

func TestParse_AllKeys(t *testing.T) {
	data := []byte(`
name: shotgun
magazine_size: 8
shot_count: 8
fire_rate: 70
spread: 0.6
fire_distance: 60
reload_duration: 2.8
shot_impulse: 250
infinite_ammo: true
auto_reload: false
ray_layers: [0, 3]
muzzle_effects: [flash, smoke]
`)
	cfg, err := loadout.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.ShotCount != 8 || cfg.FireRate != 70 || cfg.Spread != 0.6 || cfg.FireDistance != 60 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.ReloadDuration != 2.8 || cfg.ShotImpulse != 250 || !cfg.InfiniteAmmo || cfg.AutoReload {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.RayLayerMask != weapon.LayerMask(0b1001) {
		t.Errorf("RayLayerMask = %b, want 1001", cfg.RayLayerMask)
	}
	if len(cfg.MuzzleEffects) != 2 || cfg.MuzzleEffects[0] != "flash" || cfg.MuzzleEffects[1] != "smoke" {
		t.Errorf("MuzzleEffects = %v", cfg.MuzzleEffects)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantValid bool // weapon.ErrInvalidConfig も含むか
	}{
		{"unknown key", "name: x\nrecoil: 3\n", false},
		{"bad type", "magazine_size: many\n", false},
		{"layer out of range", "ray_layers: [32]\n", false},
		{"empty document", "", false},
		{"zero magazine", "magazine_size: 0\n", true},
		{"negative spread", "spread: -1\n", true},
		{"zero fire rate", "fire_rate: 0\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadout.Parse([]byte(tt.data))
			if !errors.Is(err, loadout.ErrInvalidLoadout) {
				t.Fatalf("expected ErrInvalidLoadout, got %v", err)
			}
			if tt.wantValid && !errors.Is(err, weapon.ErrInvalidConfig) {
				t.Errorf("expected wrapped ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	write("a.yaml", "name: alpha\n")
	write("b.yaml", "name: bravo\nshot_count: 2\n")
	write("notes.txt", "not a loadout")

	set, err := loadout.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if names := set.Names(); len(names) != 2 || names[0] != "alpha" || names[1] != "bravo" {
		t.Errorf("Names = %v", names)
	}
	cfg, err := set.Get("bravo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cfg.ShotCount != 2 {
		t.Errorf("ShotCount = %d, want 2", cfg.ShotCount)
	}
	if _, err := set.Get("charlie"); !errors.Is(err, loadout.ErrUnknownLoadout) {
		t.Errorf("expected ErrUnknownLoadout, got %v", err)
	}
}

func TestLoadDir_Errors(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.yaml", "b.yaml"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("name: same\n"), 0o644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
		}
		if _, err := loadout.LoadDir(dir); !errors.Is(err, loadout.ErrInvalidLoadout) {
			t.Errorf("expected ErrInvalidLoadout, got %v", err)
		}
	})

	t.Run("empty dir", func(t *testing.T) {
		if _, err := loadout.LoadDir(t.TempDir()); !errors.Is(err, loadout.ErrInvalidLoadout) {
			t.Errorf("expected ErrInvalidLoadout, got %v", err)
		}
	})

	t.Run("missing dir", func(t *testing.T) {
		if _, err := loadout.LoadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestBuiltin(t *testing.T) {
	set, err := loadout.Builtin()
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	for _, name := range []string{"rifle", "shotgun", "pistol", "minigun"} {
		cfg, err := set.Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	shotgun, _ := set.Get("shotgun")
	if shotgun.ShotCount != 8 {
		t.Errorf("shotgun ShotCount = %d, want 8", shotgun.ShotCount)
	}
	if !shotgun.RayLayerMask.Includes(1) || shotgun.RayLayerMask.Includes(2) {
		t.Errorf("shotgun RayLayerMask = %b", shotgun.RayLayerMask)
	}
}
