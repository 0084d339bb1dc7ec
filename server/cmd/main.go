package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"firearm/server/application"
	"firearm/server/domain"
	"firearm/server/loadout"
	"firearm/server/telemetry"
	"firearm/utils"
	"firearm/weapon"
)

type config struct {
	loadoutDir    string
	loadoutWeapon string
	botCount      int
	tickRate      int
	runFor        time.Duration
	logLevel      slog.Level
	otlpEndpoint  string
}

func loadConfig() (config, error) {
	var cfg config
	var err error

	cfg.loadoutDir = utils.GetEnvDefault("LOADOUT_DIR", "")
	cfg.loadoutWeapon = utils.GetEnvDefault("LOADOUT_WEAPON", "rifle")
	cfg.otlpEndpoint = utils.GetEnvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	if cfg.botCount, err = strconv.Atoi(utils.GetEnvDefault("BOT_COUNT", "3")); err != nil || cfg.botCount < 0 {
		return cfg, fmt.Errorf("invalid BOT_COUNT: %q", os.Getenv("BOT_COUNT"))
	}
	if cfg.tickRate, err = strconv.Atoi(utils.GetEnvDefault("TICK_RATE", strconv.Itoa(domain.DefaultTickRate))); err != nil || cfg.tickRate <= 0 {
		return cfg, fmt.Errorf("invalid TICK_RATE: %q", os.Getenv("TICK_RATE"))
	}
	// 0 はシグナルを受けるまで動かし続ける
	if cfg.runFor, err = time.ParseDuration(utils.GetEnvDefault("RUN_FOR", "10s")); err != nil {
		return cfg, fmt.Errorf("invalid RUN_FOR: %w", err)
	}
	if cfg.logLevel, err = telemetry.ParseLevel(utils.GetEnvDefault("LOG_LEVEL", "info")); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger, shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:  "firearm-range",
		OTLPEndpoint: cfg.otlpEndpoint,
		Level:        cfg.logLevel,
		Output:       os.Stdout,
	})
	if err != nil {
		slog.Error("telemetry setup failed", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "err", err)
		}
	}()

	if err := run(ctx, cfg); err != nil {
		slog.ErrorContext(ctx, "range stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	weaponCfg, err := selectLoadout(cfg)
	if err != nil {
		return err
	}

	pubsub := domain.NewSimplePubSub()
	clock := &domain.SimClock{}
	app, err := application.NewRangeApplication(weaponCfg, clock, application.WithTargets(defaultTargets()...))
	if err != nil {
		return err
	}
	for range cfg.botCount {
		if _, err := app.AddBot(ctx, application.NewRuleBotController()); err != nil {
			return err
		}
	}

	roomID := domain.RoomID("default")
	room := domain.NewRoom(roomID, pubsub, app, domain.WithTickRate(cfg.tickRate), domain.WithClock(clock))

	if cfg.runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.runFor)
		defer cancel()
	}

	eventsTopic := domain.RoomEventsTopic(roomID)
	events := pubsub.Subscribe(eventsTopic)
	defer pubsub.Unsubscribe(eventsTopic, events)

	slog.InfoContext(ctx, "range started",
		"weapon", weaponCfg.Name,
		"bots", cfg.botCount,
		"tickRate", cfg.tickRate,
		"runFor", cfg.runFor,
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return room.Run(ctx)
	})
	eg.Go(func() error {
		return logEvents(ctx, events)
	})
	eg.Go(func() error {
		return drivePlayer(ctx, pubsub, roomID, room.TickInterval())
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	slog.InfoContext(context.Background(), "range stopped", "simTime", clock.Now())
	return nil
}

func selectLoadout(cfg config) (weapon.Config, error) {
	var (
		set loadout.Set
		err error
	)
	if cfg.loadoutDir == "" {
		set, err = loadout.Builtin()
	} else {
		set, err = loadout.LoadDir(cfg.loadoutDir)
	}
	if err != nil {
		return weapon.Config{}, err
	}
	return set.Get(cfg.loadoutWeapon)
}

// defaultTargets は射手の列の正面に標的を並べます。
func defaultTargets() []*application.Target {
	return []*application.Target{
		{Name: "plate-near", Center: weapon.Vec3{X: 0, Y: 1.5, Z: 25}, Radius: 1.0, Layer: application.LayerTarget},
		{Name: "plate-mid", Center: weapon.Vec3{X: 6, Y: 1.5, Z: 60}, Radius: 1.5, Layer: application.LayerTarget},
		{Name: "plate-far", Center: weapon.Vec3{X: -8, Y: 2.0, Z: 120}, Radius: 2.0, Layer: application.LayerTarget},
		{Name: "wall", Center: weapon.Vec3{X: 0, Y: 0, Z: 400}, Radius: 50, Layer: application.LayerDefault},
		{Name: "marker", Center: weapon.Vec3{X: 3, Y: 1.5, Z: 15}, Radius: 0.5, Layer: application.LayerIgnore},
	}
}
