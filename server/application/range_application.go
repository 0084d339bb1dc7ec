package application

import (
	"context"
	"fmt"
	"log/slog"

	"firearm/server/domain"
	"firearm/weapon"
)

// RangeApplication は参加者ごとに1丁の武器を持たせる射撃場の Application です。
type RangeApplication struct {
	field   *Field
	effects *EffectLog
	clock   weapon.Clock
	spread  weapon.SpreadSource
	loadout weapon.Config

	bots          map[domain.SessionID]BotController
	pendingInputs []InputEvent
	seq           uint16
}

var _ domain.Application = (*RangeApplication)(nil)

// InputEvent は1つの入力イベントを表す
type InputEvent struct {
	SessionID domain.SessionID
	Header    *domain.Header
	Input     *domain.InputPayload
}

type RangeOption func(*RangeApplication)

// WithSpreadSource は拡散の乱数源を差し替えます。
func WithSpreadSource(spread weapon.SpreadSource) RangeOption {
	return func(app *RangeApplication) {
		app.spread = spread
	}
}

// WithTargets は標的を配置します。
func WithTargets(targets ...*Target) RangeOption {
	return func(app *RangeApplication) {
		for _, t := range targets {
			app.field.AddTarget(t)
		}
	}
}

// NewRangeApplication は参加者全員に loadout の武器を持たせる射撃場を作成します。
// clock はルームと共有するシミュレーション時刻です。
func NewRangeApplication(loadout weapon.Config, clock weapon.Clock, opts ...RangeOption) (*RangeApplication, error) {
	if err := loadout.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		return nil, fmt.Errorf("%w: clock", weapon.ErrMissingDependency)
	}
	app := &RangeApplication{
		field:         NewField(clock),
		effects:       NewEffectLog(),
		clock:         clock,
		spread:        weapon.RandomSpread{},
		loadout:       loadout,
		bots:          make(map[domain.SessionID]BotController),
		pendingInputs: make([]InputEvent, 0),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

func (app *RangeApplication) Field() *Field {
	return app.field
}

func (app *RangeApplication) Effects() *EffectLog {
	return app.effects
}

func (app *RangeApplication) HandleMessage(ctx context.Context, sessionID domain.SessionID, data []byte) error {
	// 1. Headerをパース
	header, err := domain.ParseHeader(data)
	if err != nil {
		return err
	}
	if sessionID.IsEmpty() {
		sessionID = domain.SessionIDFromBytes(header.SessionID)
	}

	// 2. PayloadHeaderをパース
	payloadData := data[domain.HeaderSize:]
	payloadHeader, err := domain.ParsePayloadHeader(payloadData)
	if err != nil {
		return err
	}

	// 3. 各DataTypeごとに処理
	payload := payloadData[domain.PayloadHeaderSize:]
	switch payloadHeader.DataType {
	case domain.DataTypeInput:
		return app.handleInput(ctx, sessionID, header, payload)
	case domain.DataTypeControl:
		return app.handleControl(ctx, sessionID, payloadHeader.SubType)
	default:
		slog.WarnContext(ctx, "unknown data type", "dataType", payloadHeader.DataType)
		return nil
	}
}

func (app *RangeApplication) handleInput(ctx context.Context, sessionID domain.SessionID, header *domain.Header, data []byte) error {
	input, err := domain.ParseInputPayload(data)
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "handleInput",
		"sessionID", sessionID,
		"seq", header.Seq,
		"keyMask", input.KeyMask,
	)

	app.pendingInputs = append(app.pendingInputs, InputEvent{
		SessionID: sessionID,
		Header:    header,
		Input:     input,
	})

	return nil
}

func (app *RangeApplication) handleControl(ctx context.Context, sessionID domain.SessionID, subType uint8) error {
	switch domain.ControlSubType(subType) {
	case domain.ControlSubTypeJoin:
		slog.DebugContext(ctx, "handleControl:join", "sessionID", sessionID)
		_, err := app.join(ctx, sessionID, KindPlayer)
		return err
	case domain.ControlSubTypeLeave:
		slog.DebugContext(ctx, "handleControl:leave", "sessionID", sessionID)
		app.leave(ctx, sessionID)
	default:
		slog.WarnContext(ctx, "unknown control subtype", "subType", subType)
	}

	return nil
}

// AddBot はボットを参加させます。ルームの tick ループを開始する前か、ループ内から呼んでください。
func (app *RangeApplication) AddBot(ctx context.Context, controller BotController) (domain.SessionID, error) {
	sessionID := domain.NewSessionID()
	if _, err := app.join(ctx, sessionID, KindBot); err != nil {
		return domain.SessionID{}, err
	}
	app.bots[sessionID] = controller
	return sessionID, nil
}

func (app *RangeApplication) join(ctx context.Context, sessionID domain.SessionID, kind ActorState) (*Actor, error) {
	if actor, ok := app.field.GetActor(sessionID); ok {
		slog.WarnContext(ctx, "actor already joined", "sessionID", sessionID)
		return actor, nil
	}

	actor := app.field.Spawn(sessionID, kind)
	w, err := weapon.NewProjectileWeapon(app.loadout, weapon.Dependencies{
		Rig:       actor,
		Raycaster: app.field,
		Spawner:   app.field,
		Effects:   app.effects,
		Clock:     app.clock,
		Spread:    app.spread,
	})
	if err != nil {
		app.field.Remove(sessionID)
		return nil, err
	}
	w.SetOwner(weapon.OwnerID(sessionID))
	actor.Weapon = w

	slog.InfoContext(ctx, "actor joined", "sessionID", sessionID, "weapon", w.Name(), "bot", actor.IsBot())
	return actor, nil
}

func (app *RangeApplication) leave(ctx context.Context, sessionID domain.SessionID) {
	actor, ok := app.field.GetActor(sessionID)
	if !ok {
		slog.WarnContext(ctx, "actor not found", "sessionID", sessionID)
		return
	}
	actor.Weapon.Detach()
	app.field.Remove(sessionID)
	delete(app.bots, sessionID)
	slog.InfoContext(ctx, "actor left", "sessionID", sessionID)
}

// Tick は入力とボットの意思決定を反映し、全武器を now まで進めて、この tick の発射イベントを返します。
// 発射数が多い tick は複数メッセージに分割されます。
func (app *RangeApplication) Tick(ctx context.Context, now float64) [][]byte {
	app.applyInputs(ctx)
	app.decideBots(ctx)

	for _, actor := range app.field.GetAllActors() {
		if err := actor.Weapon.Tick(ctx, now); err != nil {
			slog.WarnContext(ctx, "weapon tick failed", "sessionID", actor.SessionID, "err", err)
		}
	}
	app.field.ExpireProjectiles(now)

	shots := app.field.DrainShots()
	if len(shots) == 0 {
		return nil
	}
	messages := domain.EncodeShotMessages(app.seq+1, shots)
	app.seq += uint16(len(messages))
	return messages
}

func (app *RangeApplication) applyInputs(ctx context.Context) {
	for _, ev := range app.pendingInputs {
		actor, ok := app.field.GetActor(ev.SessionID)
		if !ok {
			slog.WarnContext(ctx, "input for unknown actor", "sessionID", ev.SessionID)
			continue
		}
		if ev.Input.KeyMask&domain.KeyFire != 0 {
			actor.Weapon.StartFire()
		} else {
			actor.Weapon.StopFire()
		}
		if ev.Input.KeyMask&domain.KeyReload != 0 {
			actor.Weapon.Reload(ctx)
		}
	}
	app.pendingInputs = app.pendingInputs[:0]
}

func (app *RangeApplication) decideBots(ctx context.Context) {
	for _, actor := range app.field.GetAllActors() {
		controller, ok := app.bots[actor.SessionID]
		if !ok {
			continue
		}
		action := controller.Decide(actor, app.field.Targets)
		actor.Yaw = wrapAngle(actor.Yaw + action.Turn)
		if action.Fire {
			actor.Weapon.StartFire()
		} else {
			actor.Weapon.StopFire()
		}
		if action.Reload {
			actor.Weapon.Reload(ctx)
		}
	}
}
