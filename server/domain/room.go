package domain

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("firearm/server/domain")

type RoomID string

const DefaultTickRate = 60

type Room struct {
	ID RoomID

	pubsub      PubSub
	application Application // 外部からアプリケーションロジックを注入できる
	clock       *SimClock

	tickInterval time.Duration
}

type RoomOption func(*Room)

// WithTickRate は1秒あたりの tick 数を設定します。0以下は無視します。
func WithTickRate(rate int) RoomOption {
	return func(r *Room) {
		if rate > 0 {
			r.tickInterval = time.Second / time.Duration(rate)
		}
	}
}

// WithClock はルームが進めるシミュレーション時刻を外部から渡します。
// 武器など時刻を参照するオブジェクトと共有するために使います。
func WithClock(clock *SimClock) RoomOption {
	return func(r *Room) {
		if clock != nil {
			r.clock = clock
		}
	}
}

func NewRoom(id RoomID, pubsub PubSub, application Application, opts ...RoomOption) *Room {
	r := &Room{
		ID:           id,
		pubsub:       pubsub,
		application:  application,
		clock:        &SimClock{},
		tickInterval: time.Second / DefaultTickRate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Room) Clock() *SimClock {
	return r.clock
}

func (r *Room) TickInterval() time.Duration {
	return r.tickInterval
}

// Run は ctx がキャンセルされるまで tick ループを回します。
// Application の呼び出しはすべてこの goroutine で行われます。
func (r *Room) Run(ctx context.Context) error {
	topic := RoomTopic(r.ID)
	msgCh := r.pubsub.Subscribe(topic)
	defer r.pubsub.Unsubscribe(topic, msgCh)

	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "room started", "roomID", r.ID, "tickInterval", r.tickInterval)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "room stopped", "roomID", r.ID, "simTime", r.clock.Now())
			return nil
		case <-ticker.C:
			r.Step(ctx, msgCh)
		}
	}
}

// Step は1tick分の処理を行います: 受信済みメッセージの処理、時刻の前進、Application の Tick。
func (r *Room) Step(ctx context.Context, msgCh <-chan Message) {
	ctx, span := tracer.Start(ctx, "room.tick", trace.WithAttributes(attribute.String("room.id", string(r.ID))))
	defer span.End()

	handled := 0
RECEIVE_LOOP:
	for {
		select {
		case msg, ok := <-msgCh:
			if !ok {
				break RECEIVE_LOOP
			}
			if err := r.application.HandleMessage(ctx, msg.SessionID, msg.Data); err != nil {
				slog.WarnContext(ctx, "room handle message failed", "err", err)
			}
			handled++
		default:
			break RECEIVE_LOOP
		}
	}

	now := r.clock.Advance(r.tickInterval.Seconds())
	span.SetAttributes(attribute.Int("room.messages", handled), attribute.Float64("room.sim_time", now))
	messages := r.application.Tick(ctx, now)
	eventBytes := 0
	for _, data := range messages {
		eventBytes += len(data)
		r.pubsub.Publish(ctx, RoomEventsTopic(r.ID), Message{Data: data})
	}
	span.SetAttributes(attribute.Int("room.event_messages", len(messages)), attribute.Int("room.event_bytes", eventBytes))
}
