package main

import (
	"context"
	"time"

	"firearm/server/domain"
)

// 操作手順: 1.5秒撃ち続けて離し、リロードを押してから 1 秒待つ
const (
	burstDuration = 1500 * time.Millisecond
	pauseDuration = time.Second
)

// drivePlayer はルームにプレイヤーを1人参加させ、入力メッセージで射撃とリロードを繰り返します。
func drivePlayer(ctx context.Context, pubsub domain.PubSub, roomID domain.RoomID, tick time.Duration) error {
	sessionID := domain.NewSessionID()
	topic := domain.RoomTopic(roomID)
	send := func(data []byte) {
		pubsub.Publish(ctx, topic, domain.Message{SessionID: sessionID, Data: data})
	}

	// ルームの購読開始を待つ
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(2 * tick):
	}
	send(domain.EncodeJoinMessage(sessionID))

	var seq uint16
	for {
		seq++
		send(domain.EncodeInputMessage(sessionID, seq, domain.KeyFire))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(burstDuration):
		}

		seq++
		send(domain.EncodeInputMessage(sessionID, seq, domain.KeyReload))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(pauseDuration):
		}
	}
}
