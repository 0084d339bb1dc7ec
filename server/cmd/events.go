package main

import (
	"context"
	"log/slog"
	"time"

	"firearm/server/domain"
)

const reportInterval = time.Second

// logEvents はルームの発射イベントを集計し、一定間隔で所有者ごとの発射数を出力します。
func logEvents(ctx context.Context, events <-chan domain.Message) error {
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	counts := make(map[domain.SessionID]int)
	total := 0
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(context.Background(), "shots total", "total", total, "shooters", len(counts))
			return nil
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			shots, err := parseShotMessage(msg.Data)
			if err != nil {
				slog.WarnContext(ctx, "invalid shot event", "err", err)
				continue
			}
			for _, s := range shots {
				counts[domain.SessionIDFromBytes(s.OwnerID)]++
			}
			total += len(shots)
		case <-ticker.C:
			for owner, n := range counts {
				slog.InfoContext(ctx, "shots", "owner", owner, "count", n)
			}
		}
	}
}

func parseShotMessage(data []byte) ([]domain.ShotEvent, error) {
	if _, err := domain.ParseHeader(data); err != nil {
		return nil, err
	}
	payload := data[domain.HeaderSize:]
	if _, err := domain.ParsePayloadHeader(payload); err != nil {
		return nil, err
	}
	return domain.ParseShotBatch(payload[domain.PayloadHeaderSize:])
}
