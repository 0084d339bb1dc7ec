package domain

import "context"

//go:generate go tool mockgen -destination=./mocks/application_mock.go -package=mocks . Application

// Application はルームの tick ループ上で動くゲームロジックです。
// すべてのメソッドはルームの単一 goroutine から呼ばれます。
type Application interface {
	HandleMessage(ctx context.Context, sessionID SessionID, data []byte) error
	// Tick は now (秒) まで状態を進め、発行するイベントをエンコード済みメッセージの列で返します。
	Tick(ctx context.Context, now float64) [][]byte
}
