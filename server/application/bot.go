package application

// BotAction はボットの1tick分の行動を表します。
type BotAction struct {
	Turn   float64 // Yaw の変化量 (ラジアン)
	Fire   bool
	Reload bool
}

// BotController はボットの意思決定インターフェースです。
type BotController interface {
	Decide(self *Actor, targets []*Target) BotAction
}
