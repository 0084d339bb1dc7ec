package domain

// SimClock はルームの tick ごとに固定幅で進むシミュレーション時刻です。
// weapon.Clock を満たします。ルームの goroutine 以外から進めてはいけません。
type SimClock struct {
	now float64
}

func (c *SimClock) Now() float64 {
	return c.now
}

func (c *SimClock) Advance(dt float64) float64 {
	c.now += dt
	return c.now
}
