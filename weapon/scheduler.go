package weapon

// FireScheduler は毎分の発射数から発射試行の間隔を制御します。
type FireScheduler struct {
	interval float64
	enabled  bool
}

func NewFireScheduler(ratePerMinute float64) FireScheduler {
	if !IsFinite(ratePerMinute) || ratePerMinute <= 0 {
		return FireScheduler{}
	}
	return FireScheduler{interval: 60 / ratePerMinute, enabled: true}
}

// Interval は最小発射間隔 (秒) を返します。
func (s FireScheduler) Interval() float64 {
	return s.interval
}

// ShouldAttemptShot は前回の発射から最小間隔を厳密に超えているかを返します。
// 間隔ちょうどは経過とみなしません。発射数が0以下の設定では常に false です。
func (s FireScheduler) ShouldAttemptShot(now, lastFire float64) bool {
	if !s.enabled {
		return false
	}
	return now-lastFire > s.interval
}

// ShouldAttemptShot は NewFireScheduler(ratePerMinute).ShouldAttemptShot の省略形です。
func ShouldAttemptShot(now, lastFire, ratePerMinute float64) bool {
	return NewFireScheduler(ratePerMinute).ShouldAttemptShot(now, lastFire)
}
