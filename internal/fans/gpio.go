package fans

// gpioValue maps a level to a digital line value
func gpioValue(level float64) int {
	if clampLevel(level) >= 0.5 {
		return 1
	}
	return 0
}
