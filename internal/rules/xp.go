package rules

// xpThresholds holds the cumulative experience required to reach each
// level; index i is the threshold for level i+1 (SRD 2024).
var xpThresholds = [20]int{
	0,
	300,
	900,
	2700,
	6500,
	14000,
	23000,
	34000,
	48000,
	64000,
	85000,
	100000,
	120000,
	140000,
	165000,
	195000,
	225000,
	265000,
	305000,
	355000,
}

// LevelForXP returns the character level earned by a cumulative xp total,
// capped at 20. Negative totals map to level 1.
func LevelForXP(xp int) int {
	for i := len(xpThresholds) - 1; i >= 0; i-- {
		if xp >= xpThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// XPForNextLevel returns the cumulative xp needed for the next level. The
// second result is false at level 20 and beyond.
func XPForNextLevel(level int) (int, bool) {
	if level < 1 || level >= 20 {
		return 0, false
	}
	return xpThresholds[level], true
}
