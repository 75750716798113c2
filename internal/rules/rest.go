package rules

import (
	"fmt"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

// RestState carries the pieces of a sheet a rest touches. LongRest returns
// a new state; callers merge it back into the sheet and persist.
type RestState struct {
	HP         HitPoints
	HPBonus    int
	HitDice    []HitDiceBucket
	Slots      SpellSlots
	Exhaustion int
	DeathSaves DeathSaves
}

// SpendHitDice spends count dice from a bucket during a short rest. The
// healing roll itself is the caller's concern; this only tracks usage.
func SpendHitDice(bucket HitDiceBucket, count int) (HitDiceBucket, error) {
	if count <= 0 {
		return bucket, nil
	}
	if count > bucket.Remaining() {
		return bucket, apperrors.WithMetadata(apperrors.CodeRulesHitDiceExhausted,
			fmt.Sprintf("cannot spend %d %s hit dice, %d remaining", count, bucket.Die, bucket.Remaining()),
			map[string]string{
				"Die":       bucket.Die,
				"Count":     fmt.Sprintf("%d", count),
				"Remaining": fmt.Sprintf("%d", bucket.Remaining()),
			})
	}
	bucket.Used += count
	return bucket, nil
}

// LongRestRecovery is the number of hit dice a bucket recovers on a long
// rest: half the total, rounded down, minimum one.
func LongRestRecovery(total int) int {
	recovered := total / 2
	if recovered < 1 {
		recovered = 1
	}
	return recovered
}

// LongRest applies a long rest: hit points to effective max, temporary hit
// points cleared, each hit dice bucket recovers LongRestRecovery dice, all
// spell slots restore to max, exhaustion drops by one, and death save
// counters reset.
func LongRest(state RestState) RestState {
	state.HP.Current = EffectiveMaxHP(state.HP.Max, state.HPBonus)
	state.HP.Temp = 0

	buckets := make([]HitDiceBucket, len(state.HitDice))
	for i, bucket := range state.HitDice {
		bucket.Used -= LongRestRecovery(bucket.Total)
		if bucket.Used < 0 {
			bucket.Used = 0
		}
		buckets[i] = bucket
	}
	state.HitDice = buckets

	state.Slots = RestoreSpellSlots(state.Slots)

	if state.Exhaustion > 0 {
		state.Exhaustion--
	}
	state.DeathSaves = DeathSaves{}
	return state
}
