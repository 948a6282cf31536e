package arena

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

func seededRNG(seed int64, salt string) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic replay.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, salt+":a"), seedWord(seed, salt+":b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// offerRNG is the random source for the n-th augment offer of a run.
func offerRNG(seed int64, n int) *rand.Rand {
	return seededRNG(seed, fmt.Sprintf("offer:%d", n))
}
