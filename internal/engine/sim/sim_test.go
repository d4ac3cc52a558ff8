package sim

import "testing"

func TestSelfPlayManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		if err := RunSelfPlay(seed, 50000); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	}
}

func FuzzSelfPlay(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(20260829))
	f.Fuzz(func(t *testing.T, seed int64) {
		if err := RunSelfPlay(seed, 50000); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	})
}
