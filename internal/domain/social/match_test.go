package social

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanonicalPairIsOrderIndependent(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	lo1, hi1 := CanonicalPair(a, b)
	lo2, hi2 := CanonicalPair(b, a)
	if lo1 != lo2 || hi1 != hi2 {
		t.Fatalf("pair not canonical: (%s,%s) vs (%s,%s)", lo1, hi1, lo2, hi2)
	}
	if lo1 != a || hi1 != b {
		t.Fatalf("unexpected order: %s %s", lo1, hi1)
	}
}

func TestMatchPeer(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m := &Match{User1ID: a, User2ID: b}
	if m.Peer(a) != b || m.Peer(b) != a {
		t.Fatalf("peer lookup wrong")
	}
	if m.HasUser(uuid.New()) {
		t.Fatalf("stranger reported as member")
	}
}
