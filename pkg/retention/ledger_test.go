package retention

import (
	"fmt"
	"slices"
	"testing"
)

func TestLedgerTouch(t *testing.T) {
	tests := []struct {
		name        string
		start       []string
		id          string
		capacity    int
		want        []string
		wantEvicted []string
	}{
		{"empty", nil, "a", 3, []string{"a"}, nil},
		{"append", []string{"a", "b"}, "c", 3, []string{"a", "b", "c"}, nil},
		{"evict oldest", []string{"a", "b", "c"}, "d", 3, []string{"b", "c", "d"}, []string{"a"}},
		{"refresh", []string{"a", "b", "c"}, "a", 3, []string{"b", "c", "a"}, nil},
		{"refresh newest", []string{"a", "b", "c"}, "c", 3, []string{"a", "b", "c"}, nil},
		{"shrunk capacity", []string{"a", "b", "c", "d"}, "e", 2, []string{"d", "e"}, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Ledger{IDs: slices.Clone(tt.start)}
			evicted := l.Touch(tt.id, tt.capacity)
			if !slices.Equal(l.IDs, tt.want) {
				t.Errorf("IDs = %v, want %v", l.IDs, tt.want)
			}
			if !slices.Equal(evicted, tt.wantEvicted) {
				t.Errorf("evicted = %v, want %v", evicted, tt.wantEvicted)
			}
		})
	}
}

func TestLedgerTouch_SixteenIntoFifteen(t *testing.T) {
	l := &Ledger{}
	var evicted []string
	for i := 0; i < 16; i++ {
		evicted = append(evicted, l.Touch(fmt.Sprintf("P%05d", i), DefaultCapacity)...)
	}

	if !slices.Equal(evicted, []string{"P00000"}) {
		t.Errorf("evicted = %v, want [P00000]", evicted)
	}
	if len(l.IDs) != DefaultCapacity {
		t.Fatalf("len = %d, want %d", len(l.IDs), DefaultCapacity)
	}
	for i, id := range l.IDs {
		if want := fmt.Sprintf("P%05d", i+1); id != want {
			t.Errorf("IDs[%d] = %s, want %s", i, id, want)
		}
	}
}

func TestLedgerTouch_RefreshKeepsLength(t *testing.T) {
	l := &Ledger{IDs: []string{"a", "b", "c", "d"}}
	for i := 0; i < 5; i++ {
		if ev := l.Touch("b", 4); len(ev) != 0 {
			t.Fatalf("refresh evicted %v", ev)
		}
	}
	if len(l.IDs) != 4 || l.IDs[3] != "b" {
		t.Errorf("IDs = %v", l.IDs)
	}
}
