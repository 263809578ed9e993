package kterm

import "testing"

func TestPaneSplitAndClose(t *testing.T) {
	root := &Pane{Kind: PaneLeaf, SessionIndex: 0}
	second := root.Split(true, 1, false)

	if root.Kind != PaneSplitHorizontal {
		t.Fatalf("root.Kind = %v, want PaneSplitHorizontal", root.Kind)
	}
	if second.SessionIndex != 1 {
		t.Fatalf("second.SessionIndex = %d, want 1", second.SessionIndex)
	}

	promoted := second.Close()
	if promoted.Kind != PaneLeaf || promoted.SessionIndex != 0 {
		t.Fatalf("after closing the second pane, expected leaf showing session 0, got %+v", promoted)
	}
}

func TestPaneCloseReparentsGrandchildren(t *testing.T) {
	root := &Pane{Kind: PaneLeaf, SessionIndex: 0}
	second := root.Split(true, 1, false) // root now splits into [0 | 1]
	third := second.Split(false, 2, false) // second now splits into [1 | 2]

	// Close the leaf holding session 0: its sibling ("second", itself a
	// split) should be promoted into root's place, and that split's own
	// children must end up pointing back at the promoted node.
	leafZero := root.First
	promoted := leafZero.Close()

	if promoted.Kind != PaneSplitVertical {
		t.Fatalf("promoted.Kind = %v, want PaneSplitVertical", promoted.Kind)
	}
	if promoted.First.Parent != promoted || promoted.Second.Parent != promoted {
		t.Fatalf("grandchildren not reparented onto promoted node")
	}
	if third.Parent != promoted {
		t.Fatalf("third.Parent = %p, want %p", third.Parent, promoted)
	}
}

func TestPaneLayoutTilesExactly(t *testing.T) {
	root := &Pane{Kind: PaneLeaf, SessionIndex: 0}
	root.Split(true, 1, false)
	root.Layout(0, 0, 80, 24)

	if root.First.Rows+root.Second.Rows != 24 {
		t.Errorf("split rows = %d + %d, want sum 24", root.First.Rows, root.Second.Rows)
	}
	if root.First.Cols != 80 || root.Second.Cols != 80 {
		t.Errorf("horizontal split children should both span full width")
	}
}

func TestPaneFindSession(t *testing.T) {
	root := &Pane{Kind: PaneLeaf, SessionIndex: 0}
	root.Split(true, 1, false)

	if p := root.FindSession(1); p == nil || p.SessionIndex != 1 {
		t.Errorf("FindSession(1) = %+v, want leaf with SessionIndex 1", p)
	}
	if p := root.FindSession(5); p != nil {
		t.Errorf("FindSession(5) = %+v, want nil", p)
	}
}
