package vmemsim

import "testing"

func TestNewPageTableInitialState(t *testing.T) {
	cfg := Config{
		TextSize: 16, DataSize: 16, BssSize: 16, HeapStackSize: 80,
		PageSize: 16, NumPages: 8, MemorySize: 64, SwapSize: 64,
	}
	d, err := cfg.validate()
	if err != ErrOk {
		t.Fatalf("validate() = %v, want ErrOk", err)
	}
	pt := newPageTable(cfg.NumPages, d)

	if pt.NumPages() != 8 {
		t.Fatalf("NumPages() = %d, want 8", pt.NumPages())
	}

	tests := []struct {
		page  int
		wantP bool
	}{
		{0, true},  // TEXT is read-only from the start
		{1, false}, // DATA is writable
		{2, false}, // BSS is writable
		{3, false}, // HEAP/STACK is writable
	}
	for _, tt := range tests {
		desc := pt.Get(tt.page)
		if desc.V {
			t.Errorf("page %d: V = true, want false at init", tt.page)
		}
		if desc.D {
			t.Errorf("page %d: D = true, want false at init", tt.page)
		}
		if desc.P != tt.wantP {
			t.Errorf("page %d: P = %v, want %v", tt.page, desc.P, tt.wantP)
		}
		if desc.Location != -1 {
			t.Errorf("page %d: Location = %d, want -1 at init", tt.page, desc.Location)
		}
	}
}

func TestPageTableSetGet(t *testing.T) {
	cfg := Config{
		TextSize: 16, DataSize: 16, BssSize: 16, HeapStackSize: 80,
		PageSize: 16, NumPages: 8, MemorySize: 64, SwapSize: 64,
	}
	d, _ := cfg.validate()
	pt := newPageTable(cfg.NumPages, d)

	pt.Set(3, PageDescriptor{V: true, D: true, P: false, Location: 2})
	got := pt.Get(3)
	want := PageDescriptor{V: true, D: true, P: false, Location: 2}
	if got != want {
		t.Errorf("Get(3) = %+v, want %+v", got, want)
	}

	if got := pt.SegmentOf(3); got != SegHeapStack {
		t.Errorf("SegmentOf(3) = %v, want SegHeapStack", got)
	}
}
