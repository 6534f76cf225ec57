package dupes

import (
	"context"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromSliceReplays(t *testing.T) {
	for _, n := range []int{0, 3, 2000} {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		s := FromSlice(items)
		for pass := 0; pass < 2; pass++ {
			got, err := Slice(context.Background(), s)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != n {
				t.Fatalf("pass %d: got %d items, want %d", pass, len(got), n)
			}
		}
	}
}

func TestFromChannelIsSinglePass(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 1
	close(ch)

	s := FromChannel(ch)
	first, err := Slice(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 1}, first); diff != "" {
		t.Errorf("first pass mismatch (-want +got):\n%s", diff)
	}
	second, err := Slice(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 0 {
		t.Errorf("second pass got %v, want nothing", second)
	}
}

func TestFromIterAndEmpty(t *testing.T) {
	got, err := Slice(context.Background(), FromIter(slices.Values([]int{3, 1, 3})))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{3, 1, 3}, got); diff != "" {
		t.Errorf("FromIter mismatch (-want +got):\n%s", diff)
	}

	got, err = Slice(context.Background(), Empty[int]())
	if err != nil || len(got) != 0 {
		t.Errorf("Empty() = %v, %v", got, err)
	}
}

func TestHasDuplicate(t *testing.T) {
	if HasDuplicate([]int{}) || HasDuplicate([]int{1}) {
		t.Error("HasDuplicate reported a duplicate in empty or singleton input")
	}
	if !HasDuplicate([]int{5, 5}) {
		t.Error("HasDuplicate missed [5 5]")
	}

	for _, s := range []Strategy{EarlyExitSet, EarlyExitExistential, GroupCount, CountDistinct} {
		got, err := HasDuplicateWith(s, []string{"x", "y", "x"})
		if err != nil || !got {
			t.Errorf("HasDuplicateWith(%v) = %t, %v", s, got, err)
		}

		ch := make(chan int, 2)
		ch <- 8
		ch <- 8
		close(ch)
		got, err = StreamHasDuplicate(context.Background(), s, FromChannel(ch))
		if err != nil || !got {
			t.Errorf("StreamHasDuplicate(%v) = %t, %v", s, got, err)
		}
	}

	if _, err := HasDuplicateWith(Strategy(0), []int{1}); err == nil {
		t.Error("HasDuplicateWith(0) should fail")
	}
}
