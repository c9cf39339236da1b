package sparse

import "testing"

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	if v := M.Value(3, 4); v != DefaultNullValue {
		t.Errorf("expected empty cell to hold null value, has %d", v)
	}
	if prev := M.Set(3, 4, 7); prev != DefaultNullValue {
		t.Errorf("expected previous value of fresh cell to be null, is %d", prev)
	}
	if v := M.Value(3, 4); v != 7 {
		t.Errorf("expected M(3,4)=7, is %d", v)
	}
	if prev := M.Set(3, 4, 9); prev != 7 {
		t.Errorf("expected Set to report previous value 7, reported %d", prev)
	}
	if M.ValueCount() != 1 {
		t.Errorf("overwriting a cell should not grow the matrix, count = %d", M.ValueCount())
	}
}

func TestMatrixOrdering(t *testing.T) {
	M := NewIntMatrix(5, 5, -1)
	M.Set(4, 0, 40)
	M.Set(0, 3, 3)
	M.Set(2, 2, 22)
	M.Set(2, 0, 20)
	M.Set(0, 1, 1)
	for _, c := range []struct{ i, j, v int }{
		{0, 1, 1}, {0, 3, 3}, {2, 0, 20}, {2, 2, 22}, {4, 0, 40}, {1, 1, -1},
	} {
		if v := M.Value(c.i, c.j); v != int32(c.v) {
			t.Errorf("expected M(%d,%d)=%d, is %d", c.i, c.j, c.v, v)
		}
	}
	var cols []int
	M.EachInRow(2, func(j int, v int32) {
		cols = append(cols, j)
	})
	if len(cols) != 2 || cols[0] != 0 || cols[1] != 2 {
		t.Errorf("expected row 2 to have columns [0 2], has %v", cols)
	}
}

func TestMatrixBounds(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set outside of matrix to panic")
		}
	}()
	M := NewIntMatrix(2, 2, -1)
	M.Set(2, 0, 1)
}
