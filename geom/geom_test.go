package geom

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b r2.Box
		want bool
	}{
		{
			name: "identical",
			a:    Rect(V(0, 0), V(10, 10)),
			b:    Rect(V(0, 0), V(10, 10)),
			want: true,
		},
		{
			name: "partial overlap",
			a:    Rect(V(0, 0), V(10, 10)),
			b:    Rect(V(5, 5), V(10, 10)),
			want: true,
		},
		{
			name: "contained",
			a:    Rect(V(0, 0), V(100, 100)),
			b:    Rect(V(40, 40), V(2, 2)),
			want: true,
		},
		{
			name: "touching right edge",
			a:    Rect(V(0, 0), V(10, 10)),
			b:    Rect(V(10, 0), V(10, 10)),
			want: false,
		},
		{
			name: "touching bottom edge",
			a:    Rect(V(0, 0), V(10, 10)),
			b:    Rect(V(0, 10), V(10, 10)),
			want: false,
		},
		{
			name: "separated",
			a:    Rect(V(0, 0), V(10, 10)),
			b:    Rect(V(50, 50), V(10, 10)),
			want: false,
		},
		{
			name: "zero width",
			a:    Rect(V(5, 0), V(0, 10)),
			b:    Rect(V(0, 0), V(10, 10)),
			want: false,
		},
		{
			name: "negative size",
			a:    Rect(V(5, 5), V(-4, -4)),
			b:    Rect(V(0, 0), V(10, 10)),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectDoesNotCanonicalise(t *testing.T) {
	b := Rect(V(10, 10), V(-5, 3))
	if !b.Empty() {
		t.Errorf("negative width box %v should be empty", b)
	}
	if got := Size(Rect(V(1, 2), V(3, 4))); got != V(3, 4) {
		t.Errorf("Size = %v, want (3,4)", got)
	}
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec
		step     float64
		want     Vec
	}{
		{"step both axes", V(0, 0), V(10, -10), 1, V(1, -1)},
		{"snap when close", V(0, 0), V(0.5, 3), 1, V(0.5, 1)},
		{"already there", V(4, 4), V(4, 4), 2, V(4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoveTowards(tt.from, tt.to, tt.step); got != tt.want {
				t.Errorf("MoveTowards = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueSemantics(t *testing.T) {
	a := V(1, 1)
	b := a
	b.X = 9
	if a.X != 1 {
		t.Error("copying a Vec must not alias")
	}
}
