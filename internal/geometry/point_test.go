package geometry

import "testing"

func TestPointOffset(t *testing.T) {
	p := Point{X: 3, Y: -2}
	got := p.Offset(10, 7)

	if got != (Point{X: 13, Y: 5}) {
		t.Errorf("Offset() = %+v, want {13 5}", got)
	}
	if p != (Point{X: 3, Y: -2}) {
		t.Errorf("original mutated: %+v", p)
	}
}

func TestPointScale(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		factor float64
		want   Point
	}{
		{"identity", Point{X: 4, Y: 9}, 1.0, Point{X: 4, Y: 9}},
		{"double", Point{X: 4, Y: 9}, 2.0, Point{X: 8, Y: 18}},
		{"ceiling rounds up", Point{X: 3, Y: 5}, 1.5, Point{X: 5, Y: 8}},
		{"fractional down-scale", Point{X: 10, Y: 10}, 0.25, Point{X: 3, Y: 3}},
		{"zero point", Point{}, 2.5, Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Scale(tt.factor); got != tt.want {
				t.Errorf("Scale(%v) = %+v, want %+v", tt.factor, got, tt.want)
			}
		})
	}
}
