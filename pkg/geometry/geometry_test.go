package geometry

import (
	"math"
	"testing"

	"github.com/brain-sim/antmaze/pkg/errors"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestMinCircularRadius(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		arms      int
		span      float64
		want      float64
		wantCode  errors.Code
		wantError bool
	}{
		{name: "FourArmsFullCircle", width: 3, arms: 4, span: FullCircle, want: 12 / FullCircle},
		{name: "SingleArmHalfCircle", width: 2, arms: 1, span: math.Pi, want: 2 / math.Pi},
		{name: "ZeroArms", width: 3, arms: 0, span: FullCircle, wantError: true, wantCode: errors.ErrCodeInvalidHub},
		{name: "NegativeWidth", width: -1, arms: 4, span: FullCircle, wantError: true, wantCode: errors.ErrCodeInvalidHub},
		{name: "ZeroSpan", width: 3, arms: 4, span: 0, wantError: true, wantCode: errors.ErrCodeInvalidAngle},
		{name: "SpanOverFullCircle", width: 3, arms: 4, span: 3 * math.Pi, wantError: true, wantCode: errors.ErrCodeInvalidAngle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinCircularRadius(tt.width, tt.arms, tt.span)
			if tt.wantError {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("MinCircularRadius() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("MinCircularRadius() error = %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("MinCircularRadius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinCircularRadiusKnownValue(t *testing.T) {
	// 4 arms of width 3 over a full circle need about 1.9099.
	got, err := MinCircularRadius(3, 4, FullCircle)
	if err != nil {
		t.Fatalf("MinCircularRadius() error = %v", err)
	}
	if math.Abs(got-1.90986) > 1e-4 {
		t.Errorf("MinCircularRadius() = %v, want ~1.90986", got)
	}
}

func TestMinPolygonSide(t *testing.T) {
	got, err := MinPolygonSide(3)
	if err != nil {
		t.Fatalf("MinPolygonSide() error = %v", err)
	}
	if got != 3 {
		t.Errorf("MinPolygonSide() = %v, want 3", got)
	}
	if _, err := MinPolygonSide(0); !errors.Is(err, errors.ErrCodeInvalidHub) {
		t.Errorf("MinPolygonSide(0) error = %v, want GEOMETRY_INVALID_HUB", err)
	}
}

func TestCircularAttachOffset(t *testing.T) {
	// Radius 2.5, arm width 3: offset is sqrt(6.25 - 2.25) = 2.
	got, err := CircularAttachOffset(2.5, 3)
	if err != nil {
		t.Fatalf("CircularAttachOffset() error = %v", err)
	}
	if !almostEqual(got, 2) {
		t.Errorf("CircularAttachOffset() = %v, want 2", got)
	}

	if _, err := CircularAttachOffset(1, 3); !errors.Is(err, errors.ErrCodeHubTooSmall) {
		t.Errorf("CircularAttachOffset() error = %v, want GEOMETRY_HUB_TOO_SMALL", err)
	}
}

func TestPolygonApothem(t *testing.T) {
	// Square with side 2 over a full circle: circumradius sqrt(2), apothem 1.
	got, err := PolygonApothem(2, 4, FullCircle)
	if err != nil {
		t.Fatalf("PolygonApothem() error = %v", err)
	}
	if !almostEqual(got, 1) {
		t.Errorf("PolygonApothem() = %v, want 1", got)
	}

	circum, err := PolygonCircumradius(2, 4, FullCircle)
	if err != nil {
		t.Fatalf("PolygonCircumradius() error = %v", err)
	}
	if !almostEqual(circum, math.Sqrt2) {
		t.Errorf("PolygonCircumradius() = %v, want sqrt(2)", circum)
	}

	if _, err := PolygonApothem(2, 2, FullCircle); !errors.Is(err, errors.ErrCodeInvalidHub) {
		t.Errorf("PolygonApothem(sides=2) error = %v, want GEOMETRY_INVALID_HUB", err)
	}
}

func TestArmAngles(t *testing.T) {
	angles, err := ArmAngles(4, FullCircle)
	if err != nil {
		t.Fatalf("ArmAngles() error = %v", err)
	}
	want := []float64{math.Pi / 4, 3 * math.Pi / 4, 5 * math.Pi / 4, 7 * math.Pi / 4}
	if len(angles) != len(want) {
		t.Fatalf("ArmAngles() returned %d angles, want %d", len(angles), len(want))
	}
	for i := range want {
		if !almostEqual(angles[i], want[i]) {
			t.Errorf("angle[%d] = %v, want %v", i, angles[i], want[i])
		}
	}
}

func TestCircularPlacements(t *testing.T) {
	placements, err := CircularPlacements(2.5, []float64{3, 3}, FullCircle)
	if err != nil {
		t.Fatalf("CircularPlacements() error = %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("got %d placements, want 2", len(placements))
	}
	for i, p := range placements {
		if !almostEqual(p.Distance, 2) {
			t.Errorf("placement[%d].Distance = %v, want 2", i, p.Distance)
		}
		if !almostEqual(p.X, 2*math.Cos(p.Angle)) || !almostEqual(p.Y, 2*math.Sin(p.Angle)) {
			t.Errorf("placement[%d] coordinates off axis: %+v", i, p)
		}
	}

	if _, err := CircularPlacements(1, []float64{3}, FullCircle); !errors.Is(err, errors.ErrCodeHubTooSmall) {
		t.Errorf("CircularPlacements() error = %v, want GEOMETRY_HUB_TOO_SMALL", err)
	}
}

func TestPolygonPlacements(t *testing.T) {
	placements, err := PolygonPlacements(2, 4, 4, FullCircle)
	if err != nil {
		t.Fatalf("PolygonPlacements() error = %v", err)
	}
	for i, p := range placements {
		if !almostEqual(p.Distance, 1) {
			t.Errorf("placement[%d].Distance = %v, want apothem 1", i, p.Distance)
		}
	}
}

func TestRadiansDegreesRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 180, 360} {
		if got := Degrees(Radians(deg)); !almostEqual(got, deg) {
			t.Errorf("Degrees(Radians(%v)) = %v", deg, got)
		}
	}
}
