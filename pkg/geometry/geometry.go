// Package geometry provides the hub sizing and arm placement math for
// radial-arm layouts. All angles are radians unless a name says otherwise.
package geometry

import (
	"math"

	"github.com/brain-sim/antmaze/pkg/errors"
)

// FullCircle is the angular span of a hub whose arms cover all 360 degrees.
const FullCircle = 2 * math.Pi

// Radians converts an angle in degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Degrees converts an angle in radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// ValidateSpan checks that an angular span lies in (0, 2π].
func ValidateSpan(angleSpan float64) error {
	if angleSpan <= 0 || angleSpan > FullCircle+1e-9 {
		return errors.New(errors.ErrCodeInvalidAngle, "angle span %.4f rad outside (0, 2π]", angleSpan)
	}
	return nil
}

// MinCircularRadius returns the smallest circular hub radius that fits
// armCount arms of width up to maxArmWidth distributed evenly over
// angleSpan.
func MinCircularRadius(maxArmWidth float64, armCount int, angleSpan float64) (float64, error) {
	if err := validateArms(maxArmWidth, armCount); err != nil {
		return 0, err
	}
	if err := ValidateSpan(angleSpan); err != nil {
		return 0, err
	}
	return maxArmWidth * float64(armCount) / angleSpan, nil
}

// MinPolygonSide returns the smallest polygon hub side length that fits
// arms of width up to maxArmWidth, one per face.
func MinPolygonSide(maxArmWidth float64) (float64, error) {
	if maxArmWidth <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidHub, "arm width %.4f must be positive", maxArmWidth)
	}
	return maxArmWidth, nil
}

// CircularAttachOffset returns the distance from a circular hub's center
// to an arm's attachment point. The arm's outer corners lie exactly on the
// hub circle, so the offset is sqrt(R² − (W/2)²).
func CircularAttachOffset(radius, armWidth float64) (float64, error) {
	half := armWidth / 2
	if half > radius {
		return 0, errors.New(errors.ErrCodeHubTooSmall,
			"radius %.4f cannot seat an arm of width %.4f", radius, armWidth)
	}
	return math.Sqrt(radius*radius - half*half), nil
}

// PolygonCircumradius derives the circumradius of a polygon hub from its
// side length, number of sides and angular span.
func PolygonCircumradius(sideLength float64, sides int, angleSpan float64) (float64, error) {
	if sideLength <= 0 || sides < 3 {
		return 0, errors.New(errors.ErrCodeInvalidHub,
			"polygon needs a positive side length and at least 3 sides, got %.4f and %d", sideLength, sides)
	}
	if err := ValidateSpan(angleSpan); err != nil {
		return 0, err
	}
	step := angleSpan / float64(sides)
	return sideLength / (2 * math.Sin(step/2)), nil
}

// PolygonApothem returns the distance from a polygon hub's center to the
// midpoint of a face, which is where arms attach.
func PolygonApothem(sideLength float64, sides int, angleSpan float64) (float64, error) {
	circum, err := PolygonCircumradius(sideLength, sides, angleSpan)
	if err != nil {
		return 0, err
	}
	step := angleSpan / float64(sides)
	return circum * math.Cos(step/2), nil
}

// ArmAngles returns the outward axis angle of each arm. Arms are spread
// evenly over angleSpan starting at reference angle zero, each axis
// bisecting its slice: angle_i = (i + 0.5) × span/N.
func ArmAngles(armCount int, angleSpan float64) ([]float64, error) {
	if armCount < 1 {
		return nil, errors.New(errors.ErrCodeInvalidHub, "arm count %d must be at least 1", armCount)
	}
	if err := ValidateSpan(angleSpan); err != nil {
		return nil, err
	}
	slice := angleSpan / float64(armCount)
	angles := make([]float64, armCount)
	for i := range angles {
		angles[i] = (float64(i) + 0.5) * slice
	}
	return angles, nil
}

// Placement locates one arm relative to the hub center.
type Placement struct {
	Angle    float64 // outward axis, radians
	Distance float64 // hub center to attachment point
	X, Y     float64 // attachment point coordinates
}

// CircularPlacements computes per-arm placements on a circular hub. Each
// arm's attachment offset depends on its own width.
func CircularPlacements(radius float64, armWidths []float64, angleSpan float64) ([]Placement, error) {
	angles, err := ArmAngles(len(armWidths), angleSpan)
	if err != nil {
		return nil, err
	}
	placements := make([]Placement, len(armWidths))
	for i, width := range armWidths {
		offset, err := CircularAttachOffset(radius, width)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "arm %d", i)
		}
		placements[i] = at(angles[i], offset)
	}
	return placements, nil
}

// PolygonPlacements computes per-arm placements on a polygon hub. Every
// arm attaches at the apothem distance, at the midpoint of its face.
func PolygonPlacements(sideLength float64, sides, armCount int, angleSpan float64) ([]Placement, error) {
	apothem, err := PolygonApothem(sideLength, sides, angleSpan)
	if err != nil {
		return nil, err
	}
	angles, err := ArmAngles(armCount, angleSpan)
	if err != nil {
		return nil, err
	}
	placements := make([]Placement, armCount)
	for i := range placements {
		placements[i] = at(angles[i], apothem)
	}
	return placements, nil
}

func at(angle, distance float64) Placement {
	return Placement{
		Angle:    angle,
		Distance: distance,
		X:        distance * math.Cos(angle),
		Y:        distance * math.Sin(angle),
	}
}

func validateArms(maxArmWidth float64, armCount int) error {
	if armCount < 1 {
		return errors.New(errors.ErrCodeInvalidHub, "arm count %d must be at least 1", armCount)
	}
	if maxArmWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidHub, "arm width %.4f must be positive", maxArmWidth)
	}
	return nil
}
