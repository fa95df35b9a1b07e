// Package geometry holds the immutable value types used to describe field
// geometry: planar points and poses, and the 3D poses of fiducial markers.
//
// All lengths are meters and all angles radians. Values are plain structs so
// they can be copied freely and shared between goroutines without locking.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point2D is a position on the field plane.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D { return Point2D{X: x, Y: y} }

// Vec returns p as a gonum vector.
func (p Point2D) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// FromVec converts a gonum vector to a Point2D.
func FromVec(v r2.Vec) Point2D { return Point2D{X: v.X, Y: v.Y} }

// Add returns p+q.
func (p Point2D) Add(q Point2D) Point2D { return FromVec(r2.Add(p.Vec(), q.Vec())) }

// Sub returns p-q.
func (p Point2D) Sub(q Point2D) Point2D { return FromVec(r2.Sub(p.Vec(), q.Vec())) }

// Scale returns p scaled by f.
func (p Point2D) Scale(f float64) Point2D { return FromVec(r2.Scale(f, p.Vec())) }

// ApproxEqual reports whether p and q are within tol of each other on both axes.
func (p Point2D) ApproxEqual(q Point2D, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

func (p Point2D) String() string { return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y) }

// Point3D is a position in field space; Z is height above the carpet.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ToPoint2D drops the height.
func (p Point3D) ToPoint2D() Point2D { return Point2D{X: p.X, Y: p.Y} }

// Rotation3D is an extrinsic roll/pitch/yaw rotation in radians.
type Rotation3D struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Rotate applies the rotation to v: roll about X, then pitch about Y, then
// yaw about Z.
func (r Rotation3D) Rotate(v r3.Vec) r3.Vec {
	v = r3.NewRotation(r.Roll, r3.Vec{X: 1}).Rotate(v)
	v = r3.NewRotation(r.Pitch, r3.Vec{Y: 1}).Rotate(v)
	return r3.NewRotation(r.Yaw, r3.Vec{Z: 1}).Rotate(v)
}

// Pose2D is a planar position with a heading.
type Pose2D struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// Translation returns the position part of the pose.
func (p Pose2D) Translation() Point2D { return Point2D{X: p.X, Y: p.Y} }

func (p Pose2D) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4frad)", p.X, p.Y, p.Heading)
}

// Pose3D is a position and orientation in field space.
type Pose3D struct {
	Translation Point3D    `json:"translation"`
	Rotation    Rotation3D `json:"rotation"`
}

// Facing returns the unit vector the pose's forward (+X) axis points along.
func (p Pose3D) Facing() r3.Vec {
	return p.Rotation.Rotate(r3.Vec{X: 1})
}
