// Package fea computes the geometry of finite element structural parts
// (ribs, spars, slices, skins, domes, fix points and their arrays)
// attached to a parametric wing or body surface.
//
// Parts are owned by a Structure. Structure.Update resolves every part
// against its parent shape and leaves one computed surface per symmetry
// copy of the parent in each part's surface list.
package fea

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("fea")
}

const (
	pi = math.Pi
	// flteps is the single precision machine epsilon, used as the floor of numeric guards.
	flteps = 1.1920929e-07
	// sinTol is the smallest sine accepted as a divisor.
	sinTol = 1e-6
	// halfMeshTol is the y tolerance used to discard patches in half mesh mode.
	halfMeshTol = 1e-6
	// planarTol is the plane distance tolerance of BuildSuppressList.
	planarTol = 1e-6
	// MaxArrayMembers caps the member count of arrays.
	MaxArrayMembers = 100
)

var (
	ErrInvalidIndex = errors.New("invalid index")
	ErrUnknownKind  = errors.New("unknown part kind")
	ErrNoParent     = errors.New("parent not found")
	ErrNotArray     = errors.New("part is not an array")
)

// ErrMsg returns an error with a message function name and line number.
func ErrMsg(msg string) error {
	pc, _, line, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("?: %s", msg)
	}
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("%s line %d: %s", fn.Name(), line, msg)
}

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// Clamp x between a and b, assume a <= b
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Sign returns the sign of x
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
