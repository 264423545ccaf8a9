package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Complex is the scalar type of every amplitude and matrix element.
type Complex complex128

// Common constants.
const (
	Zero Complex = 0
	One  Complex = 1
	I    Complex = 1i
)

// C builds a Complex from its real and imaginary parts.
func C(re, im float64) Complex {
	return Complex(complex(re, im))
}

func (z Complex) Real() float64 { return real(z) }
func (z Complex) Imag() float64 { return imag(z) }

// Add returns z+w.
func (z Complex) Add(w Complex) Complex { return z + w }

// Sub returns z-w.
func (z Complex) Sub(w Complex) Complex { return z - w }

// Mul returns the complex product z·w.
func (z Complex) Mul(w Complex) Complex { return z * w }

// Div returns z/w, or ErrDivisionByZero when |w|² is exactly zero.
func (z Complex) Div(w Complex) (Complex, error) {
	denom := w.Abs2()
	if denom == 0 {
		return Zero, fmt.Errorf("Complex.Div(%v, %v): %w", z, w, ErrDivisionByZero)
	}
	re := (real(z)*real(w) + imag(z)*imag(w)) / denom
	im := (imag(z)*real(w) - real(z)*imag(w)) / denom
	return C(re, im), nil
}

// Scale multiplies z by a real factor.
func (z Complex) Scale(f float64) Complex {
	return C(real(z)*f, imag(z)*f)
}

// Abs returns the magnitude sqrt(re²+im²).
func (z Complex) Abs() float64 {
	return cmplx.Abs(complex128(z))
}

// Abs2 returns re²+im², the measurement weight of an amplitude.
func (z Complex) Abs2() float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// Conj returns the complex conjugate re - im·i.
func (z Complex) Conj() Complex {
	return Complex(cmplx.Conj(complex128(z)))
}

// ApproxEqual reports whether z and w differ by at most tol in both parts.
func (z Complex) ApproxEqual(w Complex, tol float64) bool {
	return math.Abs(real(z)-real(w)) <= tol && math.Abs(imag(z)-imag(w)) <= tol
}

// String renders z as "a", "bi" or "a ± bi".
func (z Complex) String() string {
	re, im := real(z), imag(z)
	switch {
	case im == 0:
		return fmt.Sprintf("%.4g", re)
	case re == 0:
		return fmt.Sprintf("%.4gi", im)
	case im < 0:
		return fmt.Sprintf("%.4g - %.4gi", re, -im)
	default:
		return fmt.Sprintf("%.4g + %.4gi", re, im)
	}
}
