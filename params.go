package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errBadParam = errors.New("invalid parameter")

// parseParamExpr evaluates a rotation angle. Accepted forms are plain floats
// and multiples or fractions of pi: "0.5", "pi", "-pi/2", "3*pi/4", "2pi".
func parseParamExpr(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errBadParam)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	sign := 1.0
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = -1, strings.TrimSpace(rest)
	}

	num, denom, hasDenom := strings.Cut(s, "/")
	coeffStr, ok := strings.CutSuffix(strings.TrimSpace(num), "pi")
	if !ok {
		return 0, fmt.Errorf("%w: %q", errBadParam, s)
	}
	coeffStr = strings.TrimSuffix(strings.TrimSpace(coeffStr), "*")

	coeff := 1.0
	if coeffStr = strings.TrimSpace(coeffStr); coeffStr != "" {
		c, err := strconv.ParseFloat(coeffStr, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: coefficient %q", errBadParam, coeffStr)
		}
		coeff = c
	}

	v := sign * coeff * math.Pi
	if hasDenom {
		d, err := strconv.ParseFloat(strings.TrimSpace(denom), 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("%w: denominator %q", errBadParam, denom)
		}
		v /= d
	}
	return v, nil
}

// parseParams splits a comma-separated parameter list.
func parseParams(input string) ([]float64, error) {
	var params []float64
	for part := range strings.SplitSeq(input, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := parseParamExpr(part)
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: no values", errBadParam)
	}
	return params, nil
}

// namedAngles are printed symbolically by formatParam.
var namedAngles = []struct {
	num, den int
}{
	{2, 1}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 6}, {1, 8},
	{3, 4}, {3, 2}, {2, 3},
}

// formatParam prints an angle, preferring pi notation for common fractions.
func formatParam(v float64) string {
	for _, a := range namedAngles {
		want := float64(a.num) * math.Pi / float64(a.den)
		var sign string
		switch {
		case math.Abs(v-want) < 1e-10:
		case math.Abs(v+want) < 1e-10:
			sign = "-"
		default:
			continue
		}
		s := "pi"
		if a.num != 1 {
			s = strconv.Itoa(a.num) + "*pi"
		}
		if a.den != 1 {
			s += "/" + strconv.Itoa(a.den)
		}
		return sign + s
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
