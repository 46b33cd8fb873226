package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"terrafields/internal/core"
)

const defaultFloatStep = 0.05

// stepValue moves current one step in direction and clamps the result to the
// control bounds. It reports false when the value would not change.
func stepValue(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	var target float64
	switch ctrl.Type {
	case core.ParamTypeInt:
		step := math.Round(ctrl.Step)
		if step <= 0 {
			step = 1
		}
		target = math.Round(ctrl.Clamp(current + float64(direction)*step))
	case core.ParamTypeFloat:
		step := ctrl.Step
		if step <= 0 {
			step = defaultFloatStep
		}
		target = ctrl.Clamp(current + float64(direction)*step)
	default:
		return current, false
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

// parseValue reads a snapshot value for ctrl.
func parseValue(ctrl core.ParameterControl, raw string) (float64, bool) {
	switch ctrl.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(raw)
		return float64(v), err == nil
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(raw, 64)
		return v, err == nil
	}
	return 0, false
}

// formatValue renders v with a precision derived from the control step.
func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// statusLines renders the "Status" group of snap as "Label: value" rows.
func statusLines(snap core.ParameterSnapshot) []string {
	var lines []string
	for _, g := range snap.Groups {
		if g.Name != "Status" {
			continue
		}
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
		}
	}
	return lines
}

func buildTitle(name string) string {
	if name == "" {
		return "Controls"
	}
	return strings.ToUpper(name[:1]) + name[1:] + " controls"
}
