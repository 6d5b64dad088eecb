// Package pwmmap converts logical joint angles into raw PWM duty cycles
// using direction-dependent piecewise-linear calibration tables, and maps
// pen state to its two fixed duty values. All arithmetic stays in
// fixedmath.Fixed; no floating point runs on the controller.
package pwmmap

import (
	"github.com/jneem/brachiograph/internal/fixedmath"
	"github.com/jneem/brachiograph/internal/model"
	"github.com/jneem/brachiograph/internal/plotterr"
)

// Entry is one (degrees, duty_us) calibration point.
type Entry struct {
	Degrees int16
	DutyUs  uint16
}

// CalibrationTable holds a joint's inc and dec tables: ordered lists of
// (degrees, duty_us), sorted by degrees ascending, length <= 16.
type CalibrationTable struct {
	Inc []Entry
	Dec []Entry
}

// Duty maps a commanded angle to a raw duty, selecting the inc table when
// the new angle is strictly greater than the last commanded angle, the dec
// table otherwise (spec.md §4.3). It is total: out-of-table angles clamp
// to the first/last entry's duty.
func (t CalibrationTable) Duty(lastAngle, angle fixedmath.Angle) (uint16, error) {
	table := t.Dec
	if angle.Deg > lastAngle.Deg {
		table = t.Inc
	}
	return lookup(table, angle.Deg)
}

// Table selects the inc or dec table directly, for calibration tooling
// that wants to inspect a table by direction rather than by comparing two
// angles.
func (t CalibrationTable) Table(dir model.Direction) []Entry {
	if dir == model.Increasing {
		return t.Inc
	}
	return t.Dec
}

func lookup(table []Entry, deg fixedmath.Fixed) (uint16, error) {
	if len(table) == 0 {
		return 0, plotterr.New(plotterr.InputRange, "empty calibration table")
	}

	first := fixedmath.FromInt(int32(table[0].Degrees))
	if deg <= first {
		return table[0].DutyUs, nil
	}
	last := fixedmath.FromInt(int32(table[len(table)-1].Degrees))
	if deg >= last {
		return table[len(table)-1].DutyUs, nil
	}

	for i := 0; i < len(table)-1; i++ {
		lo := fixedmath.FromInt(int32(table[i].Degrees))
		hi := fixedmath.FromInt(int32(table[i+1].Degrees))
		if deg >= lo && deg <= hi {
			return lerpDuty(table[i], table[i+1], lo, hi, deg), nil
		}
	}
	return 0, plotterr.New(plotterr.Numeric, "calibration table not sorted by degrees")
}

func lerpDuty(lo, hi Entry, loDeg, hiDeg, deg fixedmath.Fixed) uint16 {
	span := hiDeg.Sub(loDeg)
	if span == 0 {
		return lo.DutyUs
	}
	ratio := deg.Sub(loDeg).Div(span)
	loDuty := fixedmath.FromInt(int32(lo.DutyUs))
	hiDuty := fixedmath.FromInt(int32(hi.DutyUs))
	duty := loDuty.Add(hiDuty.Sub(loDuty).Mul(ratio))
	return uint16(duty.Int())
}

// PenTable is the pen servo's two-state table.
type PenTable struct {
	UpUs   uint16
	DownUs uint16
}

func (t PenTable) Duty(pen model.PenState) uint16 {
	if pen == model.PenDown {
		return t.DownUs
	}
	return t.UpUs
}

// Tables bundles the four joint calibration tables plus the pen table, the
// unit the Controller holds and Op.Calibrate atomically replaces one
// quarter of.
type Tables struct {
	Shoulder CalibrationTable
	Elbow    CalibrationTable
	Pen      PenTable
}

// Calibrate atomically replaces one of the four (joint, direction) tables.
func (t *Tables) Calibrate(joint model.Joint, dir model.Direction, table []Entry) {
	switch joint {
	case model.Shoulder:
		if dir == model.Increasing {
			t.Shoulder.Inc = table
		} else {
			t.Shoulder.Dec = table
		}
	case model.Elbow:
		if dir == model.Increasing {
			t.Elbow.Inc = table
		} else {
			t.Elbow.Dec = table
		}
	}
}
