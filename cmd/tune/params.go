package main

import (
	"github.com/pthm-cable/kudo/config"
	"github.com/pthm-cable/kudo/geom"
)

// knob is one tuned config value and the box the search keeps it in.
type knob struct {
	name   string
	lo, hi float64
	field  func(*config.Config) *float64
}

func (k knob) span() float64 { return k.hi - k.lo }

// ParamVector maps optimizer coordinates in [0, 1] onto config values.
type ParamVector struct {
	knobs []knob
}

// NewParamVector returns the jump-feel knobs: gravity then jump factor.
func NewParamVector() *ParamVector {
	return &ParamVector{knobs: []knob{
		{name: "gravity", lo: 0.05, hi: 3, field: func(c *config.Config) *float64 { return &c.Physics.Gravity }},
		{name: "jump_factor", lo: 0.5, hi: 6, field: func(c *config.Config) *float64 { return &c.Player.JumpFactor }},
	}}
}

// Dim is the search dimension.
func (pv *ParamVector) Dim() int { return len(pv.knobs) }

// Names lists knob names in coordinate order.
func (pv *ParamVector) Names() []string {
	names := make([]string, len(pv.knobs))
	for i, k := range pv.knobs {
		names[i] = k.name
	}
	return names
}

// each builds a new vector by applying fn to every knob and coordinate.
func (pv *ParamVector) each(v []float64, fn func(k knob, x float64) float64) []float64 {
	out := make([]float64, len(pv.knobs))
	for i, k := range pv.knobs {
		out[i] = fn(k, v[i])
	}
	return out
}

// Normalize maps raw values into [0, 1] coordinates.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(raw, func(k knob, x float64) float64 { return (x - k.lo) / k.span() })
}

// Denormalize maps coordinates back to raw values.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(unit, func(k knob, u float64) float64 { return k.lo + u*k.span() })
}

// Clamp keeps raw values inside each knob's bounds. NelderMead is
// unconstrained, so every candidate passes through here.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	return pv.each(raw, func(k knob, x float64) float64 { return geom.Clamp(x, k.lo, k.hi) })
}

// ApplyToConfig writes clamped raw values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	for i, x := range pv.Clamp(raw) {
		*pv.knobs[i].field(cfg) = x
	}
}

// ExtractFromConfig reads the raw values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	raw := make([]float64, len(pv.knobs))
	for i, k := range pv.knobs {
		raw[i] = *k.field(cfg)
	}
	return raw
}
