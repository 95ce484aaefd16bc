package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Station labels round trip through the name map
		for _, st := range Stations {
			assert.Equal(t, st, NewStation(st.String()))
		}
		assert.Equal(t, ST_5s, NewStation(" Supply"))
		assert.Equal(t, ST_None, NewStation("8"))
		assert.Equal(t, "none", ST_None.String())
		assert.Equal(t, "unknown", Station(99).String())
	}
	{
		assert.Equal(t, "reflected shock", ST_5.Stage())
		assert.Equal(t, "input", ST_None.Stage())
		assert.Len(t, Stations, 6)
	}
	{
		assert.Equal(t, "rho", Density.String())
		assert.Equal(t, "kg/(m^2 s)", MassFlux.Units())
		assert.Equal(t, "Vr", ReflectedSpeed.String())
	}
}

func TestQuantities(t *testing.T) {
	for name, q := range QuantityNameMap {
		assert.Equal(t, name, q.String())
	}
	q, ok := NewQuantity(" H5s-H1")
	assert.True(t, ok)
	assert.Equal(t, EnthalpyRise, q)
	_, ok = NewQuantity("V2")
	assert.False(t, ok)
	assert.Equal(t, "U2", ShockVelocity.String())
	assert.Equal(t, "unknown", Quantity(99).String())
	assert.Equal(t, "", Quantity(99).Units())
}
