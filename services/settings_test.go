package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWeightsAcceptsExactHundred(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.SaveWeights(Weights{Devoirs: 30, Examens: 70}))
	assert.Equal(t, 30, s.Weights.Devoirs)
	assert.Equal(t, 70, s.Weights.Examens)
}

func TestSaveWeightsRejectsBadSumAndKeepsOld(t *testing.T) {
	s := DefaultSettings()

	err := s.SaveWeights(Weights{Devoirs: 40, Examens: 50})

	var werr *WeightError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, 90, werr.Total)
	assert.Contains(t, err.Error(), "90%")

	assert.Equal(t, 40, s.Weights.Devoirs, "an invalid save must leave the weights untouched")
	assert.Equal(t, 60, s.Weights.Examens)
}

func TestSetScaleIgnoresUnknownValues(t *testing.T) {
	s := DefaultSettings()

	s.SetScale(Scale100)
	assert.Equal(t, Scale100, s.Scale)

	s.SetScale(GradeScale("binaire"))
	assert.Equal(t, Scale100, s.Scale)
}

func TestSaveProfileReplacesWholeProfile(t *testing.T) {
	s := DefaultSettings()
	p := Profile{Name: "Jean Petit", Email: "jean.petit@exemple.fr"}

	s.SaveProfile(p)
	assert.Equal(t, p, s.Profile)
}
