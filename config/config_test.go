package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsBadDecays(t *testing.T) {
	o := Default()
	o.VarDecay = 0
	require.Error(t, o.Validate())

	o = Default()
	o.ClaDecay = 1
	require.Error(t, o.Validate())
}

func TestValidateRejectsBadRandomFreq(t *testing.T) {
	o := Default()
	o.RandomVarFreq = 1.5
	require.Error(t, o.Validate())
}

func TestValidateRejectsBadCCMinMode(t *testing.T) {
	o := Default()
	o.CCMinMode = 3
	require.Error(t, o.Validate())
}

func TestValidateRejectsBadPhaseSaving(t *testing.T) {
	o := Default()
	o.PhaseSaving = -1
	require.Error(t, o.Validate())
}

func TestValidateRejectsBadRestartParams(t *testing.T) {
	o := Default()
	o.RestartFirst = 0
	require.Error(t, o.Validate())

	o = Default()
	o.RestartInc = 1
	require.Error(t, o.Validate())
}

func TestValidateRejectsBadGCFrac(t *testing.T) {
	o := Default()
	o.GCFrac = 0
	require.Error(t, o.Validate())
}

func TestValidateRejectsNegativeMinLearnts(t *testing.T) {
	o := Default()
	o.MinLearnts = -1
	require.Error(t, o.Validate())
}
