package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bvc/internal/solver"
)

func TestNewAdapterDefaults(t *testing.T) {
	a := solver.NewAdapter()
	assert.Equal(t, "z3", a.Path)
	assert.NotZero(t, a.Timeout)
}
