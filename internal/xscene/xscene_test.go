package xscene

import (
	"math/bits"
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAttributes(t *testing.T) {
	mask, values := groupAttributes()

	// One value per mask bit, in ascending bit order.
	require.Equal(t, bits.OnesCount16(mask), len(values))

	// Reparented clients deliver UnmapNotify/DestroyNotify to their
	// container, so the container must subscribe to substructure events.
	require.NotZero(t, mask&xproto.CwEventMask)
	eventMask := values[len(values)-1]
	assert.NotZero(t, eventMask&xproto.EventMaskSubstructureNotify)
}
