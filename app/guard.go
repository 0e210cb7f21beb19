package app

import (
	"sync/atomic"

	"github.com/ClipFinance/xchain-mint/common/types"
)

// guard lets one run of an action through at a time.
type guard struct {
	state atomic.Int32
}

func (g *guard) acquire() bool {
	return g.state.CompareAndSwap(int32(types.ActionIdle), int32(types.ActionInFlight))
}

func (g *guard) release() {
	g.state.Store(int32(types.ActionIdle))
}

func (g *guard) State() types.ActionState {
	return types.ActionState(g.state.Load())
}
