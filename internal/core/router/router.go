package router

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/vtoken-labs/vtoken/internal/core/distribution"
	"github.com/vtoken-labs/vtoken/internal/core/mintauthority"
	"github.com/vtoken-labs/vtoken/internal/core/pda"
	"github.com/vtoken-labs/vtoken/internal/core/rate"
	"github.com/vtoken-labs/vtoken/internal/core/receipt"
	"github.com/vtoken-labs/vtoken/internal/core/splitconvert"
	"github.com/vtoken-labs/vtoken/internal/core/tokenops"
	"github.com/vtoken-labs/vtoken/internal/core/verification"
)

// ErrUnknownOp reports an Op byte with no registered handler.
var ErrUnknownOp = errors.New("router: unknown operation")

type handler func(ctx context.Context, req Request) (Result, error)

// Router wires every component (C1-C9) to the single Op-dispatch
// entrypoint a caller submits a decoded instruction through. Handlers are
// registered once at construction, mirroring the teacher's tx.Register
// factory table keyed by transaction Type rather than a hand-rolled
// switch statement.
type Router struct {
	Program       pda.Program
	MintAuthority *mintauthority.Store
	Verification  *verification.Store
	Dispatcher    *verification.Dispatcher
	Rates         *rate.Store
	Receipts      *receipt.Store
	SplitConvert  *splitconvert.Engine
	Distribution  *distribution.Engine
	TokenOps      *tokenops.Engine

	mu       sync.RWMutex
	handlers map[Op]handler
}

// New builds a Router with every operation registered against the
// supplied collaborators. All fields must be non-nil; New does not lazily
// build them (unlike the teacher's di.Container builders) because a
// program instance always needs every component wired before it can
// route a single instruction.
func New(program pda.Program, mintAuthority *mintauthority.Store, verificationStore *verification.Store, dispatcher *verification.Dispatcher, rates *rate.Store, receipts *receipt.Store, splitConvert *splitconvert.Engine, distributionEngine *distribution.Engine, tokenOps *tokenops.Engine) *Router {
	r := &Router{
		Program:       program,
		MintAuthority: mintAuthority,
		Verification:  verificationStore,
		Dispatcher:    dispatcher,
		Rates:         rates,
		Receipts:      receipts,
		SplitConvert:  splitConvert,
		Distribution:  distributionEngine,
		TokenOps:      tokenOps,
		handlers:      make(map[Op]handler),
	}
	r.registerVerificationOps()
	r.registerTokenOps()
	r.registerRateOps()
	r.registerSplitConvertOps()
	r.registerDistributionOps()
	r.registerReceiptOps()
	return r
}

func (r *Router) register(op Op, h handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[op]; exists {
		panic(fmt.Sprintf("router: operation %d (%s) already registered", op, op))
	}
	r.handlers[op] = h
}

// Route decodes data's leading discriminator byte into an Op, checks the
// caller-supplied acctCtx against that op's fixed account shape, and
// executes the matching handler. Callers construct acctCtx ahead of time
// (which Signer is in slot #2, which remaining accounts to pass the
// dispatcher, the current transaction's prior instructions for
// introspection mode, ...); Route owns Op decode, shape validation, and
// dispatch, matching spec.md's framing of C10 as "discriminator decode,
// per-op account array shape" with the account *values* supplied by the
// runtime that embeds this program.
func (r *Router) Route(ctx context.Context, data []byte, acctCtx Request) (Result, error) {
	if len(data) < 1 {
		return Result{}, errEmptyInstruction
	}
	op := Op(data[0])
	acctCtx.Op = op
	acctCtx.Data = data[1:]

	r.mu.RLock()
	h, ok := r.handlers[op]
	r.mu.RUnlock()
	if !ok {
		return Result{}, errors.Wrapf(ErrUnknownOp, "op=%d", op)
	}
	if err := checkShape(acctCtx); err != nil {
		return Result{}, err
	}
	return h(ctx, acctCtx)
}

var errEmptyInstruction = errors.New("router: empty instruction data")
