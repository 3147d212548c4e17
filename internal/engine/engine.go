package engine

import (
	"log/slog"

	"github.com/netfab/ctrlgraph/internal/ir"
)

// lifecyclePhase tracks the engine's Uninitialized -> Initialized ->
// Cleaned progression.
type lifecyclePhase int

const (
	lifecycleUninitialized lifecyclePhase = iota
	lifecycleInitialized
	lifecycleCleaned
)

// Engine owns the node DAG, drives per-iteration scheduling, and
// exposes the public inspection API.
//
// Thread-safety model: AddNode/AddInput are only accepted before Init.
// Run itself, and all node callbacks it invokes, execute on
// the calling goroutine; the engine performs no internal concurrency.
type Engine struct {
	nodes    map[string]*Node
	order    []string // insertion order, for deterministic iteration over nodes map
	dag      *dagValidator
	frozen   bool
	topoRoot []string // cached topological order once frozen

	phase lifecyclePhase
	log   *slog.Logger

	ctx *Context

	forceRecompute bool
	immediateWake  bool
	hasRun         bool
	hasUpdated     bool
	canceled       bool

	iterClock *IterationClock
	idGen     IterationIDGenerator
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithLogger overrides the engine's structured logger. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = logger
	}
}

// WithIterationIDGenerator overrides the generator used to stamp log
// lines with a per-iteration correlation ID. Defaults to UUIDv7Generator.
func WithIterationIDGenerator(gen IterationIDGenerator) EngineOption {
	return func(e *Engine) {
		e.idGen = gen
	}
}

// New creates an empty Engine ready for AddNode/AddInput calls.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		nodes:     make(map[string]*Node),
		dag:       newDAGValidator(),
		log:       slog.Default(),
		iterClock: NewIterationClock(),
		idGen:     UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddNode registers a new node with the given name and lifecycle
// callbacks. runFn is required; the others may be nil.
//
// Returns a *ConstructionError if name is already registered or the DAG
// has been frozen by a prior Init call.
func (e *Engine) AddNode(name string, runFn RunFunc, opts ...NodeOption) (*Node, error) {
	if e.frozen {
		return nil, newFrozenError(name)
	}
	if _, exists := e.nodes[name]; exists {
		return nil, newDuplicateNodeError(name)
	}

	n := &Node{
		name:  name,
		state: ir.Stale,
		runFn: runFn,
	}
	for _, opt := range opts {
		opt(n)
	}

	e.nodes[name] = n
	e.order = append(e.order, name)
	e.dag.adjacency[name] = nil
	return n, nil
}

// NodeOption configures optional lifecycle hooks on a node at creation time.
type NodeOption func(*Node)

// WithInit attaches the node's Init callback.
func WithInit(fn InitFunc) NodeOption {
	return func(n *Node) { n.initFn = fn }
}

// WithCleanup attaches the node's Cleanup callback.
func WithCleanup(fn CleanupFunc) NodeOption {
	return func(n *Node) { n.cleanupFn = fn }
}

// WithIsValid attaches the node's validity predicate.
func WithIsValid(fn IsValidFunc) NodeOption {
	return func(n *Node) { n.isValidFn = fn }
}

// WithClearTrackedData attaches the node's tracked-data cleaner,
// invoked at the start of every iteration.
func WithClearTrackedData(fn ClearTrackedDataFunc) NodeOption {
	return func(n *Node) { n.clearTrackedDataFn = fn }
}

// AddInput attaches inputNode as an input of node, with an optional
// change handler dispatched when inputNode ends an iteration Updated.
// handler may be nil, meaning any Updated state on this input always
// forces a full recompute of node.
//
// Returns a *ConstructionError if:
//   - node already has MaxInputsPerNode inputs
//   - inputNode is already an input of node
//   - the edge would create a cycle
//   - the DAG has been frozen by a prior Init call
func (e *Engine) AddInput(node, inputNode *Node, handler ChangeHandler) error {
	return e.addInput(node, inputNode, handler, nil)
}

// AddInputWithFailureInfo is AddInput plus a diagnostic callback fired
// whenever the handler returns Unhandled for this input.
func (e *Engine) AddInputWithFailureInfo(node, inputNode *Node, handler ChangeHandler, onFailure ComputeFailureInfoFunc) error {
	return e.addInput(node, inputNode, handler, onFailure)
}

func (e *Engine) addInput(node, inputNode *Node, handler ChangeHandler, onFailure ComputeFailureInfoFunc) error {
	if e.frozen {
		return newFrozenError(node.name)
	}
	if len(node.inputs) >= ir.MaxInputsPerNode {
		return newLimitError(node.name, ir.MaxInputsPerNode)
	}
	if inputNode == nil || e.nodes[inputNode.name] != inputNode {
		name := ""
		if inputNode != nil {
			name = inputNode.name
		}
		return newUnknownInputError(node.name, name)
	}
	if node.hasInput(inputNode.name) {
		return newDuplicateInputError(node.name, inputNode.name)
	}
	if e.dag.wouldCycle(node.name, inputNode.name) {
		return newCycleError(node.name, inputNode.name)
	}

	e.dag.addEdge(node.name, inputNode.name)
	node.inputs = append(node.inputs, input{
		node:                  inputNode,
		handler:               handler,
		getComputeFailureInfo: onFailure,
	})
	return nil
}

// Node looks up a registered node by name.
func (e *Engine) Node(name string) *Node {
	return e.nodes[name]
}

// Context holds the process-wide, per-iteration snapshot the driver
// exposes to node callbacks. Handlers must treat a nil field as "must
// not proceed" and return Unhandled rather than dereference it.
type Context struct {
	// Transactions holds opaque external-database transaction handles,
	// keyed by the caller's own naming convention. May be nil or empty
	// in an iteration where recompute is not allowed.
	Transactions map[string]any

	// Client is an opaque client-defined pointer threaded through to
	// every node callback for the current iteration.
	Client any
}

// SetContext stores the context used for the next Run call.
func (e *Engine) SetContext(ctx *Context) {
	e.ctx = ctx
}

// Context returns the context set by the most recent SetContext call,
// or nil if none was set.
func (e *Engine) Context() *Context {
	return e.ctx
}
