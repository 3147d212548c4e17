package config

import (
	"fmt"

	"github.com/netfab/ctrlgraph/internal/engine"
)

// NodeImpl bundles the concrete callbacks a NodeFactory produces for
// one node kind.
type NodeImpl struct {
	Run              engine.RunFunc
	Init             engine.InitFunc
	Cleanup          engine.CleanupFunc
	IsValid          engine.IsValidFunc
	ClearTrackedData engine.ClearTrackedDataFunc
}

// NodeFactory produces a NodeImpl for a node declared under a
// registered kind name.
type NodeFactory func(spec NodeSpec) (*NodeImpl, error)

// HandlerFactory produces a change handler for an input declared under
// a registered handler kind name.
type HandlerFactory func(spec InputSpec) (engine.ChangeHandler, error)

// Builder resolves a Topology's kind and handler names against
// registered factories and compiles the result into a live
// *engine.Engine via the engine's ordinary AddNode/AddInput calls.
// It is a convenience layer, not a bypass of DAG validation: every
// registration still goes through the engine's own checks.
type Builder struct {
	nodeFactories    map[string]NodeFactory
	handlerFactories map[string]HandlerFactory
}

// NewBuilder creates an empty registry.
func NewBuilder() *Builder {
	return &Builder{
		nodeFactories:    make(map[string]NodeFactory),
		handlerFactories: make(map[string]HandlerFactory),
	}
}

// RegisterNodeKind associates a node kind name with the factory used to
// produce its callbacks.
func (b *Builder) RegisterNodeKind(kind string, factory NodeFactory) {
	b.nodeFactories[kind] = factory
}

// RegisterHandlerKind associates a handler kind name with the factory
// used to produce a change handler.
func (b *Builder) RegisterHandlerKind(kind string, factory HandlerFactory) {
	b.handlerFactories[kind] = factory
}

// Compile builds an *engine.Engine from topo, resolving every node's
// kind and every input's handler kind against the registry.
//
// Unknown kinds are reported as ValidationErrors rather than left to
// panic later; nodes are added in declaration order so that a
// topology's ordering is preserved as input-declaration order in the
// engine (significant per the dispatch protocol).
func (b *Builder) Compile(topo *Topology, opts ...engine.EngineOption) (*engine.Engine, error) {
	var errs ValidationErrors

	e := engine.New(opts...)
	nodes := make(map[string]*engine.Node, len(topo.Nodes))

	for _, spec := range topo.Nodes {
		factory, ok := b.nodeFactories[spec.Kind]
		if !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("nodes[%s].kind", spec.Name),
				Message: fmt.Sprintf("no node factory registered for kind %q", spec.Kind),
				Code:    ErrUnknownKind,
			})
			continue
		}

		impl, err := factory(spec)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("nodes[%s]", spec.Name),
				Message: err.Error(),
				Code:    ErrUnknownKind,
			})
			continue
		}

		nodeOpts := []engine.NodeOption{}
		if impl.Init != nil {
			nodeOpts = append(nodeOpts, engine.WithInit(impl.Init))
		}
		if impl.Cleanup != nil {
			nodeOpts = append(nodeOpts, engine.WithCleanup(impl.Cleanup))
		}
		if impl.IsValid != nil {
			nodeOpts = append(nodeOpts, engine.WithIsValid(impl.IsValid))
		}
		if impl.ClearTrackedData != nil {
			nodeOpts = append(nodeOpts, engine.WithClearTrackedData(impl.ClearTrackedData))
		}

		n, err := e.AddNode(spec.Name, impl.Run, nodeOpts...)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("nodes[%s]", spec.Name),
				Message: err.Error(),
				Code:    ErrDuplicateNodeName,
			})
			continue
		}
		nodes[spec.Name] = n
	}

	if len(errs) > 0 {
		return nil, errs
	}

	for _, spec := range topo.Nodes {
		node := nodes[spec.Name]
		for _, in := range spec.Inputs {
			inputNode, ok := nodes[in.Node]
			if !ok {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("nodes[%s].inputs[%s]", spec.Name, in.Node),
					Message: "input references an undeclared node",
					Code:    ErrUnknownInputNode,
				})
				continue
			}

			var handler engine.ChangeHandler
			if in.Handler != "" {
				hf, ok := b.handlerFactories[in.Handler]
				if !ok {
					errs = append(errs, ValidationError{
						Field:   fmt.Sprintf("nodes[%s].inputs[%s].handler", spec.Name, in.Node),
						Message: fmt.Sprintf("no handler factory registered for kind %q", in.Handler),
						Code:    ErrUnknownHandler,
					})
					continue
				}
				h, err := hf(in)
				if err != nil {
					errs = append(errs, ValidationError{
						Field:   fmt.Sprintf("nodes[%s].inputs[%s].handler", spec.Name, in.Node),
						Message: err.Error(),
						Code:    ErrUnknownHandler,
					})
					continue
				}
				handler = h
			}

			if err := e.AddInput(node, inputNode, handler); err != nil {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("nodes[%s].inputs[%s]", spec.Name, in.Node),
					Message: err.Error(),
					Code:    ErrDuplicateNodeName,
				})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return e, nil
}
