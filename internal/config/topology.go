package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

// InputSpec is one declared input of a node in a topology descriptor.
type InputSpec struct {
	Node    string `yaml:"node"`
	Handler string `yaml:"handler,omitempty"`
}

// NodeSpec is one declared node in a topology descriptor.
type NodeSpec struct {
	Name    string            `yaml:"name"`
	Kind    string            `yaml:"kind"`
	IsValid bool              `yaml:"is_valid,omitempty"`
	Tracked bool              `yaml:"tracked,omitempty"`
	Params  map[string]string `yaml:"params,omitempty"`
	Inputs  []InputSpec       `yaml:"inputs,omitempty"`
}

// Topology is a declarative YAML description of a node DAG: node names,
// their kind (resolved against a Builder registry), and per-node
// inputs with an optional handler-kind tag.
type Topology struct {
	Nodes []NodeSpec `yaml:"nodes"`
}

// Load parses raw as a YAML topology document, validates it against the
// embedded CUE schema, and returns the decoded Topology.
//
// A schema violation is returned as a []ValidationError (via errors.As),
// mirroring the shape of engine construction errors: refuse the whole
// document rather than partially load it.
func Load(raw []byte) (*Topology, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse topology YAML: %w", err)
	}

	if errs := validateAgainstSchema(doc); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	var topo Topology
	if err := yaml.Unmarshal(raw, &topo); err != nil {
		return nil, fmt.Errorf("config: decode topology: %w", err)
	}

	if errs := validateSemantics(&topo); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &topo, nil
}

// validateAgainstSchema unifies doc with the embedded CUE schema and
// reports every violation found.
func validateAgainstSchema(doc map[string]any) []ValidationError {
	ctx := cuecontext.New()
	schema := ctx.CompileString(topologySchema)
	if err := schema.Err(); err != nil {
		return []ValidationError{{Field: "schema", Message: err.Error(), Code: ErrSchemaInvalid}}
	}

	data := ctx.Encode(doc)
	unified := schema.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueErrorsToValidationErrors(err)
	}
	return nil
}

func cueErrorsToValidationErrors(err error) []ValidationError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return []ValidationError{{Field: "topology", Message: err.Error(), Code: ErrSchemaViolation}}
	}

	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		field := "topology"
		if paths := e.Path(); len(paths) > 0 {
			field = paths[len(paths)-1]
		}
		out = append(out, ValidationError{
			Field:   field,
			Message: e.Error(),
			Code:    ErrSchemaViolation,
		})
	}
	return out
}

// validateSemantics checks properties the CUE schema cannot express
// concisely: duplicate node names and inputs referencing unknown nodes.
func validateSemantics(topo *Topology) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool, len(topo.Nodes))
	for _, n := range topo.Nodes {
		if seen[n.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("nodes[%s]", n.Name),
				Message: "duplicate node name",
				Code:    ErrDuplicateNodeName,
			})
		}
		seen[n.Name] = true
	}

	for _, n := range topo.Nodes {
		for _, in := range n.Inputs {
			if !seen[in.Node] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("nodes[%s].inputs[%s]", n.Name, in.Node),
					Message: "input references an undeclared node",
					Code:    ErrUnknownInputNode,
				})
			}
		}
	}

	return errs
}
