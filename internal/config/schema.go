package config

// topologySchema is the embedded CUE schema a decoded topology document
// is validated against before being compiled into a live engine. It
// constrains node/kind naming and bounds the input list length to the
// engine's own MaxInputsPerNode limit.
const topologySchema = `
import "list"

#input: {
	node:     string
	handler?: string
}

#node: {
	name:      string & =~"^[a-zA-Z_][a-zA-Z0-9_-]*$"
	kind:      string & !=""
	is_valid?: bool
	tracked?:  bool
	params?:   {[string]: string}
	inputs?:   list.MaxItems(256) & [...#input]
}

nodes: [...#node]
`
