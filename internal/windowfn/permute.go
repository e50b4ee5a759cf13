package windowfn

import (
	"fmt"

	"github.com/roach88/wintvf/internal/sqlnode"
)

// Permute rewrites a named-argument call ("SIZE => INTERVAL '1' HOUR") into
// the positional form fn expects. Omitted optional parameters are dropped
// from the result. Positional calls are returned unchanged.
//
// The input call is not modified.
func Permute(fn Function, call *sqlnode.Call) (*sqlnode.Call, error) {
	if !call.IsNamed() {
		return call, nil
	}
	if len(call.ArgNames) != len(call.Operands) {
		return nil, &ArgumentError{
			Function: fn.Name(),
			Pos:      call.Pos,
			Message:  "cannot mix named and positional arguments",
		}
	}

	params := fn.Params()
	byParam := make(map[Param]sqlnode.Node, len(call.Operands))
	for i, name := range call.ArgNames {
		operand := call.Operands[i]
		if name == "" {
			return nil, &ArgumentError{
				Function: fn.Name(),
				Pos:      operand.Position(),
				Message:  "cannot mix named and positional arguments",
			}
		}
		p, err := ParseParam(name)
		if err != nil || !hasParam(params, p) {
			return nil, &ArgumentError{
				Function: fn.Name(),
				Name:     name,
				Pos:      operand.Position(),
				Message:  fmt.Sprintf("unknown parameter '%s'", name),
			}
		}
		if _, dup := byParam[p]; dup {
			return nil, &ArgumentError{
				Function: fn.Name(),
				Name:     name,
				Pos:      operand.Position(),
				Message:  fmt.Sprintf("parameter '%s' given more than once", p),
			}
		}
		byParam[p] = operand
	}

	operands := make([]sqlnode.Node, 0, len(params))
	for _, p := range params {
		operand, ok := byParam[p]
		if !ok {
			if isOptional(fn, p) {
				continue
			}
			return nil, &ArgumentError{
				Function: fn.Name(),
				Name:     string(p),
				Pos:      call.Pos,
				Message:  fmt.Sprintf("missing required parameter '%s'", p),
			}
		}
		operands = append(operands, operand)
	}

	return &sqlnode.Call{Name: call.Name, Operands: operands, Pos: call.Pos}, nil
}

// isOptional reports whether p may be omitted from a call to fn.
func isOptional(fn Function, p Param) bool {
	switch fn.Kind() {
	case KindTumble, KindHop:
		return p == ParamOffset
	case KindSession:
		return p == ParamKey
	}
	return false
}

func hasParam(params []Param, p Param) bool {
	for _, q := range params {
		if q == p {
			return true
		}
	}
	return false
}
