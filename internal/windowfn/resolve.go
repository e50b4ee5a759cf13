package windowfn

// Check validates a call against a single, already chosen function.
// A shape mismatch becomes a *SignatureError that names the offending
// parameter and lists the function's allowed forms.
func Check(fn Function, b *Binding) error {
	res, err := fn.CheckOperands(b)
	if err != nil {
		return err
	}
	if !res.OK() {
		return newSignatureError(fn, b, res)
	}
	return nil
}

// Resolve picks the first candidate that accepts the call.
//
// Candidates whose operand count range excludes the call are skipped
// without being checked. Shape mismatches silently move on to the next
// candidate; an unknown descriptor column stops resolution and is returned
// as is. If no candidate matches, Resolve returns a *NoMatchError.
func Resolve(candidates []Function, b *Binding) (Function, error) {
	n := b.OperandCount()
	for _, fn := range candidates {
		lo, hi := fn.OperandCountRange()
		if n < lo || n > hi {
			continue
		}
		res, err := fn.CheckOperands(b)
		if err != nil {
			return nil, err
		}
		if res.OK() {
			return fn, nil
		}
	}
	return nil, &NoMatchError{Name: b.Call().Name, OperandCount: n}
}
