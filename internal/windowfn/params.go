package windowfn

import (
	"fmt"

	"github.com/roach88/wintvf/internal/namematch"
)

// Param names a window function parameter. Parameter names are shared
// across functions so that named-argument calls agree on spelling.
type Param string

const (
	// ParamData is the relation the window function computes over.
	ParamData Param = "DATA"

	// ParamTimecol is the time attribute column, also known as event time.
	ParamTimecol Param = "TIMECOL"

	// ParamSize is the window duration.
	ParamSize Param = "SIZE"

	// ParamOffset is the optional alignment offset of each window.
	ParamOffset Param = "OFFSET"

	// ParamKey is the session key column(s). SESSION only.
	ParamKey Param = "KEY"

	// ParamSlide is the slide interval. HOP only.
	ParamSlide Param = "SLIDE"
)

var allParams = []Param{ParamData, ParamTimecol, ParamSize, ParamOffset, ParamKey, ParamSlide}

// ParseParam resolves a parameter name case-insensitively.
func ParseParam(s string) (Param, error) {
	m := namematch.CaseInsensitive()
	for _, p := range allParams {
		if m.Matches(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown parameter %q", s)
}
