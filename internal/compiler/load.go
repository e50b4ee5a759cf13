package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/wintvf/internal/catalog"
	"github.com/roach88/wintvf/internal/namematch"
	"github.com/roach88/wintvf/internal/sqltype"
)

// Load error codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
)

// LoadMode controls how errors are handled during spec loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Relation is a named row type declared in a spec.
type Relation struct {
	Name string
	Row  *sqltype.Row
	Pos  token.Pos
}

// Specs is the compiled content of a spec directory.
type Specs struct {
	Relations []Relation
	Queries   []Query
	FileCount int // Number of CUE files found
}

// Catalog builds a catalog holding every relation in s.
func (s *Specs) Catalog(matcher namematch.Matcher) (*catalog.Catalog, error) {
	cat := catalog.New(matcher)
	for _, r := range s.Relations {
		if err := cat.Add(r.Name, r.Row); err != nil {
			return nil, &CompileError{Field: "relation", Message: err.Error(), Pos: r.Pos}
		}
	}
	return cat, nil
}

// Query returns the query with the given name.
func (s *Specs) Query(name string) (*Query, bool) {
	for i := range s.Queries {
		if s.Queries[i].Name == name {
			return &s.Queries[i], true
		}
	}
	return nil, false
}

// LoadError represents an error that occurred during spec loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the load error code.
func (e *LoadError) ErrorCode() string { return e.Code }

// LoadDir loads and compiles the CUE specs in dir.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadDir(dir string, mode LoadMode) (*Specs, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("specs directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing specs directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	specs := &Specs{
		FileCount: len(cueFiles),
	}

	stop := func(err error, context string) bool {
		errs = append(errs, convertCompileError(err, context))
		return mode == LoadModeFailFast
	}

	if relVal := value.LookupPath(cue.ParsePath("relation")); relVal.Exists() {
		iter, err := relVal.Fields()
		if err != nil {
			if stop(err, "relation") {
				return specs, errs
			}
		} else {
			for iter.Next() {
				name, row, err := CompileRelation(iter.Value())
				if err != nil {
					if stop(err, "relation."+iter.Selector().String()) {
						return specs, errs
					}
					continue
				}
				specs.Relations = append(specs.Relations, Relation{Name: name, Row: row, Pos: iter.Value().Pos()})
			}
		}
	}

	if queryVal := value.LookupPath(cue.ParsePath("query")); queryVal.Exists() {
		iter, err := queryVal.Fields()
		if err != nil {
			if stop(err, "query") {
				return specs, errs
			}
		} else {
			for iter.Next() {
				q, err := CompileQuery(iter.Value())
				if err != nil {
					if stop(err, "query."+iter.Selector().String()) {
						return specs, errs
					}
					continue
				}
				specs.Queries = append(specs.Queries, *q)
			}
		}
	}

	if len(specs.Relations) == 0 && len(specs.Queries) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no relations or queries found in specs"})
	}

	return specs, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    compileErr.ErrorCode(),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}
