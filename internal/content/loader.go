package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// LoadMode controls how errors are handled during pack loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadError is one failure encountered while loading a content pack.
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

// Error code constants, shared by run and validate.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeScanError  = "E002" // Directory scan error
	ErrCodeNoFiles    = "E003" // No CUE files found
	ErrCodeLoadFailed = "E004" // CUE load failed
	ErrCodeNotFound   = "E005" // Path not found
	ErrCodeBuildFail  = "E006" // CUE build failed
	ErrCodeBadEntry   = "E101" // Entry failed to decode
	ErrCodeDuplicate  = "E102" // Duplicate key within a kind
	ErrCodeEmptyPack  = "E103" // Pack declares no content
)

// cue field decoding shapes; labels become keys.
type traitSpec struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Conflicts   []string `json:"conflicts"`
}

type professionSpec struct {
	Name string `json:"name"`
}

type cultureSpec struct {
	Name string `json:"name"`
}

type speciesSpec struct {
	Name          string `json:"name"`
	LifespanYears int    `json:"lifespan"`
}

// LoadPacks loads every .cue file under dir into a Catalog. Top-level fields
// trait, profession, culture, and species each hold a struct of entries keyed
// by catalog key. Returns the catalog built from the entries that loaded
// cleanly plus any errors; in LoadModeFailFast the first error stops the
// load.
func LoadPacks(dir string, mode LoadMode) (*Catalog, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("content directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing content directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := findCUEFiles(dir)
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
		return nil, []error{&LoadError{Code: ErrCodeBuildFail, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	catalog := NewCatalog()
	var errs []error
	collect := func(e error) bool {
		errs = append(errs, e)
		return mode == LoadModeFailFast
	}

	stop := decodeKind(value, KindTrait, collect, func(key string, v cue.Value) error {
		var spec traitSpec
		if err := v.Decode(&spec); err != nil {
			return err
		}
		return catalog.AddTrait(Trait{Key: key, Name: spec.Name, Description: spec.Description, Conflicts: spec.Conflicts})
	})
	if stop {
		return catalog, errs
	}
	stop = decodeKind(value, KindProfession, collect, func(key string, v cue.Value) error {
		var spec professionSpec
		if err := v.Decode(&spec); err != nil {
			return err
		}
		return catalog.AddProfession(Profession{Key: key, Name: spec.Name})
	})
	if stop {
		return catalog, errs
	}
	stop = decodeKind(value, KindCulture, collect, func(key string, v cue.Value) error {
		var spec cultureSpec
		if err := v.Decode(&spec); err != nil {
			return err
		}
		return catalog.AddCulture(Culture{Key: key, Name: spec.Name})
	})
	if stop {
		return catalog, errs
	}
	stop = decodeKind(value, KindSpecies, collect, func(key string, v cue.Value) error {
		var spec speciesSpec
		if err := v.Decode(&spec); err != nil {
			return err
		}
		return catalog.AddSpecies(Species{Key: key, Name: spec.Name, LifespanYears: spec.LifespanYears})
	})
	if stop {
		return catalog, errs
	}

	if catalog.Len() == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeEmptyPack, Message: "no content entries found in pack"})
	}
	return catalog, errs
}

// decodeKind walks one top-level kind struct, handing each entry to add.
// Returns true when loading should stop.
func decodeKind(value cue.Value, kind Kind, collect func(error) bool, add func(key string, v cue.Value) error) bool {
	kindVal := value.LookupPath(cue.ParsePath(string(kind)))
	if !kindVal.Exists() {
		return false
	}
	iter, err := kindVal.Fields()
	if err != nil {
		return collect(&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating %s entries: %v", kind, err)})
	}
	for iter.Next() {
		key := iter.Label()
		if addErr := add(key, iter.Value()); addErr != nil {
			code := ErrCodeBadEntry
			if errors.Is(addErr, ErrDuplicateKey) {
				code = ErrCodeDuplicate
			}
			loadErr := &LoadError{
				Code:    code,
				Message: fmt.Sprintf("%s.%s: %v", kind, key, addErr),
				Pos:     iter.Value().Pos(),
			}
			if collect(loadErr) {
				return true
			}
		}
	}
	return false
}

func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
