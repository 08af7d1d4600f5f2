package cheader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-clang/clang-v13/clang"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	orderedmap "makeenums/ordered_map"
)

// Symbols maps enum member and macro names to their evaluated values, in
// order of first definition.
type Symbols = orderedmap.OrderedMap[string, Value]

// Parser extracts enum members and object-like macros from C headers with
// libclang.
type Parser struct {
	// Dir is where the probe translation unit pretends to live. Relative
	// header paths are resolved against it. Defaults to the working directory.
	Dir string
	Log *zap.Logger
}

// Parse reads all headers in a single translation unit. Only symbols
// defined in the listed headers themselves are returned.
func (p *Parser) Parse(headers []string) (*Symbols, error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	dir := p.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "unable to get working directory")
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to resolve %s", dir)
	}

	c := &collector{
		log:     log,
		inputs:  make(map[string]bool, len(headers)),
		symbols: orderedmap.NewOrderedMap[string, Value](),
		probed:  make(map[string]bool),
	}
	for _, h := range headers {
		if !filepath.IsAbs(h) {
			h = filepath.Join(dir, h)
		}
		c.inputs[filepath.Clean(h)] = true
	}

	idx := clang.NewIndex(0, 0)
	defer idx.Dispose()

	args := []string{"-x", "c", "-I" + dir}
	probe := filepath.Join(dir, ProbeFile)

	if err := c.collect(idx, probe, args, headers); err != nil {
		return nil, err
	}
	if len(c.macros) > 0 {
		if err := c.evaluate(idx, probe, append(args, "-ferror-limit=0", "-w"), headers); err != nil {
			return nil, err
		}
	}

	log.Debug("parsed headers",
		zap.Strings("headers", headers),
		zap.Int("symbols", c.symbols.Len()),
		zap.Int("macros", len(c.macros)))
	return c.symbols, nil
}

type collector struct {
	log     *zap.Logger
	inputs  map[string]bool
	symbols *Symbols
	macros  []string
	probed  map[string]bool
}

func parse(idx clang.Index, probe string, args []string, source string, options uint32) (clang.TranslationUnit, error) {
	unsaved := []clang.UnsavedFile{clang.NewUnsavedFile(probe, source)}
	tu := idx.ParseTranslationUnit(probe, args, unsaved, options)
	if tu == (clang.TranslationUnit{}) {
		return tu, errors.New("failed to parse translation unit")
	}
	return tu, nil
}

// collect records enum members and the names of object-like macros.
func (c *collector) collect(idx clang.Index, probe string, args, headers []string) error {
	tu, err := parse(idx, probe, args, includeSource(headers), uint32(clang.TranslationUnit_DetailedPreprocessingRecord))
	if err != nil {
		return err
	}
	defer tu.Dispose()

	var errs error
	for _, d := range tu.Diagnostics() {
		msg := formatDiagnostic(d)
		switch severity := d.Severity(); {
		case severity >= clang.Diagnostic_Error:
			errs = multierr.Append(errs, errors.New(msg))
		case severity == clang.Diagnostic_Warning:
			c.log.Warn(msg)
		}
		d.Dispose()
	}
	if errs != nil {
		return errors.Wrap(errs, "unable to parse headers")
	}

	tu.TranslationUnitCursor().Visit(func(cursor, parent clang.Cursor) clang.ChildVisitResult {
		if !c.fromInput(cursor) {
			return clang.ChildVisit_Continue
		}

		switch cursor.Kind() {
		case clang.Cursor_MacroDefinition:
			c.handleMacroDefinition(cursor)
		case clang.Cursor_EnumConstantDecl:
			c.handleEnumConstantDecl(cursor)
		}
		return clang.ChildVisit_Recurse
	})
	return nil
}

func (c *collector) fromInput(cursor clang.Cursor) bool {
	file, _, _, _ := cursor.Location().FileLocation()
	if file == (clang.File{}) {
		return false
	}
	return c.inputs[filepath.Clean(file.Name())]
}

func (c *collector) handleMacroDefinition(cursor clang.Cursor) {
	name := cursor.Spelling()
	if cursor.IsMacroBuiltin() || cursor.IsMacroFunctionLike() {
		c.log.Debug("skipping macro", zap.String("name", name))
		return
	}
	if !c.probed[name] {
		c.probed[name] = true
		c.macros = append(c.macros, name)
	}
	c.symbols.Set(name, Value{Kind: Unresolved})
}

func (c *collector) handleEnumConstantDecl(cursor clang.Cursor) {
	name := cursor.Spelling()
	v := IntValue(cursor.EnumConstantDeclValue())
	if v.Int < 0 && isUnsignedEnum(cursor.SemanticParent()) {
		v = UintValue(cursor.EnumConstantDeclUnsignedValue())
	}
	c.log.Debug("found enum constant", zap.String("name", name), zap.Stringer("value", v))
	c.symbols.Set(name, v)
}

func isUnsignedEnum(decl clang.Cursor) bool {
	switch decl.EnumDeclIntegerType().CanonicalType().Kind() {
	case clang.Type_UInt, clang.Type_ULong, clang.Type_ULongLong:
		return true
	}
	return false
}

// evaluate parses every macro as a variable initializer and stores the
// result. Probes that fail to compile stay unresolved.
func (c *collector) evaluate(idx clang.Index, probe string, args, headers []string) error {
	tu, err := parse(idx, probe, args, probeSource(headers, c.macros), uint32(clang.TranslationUnit_SkipFunctionBodies))
	if err != nil {
		return err
	}
	defer tu.Dispose()

	broken := make(map[uint32]bool)
	for _, d := range tu.Diagnostics() {
		if d.Severity() >= clang.Diagnostic_Error {
			file, line, _, _ := d.Location().FileLocation()
			if file != (clang.File{}) && filepath.Clean(file.Name()) == probe {
				broken[line] = true
			}
		}
		d.Dispose()
	}

	tu.TranslationUnitCursor().Visit(func(cursor, parent clang.Cursor) clang.ChildVisitResult {
		if cursor.Kind() != clang.Cursor_VarDecl || !cursor.Location().IsFromMainFile() {
			return clang.ChildVisit_Continue
		}
		n, ok := probeIndex(cursor.Spelling())
		if !ok || n >= len(c.macros) {
			return clang.ChildVisit_Continue
		}
		name := c.macros[n]

		if broken[probeLine(len(headers), n)] {
			c.log.Debug("macro does not evaluate", zap.String("name", name))
			return clang.ChildVisit_Continue
		}

		er := cursor.Evaluate()
		v := valueFromEval(er)
		er.Dispose()

		c.log.Debug("evaluated macro", zap.String("name", name), zap.Stringer("kind", v.Kind), zap.Stringer("value", v))
		c.symbols.Set(name, v)
		return clang.ChildVisit_Continue
	})
	return nil
}

func formatDiagnostic(d clang.Diagnostic) string {
	file, line, column, _ := d.Location().FileLocation()
	if file == (clang.File{}) {
		return d.Spelling()
	}
	return fmt.Sprintf("%s:%d:%d: %s", file.Name(), line, column, d.Spelling())
}
