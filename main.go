// make-enums parses C headers for enums and integer macro definitions and
// exports them to a C file for the introspection API.
package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"makeenums/cheader"
	"makeenums/enumtable"
)

// Args are what are used to build the CLI.
type Args struct {
	Outfile string   `arg:"-o,--outfile" placeholder:"PATH" help:"write generated text to PATH instead of standard output"`
	Infiles []string `arg:"positional" placeholder:"INFILE" help:"header files to parse and #include"`
}

// Description is shown by --help.
func (Args) Description() string {
	return "Exports enums and integer macros from C headers to a lookup table for the introspection API.\n"
}

// SymbolParser turns a list of headers into a symbol table.
type SymbolParser interface {
	Parse(headers []string) (*cheader.Symbols, error)
}

// outputError marks a failure to write the generated file.
type outputError struct {
	path string
	err  error
}

func (e *outputError) Error() string { return e.err.Error() }
func (e *outputError) Unwrap() error { return e.err }

// run is the whole pipeline. generator is the program name recorded in the
// generated file.
func run(args Args, generator string, parser SymbolParser, fs afero.Fs, stdout io.Writer, log *zap.Logger) error {
	symbols, err := parser.Parse(args.Infiles)
	if err != nil {
		return err
	}

	names := enumtable.Retain(symbols, log)
	source := enumtable.Render(generator, args.Infiles, names)

	if args.Outfile == "" {
		_, err := stdout.Write(source)
		return errors.Wrap(err, "unable to write to standard output")
	}
	if err := enumtable.Write(fs, args.Outfile, source); err != nil {
		return &outputError{path: args.Outfile, err: err}
	}
	log.Debug("wrote table", zap.String("path", args.Outfile), zap.Int("symbols", len(names)))
	return nil
}

// newLogger logs to stderr without timestamps or callers.
func newLogger(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(w), level)
	return zap.New(core)
}

func main() {
	var args Args
	arg.MustParse(&args)

	log := newLogger(os.Stderr, zapcore.InfoLevel)
	defer log.Sync()

	parser := &cheader.Parser{Log: log}
	err := run(args, filepath.Base(os.Args[0]), parser, afero.NewOsFs(), os.Stdout, log)

	var oe *outputError
	switch {
	case err == nil:
		return
	case errors.As(err, &oe):
		log.Error("Unable to write "+oe.path+".", zap.Error(oe.err))
	default:
		log.Error("Unable to generate enum table.", zap.Error(err))
	}
	log.Sync()
	os.Exit(1)
}
