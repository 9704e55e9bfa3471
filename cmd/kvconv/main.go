package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	ckv "github.com/d1ced/kvparser_ckv"
)

var cli struct {
	From           string `help:"Input dialect." short:"f" enum:"map,map-array,brace,brace-array,typed" default:"map"`
	To             string `help:"Output dialect." short:"t" enum:"map,map-array,brace,brace-array,typed" default:"brace"`
	Output         string `help:"Output file, stdout when omitted." short:"o" type:"path"`
	Resolve        bool   `help:"Resolve #\"path\" references, input dialect must be map." short:"r"`
	Compact        bool   `help:"Drop the newline/tab layout of map output." short:"c"`
	MaxDepth       int    `help:"Nesting limit for decoding and encoding." default:"1000"`
	Precision      int    `help:"Significant digits for numbers." default:"14"`
	InvalidNumbers string `help:"NaN/Infinity encoding policy." enum:"reject,literal,null" default:"reject"`
	SparseConvert  bool   `help:"Write sparse integer-keyed objects in object form instead of failing."`
	Input          string `arg:"" optional:"" help:"Input file, stdin when omitted." type:"path"`
}

var dialects = map[string]ckv.Dialect{
	"map":         ckv.Map,
	"map-array":   ckv.MapArray,
	"brace":       ckv.Brace,
	"brace-array": ckv.BraceArray,
	"typed":       ckv.Typed,
}

var policies = map[string]ckv.NumberPolicy{
	"reject":  ckv.NumberReject,
	"literal": ckv.NumberLiteral,
	"null":    ckv.NumberNull,
}

func run() error {
	cfg := ckv.NewConfig()
	if err := cfg.SetDecodeMaxDepth(cli.MaxDepth); err != nil {
		return err
	}
	if err := cfg.SetEncodeMaxDepth(cli.MaxDepth); err != nil {
		return err
	}
	if err := cfg.SetEncodeNumberPrecision(cli.Precision); err != nil {
		return err
	}
	if err := cfg.SetEncodeInvalidNumbers(policies[cli.InvalidNumbers]); err != nil {
		return err
	}
	if err := cfg.SetSparse(cli.SparseConvert, ckv.DefaultSparseRatio, ckv.DefaultSparseSafe); err != nil {
		return err
	}
	cfg.SetMapIndent(!cli.Compact)

	var doc *ckv.Node
	var err error
	switch {
	case cli.Resolve:
		if cli.From != "map" {
			return fmt.Errorf("--resolve needs the map input dialect, got %s", cli.From)
		}
		if cli.Input == "" {
			return fmt.Errorf("--resolve needs an input file")
		}
		doc, err = ckv.DecodeFile(cli.Input, cfg)
	case cli.Input != "":
		var data []byte
		data, err = os.ReadFile(cli.Input)
		if err != nil {
			return err
		}
		doc, err = ckv.Decode(dialects[cli.From], data, cfg)
	default:
		var data []byte
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		doc, err = ckv.Decode(dialects[cli.From], data, cfg)
	}
	if err != nil {
		return err
	}

	out, err := ckv.Encode(dialects[cli.To], doc, cfg)
	if err != nil {
		return err
	}
	out = append(out, '\n')
	if cli.Output != "" {
		return os.WriteFile(cli.Output, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func main() {
	parser := kong.Must(&cli,
		kong.Name("kvconv"),
		kong.Description("Convert keyed-value documents between the map, brace and typed dialects."),
		kong.UsageOnError(),
	)
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "kvconv: %v\n", err)
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kvconv: %v\n", err)
		os.Exit(1)
	}
}
