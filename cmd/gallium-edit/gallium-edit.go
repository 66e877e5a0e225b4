package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/gallium"
	"github.com/lestrrat-go/gallium/encoding"
	"github.com/lestrrat-go/gallium/internal/cliutil"
	"github.com/lestrrat-go/gallium/s11n"
	"github.com/pmezard/go-difflib/difflib"
)

type cmdopts struct {
	File   string `short:"f" long:"file" description:"source file to edit (stdin when piped)"`
	Line   int    `short:"l" long:"line" description:"1-based line of the element's opening tag"`
	Col    int    `short:"c" long:"col" description:"1-based column of the element's opening tag"`

	SetAttr     string  `long:"set-attr" description:"set an attribute, name=value"`
	SetAttrBool string  `long:"set-attr-bool" description:"set a boolean attribute, name=true|false"`
	RemoveAttr  string  `long:"remove-attr" description:"remove an attribute by name"`
	InsertChild string  `long:"insert-child" description:"insert child markup"`
	ChildAt     string  `long:"child-at" default:"end" description:"start | end | element-child index"`
	SetText     *string `long:"set-text" description:"replace the element's text content"`
	Delete      bool    `long:"delete" description:"delete the element"`
	Swap        string  `long:"swap" description:"swap with sibling, prev|next"`
	MoveTo      string  `long:"move-to" description:"move relative to the element at line:col"`
	Place       string  `long:"place" default:"after" description:"before | after | inside"`

	ListAttrs    bool   `long:"list-attrs" description:"list the element's editable attributes"`
	EnsureImport string `long:"ensure-import" description:"ensure this binding is imported"`
	From         string `long:"from" description:"import path for --ensure-import"`
	Default      bool   `long:"default" description:"default import for --ensure-import"`
	Dump         bool   `long:"dump" description:"parse and dump the canonical markup"`

	Write    bool   `short:"w" long:"write" description:"write the result back to the file"`
	Diff     bool   `long:"diff" description:"show a unified diff instead of the full output"`
	Force    bool   `long:"force" description:"skip the attribute safety pre-check"`
	Config   string `long:"config" description:"YAML config file"`
	Encoding string `long:"encoding" description:"source encoding (default: BOM sniff, UTF-8)"`
	Trace    bool   `long:"trace" description:"emit span traces to stderr"`
	Version  bool   `long:"version" description:"show version"`
}

type config struct {
	PositionAttribute string   `yaml:"position_attribute"`
	ComponentDirs     []string `yaml:"component_dirs"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("gallium-edit: using gallium version %s\n", gallium.Version)
}

func showUsage() {
	fmt.Printf(`Usage : gallium-edit [options] -f file -l line -c col
	Apply one structural edit to the element at the given address and
	print the resulting source (or write it back with -w).
	--version : display the version of the engine
`)
}

func _main() int {
	opts := cmdopts{}
	if _, err := flags.ParseArgs(&opts, os.Args[1:]); err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	if !cliutil.IsTty(os.Stdout.Fd()) {
		color.NoColor = true
	}

	ctx := context.Background()
	if opts.Trace {
		ctx = gallium.WithTraceLogger(ctx, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := config{PositionAttribute: gallium.DefaultPositionAttribute}
	if opts.Config != "" {
		buf, err := os.ReadFile(opts.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		if err := yaml.UnmarshalWithOptions(buf, &cfg, yaml.Strict()); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", yaml.FormatError(err, !color.NoColor, true))
			return 1
		}
	}

	var in io.Reader
	switch {
	case opts.File != "":
		fh, err := os.Open(opts.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		defer fh.Close()
		in = fh
	case !cliutil.IsTty(os.Stdin.Fd()):
		in = os.Stdin
	default:
		showUsage()
		return 1
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	src, err := encoding.Decode(raw, opts.Encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	switch {
	case opts.Dump:
		return doDump(ctx, &opts, src)
	case opts.ListAttrs:
		return doListAttrs(ctx, &opts, &cfg, src)
	case opts.EnsureImport != "":
		return doEnsureImport(&opts, src)
	}
	return doEdit(ctx, &opts, src)
}

func doDump(ctx context.Context, opts *cmdopts, src []byte) int {
	doc, err := gallium.Parse(ctx, src, gallium.WithFileName(opts.File))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	var d s11n.Dumper
	if err := d.DumpDoc(os.Stdout, doc); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	return 0
}

func doListAttrs(ctx context.Context, opts *cmdopts, cfg *config, src []byte) int {
	doc, err := gallium.Parse(ctx, src, gallium.WithFileName(opts.File))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	el, err := gallium.Locate(doc, gallium.SourceLocation{
		FileName: opts.File,
		Line:     opts.Line,
		Column:   opts.Col,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s (%s)\n", err, gallium.Reason(err))
		return 1
	}

	analyzeOpts := []gallium.AnalyzeOption{
		gallium.WithPositionAttribute(cfg.PositionAttribute),
	}
	if schema := loadSchema(cfg, el.Name()); schema != nil {
		analyzeOpts = append(analyzeOpts, gallium.WithSchema(schema))
	}

	for _, info := range gallium.Attributes(el, analyzeOpts...) {
		name := color.CyanString(info.Name)
		var value string
		switch {
		case !info.Present:
			value = color.New(color.Faint).Sprint("(unset)")
		case info.Value.Kind() == gallium.AttrValueString:
			value = strconv.Quote(info.Value.Literal())
		case info.Value.Kind() == gallium.AttrValueBool:
			value = strconv.FormatBool(info.Value.Bool())
		case info.Value.Kind() == gallium.AttrValueAbsent:
			value = "true"
		default:
			value = color.YellowString(info.Value.Source())
		}
		fmt.Printf("%s = %s", name, value)
		if len(info.Options) > 0 {
			fmt.Printf("  [%s]", strings.Join(info.Options, " | "))
		}
		fmt.Println()
	}
	return 0
}

// loadSchema resolves the component's defining file in the configured
// component directories and extracts its string-union attributes.
// Lowercase (intrinsic) tags have no schema.
func loadSchema(cfg *config, name string) gallium.AttributeSchema {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return nil
	}
	files := map[string]string{}
	for _, dir := range cfg.ComponentDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, ent := range entries {
			if ent.IsDir() {
				continue
			}
			p := filepath.Join(dir, ent.Name())
			buf, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			files[p] = string(buf)
		}
	}
	p, ok := gallium.ResolveComponentFile(name, files)
	if !ok {
		return nil
	}
	schema, err := gallium.ScanPropSchema([]byte(files[p]), name)
	if err != nil {
		return nil
	}
	return schema
}

func doEnsureImport(opts *cmdopts, src []byte) int {
	res, err := gallium.EnsureImport(src, gallium.ImportSpec{
		Name:    opts.EnsureImport,
		Path:    opts.From,
		Default: opts.Default,
	}, gallium.WithTargetFile(opts.File))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	if res.AlreadyExists {
		fmt.Fprintf(os.Stderr, "%s is already imported\n", opts.EnsureImport)
	}
	return emit(opts, src, res.Source)
}

func doEdit(ctx context.Context, opts *cmdopts, src []byte) int {
	op, err := buildOperation(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		showUsage()
		return 1
	}

	var editOpts []gallium.EditOption
	if opts.Force {
		editOpts = append(editOpts, gallium.WithForce())
	}

	res, err := gallium.Edit(ctx, src, gallium.SourceLocation{
		FileName: opts.File,
		Line:     opts.Line,
		Column:   opts.Col,
	}, op, editOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s (%s)\n", err, gallium.Reason(err))
		return 1
	}
	if res.Source == nil {
		fmt.Fprintf(os.Stderr, "%s\n", color.YellowString(
			"edit not applied: element is %s for this attribute (use --force to override)",
			res.Mode,
		))
		return 1
	}
	if res.Location != nil {
		fmt.Fprintf(os.Stderr, "element moved to %s\n",
			color.GreenString("%d:%d", res.Location.Line, res.Location.Column))
	}
	return emit(opts, src, res.Source)
}

func buildOperation(opts *cmdopts) (gallium.Operation, error) {
	if opts.SetAttr != "" {
		name, value, ok := strings.Cut(opts.SetAttr, "=")
		if !ok {
			return nil, fmt.Errorf("--set-attr wants name=value, got %q", opts.SetAttr)
		}
		return gallium.UpdateAttribute{Name: name, Value: gallium.StringValue(value)}, nil
	}
	if opts.SetAttrBool != "" {
		name, value, ok := strings.Cut(opts.SetAttrBool, "=")
		if !ok {
			return nil, fmt.Errorf("--set-attr-bool wants name=true|false, got %q", opts.SetAttrBool)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		return gallium.UpdateAttribute{Name: name, Value: gallium.BoolValue(b)}, nil
	}
	if opts.RemoveAttr != "" {
		return gallium.RemoveAttribute{Name: opts.RemoveAttr}, nil
	}
	if opts.InsertChild != "" {
		op := gallium.InsertChild{Markup: opts.InsertChild}
		switch opts.ChildAt {
		case "start":
			op.Position = gallium.ChildStart
		case "end", "":
			op.Position = gallium.ChildEnd
		default:
			idx, err := strconv.Atoi(opts.ChildAt)
			if err != nil {
				return nil, fmt.Errorf("--child-at wants start, end, or an index, got %q", opts.ChildAt)
			}
			op.Position = gallium.ChildIndex
			op.Index = idx
		}
		return op, nil
	}
	if opts.SetText != nil {
		return gallium.UpdateText{Text: *opts.SetText}, nil
	}
	if opts.Delete {
		return gallium.DeleteElement{}, nil
	}
	if opts.Swap != "" {
		switch opts.Swap {
		case "prev":
			return gallium.SwapSibling{Direction: gallium.DirectionPrev}, nil
		case "next":
			return gallium.SwapSibling{Direction: gallium.DirectionNext}, nil
		}
		return nil, fmt.Errorf("--swap wants prev or next, got %q", opts.Swap)
	}
	if opts.MoveTo != "" {
		l, c, ok := strings.Cut(opts.MoveTo, ":")
		if !ok {
			return nil, fmt.Errorf("--move-to wants line:col, got %q", opts.MoveTo)
		}
		line, err := strconv.Atoi(l)
		if err != nil {
			return nil, err
		}
		col, err := strconv.Atoi(c)
		if err != nil {
			return nil, err
		}
		op := gallium.MoveElement{Target: gallium.SourceLocation{FileName: opts.File, Line: line, Column: col}}
		switch opts.Place {
		case "before":
			op.Position = gallium.MoveBefore
		case "after", "":
			op.Position = gallium.MoveAfter
		case "inside":
			op.Position = gallium.MoveInside
		default:
			return nil, fmt.Errorf("--place wants before, after, or inside, got %q", opts.Place)
		}
		return op, nil
	}
	return nil, fmt.Errorf("no operation given")
}

func emit(opts *cmdopts, before, after []byte) int {
	switch {
	case opts.Diff:
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(before)),
			B:        difflib.SplitLines(string(after)),
			FromFile: opts.File,
			ToFile:   opts.File + " (edited)",
			Context:  3,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		for _, line := range strings.SplitAfter(text, "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				fmt.Print(color.GreenString("%s", line))
			case strings.HasPrefix(line, "-"):
				fmt.Print(color.RedString("%s", line))
			default:
				fmt.Print(line)
			}
		}
	case opts.Write:
		if opts.File == "" {
			fmt.Fprintf(os.Stderr, "-w wants a file, not stdin\n")
			return 1
		}
		if err := os.WriteFile(opts.File, after, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
	default:
		os.Stdout.Write(after)
	}
	return 0
}
