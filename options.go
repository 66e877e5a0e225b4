package gallium

import "github.com/lestrrat-go/option"

type Option = option.Interface

type identFileName struct{}
type identForce struct{}
type identSchema struct{}
type identPositionAttribute struct{}
type identTargetFile struct{}

type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct{ Option }

func (*parseOption) parseOption() {}

type EditOption interface {
	Option
	editOption()
}

type editOption struct{ Option }

func (*editOption) editOption() {}

type AnalyzeOption interface {
	Option
	analyzeOption()
}

type analyzeOption struct{ Option }

func (*analyzeOption) analyzeOption() {}

type ImportOption interface {
	Option
	importOption()
}

type importOption struct{ Option }

func (*importOption) importOption() {}

// WithFileName specifies the file name recorded in the document and in
// any location the parse or edit reports back.
func WithFileName(v string) ParseOption {
	return &parseOption{option.New(identFileName{}, v)}
}

// WithForce skips the attribute safety pre-check, for callers that have
// independently verified that the substitution is safe.
func WithForce() EditOption {
	return &editOption{option.New(identForce{}, true)}
}

// WithSchema supplies the attribute schema of a custom element so that
// schema-declared attributes absent from the instance show up as unset
// entries carrying their enumeration.
func WithSchema(v AttributeSchema) AnalyzeOption {
	return &analyzeOption{option.New(identSchema{}, v)}
}

// WithPositionAttribute overrides the name of the instrumentation
// attribute the analyzer hides (default "data-source-loc").
func WithPositionAttribute(v string) AnalyzeOption {
	return &analyzeOption{option.New(identPositionAttribute{}, v)}
}

// WithTargetFile gives the project-relative path of the file receiving
// an import, so that "./"-relative import paths can be re-rooted to the
// right "../" depth for that file's directory.
func WithTargetFile(v string) ImportOption {
	return &importOption{option.New(identTargetFile{}, v)}
}
