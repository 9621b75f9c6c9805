// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	InputParseErrorId
	UnsupportedValueId
	NestedCompositeId
	InvalidVariableNameId
	InvalidDialectId
	RuntimeNotAvailableId
	ShellNotFoundId
	ScriptExecutionFailedId
	RoundTripMismatchId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# Input file not found!

The file given on the command line does not exist or cannot be read.

## Things you can try:
- Check the path for typos
- Pipe the document through stdin instead:
~~~
$ cat value.json | shlit encode --format json
~~~`,
	}

	inputParseErrorIssue = &Issue{
		id: InputParseErrorId,
		mdMsg: `
# Failed to parse the input document!

The input could not be decoded with the selected format.

## Things you can try:
- Check that ` + "`--format`" + ` matches the document (json, yaml, toml, cue)
- Let shlit pick the format from the file extension by omitting ` + "`--format`" + `
- Validate the document with the format's own tooling first`,
	}

	unsupportedValueIssue = &Issue{
		id: UnsupportedValueId,
		mdMsg: `
# The value has no shell literal!

Null values and booleans cannot be written as shell literals: a shell has no
null, and what "true" means depends on where the word is used.

## Things you can try:
- Replace booleans with the strings or numbers your script expects
~~~yaml
enabled: "yes"   # or 1
~~~
- Remove null entries from the document`,
	}

	nestedCompositeIssue = &Issue{
		id: NestedCompositeId,
		mdMsg: `
# Nested lists and maps are not supported!

Shell arrays are flat. A list may only contain numbers and strings, and a map
may only map strings to numbers and strings.

## Things you can try:
- Flatten the structure into several variables
- Join inner lists into a single string before encoding`,
	}

	invalidVariableNameIssue = &Issue{
		id: InvalidVariableNameId,
		mdMsg: `
# Invalid variable name!

Shell variable names start with a letter or underscore, followed by letters,
digits or underscores.

## Things you can try:
~~~
$ shlit render --name my_value value.json
~~~`,
	}

	invalidDialectIssue = &Issue{
		id: InvalidDialectId,
		mdMsg: `
# Unknown shell dialect!

Supported dialects are **zsh** (the default) and **bash**.

## Things you can try:
~~~
$ shlit encode --dialect bash value.json
~~~
- Or set ` + "`dialect`" + ` in your config file`,
	}

	runtimeNotAvailableIssue = &Issue{
		id: RuntimeNotAvailableId,
		mdMsg: `
# Runtime not available!

The selected runtime cannot run on this system.

## Things you can try:
- Use the built-in interpreter, which is always available:
~~~
$ shlit check --runtime virtual value.json
~~~
- Install zsh or bash for the native runtime`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

The native runtime could not find the configured shell.

## Things you can try:
- Check ` + "`native_shell.path`" + ` in your config file
- Make sure zsh or bash is on your PATH:
~~~
$ command -v zsh bash
~~~`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# The generated script failed!

The shell exited with a non-zero status while running the rendered script.

## Things you can try:
- Look at the script with ` + "`shlit render`" + `
- Run with verbose mode to see the shell's error output:
~~~
$ shlit --verbose check value.json
~~~
- The virtual runtime only provides builtins; external commands fail with status 127`,
	}

	roundTripMismatchIssue = &Issue{
		id: RoundTripMismatchId,
		mdMsg: `
# Round trip mismatch!

The shell printed something different from the value that was encoded.
This means the literal does not survive the selected shell unchanged.

## Things you can try:
- Make sure the dialect matches the shell (bash literals for bash, zsh for zsh)
- Report the input and the diff above as a bug`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Print the effective configuration:
~~~
$ shlit config show
~~~
- Regenerate a default file:
~~~
$ shlit config init
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():          fileNotFoundIssue,
		inputParseErrorIssue.Id():       inputParseErrorIssue,
		unsupportedValueIssue.Id():      unsupportedValueIssue,
		nestedCompositeIssue.Id():       nestedCompositeIssue,
		invalidVariableNameIssue.Id():   invalidVariableNameIssue,
		invalidDialectIssue.Id():        invalidDialectIssue,
		runtimeNotAvailableIssue.Id():   runtimeNotAvailableIssue,
		shellNotFoundIssue.Id():         shellNotFoundIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
		roundTripMismatchIssue.Id():     roundTripMismatchIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
