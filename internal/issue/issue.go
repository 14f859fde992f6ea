// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	DocumentTooLargeId
	DocumentParseFailedId
	UnknownFunctionId
	UnexpectedArgumentsId
	UnexpectedBodyId
	LayoutFailedId
	ConfigLoadFailedId
	PermissionDeniedId
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

// Title returns the first markdown heading of the message.
func (i *Issue) Title() string {
	for line := range strings.Lines(string(i.mdMsg)) {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return title
		}
	}
	return ""
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
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
# Document not found!

The file you asked for does not exist or is a directory.

## Things you can try:
- Check the path for typos
- Run the command from the directory that contains the document:
~~~
$ cd /path/to/docs
$ typeset render report.tps
~~~`,
	}

	documentTooLargeIssue = &Issue{
		id: DocumentTooLargeId,
		mdMsg: `
# Document too large!

Documents are limited in size to keep parsing fast and memory use bounded.

## Things you can try:
- Split the document into several smaller files
- Check that you are not rendering a binary file by accident`,
	}

	documentParseFailedIssue = &Issue{
		id: DocumentParseFailedId,
		mdMsg: `
# Failed to parse the document!

The document contains a syntax error. The error message points at the line
and column where parsing stopped.

## Common mistakes:
- An unbalanced '[' or ']' bracket
- A function body that is never closed
- A string argument without its closing quote

Escape a literal bracket with a backslash: '\['

## Things you can try:
- Check only the syntax, without layout:
~~~
$ typeset check report.tps
~~~`,
	}

	unknownFunctionIssue = &Issue{
		id: UnknownFunctionId,
		mdMsg: `
# Unknown function!

The document calls a function that is not registered.

## Things you can try:
- List the available functions and their arguments:
~~~
$ typeset funcs
~~~
- Check the function name for typos; names are case sensitive`,
	}

	unexpectedArgumentsIssue = &Issue{
		id: UnexpectedArgumentsId,
		mdMsg: `
# Unexpected arguments!

A function was given arguments it does not use. Every argument must be
consumed by the function it is passed to.

## Things you can try:
- Run 'typeset funcs' to see which arguments each function accepts
- Remove the extra arguments from the call`,
	}

	unexpectedBodyIssue = &Issue{
		id: UnexpectedBodyId,
		mdMsg: `
# Unexpected or missing body!

Functions declare whether they take a body (the bracketed text right after
the call):

- **forbidden**: the call must not be followed by a body
- **optional**: a body may follow
- **expected**: a body must follow

## Things you can try:
- Run 'typeset funcs' to see the body policy of each function
- Put a space between a call and bracketed text that is not its body`,
	}

	layoutFailedIssue = &Issue{
		id: LayoutFailedId,
		mdMsg: `
# Layout failed!

The document parsed, but a function failed while it was being laid out.

## Things you can try:
- Re-run with '--verbose' to see the full error chain
- Lay out sequentially to rule out ordering problems:
~~~
$ typeset render --sequential report.tps
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Print the location of the config file:
~~~
$ typeset config path
~~~
- Write a fresh default configuration somewhere else and compare:
~~~
$ typeset config init
~~~

## Example config.cue:
~~~cue
layout: {
	concurrent: true
	page_width: 80
	font_size:  11
}
ui: color_scheme: "auto"
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

typeset could not read a file it needs.

## Things you can try:
- Check the file permissions:
~~~
$ ls -l report.tps
~~~
- Make sure the file is not locked by another program`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():        fileNotFoundIssue,
		documentTooLargeIssue.Id():    documentTooLargeIssue,
		documentParseFailedIssue.Id(): documentParseFailedIssue,
		unknownFunctionIssue.Id():     unknownFunctionIssue,
		unexpectedArgumentsIssue.Id(): unexpectedArgumentsIssue,
		unexpectedBodyIssue.Id():      unexpectedBodyIssue,
		layoutFailedIssue.Id():        layoutFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
