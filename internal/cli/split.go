package cli

import (
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dayshift/internal/ir"
	"github.com/roach88/dayshift/internal/request"
	"github.com/roach88/dayshift/internal/tokenlist"
)

// SplitOptions holds flags for the split command.
type SplitOptions struct {
	*RootOptions
	Body  string   // JSON object, keyed text, or @file
	Query string   // input=...
	Items []string // pre-split items
}

// listView prints one item per line in text mode.
type listView struct {
	tokenlist.TokenList
}

func (v listView) String() string {
	return strings.Join(v.Items, "\n")
}

// NewSplitCommand creates the split command.
func NewSplitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SplitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "split [TEXT]",
		Short: "Split a delimited list into tokens",
		Long: `Split comma-delimited text into trimmed, unquoted tokens.

Entries may be wrapped in single or double quotes, and a backslash escapes
the next character inside quotes. Empty entries are dropped; order and
duplicates are kept.

The text can be given as an argument, as a body (a JSON object with an
"input" key, or text optionally prefixed with "input:"), as a query string,
or as pre-split --item values.

Exit codes:
  0 - List tokenized
  1 - Input rejected
  2 - Command error

Examples:
  dayshift split '"id1", "id2", "id 3"'
  dayshift split --body 'input: a, b, c'
  dayshift split --body '{"input":["a"," b "]}' --format json
  dayshift split --item a --item b
  dayshift split --query 'input=a,b'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Body, "body", "", "request body, or @file")
	cmd.Flags().StringVar(&opts.Query, "query", "", "form-encoded request")
	cmd.Flags().StringArrayVar(&opts.Items, "item", nil, "pre-split item (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("body", "query", "item")

	return cmd
}

func runSplit(opts *SplitOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	req, err := opts.request(cmd, args)
	if err != nil {
		return err
	}

	eval, closeFn, err := opts.newEvaluator(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	ev, err := eval.Evaluate(ctx, ir.OpSplitList, req)
	var view listView
	if err == nil {
		err = decodeResult(ev, &view.TokenList)
	}
	return opts.report(cmd, view, ev, err)
}

// request builds the split_list request object from whichever input form
// was given. Bodies that are not JSON objects are rejected here; every
// other input failure is left to the evaluator so it is journaled.
func (o *SplitOptions) request(cmd *cobra.Command, args []string) (ir.IRObject, error) {
	flags := cmd.Flags()
	if len(args) > 0 && (flags.Changed("body") || flags.Changed("query") || flags.Changed("item")) {
		return nil, NewExitError(ExitCommandError, "TEXT cannot be combined with --body, --query or --item")
	}

	switch {
	case flags.Changed("item"):
		items := make(ir.IRArray, len(o.Items))
		for i, item := range o.Items {
			items[i] = ir.IRString(item)
		}
		return ir.IRObject{"input": items}, nil
	case flags.Changed("body"):
		body, err := readBody(cmd, o.Body)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(strings.TrimSpace(string(body)), "{") {
			return request.TextObject(string(body)), nil
		}
		obj, err := request.DecodeObject(body)
		if err != nil {
			return nil, o.reject(cmd, err, "")
		}
		return obj, nil
	case flags.Changed("query"):
		values, err := url.ParseQuery(strings.TrimPrefix(o.Query, "?"))
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --query", err)
		}
		return request.ListObject(values), nil
	case len(args) == 1:
		return request.TextObject(args[0]), nil
	default:
		return nil, NewExitError(ExitCommandError, "no input: pass TEXT, --body, --query or --item")
	}
}
