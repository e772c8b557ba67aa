package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dayshift/internal/instant"
	"github.com/roach88/dayshift/internal/ir"
	"github.com/roach88/dayshift/internal/request"
)

// AddDaysOptions holds flags for the add-days command.
type AddDaysOptions struct {
	*RootOptions
	Date    string
	Days    string
	Seconds string
	Nanos   string
	Body    string // JSON, or @file
	Query   string // date=...&days=...
	ISO     bool
}

// addDaysView prints a result as aligned fields in text mode and as the
// result object in JSON mode.
type addDaysView struct {
	instant.Result
}

func (v addDaysView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "date_ymd:  %s\n", v.DateYMD)
	if v.DateISO != "" {
		fmt.Fprintf(&b, "date_iso:  %s\n", v.DateISO)
	}
	fmt.Fprintf(&b, "seconds:   %s\n", v.Timestamp.Seconds)
	fmt.Fprintf(&b, "nanos:     %d", v.Timestamp.Nanos)
	return b.String()
}

// NewAddDaysCommand creates the add-days command.
func NewAddDaysCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddDaysOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add-days",
		Short: "Add whole days to a date",
		Long: `Add a whole number of days to a date and print the resulting calendar day
and exact timestamp.

The date may be an ISO-8601 string, a JSON-encoded {"seconds","nanos"}
object, or separate --seconds/--nanos. The request can instead be given as
a JSON body (--body) or a query string (--query).

Exit codes:
  0 - Date computed
  1 - Input rejected (the error code names the reason)
  2 - Command error (unreadable body, journal unavailable, etc.)

Examples:
  dayshift add-days --date 2025-08-17T00:00:00Z --days 5
  dayshift add-days --seconds 1608826790 --nanos 0 --days -10
  dayshift add-days --body '{"date":"2025-08-17","days":5,"iso":true}'
  dayshift add-days --body @request.json --format json
  dayshift add-days --query 'date=2025-08-17&days=5'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddDays(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "ISO-8601 date, or JSON-encoded {seconds, nanos}")
	cmd.Flags().StringVar(&opts.Days, "days", "", "whole days to add (may be negative)")
	cmd.Flags().StringVar(&opts.Seconds, "seconds", "", "epoch seconds, used when --date is absent")
	cmd.Flags().StringVar(&opts.Nanos, "nanos", "", "nanoseconds, used with --seconds")
	cmd.Flags().StringVar(&opts.Body, "body", "", "JSON request body, or @file")
	cmd.Flags().StringVar(&opts.Query, "query", "", "form-encoded request")
	cmd.Flags().BoolVar(&opts.ISO, "iso", false, "include date_iso in the result (default from config)")
	cmd.MarkFlagsMutuallyExclusive("body", "query", "date")
	cmd.MarkFlagsMutuallyExclusive("body", "query", "seconds")

	return cmd
}

func runAddDays(opts *AddDaysOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	req, err := opts.request(cmd)
	if err != nil {
		return err
	}

	// The request's own iso field wins; otherwise --iso, then config.
	iso := opts.RenderISO
	if cmd.Flags().Changed("iso") {
		iso = opts.ISO
	}
	if iso && !req.Present("iso") {
		req["iso"] = ir.IRBool(true)
	}

	eval, closeFn, err := opts.newEvaluator(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	ev, err := eval.Evaluate(ctx, ir.OpAddDays, req)
	var view addDaysView
	if err == nil {
		err = decodeResult(ev, &view.Result)
	}
	return opts.report(cmd, view, ev, err)
}

// request builds the add_days request object from whichever input form was
// given. Bodies that are not JSON objects are rejected here; missing and
// malformed fields are left to the evaluator so they are journaled.
func (o *AddDaysOptions) request(cmd *cobra.Command) (ir.IRObject, error) {
	switch {
	case cmd.Flags().Changed("body"):
		body, err := readBody(cmd, o.Body)
		if err != nil {
			return nil, err
		}
		obj, err := request.DecodeObject(body)
		if err != nil {
			return nil, o.reject(cmd, err, "")
		}
		return obj, nil
	case cmd.Flags().Changed("query"):
		values, err := url.ParseQuery(strings.TrimPrefix(o.Query, "?"))
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --query", err)
		}
		return request.AddDaysObject(values), nil
	default:
		values := url.Values{}
		for name, v := range map[string]string{"date": o.Date, "days": o.Days, "seconds": o.Seconds, "nanos": o.Nanos} {
			if cmd.Flags().Changed(name) {
				values.Set(name, v)
			}
		}
		return request.AddDaysObject(values), nil
	}
}
