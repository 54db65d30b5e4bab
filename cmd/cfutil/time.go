package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/garage-core/cliout"
	"github.com/jongio/garage-core/timeutil"
)

type timeView struct {
	Input      string `json:"input,omitempty" yaml:"input,omitempty"`
	UTC        string `json:"utc" yaml:"utc"`
	UnixMillis int64  `json:"unixMillis" yaml:"unixMillis"`
}

// newTimeCmd converts between Unix milliseconds and ISO-8601 UTC.
func newTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time [value]",
		Short: "Convert a timestamp to ISO-8601 UTC",
		Long: `Convert an ISO-8601 date-time with a UTC offset, or Unix milliseconds,
to ISO-8601 UTC with millisecond precision. Without a value the current
time is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := convertTime(args)
			if err != nil {
				return err
			}
			return cliout.Print(view, func() error {
				cliout.Label("UTC", view.UTC)
				cliout.Label("Unix ms", strconv.FormatInt(view.UnixMillis, 10))
				return nil
			})
		},
	}
}

func convertTime(args []string) (timeView, error) {
	if len(args) == 0 {
		return viewOf("", time.Now()), nil
	}

	input := args[0]
	if t, err := timeutil.ParseISO(input); err == nil {
		return viewOf(input, t), nil
	}
	t, err := timeutil.ParseUnixTime(input)
	if err != nil {
		return timeView{}, fmt.Errorf("%q is neither ISO-8601 with an offset nor Unix milliseconds: %w",
			input, errors.Join(timeutil.ErrInvalidISO, timeutil.ErrInvalidUnixTime))
	}
	return viewOf(input, t), nil
}

func viewOf(input string, t time.Time) timeView {
	return timeView{Input: input, UTC: timeutil.FormatISOUTC(t), UnixMillis: t.UnixMilli()}
}
