package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/nisabi/zakat/hijri"
)

type hawlCmd struct {
	start string
}

func (*hawlCmd) Name() string     { return "hawl" }
func (*hawlCmd) Synopsis() string { return "show the end of the lunar holding year" }
func (*hawlCmd) Usage() string {
	return `zkt hawl [-s <start_date>]

  Prints the Gregorian date exactly one Hijri year after the start date
  (default today). That is the assessment date of the obligation whose
  holding period begins at the start date.
`
}

func (p *hawlCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "Gregorian start of the holding year. Defaults to today.")
}

func (p *hawlCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start := hijri.Today()
	if p.start != "" {
		var err error
		start, err = hijri.ParseDate(p.start)
		if err != nil {
			return fail(err)
		}
	}
	end := hijri.AddHawl(start, *adjustDays)
	fmt.Printf("start %s\n", hijri.FormatDual(start, *adjustDays))
	fmt.Printf("end   %s\n", hijri.FormatDual(end, *adjustDays))
	return subcommands.ExitSuccess
}
