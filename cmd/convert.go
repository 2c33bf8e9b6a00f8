package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/nisabi/zakat/hijri"
)

type convertCmd struct {
	reverse bool
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert a date between Gregorian and Hijri" }
func (*convertCmd) Usage() string {
	return `zkt convert [-r] <date>

  Converts a Gregorian date (2024-03-25) to its Hijri equivalent, or with
  -r a Hijri date (1445-9-15) back to Gregorian. The global -adjust flag
  shifts the conversion by the local moon-sighting offset, both ways.
`
}

func (p *convertCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.reverse, "r", false, "Convert Hijri to Gregorian instead.")
}

func (p *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(p.Usage())
		return subcommands.ExitUsageError
	}

	if p.reverse {
		h, err := parseHijri(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		g, err := h.ToGregorian(*adjustDays)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("%s = %s\n", h, g)
		return subcommands.ExitSuccess
	}

	g, err := hijri.ParseDate(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	fmt.Println(hijri.FormatDual(g, *adjustDays))
	return subcommands.ExitSuccess
}
