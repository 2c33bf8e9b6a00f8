package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/nisabi/zakat"
	"github.com/nisabi/zakat/hijri"
)

type draftCmd struct {
	start string
	basis string
}

func (*draftCmd) Name() string     { return "draft" }
func (*draftCmd) Synopsis() string { return "open a new draft obligation record" }
func (*draftCmd) Usage() string {
	return `zkt draft [-s <hawl_start>] [-basis gold|silver]

  Opens a draft record for the holding year starting at the given
  Gregorian date (default today). All derived values are computed from
  the current data files, but the draft stays editable: finalize is the
  authoritative computation.
`
}

func (p *draftCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "Gregorian start of the holding year. Defaults to today.")
	f.StringVar(&p.basis, "basis", string(zakat.SilverBasis), "Metal basis for the nisab threshold.")
}

func (p *draftCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start := hijri.Today()
	if p.start != "" {
		var err error
		start, err = hijri.ParseDate(p.start)
		if err != nil {
			return fail(err)
		}
	}
	basis, err := zakat.ParseMetalBasis(p.basis)
	if err != nil {
		return fail(err)
	}
	svc, err := newService()
	if err != nil {
		return fail(err)
	}
	r, err := svc.Create(ctx, start, basis, *currencyCode)
	if err != nil {
		return fail(err)
	}
	printRecord(r)
	return subcommands.ExitSuccess
}

type recordsCmd struct{}

func (*recordsCmd) Name() string     { return "records" }
func (*recordsCmd) Synopsis() string { return "list all obligation records" }
func (*recordsCmd) Usage() string {
	return `zkt records

  Lists every obligation record with its status, holding year and zakat
  amount.
`
}

func (*recordsCmd) SetFlags(_ *flag.FlagSet) {}

func (p *recordsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := newService()
	if err != nil {
		return fail(err)
	}
	records, err := svc.Records(ctx)
	if err != nil {
		return fail(err)
	}
	for _, r := range records {
		fmt.Printf("%-36s %-9s %s -> %s  zakat %s\n", r.ID, r.Status, r.HawlStart, r.HawlEnd, r.ZakatAmount)
	}
	return subcommands.ExitSuccess
}
