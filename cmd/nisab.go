package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/nisabi/zakat"
)

type nisabCmd struct {
	basis string
}

func (*nisabCmd) Name() string     { return "nisab" }
func (*nisabCmd) Synopsis() string { return "show the current nisab threshold" }
func (*nisabCmd) Usage() string {
	return `zkt nisab [-basis gold|silver]

  Computes the nisab threshold from the current metal price: the standard
  weight (85g gold, 595g silver) times the per-gram market price. Uses
  the live goldapi.io source unless -gold-price/-silver-price pin a
  fixed price.
`
}

func (p *nisabCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.basis, "basis", string(zakat.SilverBasis), "Metal basis for the threshold.")
}

func (p *nisabCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	basis, err := zakat.ParseMetalBasis(p.basis)
	if err != nil {
		return fail(err)
	}
	threshold, err := newEvaluator().Threshold(basis, *currencyCode)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("nisab (%s, %sg at %s/g): %s\n", threshold.Basis, basis.StandardWeight(), threshold.PricePerGram, threshold.Amount)
	fmt.Printf("price fetched %s\n", threshold.FetchedAt.Format("2006-01-02 15:04"))
	if threshold.Stale {
		fmt.Println("warning: the price is more than 7 days old, refresh advised")
	}
	return subcommands.ExitSuccess
}
