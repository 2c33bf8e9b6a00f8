package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/nisabi/zakat"
)

type assessCmd struct {
	basis string
}

func (*assessCmd) Name() string     { return "assess" }
func (*assessCmd) Synopsis() string { return "preview the zakat assessment without creating a record" }
func (*assessCmd) Usage() string {
	return `zkt assess [-basis gold|silver]

  Computes total wealth, the zakatable base after liabilities, the nisab
  threshold and the zakat due from the current data files. Nothing is
  persisted; use "draft" to open a record.
`
}

func (p *assessCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.basis, "basis", string(zakat.SilverBasis), "Metal basis for the nisab threshold.")
}

func (p *assessCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	basis, err := zakat.ParseMetalBasis(p.basis)
	if err != nil {
		return fail(err)
	}
	m, err := zakat.ParseMethodology(*methodologyName)
	if err != nil {
		return fail(err)
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	assets, err := store.Assets(ctx)
	if err != nil {
		return fail(err)
	}
	liabilities, err := store.Liabilities(ctx)
	if err != nil {
		return fail(err)
	}
	threshold, err := newEvaluator().Threshold(basis, *currencyCode)
	if err != nil {
		return fail(err)
	}

	summary := zakat.ComputeWealth(assets, m)
	totalLiabilities := zakat.TotalLiabilities(liabilities)
	zakatable := zakat.ZakatableWealth(summary.ZakatableWealth, totalLiabilities)

	fmt.Printf("methodology      %s\n", m)
	fmt.Printf("total wealth     %s\n", summary.TotalWealth)
	fmt.Printf("eligible wealth  %s\n", summary.ZakatableWealth)
	fmt.Printf("liabilities      %s\n", totalLiabilities)
	fmt.Printf("zakatable base   %s\n", zakatable)
	fmt.Printf("nisab (%s)   %s", threshold.Basis, threshold.Amount)
	if threshold.Stale {
		fmt.Printf(" (stale price)")
	}
	fmt.Println()
	if zakat.MeetsNisab(zakatable, threshold.Amount) {
		fmt.Printf("zakat due        %s\n", zakat.ZakatDue(zakatable))
	} else {
		fmt.Println("below nisab, no zakat due")
	}
	return subcommands.ExitSuccess
}
