package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/nisabi/zakat"
)

type addLiabilityCmd struct {
	id       string
	name     string
	amount   float64
	currency string
}

func (*addLiabilityCmd) Name() string     { return "add-liability" }
func (*addLiabilityCmd) Synopsis() string { return "add or update one liability" }
func (*addLiabilityCmd) Usage() string {
	return `zkt add-liability -name <name> -v <amount> [-id <id>]

  Inserts a liability, or replaces it when the id already exists.
  Liabilities are deducted from eligible wealth before the nisab
  comparison.
`
}

func (p *addLiabilityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Liability id. Generated when empty.")
	f.StringVar(&p.name, "name", "", "Display name.")
	f.Float64Var(&p.amount, "v", 0, "Amount due.")
	f.StringVar(&p.currency, "c", "", "Currency of the amount. Defaults to the global -currency.")
}

func (p *addLiabilityCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.name == "" {
		return fail(fmt.Errorf("missing -name"))
	}
	cur := p.currency
	if cur == "" {
		cur = *currencyCode
	}
	l := zakat.Liability{
		ID:     p.id,
		Name:   p.name,
		Amount: zakat.M(p.amount, cur),
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.PutLiability(ctx, l); err != nil {
		return fail(err)
	}
	fmt.Printf("liability %s (%s) saved: %s\n", l.ID, l.Name, l.Amount)
	return subcommands.ExitSuccess
}
