package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/nisabi/zakat"
)

type addAssetCmd struct {
	id         string
	name       string
	kind       string
	value      float64
	currency   string
	ineligible bool
	modifier   float64
	treatment  string
	archived   bool
}

func (*addAssetCmd) Name() string     { return "add-asset" }
func (*addAssetCmd) Synopsis() string { return "add or update one asset" }
func (*addAssetCmd) Usage() string {
	return `zkt add-asset -name <name> -type <type> -v <value> [-id <id>] [-ineligible] [-modifier <f>] [-treatment <t>]

  Inserts an asset into the data directory, or replaces it when an asset
  with the same id already exists. Types: cash, gold, silver, investment,
  retirement, cryptocurrency, real-estate, receivable, other.
`
}

func (p *addAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Asset id. Generated when empty; pass an existing id to update.")
	f.StringVar(&p.name, "name", "", "Display name.")
	f.StringVar(&p.kind, "type", string(zakat.Cash), "Asset type.")
	f.Float64Var(&p.value, "v", 0, "Current value in the assessment currency.")
	f.StringVar(&p.currency, "c", "", "Currency of the value. Defaults to the global -currency.")
	f.BoolVar(&p.ineligible, "ineligible", false, "Exclude from the zakatable base regardless of type.")
	f.Float64Var(&p.modifier, "modifier", 0, "Fraction of the value that counts, in [0,1]. 0 means unset.")
	f.StringVar(&p.treatment, "treatment", "", "Retirement treatment (full, net-value, passive, deferred).")
	f.BoolVar(&p.archived, "archived", false, "Keep the asset on file but out of every computation.")
}

func (p *addAssetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.name == "" {
		return fail(fmt.Errorf("missing -name"))
	}
	treatment, err := zakat.ParseRetirementTreatment(p.treatment)
	if err != nil {
		return fail(err)
	}
	cur := p.currency
	if cur == "" {
		cur = *currencyCode
	}
	a := zakat.Asset{
		ID:                  p.id,
		Name:                p.name,
		Type:                zakat.AssetType(p.kind),
		Value:               zakat.M(p.value, cur),
		ZakatEligible:       !p.ineligible,
		RetirementTreatment: treatment,
		Archived:            p.archived,
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if p.modifier > 0 {
		a.CalculationModifier = zakat.F(p.modifier)
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if err := store.PutAsset(ctx, a); err != nil {
		return fail(err)
	}
	fmt.Printf("asset %s (%s) saved: %s\n", a.ID, a.Name, a.Value)
	return subcommands.ExitSuccess
}

type listAssetsCmd struct{}

func (*listAssetsCmd) Name() string     { return "assets" }
func (*listAssetsCmd) Synopsis() string { return "list all assets with a per-type breakdown" }
func (*listAssetsCmd) Usage() string {
	return `zkt assets

  Lists every asset on file and a total per asset type.
`
}

func (*listAssetsCmd) SetFlags(_ *flag.FlagSet) {}

func (p *listAssetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	assets, err := store.Assets(ctx)
	if err != nil {
		return fail(err)
	}
	for _, a := range assets {
		mark := " "
		if a.Archived {
			mark = "A"
		} else if !a.ZakatEligible {
			mark = "-"
		}
		fmt.Printf("%s %-36s %-14s %-20s %s\n", mark, a.ID, a.Type, a.Name, a.Value)
	}
	types, totals := zakat.BreakdownByType(assets)
	for _, t := range types {
		fmt.Printf("  %-14s %s\n", t, totals[t])
	}
	return subcommands.ExitSuccess
}
