// Package cmd implements the CLI application to manage zakat data and
// obligation records.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/nisabi/zakat"
	"github.com/nisabi/zakat/hijri"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&convertCmd{}, "calendar")
	c.Register(&hawlCmd{}, "calendar")

	c.Register(&addAssetCmd{}, "data")
	c.Register(&listAssetsCmd{}, "data")
	c.Register(&addLiabilityCmd{}, "data")
	c.Register(&payCmd{}, "data")

	c.Register(&nisabCmd{}, "assessment")
	c.Register(&assessCmd{}, "assessment")

	c.Register(&draftCmd{}, "records")
	c.Register(&recordsCmd{}, "records")
	c.Register(&recomputeCmd{}, "records")
	c.Register(&finalizeCmd{}, "records")
	c.Register(&unlockCmd{}, "records")
	c.Register(&deleteCmd{}, "records")
	c.Register(&reconcileCmd{}, "records")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", ".zakat", "Path to the data directory holding the JSONL files")
var adjustDays = flag.Int("adjust", 0, "Moon-sighting adjustment in days, applied to every calendar conversion")
var methodologyName = flag.String("methodology", "standard", "Jurisprudential methodology (standard, hanafi, shafi)")
var currencyCode = flag.String("currency", "USD", "Assessment currency (ISO 4217 code)")
var goldPrice = flag.Float64("gold-price", 0, "Fixed gold price per gram, bypassing the live source")
var silverPrice = flag.Float64("silver-price", 0, "Fixed silver price per gram, bypassing the live source")

// openStore opens the app data directory as a FileStore.
func openStore() (*zakat.FileStore, error) {
	return zakat.NewFileStore(*dataDir)
}

// newEvaluator builds the nisab evaluator: fixed prices when the user
// pinned them on the command line, the live goldapi.io source otherwise.
func newEvaluator() *zakat.Evaluator {
	if *goldPrice > 0 || *silverPrice > 0 {
		fixed := zakat.FixedPriceSource{}
		if *goldPrice > 0 {
			fixed[zakat.GoldBasis] = zakat.M(*goldPrice, *currencyCode)
		}
		if *silverPrice > 0 {
			fixed[zakat.SilverBasis] = zakat.M(*silverPrice, *currencyCode)
		}
		return zakat.NewEvaluator(fixed)
	}
	return zakat.NewEvaluator(zakat.NewGoldAPISource())
}

// newService wires the lifecycle service over the app data directory.
func newService() (*zakat.Service, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	m, err := zakat.ParseMethodology(*methodologyName)
	if err != nil {
		return nil, err
	}
	svc := zakat.NewService(store, store, store, store, newEvaluator(),
		zakat.WithMethodology(m),
		zakat.WithAdjustmentDays(*adjustDays),
	)
	return svc, nil
}

// parseHijri reads a Hijri date in "year-month-day" form, e.g. 1445-9-15.
func parseHijri(str string) (hijri.HijriDate, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(strings.TrimSpace(str), "%d-%d-%d", &y, &m, &d); err != nil {
		return hijri.HijriDate{}, fmt.Errorf("invalid Hijri date %q (want year-month-day): %w", str, err)
	}
	return hijri.NewHijriDate(y, m, d)
}

// fail prints the error and maps it to the exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// printRecord writes a one-record summary to stdout.
func printRecord(r *zakat.ObligationRecord) {
	fmt.Printf("record %s [%s]\n", r.ID, r.Status)
	fmt.Printf("  hawl        %s -> %s\n", hijri.FormatDual(r.HawlStart, r.AdjustmentDays), hijri.FormatDual(r.HawlEnd, r.AdjustmentDays))
	fmt.Printf("  methodology %s, nisab basis %s\n", r.Methodology, r.Basis)
	fmt.Printf("  wealth      %s total, %s liabilities, %s zakatable\n", r.TotalWealth, r.TotalLiabilities, r.ZakatableWealth)
	fmt.Printf("  nisab       %s", r.NisabAtStart)
	if r.NisabStale {
		fmt.Printf(" (stale price, refresh advised)")
	}
	fmt.Println()
	fmt.Printf("  zakat due   %s\n", r.ZakatAmount)
}
