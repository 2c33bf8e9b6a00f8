package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/nisabi/zakat"
	"github.com/nisabi/zakat/hijri"
)

type payCmd struct {
	record    string
	amount    float64
	currency  string
	date      string
	recipient string
	note      string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "log a payment against an obligation record" }
func (*payCmd) Usage() string {
	return `zkt pay -record <id> -v <amount> [-d <date>] [-to <recipient>] [-note <note>]

  Appends a payment linked to a record. Payments never mutate the record;
  the reconcile command projects them against the frozen zakat amount.
`
}

func (p *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.record, "record", "", "Id of the obligation record being paid down.")
	f.Float64Var(&p.amount, "v", 0, "Amount paid.")
	f.StringVar(&p.currency, "c", "", "Currency of the payment. Defaults to the global -currency.")
	f.StringVar(&p.date, "d", "", "Gregorian payment date. Defaults to today.")
	f.StringVar(&p.recipient, "to", "", "Recipient of the payment.")
	f.StringVar(&p.note, "note", "", "Free-form note.")
}

func (p *payCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.record == "" {
		return fail(fmt.Errorf("missing -record"))
	}
	if p.amount <= 0 {
		return fail(fmt.Errorf("payment amount must be positive"))
	}
	when := hijri.Today()
	if p.date != "" {
		var err error
		when, err = hijri.ParseDate(p.date)
		if err != nil {
			return fail(err)
		}
	}
	cur := p.currency
	if cur == "" {
		cur = *currencyCode
	}

	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	// Refuse payments against records that do not exist.
	if _, err := store.Record(ctx, p.record); err != nil {
		return fail(err)
	}
	payment := zakat.PaymentRecord{
		ID:                 uuid.NewString(),
		ObligationRecordID: p.record,
		Amount:             zakat.M(p.amount, cur),
		PaymentDate:        when,
		Recipient:          p.recipient,
		Note:               p.note,
	}
	if err := store.PutPayment(ctx, payment); err != nil {
		return fail(err)
	}
	fmt.Printf("payment %s of %s logged against record %s\n", payment.ID, payment.Amount, p.record)
	return subcommands.ExitSuccess
}
