package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// oneRecordArg reads the single positional record id these commands share.
func oneRecordArg(f *flag.FlagSet, usage string) (string, subcommands.ExitStatus) {
	if f.NArg() != 1 {
		fmt.Println(usage)
		return "", subcommands.ExitUsageError
	}
	return f.Arg(0), subcommands.ExitSuccess
}

type recomputeCmd struct{}

func (*recomputeCmd) Name() string     { return "recompute" }
func (*recomputeCmd) Synopsis() string { return "refresh a draft or unlocked record" }
func (*recomputeCmd) Usage() string {
	return `zkt recompute <record_id>

  Recomputes every derived value of an editable record from the current
  data files. Finalized records are refused; unlock first.
`
}
func (*recomputeCmd) SetFlags(_ *flag.FlagSet) {}

func (p *recomputeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := oneRecordArg(f, p.Usage())
	if status != subcommands.ExitSuccess {
		return status
	}
	svc, err := newService()
	if err != nil {
		return fail(err)
	}
	r, err := svc.Recompute(ctx, id)
	if err != nil {
		return fail(err)
	}
	printRecord(r)
	return subcommands.ExitSuccess
}

type finalizeCmd struct{}

func (*finalizeCmd) Name() string     { return "finalize" }
func (*finalizeCmd) Synopsis() string { return "finalize a record, freezing its computation" }
func (*finalizeCmd) Usage() string {
	return `zkt finalize <record_id>

  Recomputes the record one last time from the current data files and
  freezes it. A finalized record never changes until it is unlocked.
`
}
func (*finalizeCmd) SetFlags(_ *flag.FlagSet) {}

func (p *finalizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := oneRecordArg(f, p.Usage())
	if status != subcommands.ExitSuccess {
		return status
	}
	svc, err := newService()
	if err != nil {
		return fail(err)
	}
	r, err := svc.Finalize(ctx, id)
	if err != nil {
		return fail(err)
	}
	printRecord(r)
	return subcommands.ExitSuccess
}

type unlockCmd struct{}

func (*unlockCmd) Name() string     { return "unlock" }
func (*unlockCmd) Synopsis() string { return "reopen a finalized record for edits" }
func (*unlockCmd) Usage() string {
	return `zkt unlock <record_id>

  Moves a finalized record back to an editable state. The stored values
  are kept until the next recompute or finalize.
`
}
func (*unlockCmd) SetFlags(_ *flag.FlagSet) {}

func (p *unlockCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := oneRecordArg(f, p.Usage())
	if status != subcommands.ExitSuccess {
		return status
	}
	svc, err := newService()
	if err != nil {
		return fail(err)
	}
	r, err := svc.Unlock(ctx, id)
	if err != nil {
		return fail(err)
	}
	printRecord(r)
	return subcommands.ExitSuccess
}

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a draft record" }
func (*deleteCmd) Usage() string {
	return `zkt delete <record_id>

  Deletes a draft record. Finalized and unlocked records are refused.
`
}
func (*deleteCmd) SetFlags(_ *flag.FlagSet) {}

func (p *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := oneRecordArg(f, p.Usage())
	if status != subcommands.ExitSuccess {
		return status
	}
	svc, err := newService()
	if err != nil {
		return fail(err)
	}
	if err := svc.Delete(ctx, id); err != nil {
		return fail(err)
	}
	fmt.Printf("record %s deleted\n", id)
	return subcommands.ExitSuccess
}

type reconcileCmd struct{}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "show paid and outstanding amounts of a record" }
func (*reconcileCmd) Usage() string {
	return `zkt reconcile <record_id>

  Sums the payments logged against the record and prints the outstanding
  amount. The projection is computed on read; the record itself is never
  touched.
`
}
func (*reconcileCmd) SetFlags(_ *flag.FlagSet) {}

func (p *reconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := oneRecordArg(f, p.Usage())
	if status != subcommands.ExitSuccess {
		return status
	}
	svc, err := newService()
	if err != nil {
		return fail(err)
	}
	rc, err := svc.Reconcile(ctx, id)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("record      %s\n", rc.RecordID)
	fmt.Printf("zakat due   %s\n", rc.ZakatAmount)
	fmt.Printf("paid        %s\n", rc.Paid)
	fmt.Printf("outstanding %s\n", rc.Outstanding)
	return subcommands.ExitSuccess
}
