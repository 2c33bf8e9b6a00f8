// Package zakat provides the calculation and lifecycle engine for
// tracking an annual wealth obligation under a local-first privacy
// model: all data lives in plain files owned by the user, and all
// computation happens in memory.
//
// The core functionalities include:
//   - Calendar Conversion: the hijri subpackage converts between the
//     civil Gregorian calendar and the tabular Hijri calendar and
//     computes the one-lunar-year (hawl) obligation period.
//   - Wealth Calculation: computing total and zakatable wealth from a
//     heterogeneous asset portfolio under methodology-specific
//     eligibility rules, with arbitrary-precision arithmetic.
//   - Nisab Evaluation: turning precious-metal market prices into the
//     minimum-wealth threshold, with quote reuse and staleness flags.
//   - Record Lifecycle: creating, finalizing, unlocking, and deleting
//     yearly obligation records, and reconciling them against recorded
//     payments on read.
//   - Data Persistence: encoding and decoding the data set to and from
//     human-readable, version-controllable JSONL files.
//
// This package serves as the foundational logic for the `zkt`
// command-line tool; presentation layers consume its pure values and
// never its internals.
package zakat
