package zakat

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists the local data set as JSONL, one entity per line:
// human-readable, diff-friendly, fit for a private git repo. Each file
// holds one entity kind, so decoding needs no command discriminator.

// decodeLines reads a JSONL stream and calls add for each non-empty
// line already unmarshalled into T.
func decodeLines[T any](r io.Reader, kind string, add func(T) error) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(line, &v); err != nil {
			return fmt.Errorf("format error in %s line %d: %w", kind, n, err)
		}
		if err := add(v); err != nil {
			return fmt.Errorf("invalid %s line %d: %w", kind, n, err)
		}
	}
	return scanner.Err()
}

// encodeLines writes each value as one JSON line.
func encodeLines[T any](w io.Writer, values []T) error {
	enc := json.NewEncoder(w)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeAssets reads assets from a JSONL stream. An asset re-declared
// with an already-seen id replaces the earlier line, which makes
// re-imports idempotent by natural key.
func DecodeAssets(r io.Reader) ([]Asset, error) {
	var out []Asset
	index := make(map[string]int)
	err := decodeLines(r, "assets", func(a Asset) error {
		if err := a.Validate(); err != nil {
			return err
		}
		if i, ok := index[a.ID]; ok {
			out[i] = a
			return nil
		}
		index[a.ID] = len(out)
		out = append(out, a)
		return nil
	})
	return out, err
}

// EncodeAssets writes assets as JSONL.
func EncodeAssets(w io.Writer, assets []Asset) error { return encodeLines(w, assets) }

// DecodeLiabilities reads liabilities from a JSONL stream, idempotent
// by id like DecodeAssets.
func DecodeLiabilities(r io.Reader) ([]Liability, error) {
	var out []Liability
	index := make(map[string]int)
	err := decodeLines(r, "liabilities", func(l Liability) error {
		if l.ID == "" {
			return fmt.Errorf("liability %q: missing id", l.Name)
		}
		if i, ok := index[l.ID]; ok {
			out[i] = l
			return nil
		}
		index[l.ID] = len(out)
		out = append(out, l)
		return nil
	})
	return out, err
}

// EncodeLiabilities writes liabilities as JSONL.
func EncodeLiabilities(w io.Writer, liabilities []Liability) error {
	return encodeLines(w, liabilities)
}

// DecodePayments reads payment records from a JSONL stream.
func DecodePayments(r io.Reader) ([]PaymentRecord, error) {
	var out []PaymentRecord
	index := make(map[string]int)
	err := decodeLines(r, "payments", func(p PaymentRecord) error {
		if p.ID == "" || p.ObligationRecordID == "" {
			return fmt.Errorf("payment %q: missing id or record link", p.ID)
		}
		if i, ok := index[p.ID]; ok {
			out[i] = p
			return nil
		}
		index[p.ID] = len(out)
		out = append(out, p)
		return nil
	})
	return out, err
}

// EncodePayments writes payments as JSONL.
func EncodePayments(w io.Writer, payments []PaymentRecord) error {
	return encodeLines(w, payments)
}

// DecodeRecords reads obligation records from a JSONL stream.
func DecodeRecords(r io.Reader) ([]*ObligationRecord, error) {
	var out []*ObligationRecord
	index := make(map[string]int)
	err := decodeLines(r, "records", func(rec ObligationRecord) error {
		if rec.ID == "" {
			return fmt.Errorf("record: missing id")
		}
		if _, err := ParseRecordStatus(string(rec.Status)); err != nil {
			return err
		}
		clone := rec
		if i, ok := index[rec.ID]; ok {
			out[i] = &clone
			return nil
		}
		index[rec.ID] = len(out)
		out = append(out, &clone)
		return nil
	})
	return out, err
}

// EncodeRecords writes obligation records as JSONL.
func EncodeRecords(w io.Writer, records []*ObligationRecord) error {
	return encodeLines(w, records)
}
