package zakat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the whole data set as JSONL files in one directory:
// assets.jsonl, liabilities.jsonl, payments.jsonl, records.jsonl. This
// is the local-first store; the directory is the user's private data
// replica and works fine under git.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

const (
	assetsFile      = "assets.jsonl"
	liabilitiesFile = "liabilities.jsonl"
	paymentsFile    = "payments.jsonl"
	recordsFile     = "records.jsonl"
)

// NewFileStore opens (or initializes) the data directory.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// readFile decodes one JSONL file; a missing file is an empty data set.
func readFile[T any](s *FileStore, name string, decode func(*bytes.Reader) (T, error)) (T, error) {
	var zero T
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("cannot read %q: %w", name, err)
	}
	return decode(bytes.NewReader(content))
}

// writeFile rewrites one JSONL file atomically: the content is fully
// encoded in memory, written to a temp file, then renamed over the
// target. A partially-written file is never observable.
func (s *FileStore) writeFile(name string, encode func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// Assets implements AssetStore.
func (s *FileStore) Assets(_ context.Context) ([]Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readFile(s, assetsFile, func(r *bytes.Reader) ([]Asset, error) { return DecodeAssets(r) })
}

// PutAsset inserts or replaces an asset by id.
func (s *FileStore) PutAsset(ctx context.Context, a Asset) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	assets, err := readFile(s, assetsFile, func(r *bytes.Reader) ([]Asset, error) { return DecodeAssets(r) })
	if err != nil {
		return err
	}
	assets = upsert(assets, a, func(x Asset) string { return x.ID })
	return s.writeFile(assetsFile, func(buf *bytes.Buffer) error { return EncodeAssets(buf, assets) })
}

// Liabilities implements LiabilityStore.
func (s *FileStore) Liabilities(_ context.Context) ([]Liability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readFile(s, liabilitiesFile, func(r *bytes.Reader) ([]Liability, error) { return DecodeLiabilities(r) })
}

// PutLiability inserts or replaces a liability by id.
func (s *FileStore) PutLiability(ctx context.Context, l Liability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	liabilities, err := readFile(s, liabilitiesFile, func(r *bytes.Reader) ([]Liability, error) { return DecodeLiabilities(r) })
	if err != nil {
		return err
	}
	liabilities = upsert(liabilities, l, func(x Liability) string { return x.ID })
	return s.writeFile(liabilitiesFile, func(buf *bytes.Buffer) error { return EncodeLiabilities(buf, liabilities) })
}

// PaymentsByRecord implements PaymentStore.
func (s *FileStore) PaymentsByRecord(_ context.Context, recordID string) ([]PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payments, err := readFile(s, paymentsFile, func(r *bytes.Reader) ([]PaymentRecord, error) { return DecodePayments(r) })
	if err != nil {
		return nil, err
	}
	var out []PaymentRecord
	for _, p := range payments {
		if p.ObligationRecordID == recordID {
			out = append(out, p)
		}
	}
	return out, nil
}

// PutPayment inserts or replaces a payment by id.
func (s *FileStore) PutPayment(ctx context.Context, p PaymentRecord) error {
	if p.ID == "" || p.ObligationRecordID == "" {
		return fmt.Errorf("payment %q: missing id or record link", p.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	payments, err := readFile(s, paymentsFile, func(r *bytes.Reader) ([]PaymentRecord, error) { return DecodePayments(r) })
	if err != nil {
		return err
	}
	payments = upsert(payments, p, func(x PaymentRecord) string { return x.ID })
	return s.writeFile(paymentsFile, func(buf *bytes.Buffer) error { return EncodePayments(buf, payments) })
}

// SaveRecord implements RecordStore.
func (s *FileStore) SaveRecord(_ context.Context, r *ObligationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readFile(s, recordsFile, func(rd *bytes.Reader) ([]*ObligationRecord, error) { return DecodeRecords(rd) })
	if err != nil {
		return err
	}
	records = upsert(records, r.clone(), func(x *ObligationRecord) string { return x.ID })
	return s.writeFile(recordsFile, func(buf *bytes.Buffer) error { return EncodeRecords(buf, records) })
}

// Record implements RecordStore.
func (s *FileStore) Record(ctx context.Context, id string) (*ObligationRecord, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("record %q: %w", id, ErrRecordNotFound)
}

// Records implements RecordStore.
func (s *FileStore) Records(_ context.Context) ([]*ObligationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readFile(s, recordsFile, func(rd *bytes.Reader) ([]*ObligationRecord, error) { return DecodeRecords(rd) })
}

// DeleteRecord implements RecordStore.
func (s *FileStore) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readFile(s, recordsFile, func(rd *bytes.Reader) ([]*ObligationRecord, error) { return DecodeRecords(rd) })
	if err != nil {
		return err
	}
	kept := records[:0]
	found := false
	for _, r := range records {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("record %q: %w", id, ErrRecordNotFound)
	}
	return s.writeFile(recordsFile, func(buf *bytes.Buffer) error { return EncodeRecords(buf, kept) })
}

// upsert replaces the element with the same key or appends.
func upsert[T any](list []T, v T, key func(T) string) []T {
	for i := range list {
		if key(list[i]) == key(v) {
			list[i] = v
			return list
		}
	}
	return append(list, v)
}

// MemoryStore is an in-memory implementation of all four stores, used
// in tests and as a scratch data set.
type MemoryStore struct {
	mu          sync.RWMutex
	assets      []Asset
	liabilities []Liability
	payments    []PaymentRecord
	records     map[string]*ObligationRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*ObligationRecord)}
}

// PutAsset inserts or replaces an asset by id.
func (s *MemoryStore) PutAsset(a Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = upsert(s.assets, a, func(x Asset) string { return x.ID })
}

// PutLiability inserts or replaces a liability by id.
func (s *MemoryStore) PutLiability(l Liability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liabilities = upsert(s.liabilities, l, func(x Liability) string { return x.ID })
}

// PutPayment inserts or replaces a payment by id.
func (s *MemoryStore) PutPayment(p PaymentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = upsert(s.payments, p, func(x PaymentRecord) string { return x.ID })
}

// Assets implements AssetStore.
func (s *MemoryStore) Assets(_ context.Context) ([]Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Asset, len(s.assets))
	copy(out, s.assets)
	return out, nil
}

// Liabilities implements LiabilityStore.
func (s *MemoryStore) Liabilities(_ context.Context) ([]Liability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Liability, len(s.liabilities))
	copy(out, s.liabilities)
	return out, nil
}

// PaymentsByRecord implements PaymentStore.
func (s *MemoryStore) PaymentsByRecord(_ context.Context, recordID string) ([]PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []PaymentRecord
	for _, p := range s.payments {
		if p.ObligationRecordID == recordID {
			out = append(out, p)
		}
	}
	return out, nil
}

// SaveRecord implements RecordStore.
func (s *MemoryStore) SaveRecord(_ context.Context, r *ObligationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = r.clone()
	return nil
}

// Record implements RecordStore.
func (s *MemoryStore) Record(_ context.Context, id string) (*ObligationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("record %q: %w", id, ErrRecordNotFound)
	}
	return r.clone(), nil
}

// Records implements RecordStore.
func (s *MemoryStore) Records(_ context.Context) ([]*ObligationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ObligationRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.clone())
	}
	return out, nil
}

// DeleteRecord implements RecordStore.
func (s *MemoryStore) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("record %q: %w", id, ErrRecordNotFound)
	}
	delete(s.records, id)
	return nil
}
