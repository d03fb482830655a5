package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/sha3"
)

var bucketVerifications = []byte("verifications_by_digest")

// AuditStore keeps an append-only record of verification outcomes, keyed by
// the digest of the request that produced them. It exists for audit
// pipelines; the verification core never touches it.
type AuditStore struct {
	db *bolt.DB
}

type AuditRecord struct {
	Tool      string `json:"tool"`
	Valid     bool   `json:"valid"`
	ErrorKind string `json:"error_kind,omitempty"`
	UnixTime  int64  `json:"unix_time"`
}

func AuditPath(dataDir string) string {
	return filepath.Join(dataDir, "audit.db")
}

func OpenAuditStore(dataDir string) (*AuditStore, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(AuditPath(dataDir), 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVerifications)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &AuditStore{db: db}, nil
}

// RecordKey derives the audit key for a request: SHA3-256 over the tool name
// and the raw parameter bytes, separated by a zero byte.
func RecordKey(tool string, rawParams []byte) [32]byte {
	h := sha3.New256()
	h.Write([]byte(tool))
	h.Write([]byte{0})
	h.Write(rawParams)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (s *AuditStore) Put(key [32]byte, rec AuditRecord) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil audit store")
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVerifications).Put(key[:], raw)
	})
}

// Get returns the stored record or nil when the key is absent.
func (s *AuditStore) Get(key [32]byte) (*AuditRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("nil audit store")
	}
	var rec *AuditRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketVerifications).Get(key[:])
		if raw == nil {
			return nil
		}
		var decoded AuditRecord
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		rec = &decoded
		return nil
	})
	return rec, err
}

func (s *AuditStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
