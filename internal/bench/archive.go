package bench

import (
	"encoding/binary"
	"encoding/json"

	"github.com/scigolib/initarray/internal/utils"
	bolt "go.etcd.io/bbolt"
)

const bucketResults = "results"

// Archive is an append-only history of benchmark results in a bolt
// database, keyed by insertion sequence. It supplements the per-run CSV
// with a queryable record across runs.
type Archive struct {
	db *bolt.DB
}

// OpenArchive opens (creating if needed) the archive database at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, utils.WrapError("archive open failed", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketResults))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, utils.WrapError("archive init failed", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Append stores one result and returns its sequence number.
func (a *Archive) Append(r Result) (uint64, error) {
	var seq uint64
	err := a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketResults))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	if err != nil {
		return 0, utils.WrapError("archive append failed", err)
	}
	return seq, nil
}

// Len returns the number of archived results.
func (a *Archive) Len() (int, error) {
	var n int
	err := a.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketResults)).Stats().KeyN
		return nil
	})
	return n, err
}

// Iterate calls f with every archived result in insertion order.
func (a *Archive) Iterate(f func(seq uint64, r Result) error) error {
	return a.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketResults)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var r Result
			if err := json.Unmarshal(v, &r); err != nil {
				return utils.WrapError("archive decode failed", err)
			}
			if err := f(unmarshalSeq(k), r); err != nil {
				return err
			}
		}
		return nil
	})
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(k []byte) uint64 {
	return binary.BigEndian.Uint64(k)
}
