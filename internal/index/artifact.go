package index

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// The built index persists as two sibling buckets in one bbolt file: the
// stacked vectors and the parallel identifier list, keyed by position.
// They are written together and must load together; a file where only one
// is readable counts as a load failure and forces a rebuild.
var (
	bucketVectors = []byte("vectors")
	bucketIDs     = []byte("ids")
)

// Save writes the index artifacts to path, replacing previous content.
func (x *Index) Save(path string) error {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return fmt.Errorf("open index artifact: %w", err)
	}
	defer db.Close()

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketVectors, bucketIDs} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return fmt.Errorf("reset bucket %s: %w", name, err)
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}

		vecs := tx.Bucket(bucketVectors)
		ids := tx.Bucket(bucketIDs)
		for i := range x.ids {
			key := positionKey(i)
			if err := vecs.Put(key, vectorToBytes(x.vectors[i])); err != nil {
				return fmt.Errorf("put vector %d: %w", i, err)
			}
			if err := ids.Put(key, []byte(x.ids[i])); err != nil {
				return fmt.Errorf("put id %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save index artifact: %w", err)
	}
	return nil
}

// Load reads a previously saved index from path. Returns
// domain.ErrIndexArtifactIncomplete when the two buckets are absent or
// disagree on length; callers rebuild from the live catalog on any error.
func Load(path string, embed domain.Embedder, logger *zap.Logger) (*Index, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open index artifact: %w", err)
	}
	defer db.Close()

	var entries []Entry
	err = db.View(func(tx *bbolt.Tx) error {
		vecs := tx.Bucket(bucketVectors)
		ids := tx.Bucket(bucketIDs)
		if vecs == nil || ids == nil {
			return domain.ErrIndexArtifactIncomplete
		}

		return ids.ForEach(func(k, v []byte) error {
			raw := vecs.Get(k)
			if raw == nil {
				return fmt.Errorf("id %s has no vector: %w", v, domain.ErrIndexArtifactIncomplete)
			}
			vec, err := bytesToVector(raw)
			if err != nil {
				return fmt.Errorf("id %s: %w", v, err)
			}
			entries = append(entries, Entry{ID: string(v), Vector: vec})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load index artifact: %w", err)
	}

	idx, err := Build(entries, embed, logger)
	if err != nil {
		return nil, fmt.Errorf("rebuild from artifact: %w", err)
	}
	return idx, nil
}

func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid vector data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
