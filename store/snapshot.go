package store

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ExportSnapshot streams every key/value pair in m to w as a sequence of
// length-prefixed records (uint16 key length, uint32 value length), the
// bulk backup/restore path spec.md §6 leaves to the embedding application.
// Grounded on the teacher's trie_go.DumpToFile, adapted from its generic
// KVIterator to MemBackend directly since Backend carries no iteration
// capability of its own.
func ExportSnapshot(m MemBackend, w io.Writer) (int, error) {
	var total int
	for k, v := range m {
		n, err := writeRecord(w, []byte(k), v)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// ImportSnapshot reads records written by ExportSnapshot and applies them to
// m, overwriting any existing value for a repeated key.
func ImportSnapshot(m MemBackend, r io.Reader) (int, error) {
	var total int
	for {
		k, v, done, err := readRecord(r)
		if err != nil {
			return total, err
		}
		if done {
			return total, nil
		}
		m[string(k)] = v
		total += len(k) + len(v) + 6
	}
}

func writeRecord(w io.Writer, k, v []byte) (int, error) {
	if len(k) > 0xFFFF {
		return 0, fmt.Errorf("store: snapshot key too long (%d bytes)", len(k))
	}
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(k)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return 0, err
	}
	if _, err := w.Write(k); err != nil {
		return 0, err
	}

	var vlenBuf [4]byte
	binary.LittleEndian.PutUint32(vlenBuf[:], uint32(len(v)))
	if _, err := w.Write(vlenBuf[:]); err != nil {
		return 0, err
	}
	if _, err := w.Write(v); err != nil {
		return 0, err
	}
	return len(k) + len(v) + 6, nil
}

func readRecord(r io.Reader) (k, v []byte, done bool, err error) {
	var lenBuf [2]byte
	if _, err = io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return nil, nil, true, nil
		}
		return nil, nil, false, err
	}
	klen := binary.LittleEndian.Uint16(lenBuf[:])
	k = make([]byte, klen)
	if klen > 0 {
		if _, err = io.ReadFull(r, k); err != nil {
			return nil, nil, false, err
		}
	}

	var vlenBuf [4]byte
	if _, err = io.ReadFull(r, vlenBuf[:]); err != nil {
		return nil, nil, false, err
	}
	vlen := binary.LittleEndian.Uint32(vlenBuf[:])
	v = make([]byte, vlen)
	if vlen > 0 {
		if _, err = io.ReadFull(r, v); err != nil {
			return nil, nil, false, err
		}
	}
	return k, v, false, nil
}
