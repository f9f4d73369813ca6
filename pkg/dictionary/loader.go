package dictionary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

// Fixed file names of a compiled dictionary directory.
const (
	HeaderFile         = "header.sen"
	ConnectionCostFile = "connectionCost.sen"
	POSFile            = "partOfSpeech.sen"
	TokenFile          = "token.sen"
	TrieFile           = "trie.sen"
	POSIndexFile       = "posIndex.sen"

	// Referenced by the compiler tool chain, not read by the runtime.
	CharClassFile  = "charClass.sen"
	DefaultPOSFile = "defaultPos.sen"
)

// ErrCorruptDictionary marks a dictionary whose files disagree with the
// lengths declared in header.sen or whose sections cannot be decoded.
var ErrCorruptDictionary = errors.New("corrupt dictionary")

// Load reads a compiled dictionary from a directory. An empty dir selects
// the embedded default dictionary. The section set is loaded as one atomic
// unit: any missing, truncated or oversized file fails the whole load and
// no Dictionary is returned.
func Load(dir string) (*Dictionary, error) {
	if dir == "" {
		log.Debug("loading embedded default dictionary")
		return LoadFS(embeddedData())
	}
	log.Debugf("loading dictionary from %s", dir)
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads a compiled dictionary from an fs.FS holding the .sen file set.
func LoadFS(fsys fs.FS) (*Dictionary, error) {
	header, err := fs.ReadFile(fsys, HeaderFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", HeaderFile, err)
	}
	if len(header) < 16 {
		return nil, fmt.Errorf("%s: %d bytes, want 16: %w", HeaderFile, len(header), ErrCorruptDictionary)
	}

	d := &Dictionary{}
	sections := []struct {
		name string
		want int
		dst  *[]byte
	}{
		{ConnectionCostFile, int(int32(binary.BigEndian.Uint32(header[0:4]))), &d.costs},
		{POSFile, int(int32(binary.BigEndian.Uint32(header[4:8]))), &d.pos},
		{TokenFile, int(int32(binary.BigEndian.Uint32(header[8:12]))), &d.tokens},
		{TrieFile, int(int32(binary.BigEndian.Uint32(header[12:16]))), &d.trie},
	}
	for _, s := range sections {
		buf, err := fs.ReadFile(fsys, s.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.name, err)
		}
		if len(buf) != s.want {
			return nil, fmt.Errorf("%s: header declares %d bytes, have %d: %w",
				s.name, s.want, len(buf), ErrCorruptDictionary)
		}
		*s.dst = buf
	}

	if err := d.decodeSections(); err != nil {
		return nil, err
	}

	idx, err := fs.ReadFile(fsys, POSIndexFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", POSIndexFile, err)
	}
	r := &tableReader{buf: idx}
	d.posIndex = r.table()
	d.conjTypeIndex = r.table()
	d.conjFormIndex = r.table()
	if r.err != nil {
		return nil, fmt.Errorf("%s: %v: %w", POSIndexFile, r.err, ErrCorruptDictionary)
	}

	log.Debugf("dictionary loaded: %d tokens, %d pos names, %dx%d matrix",
		d.TokenCount(), len(d.posIndex), d.leftSize, d.rightSize)
	return d, nil
}

// decodeSections validates section granularity and pulls the matrix
// dimensions out of the cost buffer. A user dictionary may carry an empty
// cost section; the merged lookup then relies on the base matrix.
func (d *Dictionary) decodeSections() error {
	switch {
	case len(d.costs) == 0:
		d.leftSize, d.rightSize = 0, 0
	case len(d.costs) < 4:
		return fmt.Errorf("%s: %d bytes, want at least 4: %w", ConnectionCostFile, len(d.costs), ErrCorruptDictionary)
	default:
		d.leftSize = int(int16(binary.BigEndian.Uint16(d.costs[0:2])))
		d.rightSize = int(int16(binary.BigEndian.Uint16(d.costs[2:4])))
		if d.leftSize < 0 || d.rightSize < 0 ||
			4+d.leftSize*d.rightSize*2 > len(d.costs) {
			return fmt.Errorf("%s: matrix %dx%d exceeds section: %w",
				ConnectionCostFile, d.leftSize, d.rightSize, ErrCorruptDictionary)
		}
	}
	if len(d.tokens)%tokenRecordSize != 0 {
		return fmt.Errorf("%s: %d bytes not a record multiple: %w", TokenFile, len(d.tokens), ErrCorruptDictionary)
	}
	if len(d.trie)%8 != 0 {
		return fmt.Errorf("%s: %d bytes not a cell-pair multiple: %w", TrieFile, len(d.trie), ErrCorruptDictionary)
	}
	d.trieSplit = len(d.trie)
	return nil
}

// tableReader decodes the posIndex.sen string tables: a uint16 count
// followed by count length-prefixed UTF-8 strings, three tables in sequence.
type tableReader struct {
	buf []byte
	off int
	err error
}

func (r *tableReader) table() []string {
	if r.err != nil {
		return nil
	}
	n, ok := r.u16()
	if !ok {
		return nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		l, ok := r.u16()
		if !ok {
			return nil
		}
		if r.off+l > len(r.buf) {
			r.err = fmt.Errorf("string %d of %d truncated", i, n)
			return nil
		}
		out = append(out, string(r.buf[r.off:r.off+l]))
		r.off += l
	}
	return out
}

func (r *tableReader) u16() (int, bool) {
	if r.off+2 > len(r.buf) {
		r.err = errors.New("table truncated")
		return 0, false
	}
	v := int(binary.BigEndian.Uint16(r.buf[r.off : r.off+2]))
	r.off += 2
	return v, true
}
