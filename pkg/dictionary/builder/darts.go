package builder

import "encoding/binary"

// buildDoubleArray lays the sorted keys out as a darts-style double array.
// Serialization interleaves base and check as big-endian int32 cells, the
// layout the dictionary trie reader walks. Check slots store the parent's
// base value; a key's value v is stored as -(v+1) in the base of the
// terminal slot (transition code 0). The transition code of rune r is r+1.
func buildDoubleArray(keys [][]rune, vals []int32) []byte {
	d := &darts{used: map[int32]bool{}}
	d.ensure(0)
	root := d.insert(keys, vals, 0, len(keys), 0)
	d.base[0] = root

	units := int(root) + 1
	for i := len(d.check) - 1; i >= 0; i-- {
		if d.check[i] != -1 {
			if i+1 > units {
				units = i + 1
			}
			break
		}
	}

	buf := make([]byte, units*8)
	for i := 0; i < units; i++ {
		binary.BigEndian.PutUint32(buf[i*8:], uint32(d.base[i]))
		binary.BigEndian.PutUint32(buf[i*8+4:], uint32(d.check[i]))
	}
	return buf
}

type darts struct {
	base  []int32
	check []int32
	used  map[int32]bool
}

func (d *darts) ensure(n int) {
	for len(d.check) <= n {
		d.base = append(d.base, 0)
		d.check = append(d.check, -1)
	}
}

type childSpan struct {
	code   int32
	lo, hi int
}

// insert assigns a base slot for the node covering keys[lo:hi) at depth and
// returns it. keys must be sorted, so equal codes are contiguous.
func (d *darts) insert(keys [][]rune, vals []int32, lo, hi, depth int) int32 {
	var children []childSpan
	i := lo
	if i < hi && len(keys[i]) == depth {
		children = append(children, childSpan{0, i, i + 1})
		i++
	}
	for i < hi {
		c := keys[i][depth] + 1
		j := i
		for j < hi && keys[j][depth]+1 == c {
			j++
		}
		children = append(children, childSpan{c, i, j})
		i = j
	}

	var begin int32 = 1
	for {
		if d.used[begin] {
			begin++
			continue
		}
		ok := true
		for _, ch := range children {
			d.ensure(int(begin + ch.code))
			if d.check[begin+ch.code] != -1 {
				ok = false
				break
			}
		}
		if ok {
			break
		}
		begin++
	}
	d.used[begin] = true
	d.ensure(int(begin))
	for _, ch := range children {
		d.check[begin+ch.code] = begin
	}
	for _, ch := range children {
		if ch.code == 0 {
			d.base[begin] = -(vals[ch.lo] + 1)
		} else {
			d.base[begin+ch.code] = d.insert(keys, vals, ch.lo, ch.hi, depth+1)
		}
	}
	return begin
}
