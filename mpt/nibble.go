package mpt

// nibbles unpacks a byte key into its half-byte (nibble) path, most
// significant nibble first. This is the radix-16 path alphabet the trie
// branches on, grounded on the teacher's common.UnpackBytes (16-ary
// unpacking for common.PathArity16).
func nibbles(key []byte) []byte {
	out := make([]byte, len(key)*2)
	for i, b := range key {
		out[i*2] = b >> 4
		out[i*2+1] = b & 0x0f
	}
	return out
}

// nibblesToBytes packs an even-length nibble path back into bytes. It
// panics if the path has odd length; callers only invoke this on full keys,
// which are always byte-aligned.
func nibblesToBytes(path []byte) []byte {
	if len(path)%2 != 0 {
		panic("mpt: nibblesToBytes: odd-length path")
	}
	out := make([]byte, len(path)/2)
	for i := range out {
		out[i] = path[i*2]<<4 | path[i*2+1]
	}
	return out
}

// commonPrefixLen returns the length of the longest common prefix of a, b.
func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// packNibbles packs a nibble path into bytes for use in a physical node
// key (C3): one nibble per 4 bits, with a trailing zero nibble when the
// path has odd length. The physical key additionally carries the path's
// nibble count ahead of this packing (see nodePhysicalKey) so that an
// odd-length path packed with a trailing zero can never be confused with a
// different, even-length path that happens to produce the same bytes.
func packNibbles(path []byte) []byte {
	n := len(path)
	out := make([]byte, (n+1)/2)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			out[i/2] = path[i] << 4
		} else {
			out[i/2] |= path[i]
		}
	}
	return out
}

// nodePhysicalKey builds the physical key the overlay stores a node's
// encoding under (C3, spec.md §4.3): the nibble-path prefix from the trie
// root concatenated with the node's digest. The prefix is itself
// length-tagged (one byte nibble count, then the packed nibbles) so that
// distinct paths never collide purely through packing ambiguity.
func nodePhysicalKey(pathFromRoot []byte, digest Digest) []byte {
	packed := packNibbles(pathFromRoot)
	out := make([]byte, 0, 1+len(packed)+DigestLength)
	out = append(out, byte(len(pathFromRoot)))
	out = append(out, packed...)
	out = append(out, digest[:]...)
	return out
}
