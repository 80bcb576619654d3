package prompt

import "hash/fnv"

// Hash is 32-bit FNV-1a over the UTF-8 bytes of s. It is stable across
// processes and platforms, so the same theme always yields the same tip,
// seed and placeholder colour.
func Hash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// SceneSeed derives the style-coherence seed shared by every image prompt in
// a pack. It is non-negative and fits an int32 so it can be passed to image
// APIs that take a signed 32-bit seed.
func SceneSeed(theme string) int32 {
	return int32(Hash(theme) & 0x7fffffff)
}
