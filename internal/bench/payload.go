// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

// The four payload shapes exercised by the harness: small and large, each
// by-value or behind an owning pointer. Pointer payloads transfer ownership
// through the ring and interact with the allocator on every element, the
// analogue of a move-only type.

// blockWords sizes Block at 1024 bytes.
const blockWords = 128

// Word is the small POD payload.
type Word = uint64

// Block is the large POD payload.
type Block = [blockWords]uint64

func makeWord(v uint64) Word {
	return v
}

func makeBlock(v uint64) Block {
	var b Block
	for i := range b {
		b[i] = v
	}
	return b
}

func makeWordPtr(v uint64) *Word {
	w := Word(v)
	return &w
}

func makeBlockPtr(v uint64) *Block {
	b := makeBlock(v)
	return &b
}
