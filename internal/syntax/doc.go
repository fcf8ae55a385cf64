// Package syntax implements the lossless syntax tree.
//
// The tree has two layers. Green nodes and tokens are immutable, carry no
// position and are hash-consed by NodeCache, so identical subtrees share one
// allocation. Red cursors (SyntaxNode, SyntaxToken) wrap a green element with a
// parent link and an absolute offset that is computed on first use.
//
// Invariants:
//   - A token's text includes its leading and trailing trivia; trivia pieces
//     only store lengths and are sliced out of the owning token's text.
//   - GreenNode.TextLen equals the sum of its slots' lengths; empty slots
//     (missing children) have length zero.
//   - Concatenating the text of every token in document order reproduces the
//     source byte-for-byte.
//   - Cursor identity is (green pointer, offset), never structural content.
//
// Red cursors are not safe for concurrent use. Green trees are read-only and
// may be shared between goroutines.
package syntax
