package cxxsrc

import (
	"fmt"

	"fortio.org/safecast"
)

// cursor is a byte position in the content being lexed.
type cursor struct {
	src   []byte
	off   uint32
	limit uint32
}

func newCursor(src []byte) (cursor, error) {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return cursor{}, fmt.Errorf("%w: %d bytes: %w", ErrTooLarge, len(src), err)
	}
	return cursor{src: src, limit: limit}, nil
}

func (c *cursor) eof() bool {
	return c.off >= c.limit
}

// peek reads the current byte, or 0 at the end.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

// peekAt reads the byte n positions ahead, or 0 past the end.
func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.src[c.off+n]
}

// bump advances one byte and returns the byte read.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// eat consumes the next byte if it equals b.
func (c *cursor) eat(b byte) bool {
	if !c.eof() && c.src[c.off] == b {
		c.off++
		return true
	}
	return false
}

// hasPrefix reports whether the remaining input starts with s.
func (c *cursor) hasPrefix(s string) bool {
	if int(c.limit-c.off) < len(s) {
		return false
	}
	return string(c.src[c.off:int(c.off)+len(s)]) == s
}

// skipSplice consumes a backslash-newline line splice, LF or CRLF.
func (c *cursor) skipSplice() bool {
	if c.peek() != '\\' {
		return false
	}
	switch {
	case c.peekAt(1) == '\n':
		c.off += 2
		return true
	case c.peekAt(1) == '\r' && c.peekAt(2) == '\n':
		c.off += 3
		return true
	}
	return false
}

type mark uint32

func (c *cursor) mark() mark {
	return mark(c.off)
}

func (c *cursor) reset(m mark) {
	c.off = uint32(m)
}

// pos returns the current offset as an int.
func (c *cursor) pos() int {
	return int(c.off)
}
