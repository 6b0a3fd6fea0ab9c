// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexer

// Decoder reconstructs code points from a UTF-8 byte stream one byte at a
// time.
//
// Only the structure of each sequence is validated. Overlong encodings and
// encoded surrogates are reconstructed as-is.
type Decoder struct {
	value     rune
	remaining int
}

// Feed consumes one byte. It returns the completed code point and true once
// the last byte of a sequence has been fed.
func (d *Decoder) Feed(b byte) (rune, bool, error) {
	if d.remaining == 0 {
		n := leadingOnes(b)
		switch {
		case n == 0:
			return rune(b), true, nil
		case n == 1 || n > 4:
			return 0, false, errDecode(MsgInvalidUTF8Byte)
		}
		d.value = rune(b & (0x7F >> n))
		d.remaining = n - 1
		return 0, false, nil
	}

	if b&0xC0 != 0x80 {
		d.remaining = 0
		return 0, false, errDecode(MsgInvalidUTF8Continuation)
	}
	d.value = d.value<<6 | rune(b&0x3F)
	d.remaining--
	if d.remaining > 0 {
		return 0, false, nil
	}
	return d.value, true, nil
}

// Pending reports whether a multi-byte sequence is incomplete.
func (d *Decoder) Pending() bool {
	return d.remaining > 0
}

// Finish checks that the input did not end inside a multi-byte sequence.
func (d *Decoder) Finish() error {
	if d.remaining > 0 {
		d.remaining = 0
		return errDecode(MsgTruncatedUTF8)
	}
	return nil
}

// leadingOnes counts the one-bits before the first zero bit of b.
func leadingOnes(b byte) int {
	n := 0
	for mask := byte(0x80); mask != 0 && b&mask != 0; mask >>= 1 {
		n++
	}
	return n
}

// decodeError is returned by the Decoder without a position; the pipeline
// attaches the position of the offending byte.
type decodeError string

func (e decodeError) Error() string { return string(e) }

func errDecode(msg string) error { return decodeError(msg) }
