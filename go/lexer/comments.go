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

/*
 * Java Lexer - Comment Handling
 *
 * Traditional (slash-star) and end-of-line comments, JLS 3.7. Comments do not
 * nest, and the characters inside them are never validated.
 */

package lexer

// startTraditionalComment enters the comment opened by the '/' at pos.
func (s *Scanner) startTraditionalComment(pos Position) {
	s.mode = ModeTraditionalComment
	s.commentStart = pos
	s.prevStar = false
}

// scanTraditionalComment discards comment characters until "*/".
// The '*' of the opening "/*" cannot also close the comment, so "/*/" is
// still open.
func (s *Scanner) scanTraditionalComment(c Char) {
	if s.prevStar && c.Value == '/' {
		s.mode = ModeWhitespace
		s.prevStar = false
		return
	}
	s.prevStar = c.Value == '*'
}

// scanEndOfLineComment discards characters up to a line terminator.
func (s *Scanner) scanEndOfLineComment(c Char) {
	if isLineTerminator(c.Value) {
		s.mode = ModeWhitespace
	}
}
