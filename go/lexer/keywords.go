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
 * Java Lexer - Keyword Tables
 *
 * JLS 3.9 keyword list. The scanner does not tokenize keywords; the table
 * sizes the identifier buffer and defines which words may never appear as
 * an identifier run.
 */

package lexer

// KeywordCategory classifies a keyword by how the scanner treats it.
type KeywordCategory int

const (
	// ReservedKeyword is a keyword with a meaning in the language.
	ReservedKeyword KeywordCategory = iota
	// UnusedKeyword is reserved but has no meaning; the scanner rejects it.
	UnusedKeyword
	// ContextualKeyword is only a keyword in specific grammar positions.
	ContextualKeyword
)

// keywords is the JLS 3.9 keyword list (Java SE 21).
var keywords = map[string]KeywordCategory{
	"abstract":     ReservedKeyword,
	"assert":       ReservedKeyword,
	"boolean":      ReservedKeyword,
	"break":        ReservedKeyword,
	"byte":         ReservedKeyword,
	"case":         ReservedKeyword,
	"catch":        ReservedKeyword,
	"char":         ReservedKeyword,
	"class":        ReservedKeyword,
	"const":        UnusedKeyword,
	"continue":     ReservedKeyword,
	"default":      ReservedKeyword,
	"do":           ReservedKeyword,
	"double":       ReservedKeyword,
	"else":         ReservedKeyword,
	"enum":         ReservedKeyword,
	"extends":      ReservedKeyword,
	"final":        ReservedKeyword,
	"finally":      ReservedKeyword,
	"float":        ReservedKeyword,
	"for":          ReservedKeyword,
	"if":           ReservedKeyword,
	"goto":         UnusedKeyword,
	"implements":   ReservedKeyword,
	"import":       ReservedKeyword,
	"instanceof":   ReservedKeyword,
	"int":          ReservedKeyword,
	"interface":    ReservedKeyword,
	"long":         ReservedKeyword,
	"native":       ReservedKeyword,
	"new":          ReservedKeyword,
	"package":      ReservedKeyword,
	"private":      ReservedKeyword,
	"protected":    ReservedKeyword,
	"public":       ReservedKeyword,
	"return":       ReservedKeyword,
	"short":        ReservedKeyword,
	"static":       ReservedKeyword,
	"strictfp":     ReservedKeyword,
	"super":        ReservedKeyword,
	"switch":       ReservedKeyword,
	"synchronized": ReservedKeyword,
	"this":         ReservedKeyword,
	"throw":        ReservedKeyword,
	"throws":       ReservedKeyword,
	"transient":    ReservedKeyword,
	"try":          ReservedKeyword,
	"void":         ReservedKeyword,
	"volatile":     ReservedKeyword,
	"while":        ReservedKeyword,
	"_":            ReservedKeyword,

	"exports":      ContextualKeyword,
	"module":       ContextualKeyword,
	"non-sealed":   ContextualKeyword,
	"open":         ContextualKeyword,
	"opens":        ContextualKeyword,
	"permits":      ContextualKeyword,
	"provides":     ContextualKeyword,
	"record":       ContextualKeyword,
	"requires":     ContextualKeyword,
	"sealed":       ContextualKeyword,
	"to":           ContextualKeyword,
	"transitive":   ContextualKeyword,
	"uses":         ContextualKeyword,
	"var":          ContextualKeyword,
	"when":         ContextualKeyword,
	"with":         ContextualKeyword,
	"yield":        ContextualKeyword,
}

// MaxKeywordLen is the length of the longest reserved keyword. Identifier
// runs longer than this cannot match any keyword.
var MaxKeywordLen = func() int {
	n := 0
	for kw, cat := range keywords {
		if cat != ContextualKeyword && len(kw) > n {
			n = len(kw)
		}
	}
	return n
}()

// LookupKeyword returns the category of word if it is a keyword.
func LookupKeyword(word string) (KeywordCategory, bool) {
	cat, ok := keywords[word]
	return cat, ok
}

// isRejectedIdentifier reports whether an identifier run must be rejected.
// Only the unused keywords are rejected at this stage.
func isRejectedIdentifier(run []byte) bool {
	if len(run) > MaxKeywordLen {
		return false
	}
	cat, ok := keywords[string(run)]
	return ok && cat == UnusedKeyword
}
