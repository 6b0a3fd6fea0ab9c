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

package compiler

import "strings"

// OutputPath derives the output path of a unit: a trailing srcSuffix is
// replaced by outSuffix, otherwise outSuffix is appended.
//
//	OutputPath("A.java", ".java", ".class") == "A.class"
//	OutputPath("B.txt", ".java", ".class")  == "B.txt.class"
func OutputPath(input, srcSuffix, outSuffix string) string {
	return strings.TrimSuffix(input, srcSuffix) + outSuffix
}

// Unit is one compilation unit: an input path and the output path derived
// from it.
type Unit struct {
	Input  string
	Output string
}

// NewUnits derives the units for inputs, preserving their order.
func NewUnits(inputs []string, srcSuffix, outSuffix string) []Unit {
	units := make([]Unit, 0, len(inputs))
	for _, in := range inputs {
		units = append(units, Unit{Input: in, Output: OutputPath(in, srcSuffix, outSuffix)})
	}
	return units
}
