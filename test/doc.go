// This file is derived from Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains helper functions for package tests.
//
// The Expect* functions report a failure and let the test continue. The
// Demand* functions stop the test immediately and should be used when the
// value is needed by the rest of the test, for example checking the length
// of a slice before indexing it.
//
// Every function accepts optional tags which are printed at the start of
// any failure message. A tag is useful when a check runs inside a loop.
package test
