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

// Package statsview serves runtime statistics over HTTP while the display is
// running. It is only built when the statsview build tag is present,
// otherwise Available() returns false and Launch() does nothing.
//
// Graphs are served by "github.com/go-echarts/statsview" at:
//
//	localhost:12600/debug/statsview
//
// and the standard pprof handlers at:
//
//	localhost:12600/debug/pprof/
package statsview
