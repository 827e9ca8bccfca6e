// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package circbuf

// RaceEnabled is true when the race detector is active.
// Tests use it to skip concurrent reader/writer scenarios: Buffer.Read
// deliberately copies payloads that a writer may be replacing, which the
// detector reports even when the tag check discards the copy.
const RaceEnabled = true
