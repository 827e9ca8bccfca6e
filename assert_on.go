// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build circbufdebug

package circbuf

// debugChecks enables hot-path precondition checks: use of a released
// buffer and unchecked reads of slots that do not hold the requested
// position panic instead of returning garbage.
const debugChecks = true
