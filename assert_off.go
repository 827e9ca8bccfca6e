// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !circbufdebug

package circbuf

// debugChecks is false unless built with the circbufdebug tag.
const debugChecks = false
