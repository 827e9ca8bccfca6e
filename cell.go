// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circbuf

// loadCell and storeCell are the only accessors of slot payloads.
//
// They are plain copies. Go offers no volatile access and no atomic copy
// of an arbitrary T, and making every payload access atomic (boxing each
// value behind an atomic pointer) costs an allocation per write. Ordering
// comes entirely from the slot tag: storeCell happens before the release
// store of the tag, loadCell happens after its acquire load.
//
// A copy that races a concurrent storeCell on the same slot is a data race
// in the Go memory model. Machine words are copied whole on every platform
// Go supports, so a racing copy can mix words of two values but never
// yields a half-written word or an invalid pointer word. Whether that is
// enough is established by the stress tests, not by proof: treat this pair
// as an accepted risk. Buffer.Read limits it by re-validating the tag, and
// the queues discard any value read by a consumer that lost its head CAS.
//
// Swapping in a stronger primitive only requires changing these two
// functions.

func loadCell[T any](c *T) T {
	return *c
}

func storeCell[T any](c *T, v T) {
	*c = v
}
