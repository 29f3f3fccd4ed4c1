// Package domain defines the canary token registry model: decoy tokens, the access
// events recorded against them, their structured payloads and the read-only reports
// derived from both.
//
// A Canary never stores its status. It is ACTIVE while AccessedCount is zero and
// TRIGGERED afterwards, and AccessedCount always equals the number of AccessEvent rows
// recorded for its TokenID.
package domain
