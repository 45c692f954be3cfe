// Package ecfr talks to the public eCFR API.
//
// Client implements driven.AgencyCatalog over the admin agency listing and
// driven.StructureSource over the versioner structure endpoint. Requests are
// throttled with a token bucket and decoded leniently: the upstream payloads
// are loosely typed and a missing or odd field never fails a whole title.
package ecfr
