// Package capture runs one buoy capture cycle: fetch a panel image, extract
// its readings and append them to the dataset's store.
//
// Each cycle runs to completion synchronously. Fetch and store failures are
// returned; region-level problems are not, so a partially read panel is
// still stored.
package capture
