// Package panel turns a buoy status panel image into one timestamped record.
//
// A panel is described by a Layout: a mapping from reading.Field to a
// RegionDef holding the pixel rectangle of the value, whether it is a number
// or a timestamp, and for numbers an optional plausible range. WindLayout and
// WaveLayout return the two panel layouts the buoys publish.
//
// An Extractor crops every region, preprocesses it for recognition, runs OCR
// with a character whitelist matching the content type, and decodes the text.
// Decoding never aborts the extraction: a bad region degrades to an absent
// value (numbers) or to the current wall-clock time (timestamps), and the
// reading.Outcome on each value records which path was taken.
//
// Numeric decoding applies one recovery step. A value outside its range is
// divided by 10 once, because the usual OCR failure is a dropped decimal
// point. If that lands in range it is kept, otherwise the value is absent.
//
// Timestamp decoding appends the current year, drops the "EST, " or
// "EDT, " zone text, parses against three layouts, interprets the result in
// the fixed local zone and adds the panel's publication delay.
package panel
