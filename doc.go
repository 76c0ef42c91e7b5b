// Package pnlbook reconciles trading activity recorded across independent,
// inconsistent broker sources into a single date-indexed profit-and-loss
// ledger with fiscal-year aggregation.
//
// The core functionalities include:
//   - Record Normalization: canonicalizing trade records from two feeds with
//     different identifiers, side encodings and date formats into one
//     aggregated trade book.
//   - Source Merging: the bulk contract-note archive is authoritative per
//     date; the live tradebook feed only fills the dates it misses.
//   - FIFO Matching: a chronological matcher that offsets same-day volume,
//     carries unmatched buys as inventory lots, consumes those lots
//     oldest-first against later sells, and writes off derivatives contracts
//     that lapse unsold on their expiry date.
//   - Charge Estimation: reconstructing brokerage and statutory charges for
//     sessions whose itemized expense records are missing.
//   - Fiscal-Year Aggregation: folding daily results into April-to-March
//     summaries with per-year totals.
//
// This package serves as the engine for the `plb` command-line tool.
// Ingestion of the raw sources lives in the fyers sub-package; rendering in
// the renderer sub-package.
package pnlbook
