// Package rechnung provides the types and operations for managing the
// invoices ("Rechnungen") of a small medical practice. It is designed to be
// local-first and auditable: every record lives in a human-readable flat
// file, and nothing ever depends on hidden state.
//
// The core functionalities include:
//   - Patient master records ("Stammdaten"): one fixed-position text file
//     per four-letter patient code, created and edited by the user and read
//     by every invoice operation.
//   - Invoice records: one ";"-delimited CSV summary row per finalized
//     invoice in a per-year summary file, one rendered document per invoice,
//     and optionally one draft file holding an unfinished form snapshot.
//   - Invoice numbering: a pure derivation of the invoice number from the
//     patient code, the invoice date and the invoice kind (KG or HP).
//   - Reconciliation: deciding whether an in-progress snapshot needs a
//     draft, whether a finalize request overwrites prior state, and keeping
//     summary, document and draft consistent through the overwrite.
//
// This package serves as the foundational logic for the `rp` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package rechnung
